// Package fragment models the streamed HTML fragments pushed by the GUI
// server and provides a bounded scan over a fragment's root element. The
// scan reads attributes off the first start tag only and never descends
// into nested markup; a fragment is treated as a small token set, not a
// document.
package fragment

import (
	"strings"

	"golang.org/x/net/html"
)

// Update is one server push: the id of the swap target and the replacement
// markup. Updates are immutable and consumed synchronously.
type Update struct {
	Target string
	Markup string
}

// Root describes the top-level element of a fragment.
type Root struct {
	Tag     string
	ID      string
	Classes []string
	Attrs   map[string]string
}

// HasClass reports whether the root element carries the exact class token.
func (r Root) HasClass(token string) bool {
	for _, c := range r.Classes {
		if c == token {
			return true
		}
	}
	return false
}

// ScanRoot tokenizes markup just far enough to read the fragment's first
// start tag. Leading whitespace and comments are skipped. Malformed or
// empty markup yields ok=false; scanning never returns an error.
func ScanRoot(markup string) (Root, bool) {
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return Root{}, false
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			root := Root{
				Tag:   tok.Data,
				Attrs: make(map[string]string, len(tok.Attr)),
			}
			for _, a := range tok.Attr {
				root.Attrs[a.Key] = a.Val
			}
			root.ID = root.Attrs["id"]
			root.Classes = strings.Fields(root.Attrs["class"])
			return root, true
		}
	}
}

// Text collects the concatenated text content of the markup, with tags
// stripped and runs of whitespace collapsed. Used to surface fragment
// content on a terminal cell grid.
func Text(markup string) string {
	z := html.NewTokenizer(strings.NewReader(markup))
	var parts []string
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(parts, " ")
		case html.TextToken:
			if s := strings.TrimSpace(z.Token().Data); s != "" {
				parts = append(parts, strings.Join(strings.Fields(s), " "))
			}
		}
	}
}

// ElementText returns the text content of the element with the given id
// anywhere in the document. The session document embeds the assigned
// session id this way.
func ElementText(markup, id string) (string, bool) {
	z := html.NewTokenizer(strings.NewReader(markup))
	depth := -1
	var parts []string
	for {
		switch z.Next() {
		case html.ErrorToken:
			return "", false
		case html.StartTagToken:
			tok := z.Token()
			if depth >= 0 {
				depth++
				continue
			}
			for _, a := range tok.Attr {
				if a.Key == "id" && a.Val == id {
					depth = 0
					break
				}
			}
		case html.EndTagToken:
			if depth < 0 {
				continue
			}
			if depth == 0 {
				return strings.TrimSpace(strings.Join(parts, " ")), true
			}
			depth--
		case html.TextToken:
			if depth >= 0 {
				if s := strings.TrimSpace(z.Token().Data); s != "" {
					parts = append(parts, s)
				}
			}
		}
	}
}
