// Package media renders wallpaper and other imagery behind the home
// screen. It wraps go-termimg for terminals with a graphics protocol and
// falls back to halfblock cells elsewhere. The overlay shrinks the media
// area when it is visible, so rendering is sized per call.
package media

import (
	"fmt"
	"image"
	"os"
	"strings"
	"sync"

	"github.com/blacktop/go-termimg"
	"github.com/disintegration/imaging"
)

// Protocol names accepted in configuration.
const (
	ProtocolAuto   = "auto"
	ProtocolKitty  = "kitty"
	ProtocolITerm2 = "iterm2"
	ProtocolSixel  = "sixel"
	ProtocolBlocks = "blocks"
)

// Renderer turns image files into terminal escape strings at cell
// resolution.
type Renderer struct {
	proto  termimg.Protocol
	blocks bool
	cellW  int
	cellH  int

	mu    sync.Mutex
	cache map[cacheKey]string
}

type cacheKey struct {
	path   string
	width  int
	height int
}

// NewRenderer resolves the configured protocol and probes the terminal
// cell size. Unknown protocol names fall back to halfblocks.
func NewRenderer(protocol string) *Renderer {
	r := &Renderer{cache: map[cacheKey]string{}}
	switch protocol {
	case ProtocolKitty:
		r.proto = termimg.Kitty
	case ProtocolITerm2:
		r.proto = termimg.ITerm2
	case ProtocolSixel:
		r.proto = termimg.Sixel
	case ProtocolBlocks:
		r.blocks = true
	default:
		r.proto, r.blocks = detectProtocol()
	}
	r.cellW, r.cellH = cellPixelSize()
	return r
}

// detectProtocol guesses the richest protocol the terminal speaks from
// its environment.
func detectProtocol() (termimg.Protocol, bool) {
	if os.Getenv("KITTY_WINDOW_ID") != "" || strings.Contains(os.Getenv("TERM"), "kitty") {
		return termimg.Kitty, false
	}
	switch os.Getenv("TERM_PROGRAM") {
	case "iTerm.app", "WezTerm":
		return termimg.ITerm2, false
	}
	if strings.Contains(os.Getenv("TERM"), "ghostty") {
		return termimg.Kitty, false
	}
	return 0, true
}

// cellPixelSize returns the pixel dimensions of one terminal cell,
// with conservative defaults when the terminal will not say.
func cellPixelSize() (int, int) {
	if w, h, err := queryCellSize(); err == nil {
		return w, h
	}
	return 8, 16
}

// RenderFile renders the image at path into a width x height cell box,
// preserving aspect ratio. Rendered output is cached per size.
func (r *Renderer) RenderFile(path string, widthCells, heightCells int) (string, error) {
	if widthCells <= 0 || heightCells <= 0 {
		return "", nil
	}
	key := cacheKey{path: path, width: widthCells, height: heightCells}
	r.mu.Lock()
	cached, ok := r.cache[key]
	r.mu.Unlock()
	if ok {
		return cached, nil
	}

	img, err := imaging.Open(path)
	if err != nil {
		return "", fmt.Errorf("open media: %w", err)
	}
	out, err := r.render(img, widthCells, heightCells)
	if err != nil {
		return "", err
	}
	r.mu.Lock()
	r.cache[key] = out
	r.mu.Unlock()
	return out, nil
}

// render resizes to the pixel budget and emits escapes for the active
// protocol.
func (r *Renderer) render(img image.Image, widthCells, heightCells int) (string, error) {
	if r.blocks {
		// Halfblocks pack two pixels per cell row.
		fitted := imaging.Fit(img, widthCells, heightCells*2, imaging.Lanczos)
		return renderBlocks(fitted), nil
	}

	fitted := imaging.Fit(img, widthCells*r.cellW, heightCells*r.cellH, imaging.Lanczos)
	ti := termimg.New(fitted)
	if ti == nil {
		return "", fmt.Errorf("termimg: cannot wrap image")
	}
	out, err := ti.Protocol(r.proto).Size(widthCells, heightCells).Scale(termimg.ScaleFit).Render()
	if err != nil {
		return "", fmt.Errorf("render media: %w", err)
	}
	return out, nil
}
