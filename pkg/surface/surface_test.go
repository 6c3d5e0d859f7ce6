package surface

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/femelo/pyhtmx-gui-client/pkg/fragment"
)

func TestApplyKnownTarget(t *testing.T) {
	r := NewRegistry(Defaults()...)
	ok := r.Apply(fragment.Update{Target: "utterance", Markup: `<div id="utterance">turn on the lights</div>`})
	if !ok {
		t.Fatal("expected apply to succeed for registered target")
	}
	s, _ := r.Lookup("utterance")
	if s.Text() != "turn on the lights" {
		t.Errorf("unexpected surface text: %q", s.Text())
	}
}

func TestApplyUnknownTargetIsSkipped(t *testing.T) {
	r := NewRegistry(Defaults()...)
	r.Apply(fragment.Update{Target: "speech", Markup: `<div>before</div>`})
	if ok := r.Apply(fragment.Update{Target: "nope", Markup: `<div>x</div>`}); ok {
		t.Fatal("expected apply to report false for unknown target")
	}
	s, _ := r.Lookup("speech")
	if s.Text() != "before" {
		t.Error("skipped update must not disturb existing surfaces")
	}
}

func TestDefaultsMarkStatusSurfaces(t *testing.T) {
	r := NewRegistry(Defaults()...)
	for _, id := range []string{"speech", "utterance", "spinner"} {
		s, ok := r.Lookup(id)
		if !ok {
			t.Fatalf("missing default surface %q", id)
		}
		if !s.SuppressesDefaultTransition {
			t.Errorf("%s: expected SuppressesDefaultTransition", id)
		}
	}
	root, _ := r.Lookup("root")
	if root.SuppressesDefaultTransition {
		t.Error("root must not suppress the default transition")
	}
}

func TestOverrideKeepsOrder(t *testing.T) {
	r := NewRegistry(
		Surface{ID: "root", SwapSpec: "innerHTML"},
		Surface{ID: "root", SwapSpec: "outerHTML transition:true"},
	)
	if got := len(r.IDs()); got != 1 {
		t.Fatalf("expected 1 id, got %d", got)
	}
	s, _ := r.Lookup("root")
	if s.SwapSpec != "outerHTML transition:true" {
		t.Errorf("later declaration must win, got %q", s.SwapSpec)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "surfaces.yaml")
	data := `surfaces:
  - id: ticker
    swap-spec: "outerHTML transition:true"
    suppresses-default-transition: true
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	decls, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(decls) != 1 || decls[0].ID != "ticker" || !decls[0].SuppressesDefaultTransition {
		t.Errorf("unexpected declarations: %+v", decls)
	}
}
