package theme

import (
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
)

// thTOMLTheme is the TOML-serializable representation of a Theme.
type thTOMLTheme struct {
	Name     string         `toml:"name"`
	Base     thTOMLBase     `toml:"base"`
	Carousel thTOMLCarousel `toml:"carousel"`
	Tabs     thTOMLTabs     `toml:"tabs"`
	Status   thTOMLStatus   `toml:"status"`
}

type thTOMLBase struct {
	Background string `toml:"background"`
	Foreground string `toml:"foreground"`
	Dim        string `toml:"dim"`
	Accent     string `toml:"accent"`
}

type thTOMLCarousel struct {
	GradientFrom string `toml:"gradient_from"`
	GradientTo   string `toml:"gradient_to"`
	CardBorder   string `toml:"card_border"`
	CardTitle    string `toml:"card_title"`
}

type thTOMLTabs struct {
	Active   string `toml:"active"`
	Inactive string `toml:"inactive"`
}

type thTOMLStatus struct {
	Speech    string `toml:"speech"`
	Utterance string `toml:"utterance"`
	OK        string `toml:"ok"`
	Error     string `toml:"error"`
}

var thHexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// LoadFile reads a theme from a TOML file and registers it. Unset colors
// inherit from the default theme.
func LoadFile(path string) (Theme, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("read theme: %w", err)
	}
	var tt thTOMLTheme
	if err := toml.Unmarshal(raw, &tt); err != nil {
		return Theme{}, fmt.Errorf("parse theme: %w", err)
	}
	if tt.Name == "" {
		return Theme{}, fmt.Errorf("theme %s: missing name", path)
	}
	t, err := tt.toTheme()
	if err != nil {
		return Theme{}, fmt.Errorf("theme %s: %w", path, err)
	}
	thRegister(t)
	return t, nil
}

// toTheme validates every set color and fills gaps from the default.
func (tt thTOMLTheme) toTheme() (Theme, error) {
	t := thDefaultTheme()
	t.Name = tt.Name
	for _, f := range []struct {
		val string
		dst *string
	}{
		{tt.Base.Background, &t.Background},
		{tt.Base.Foreground, &t.Foreground},
		{tt.Base.Dim, &t.Dim},
		{tt.Base.Accent, &t.Accent},
		{tt.Carousel.GradientFrom, &t.GradientFrom},
		{tt.Carousel.GradientTo, &t.GradientTo},
		{tt.Carousel.CardBorder, &t.CardBorder},
		{tt.Carousel.CardTitle, &t.CardTitle},
		{tt.Tabs.Active, &t.TabActive},
		{tt.Tabs.Inactive, &t.TabInactive},
		{tt.Status.Speech, &t.StatusSpeech},
		{tt.Status.Utterance, &t.StatusUtterance},
		{tt.Status.OK, &t.StatusOK},
		{tt.Status.Error, &t.StatusError},
	} {
		if f.val == "" {
			continue
		}
		if !thHexColor.MatchString(f.val) {
			return Theme{}, fmt.Errorf("invalid color %q", f.val)
		}
		*f.dst = f.val
	}
	return t, nil
}
