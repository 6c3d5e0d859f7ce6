package theme

// thRegisterBuiltins registers all built-in themes in the registry.
func thRegisterBuiltins() {
	for _, t := range []Theme{
		thDefaultTheme(),
		thNordTheme(),
		thDraculaTheme(),
	} {
		thRegister(t)
	}
}

// thDefaultTheme matches the stock home screen: blue-to-pink gradient
// behind white text.
func thDefaultTheme() Theme {
	return Theme{
		Name:       "default",
		Background: "#1e1e1e",
		Foreground: "#ffffff",
		Dim:        "#9ca3af",
		Accent:     "#7c3aed",

		GradientFrom: "#3b82f6",
		GradientTo:   "#ffb6c1",
		CardBorder:   "#e5e7eb",
		CardTitle:    "#ffffff",

		TabActive:   "#ffffff",
		TabInactive: "#9ca3af",

		StatusSpeech:    "#ffffff",
		StatusUtterance: "#d1d5db",
		StatusOK:        "#4ec970",
		StatusError:     "#e06c75",
	}
}

func thNordTheme() Theme {
	return Theme{
		Name:       "nord",
		Background: "#2e3440",
		Foreground: "#eceff4",
		Dim:        "#4c566a",
		Accent:     "#88c0d0",

		GradientFrom: "#5e81ac",
		GradientTo:   "#b48ead",
		CardBorder:   "#d8dee9",
		CardTitle:    "#eceff4",

		TabActive:   "#eceff4",
		TabInactive: "#4c566a",

		StatusSpeech:    "#eceff4",
		StatusUtterance: "#d8dee9",
		StatusOK:        "#a3be8c",
		StatusError:     "#bf616a",
	}
}

func thDraculaTheme() Theme {
	return Theme{
		Name:       "dracula",
		Background: "#282a36",
		Foreground: "#f8f8f2",
		Dim:        "#6272a4",
		Accent:     "#bd93f9",

		GradientFrom: "#6272a4",
		GradientTo:   "#ff79c6",
		CardBorder:   "#f8f8f2",
		CardTitle:    "#f8f8f2",

		TabActive:   "#f8f8f2",
		TabInactive: "#6272a4",

		StatusSpeech:    "#f8f8f2",
		StatusUtterance: "#e2e2dc",
		StatusOK:        "#50fa7b",
		StatusError:     "#ff5555",
	}
}
