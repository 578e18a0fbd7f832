package palette

import "github.com/charmbracelet/lipgloss"

// Palette defines the colors used by the picker.
type Palette struct {
	Name string

	Text      lipgloss.Color
	Muted     lipgloss.Color
	Faint     lipgloss.Color
	Accent    lipgloss.Color
	Secondary lipgloss.Color
	Tertiary  lipgloss.Color
	Error     lipgloss.Color
}

// Mocha is the default dark palette (Catppuccin Mocha)
var Mocha = Palette{
	Name:      "mocha",
	Text:      "#cdd6f4",
	Muted:     "#6c7086", // Overlay0
	Faint:     "#45475a", // Surface1
	Accent:    "#89b4fa", // Blue
	Secondary: "#cba6f7", // Mauve
	Tertiary:  "#94e2d5", // Teal
	Error:     "#f38ba8", // Red
}

// Frappe is a slightly lighter dark palette (Catppuccin Frappe)
var Frappe = Palette{
	Name:      "frappe",
	Text:      "#c6d0f5",
	Muted:     "#737994",
	Faint:     "#51576d",
	Accent:    "#8caaee",
	Secondary: "#ca9ee6",
	Tertiary:  "#81c8be",
	Error:     "#e78284",
}

// Latte is the light palette (Catppuccin Latte)
var Latte = Palette{
	Name:      "latte",
	Text:      "#4c4f69",
	Muted:     "#9ca0b0",
	Faint:     "#bcc0cc",
	Accent:    "#1e66f5",
	Secondary: "#8839ef",
	Tertiary:  "#179299",
	Error:     "#d20f39",
}

// Palettes is the list of available palettes
var Palettes = []Palette{Mocha, Frappe, Latte}

// ByName returns a palette by name, defaulting to Mocha
func ByName(name string) Palette {
	for _, p := range Palettes {
		if p.Name == name {
			return p
		}
	}
	return Mocha
}

// Names lists the palette names in declaration order.
func Names() []string {
	out := make([]string, 0, len(Palettes))
	for _, p := range Palettes {
		out = append(out, p.Name)
	}
	return out
}
