package theme

import "github.com/charmbracelet/lipgloss"

// Palette is the subset of Catppuccin colors the UI draws with.
// https://catppuccin.com/palette
type Palette struct {
	Name string

	Rosewater lipgloss.Color
	Pink      lipgloss.Color
	Mauve     lipgloss.Color
	Red       lipgloss.Color
	Peach     lipgloss.Color
	Yellow    lipgloss.Color
	Green     lipgloss.Color
	Teal      lipgloss.Color
	Blue      lipgloss.Color
	Lavender  lipgloss.Color

	Text     lipgloss.Color
	Subtext1 lipgloss.Color
	Subtext0 lipgloss.Color
	Overlay1 lipgloss.Color
	Overlay0 lipgloss.Color
	Surface1 lipgloss.Color
	Surface0 lipgloss.Color
	Base     lipgloss.Color
	Mantle   lipgloss.Color
	Crust    lipgloss.Color
}

// Mocha is the dark palette.
var Mocha = Palette{
	Name:      "mocha",
	Rosewater: "#f5e0dc",
	Pink:      "#f5c2e7",
	Mauve:     "#cba6f7",
	Red:       "#f38ba8",
	Peach:     "#fab387",
	Yellow:    "#f9e2af",
	Green:     "#a6e3a1",
	Teal:      "#94e2d5",
	Blue:      "#89b4fa",
	Lavender:  "#b4befe",
	Text:      "#cdd6f4",
	Subtext1:  "#bac2de",
	Subtext0:  "#a6adc8",
	Overlay1:  "#7f849c",
	Overlay0:  "#6c7086",
	Surface1:  "#45475a",
	Surface0:  "#313244",
	Base:      "#1e1e2e",
	Mantle:    "#181825",
	Crust:     "#11111b",
}

// Latte is the light palette.
var Latte = Palette{
	Name:      "latte",
	Rosewater: "#dc8a78",
	Pink:      "#ea76cb",
	Mauve:     "#8839ef",
	Red:       "#d20f39",
	Peach:     "#fe640b",
	Yellow:    "#df8e1d",
	Green:     "#40a02b",
	Teal:      "#179299",
	Blue:      "#1e66f5",
	Lavender:  "#7287fd",
	Text:      "#4c4f69",
	Subtext1:  "#5c5f77",
	Subtext0:  "#6c6f85",
	Overlay1:  "#8c8fa1",
	Overlay0:  "#9ca0b0",
	Surface1:  "#bcc0cc",
	Surface0:  "#ccd0da",
	Base:      "#eff1f5",
	Mantle:    "#e6e9ef",
	Crust:     "#dce0e8",
}

// Colors lists every color in the palette, for validation.
func (p Palette) Colors() []lipgloss.Color {
	return []lipgloss.Color{
		p.Rosewater, p.Pink, p.Mauve, p.Red, p.Peach,
		p.Yellow, p.Green, p.Teal, p.Blue, p.Lavender,
		p.Text, p.Subtext1, p.Subtext0, p.Overlay1, p.Overlay0,
		p.Surface1, p.Surface0, p.Base, p.Mantle, p.Crust,
	}
}
