package theme

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/sage/internal/combobox"
)

// Styles is every lipgloss style the console renders with, built from one
// palette so a theme switch is a single assignment.
type Styles struct {
	Palette Palette

	Title       lipgloss.Style
	HeaderBar   lipgloss.Style
	HeaderApp   lipgloss.Style
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style
	TabSep      lipgloss.Style

	StatusBar     lipgloss.Style
	StatusErrBar  lipgloss.Style
	StatusWarnBar lipgloss.Style
	Footer        lipgloss.Style
	HelpKey       lipgloss.Style
	HelpDesc      lipgloss.Style

	Label        lipgloss.Style
	FocusedLabel lipgloss.Style
	FieldError   lipgloss.Style
	Muted        lipgloss.Style
	Modal        lipgloss.Style

	Table    table.Styles
	Combobox combobox.Styles
}

// NewStyles builds the style set for p.
func NewStyles(p Palette) Styles {
	s := Styles{Palette: p}

	s.Title = lipgloss.NewStyle().Foreground(p.Pink).Bold(true)
	s.HeaderBar = lipgloss.NewStyle().
		Foreground(p.Text).
		Background(p.Mantle).
		Padding(0, 2)
	s.HeaderApp = lipgloss.NewStyle().Foreground(p.Pink).Bold(true)
	s.ActiveTab = lipgloss.NewStyle().
		Foreground(p.Pink).
		Background(p.Surface0).
		Bold(true).
		Padding(0, 1)
	s.InactiveTab = lipgloss.NewStyle().
		Foreground(p.Overlay1).
		Background(p.Mantle).
		Padding(0, 1)
	s.TabSep = lipgloss.NewStyle().Foreground(p.Overlay0).Background(p.Mantle)

	s.StatusBar = lipgloss.NewStyle().Foreground(p.Green).Background(p.Surface0)
	s.StatusErrBar = lipgloss.NewStyle().Foreground(p.Red).Background(p.Surface0)
	s.StatusWarnBar = lipgloss.NewStyle().Foreground(p.Yellow).Background(p.Surface0)
	s.Footer = lipgloss.NewStyle().Background(p.Mantle)
	s.HelpKey = lipgloss.NewStyle().Foreground(p.Pink).Bold(true).Background(p.Mantle)
	s.HelpDesc = lipgloss.NewStyle().Foreground(p.Subtext0).Background(p.Mantle)

	s.Label = lipgloss.NewStyle().Foreground(p.Subtext0)
	s.FocusedLabel = lipgloss.NewStyle().Foreground(p.Lavender).Bold(true)
	s.FieldError = lipgloss.NewStyle().Foreground(p.Red)
	s.Muted = lipgloss.NewStyle().Foreground(p.Overlay1)
	s.Modal = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Pink).
		Padding(0, 1)

	s.Table = table.DefaultStyles()
	s.Table.Header = s.Table.Header.
		Foreground(p.Subtext0).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(p.Surface1).
		BorderBottom(true).
		Bold(true)
	s.Table.Cell = s.Table.Cell.Foreground(p.Text)
	s.Table.Selected = s.Table.Selected.Foreground(p.Base).Background(p.Lavender).Bold(false)

	s.Combobox = combobox.Styles{
		Trigger:         lipgloss.NewStyle().Foreground(p.Text),
		TriggerFocused:  lipgloss.NewStyle().Foreground(p.Lavender).Bold(true),
		TriggerDisabled: lipgloss.NewStyle().Foreground(p.Overlay0),
		Placeholder:     lipgloss.NewStyle().Foreground(p.Overlay1),
		Panel:           lipgloss.NewStyle().Background(p.Surface0),
		Option:          lipgloss.NewStyle().Foreground(p.Text),
		Highlighted:     lipgloss.NewStyle().Foreground(p.Base).Background(p.Lavender),
		Selected:        lipgloss.NewStyle().Foreground(p.Green).Bold(true),
		Indicator:       lipgloss.NewStyle().Foreground(p.Overlay1),
		Empty:           lipgloss.NewStyle().Foreground(p.Overlay1).Italic(true),
	}
	return s
}
