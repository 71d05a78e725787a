package combobox

import "github.com/charmbracelet/lipgloss"

// Styles controls how the trigger and panel render.
type Styles struct {
	Trigger         lipgloss.Style
	TriggerFocused  lipgloss.Style
	TriggerDisabled lipgloss.Style
	Placeholder     lipgloss.Style
	Panel           lipgloss.Style
	Option          lipgloss.Style
	Highlighted     lipgloss.Style
	Selected        lipgloss.Style
	Indicator       lipgloss.Style
	Empty           lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Trigger:         lipgloss.NewStyle(),
		TriggerFocused:  lipgloss.NewStyle().Bold(true),
		TriggerDisabled: lipgloss.NewStyle().Faint(true),
		Placeholder:     lipgloss.NewStyle().Faint(true),
		Panel:           lipgloss.NewStyle(),
		Option:          lipgloss.NewStyle(),
		Highlighted:     lipgloss.NewStyle().Reverse(true),
		Selected:        lipgloss.NewStyle().Bold(true),
		Indicator:       lipgloss.NewStyle().Faint(true),
		Empty:           lipgloss.NewStyle().Italic(true).Faint(true),
	}
}
