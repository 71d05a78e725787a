package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/sage/internal/combobox"
	"github.com/jask/sage/internal/form"
	"github.com/jask/sage/internal/theme"
)

func themeOptions() []combobox.Option {
	modes := theme.Modes()
	out := make([]combobox.Option, len(modes))
	for i, m := range modes {
		out[i] = combobox.Option{Value: string(m), Label: m.Label()}
	}
	return out
}

func (a *App) newSettingsForm() *form.Form {
	cfg := a.selectConfig("Select a theme", "Search themes", themeOptions())
	cfg.Value = string(a.mode)
	cfg.OnValueChange = func(v string) {
		if m, ok := theme.ParseMode(v); ok {
			a.pendingTheme = &m
		}
	}
	f := form.New(form.Select("theme", "Theme", cfg))
	f.SetOrigin(bodyIndent, bodyTop+2)
	return f
}

func (a *App) handleSettingsKey(m tea.KeyMsg, _ string) tea.Cmd {
	_, cmd := a.settings.Update(m)
	return cmd
}

// flushTheme applies a theme chosen during the last dispatch and persists it.
func (a *App) flushTheme() tea.Cmd {
	if a.pendingTheme == nil {
		return nil
	}
	mode := *a.pendingTheme
	a.pendingTheme = nil
	if mode == a.mode {
		return nil
	}
	a.mode = mode
	a.applyTheme()
	return a.saveThemeCmd(mode)
}

func (a *App) saveThemeCmd(mode theme.Mode) tea.Cmd {
	return func() tea.Msg {
		if a.themes == nil {
			return statusMsg("theme: " + mode.Label())
		}
		if err := a.themes.Set(mode); err != nil {
			return errMsg{err}
		}
		return statusMsg("theme saved: " + mode.Label())
	}
}
