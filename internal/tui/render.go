package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/sage/internal/config"
)

const appName = "SAGE"

func (a *App) View() string {
	bodyHeight := max(1, a.height-chromeRows)
	body := splitToLines(a.renderBody(), bodyHeight)
	for i, line := range body {
		body[i] = strings.Repeat(" ", bodyIndent) + line
	}
	view := strings.Join([]string{
		a.renderHeader(),
		"",
		strings.Join(body, "\n"),
		a.renderStatusBar(),
		a.renderFooter(),
	}, "\n")
	if a.modal != modalNone {
		card := a.styles.Modal.Render(a.confirm.prompt + "\n\n" +
			a.styles.HelpKey.UnsetBackground().Render("y") + " confirm   " +
			a.styles.HelpKey.UnsetBackground().Render("n") + " keep")
		view = placeCentered(view, card, a.width, a.height)
	}
	return view
}

func (a *App) tabLabel(t tab) string {
	if t == tabNotifications && a.unread > 0 {
		return fmt.Sprintf("%s (%d)", tabNames[t], a.unread)
	}
	return tabNames[t]
}

// tabStart is the column of the first tab: bar padding, app name, gap.
func tabStart() int { return 2 + lipgloss.Width(appName) + 2 }

// tabAt maps a header column to the tab drawn there. Each tab is its label
// plus one cell of padding per side, followed by a one-cell separator.
func (a *App) tabAt(x int) (tab, bool) {
	pos := tabStart()
	for t := tab(0); t < tabCount; t++ {
		w := lipgloss.Width(a.tabLabel(t)) + 2
		if x >= pos && x < pos+w {
			return t, true
		}
		pos += w + 1
	}
	return 0, false
}

func (a *App) renderHeader() string {
	parts := make([]string, 0, tabCount)
	for t := tab(0); t < tabCount; t++ {
		style := a.styles.InactiveTab
		if t == a.tab {
			style = a.styles.ActiveTab
		}
		parts = append(parts, style.Render(a.tabLabel(t)))
	}
	line := a.styles.HeaderApp.Render(appName) + "  " + strings.Join(parts, a.styles.TabSep.Render("│"))
	return renderBar(a.styles.HeaderBar, max(1, a.width), line)
}

func (a *App) renderBody() string {
	if a.editor != nil {
		return a.renderEditor()
	}
	switch a.tab {
	case tabUsers:
		return a.renderTable(a.userTable.View(), a.userTable.Len(), a.userTable.Filter(), "No users yet. Press n to add one.")
	case tabLocations:
		return a.renderTable(a.locTable.View(), a.locTable.Len(), a.locTable.Filter(), "No locations yet. Press n to add one.")
	case tabPermissions:
		return a.renderTable(a.assignTable.View(), a.assignTable.Len(), a.assignTable.Filter(), "No permissions granted. Press n to grant one.")
	case tabNotifications:
		return a.renderTable(a.noteTable.View(), a.noteTable.Len(), a.noteTable.Filter(), "No notifications.")
	default:
		return a.renderSettings()
	}
}

func (a *App) renderTable(view string, rows int, filter, empty string) string {
	var lines []string
	switch {
	case a.filtering:
		lines = append(lines, a.filterInput.View())
	case filter != "":
		lines = append(lines, a.styles.Muted.Render("/ "+filter+"  (/ to change, esc in filter to clear)"))
	}
	if rows == 0 {
		msg := empty
		if filter != "" {
			msg = "Nothing matches the filter."
		}
		lines = append(lines, a.styles.Muted.Render(msg))
		return strings.Join(lines, "\n")
	}
	lines = append(lines, view)
	return strings.Join(lines, "\n")
}

func (a *App) renderEditor() string {
	title := map[editKind]string{
		editUser:     "User",
		editLocation: "Location",
		editGrant:    "Grant permission",
	}[a.editKind]
	if a.editKind != editGrant {
		if a.editingID == "" {
			title = "New " + strings.ToLower(title)
		} else {
			title = "Edit " + strings.ToLower(title)
		}
	}
	if a.editor.Dirty() {
		title += " *"
	}
	return a.styles.Title.Render(title) + "\n\n" + a.editor.View()
}

func (a *App) renderSettings() string {
	lines := []string{
		a.styles.Title.Render("Settings"),
		"",
		a.settings.View(),
		"",
		a.styles.Muted.Render("Config   " + config.Path()),
		a.styles.Muted.Render("Database " + a.cfg.Database.Path),
		a.styles.Muted.Render(fmt.Sprintf("Palette  %s", a.styles.Palette.Name)),
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderStatusBar() string {
	msg := strings.TrimSpace(a.status)
	if msg == "" {
		msg = "Ready"
	}
	style := a.styles.StatusBar
	switch {
	case a.statusLevel >= slog.LevelError:
		style = a.styles.StatusErrBar
	case a.statusLevel >= slog.LevelWarn:
		style = a.styles.StatusWarnBar
	}
	return renderBar(style.Padding(0, 2), max(1, a.width), msg)
}

func (a *App) renderFooter() string {
	bindings := a.keys.BindingsForScope(a.scope())
	space := a.styles.Footer.Render(" ")
	sep := a.styles.Footer.Render("  ")
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if len(b.Keys) == 0 {
			continue
		}
		helpKey := b.Help
		if helpKey == "" {
			helpKey = b.Keys[0]
		}
		kb := key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(helpKey, b.Description))
		h := kb.Help()
		parts = append(parts, a.styles.HelpKey.Render(h.Key)+space+a.styles.HelpDesc.Render(h.Desc))
	}
	line := strings.Join(parts, sep)
	if line == "" {
		line = a.styles.HelpDesc.Render("No shortcuts")
	}
	return renderBar(a.styles.Footer.Padding(0, 2), max(1, a.width), line)
}

func renderBar(style lipgloss.Style, width int, text string) string {
	line := strings.ReplaceAll(text, "\n", " ")
	inner := max(1, width-style.GetHorizontalFrameSize())
	line = ansi.Truncate(line, inner, "")
	return style.Width(width).MaxWidth(width).Render(line)
}
