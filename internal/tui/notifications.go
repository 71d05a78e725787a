package tui

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/sage/internal/database/repository"
	"github.com/jask/sage/internal/datatable"
)

func (a *App) notificationColumns() []datatable.Column[repository.Notification] {
	return []datatable.Column[repository.Notification]{
		{Title: "", Width: 1, Value: func(n repository.Notification) string {
			if n.Read() {
				return " "
			}
			return "●"
		}},
		{Title: "Title", Width: 20, Value: func(n repository.Notification) string { return n.Title }},
		{Title: "Detail", Width: 32, Value: func(n repository.Notification) string { return n.Body }},
		{Title: "User", Width: 18, Value: func(n repository.Notification) string { return a.userName[n.UserID] }},
		{Title: "Date", Width: 12, Value: func(n repository.Notification) string { return n.CreatedAt.Format(a.cfg.UI.DateFormat) }},
	}
}

func (a *App) handleNotificationsKey(m tea.KeyMsg, scope string) tea.Cmd {
	switch {
	case a.keys.IsAction(m, actionMarkRead, scope):
		n, ok := a.noteTable.Selected()
		if !ok {
			return nil
		}
		if n.Read() {
			a.setStatus("already read", slog.LevelInfo)
			return nil
		}
		return a.markReadCmd(n.ID)
	case a.keys.IsAction(m, actionMarkAllRead, scope):
		return a.markAllReadCmd()
	default:
		_, cmd := a.noteTable.Update(m)
		return cmd
	}
}

func (a *App) markReadCmd(id string) tea.Cmd {
	return func() tea.Msg {
		if err := a.services.Notifications.MarkRead(a.ctx, id); err != nil {
			return errMsg{err}
		}
		return doneMsg{status: "marked read", reload: []tea.Cmd{a.loadNotifications()}}
	}
}

func (a *App) markAllReadCmd() tea.Cmd {
	return func() tea.Msg {
		n, err := a.services.Notifications.MarkAllRead(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return doneMsg{status: fmt.Sprintf("marked %d read", n), reload: []tea.Cmd{a.loadNotifications()}}
	}
}
