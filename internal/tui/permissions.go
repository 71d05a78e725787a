package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/sage/internal/combobox"
	"github.com/jask/sage/internal/database/repository"
	"github.com/jask/sage/internal/datatable"
	"github.com/jask/sage/internal/form"
	"github.com/jask/sage/internal/service"
)

func (a *App) assignmentColumns() []datatable.Column[repository.Assignment] {
	return []datatable.Column[repository.Assignment]{
		{Title: "User", Width: 20, Value: func(x repository.Assignment) string { return x.UserName }},
		{Title: "Permission", Width: 18, Value: func(x repository.Assignment) string { return x.PermissionCode }},
		{Title: "Location", Width: 20, Value: func(x repository.Assignment) string { return x.LocationName }},
		{Title: "Granted", Width: 12, Value: func(x repository.Assignment) string { return x.GrantedAt.Format(a.cfg.UI.DateFormat) }},
	}
}

func (a *App) permissionOptions() []combobox.Option {
	out := make([]combobox.Option, 0, len(a.permissions))
	for _, p := range a.permissions {
		label := p.Code
		if p.Description != "" {
			label += " - " + p.Description
		}
		out = append(out, combobox.Option{Value: p.ID, Label: label})
	}
	return out
}

func (a *App) newGrantForm() *form.Form {
	return form.New(
		form.Select("user", "User", a.selectConfig("Select a user", "Search users", a.userOptions())),
		form.Select("permission", "Permission", a.selectConfig("Select a permission", "Search permissions", a.permissionOptions())),
		form.Select("location", "Location", a.selectConfig("Select a location", "Search locations", a.locationOptions(false))),
	)
}

// refreshOptions pushes reloaded lists into any open selects.
func (a *App) refreshOptions() {
	if a.editor == nil {
		return
	}
	set := func(key string, options []combobox.Option) {
		if fd := a.editor.Field(key); fd != nil && fd.Combobox() != nil {
			fd.Combobox().SetOptions(options)
		}
	}
	switch a.editKind {
	case editUser:
		set("location", a.locationOptions(true))
	case editGrant:
		set("user", a.userOptions())
		set("permission", a.permissionOptions())
		set("location", a.locationOptions(false))
	}
}

func (a *App) handlePermissionsKey(m tea.KeyMsg, scope string) tea.Cmd {
	switch {
	case a.keys.IsAction(m, actionNew, scope):
		return a.openEditor(editGrant, "", a.newGrantForm())
	case a.keys.IsAction(m, actionDelete, scope):
		if x, ok := a.assignTable.Selected(); ok {
			prompt := "Revoke " + x.PermissionCode + " from " + x.UserName + " at " + x.LocationName + "?"
			a.ask(prompt, func() tea.Cmd { return a.revokeCmd(x) })
		}
	default:
		_, cmd := a.assignTable.Update(m)
		return cmd
	}
	return nil
}

func (a *App) grantCmd(values map[string]string) tea.Cmd {
	return func() tea.Msg {
		added, err := a.services.Permissions.Grant(a.ctx, values["user"], values["permission"], values["location"])
		if fields := service.FieldErrors(err); fields != nil {
			return formErrMsg{fields}
		}
		if err != nil {
			return errMsg{err}
		}
		status := "permission granted"
		if !added {
			status = "already granted"
		}
		return savedMsg{status: status, reload: []tea.Cmd{a.loadAssignments(), a.loadNotifications()}}
	}
}

func (a *App) revokeCmd(x repository.Assignment) tea.Cmd {
	return func() tea.Msg {
		if err := a.services.Permissions.Revoke(a.ctx, x.UserID, x.PermissionID, x.LocationID); err != nil {
			return errMsg{err}
		}
		return doneMsg{status: "permission revoked", reload: []tea.Cmd{a.loadAssignments(), a.loadNotifications()}}
	}
}
