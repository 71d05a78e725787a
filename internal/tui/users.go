package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jask/sage/internal/combobox"
	"github.com/jask/sage/internal/database/repository"
	"github.com/jask/sage/internal/datatable"
	"github.com/jask/sage/internal/form"
	"github.com/jask/sage/internal/service"
)

const comboWidth = 32

func (a *App) userColumns() []datatable.Column[repository.User] {
	return []datatable.Column[repository.User]{
		{Title: "Name", Width: 20, Value: func(u repository.User) string { return u.Name }},
		{Title: "Email", Width: 28, Value: func(u repository.User) string { return u.Email }},
		{Title: "Role", Width: 8, Value: func(u repository.User) string { return u.Role }},
		{Title: "Location", Width: 18, Value: func(u repository.User) string { return a.locationName(u.LocationID) }},
		{Title: "Active", Width: 6, Value: func(u repository.User) string {
			if u.Active {
				return "yes"
			}
			return "no"
		}},
	}
}

func (a *App) locationName(id *string) string {
	if id == nil {
		return ""
	}
	for _, l := range a.locations {
		if l.ID == *id {
			return l.Name
		}
	}
	return ""
}

func roleOptions() []combobox.Option {
	title := cases.Title(language.English)
	roles := repository.Roles()
	out := make([]combobox.Option, len(roles))
	for i, r := range roles {
		out[i] = combobox.Option{Value: r, Label: title.String(r)}
	}
	return out
}

func (a *App) userOptions() []combobox.Option {
	out := make([]combobox.Option, 0, len(a.users))
	for _, u := range a.users {
		out = append(out, combobox.Option{Value: u.ID, Label: u.Name + " <" + u.Email + ">"})
	}
	return out
}

// locationOptions lists locations by name. withNone adds an explicit
// "no location" choice carrying the empty value.
func (a *App) locationOptions(withNone bool) []combobox.Option {
	out := make([]combobox.Option, 0, len(a.locations)+1)
	if withNone {
		out = append(out, combobox.Option{Value: "", Label: "(no location)"})
	}
	for _, l := range a.locations {
		label := l.Name
		if l.Building != "" {
			label += " · " + l.Building
		}
		out = append(out, combobox.Option{Value: l.ID, Label: label})
	}
	return out
}

func (a *App) selectConfig(placeholder, search string, options []combobox.Option) combobox.Config {
	return combobox.Config{
		Options:           options,
		Placeholder:       placeholder,
		SearchPlaceholder: search,
		MaxVisible:        a.cfg.UI.MaxVisibleOptions,
		Width:             comboWidth,
		Document:          a.doc,
	}
}

func (a *App) newUserForm(u repository.User) *form.Form {
	f := form.New(
		form.Text("name", "Name", "Full name"),
		form.Text("email", "Email", "name@example.org"),
		form.Select("role", "Role", a.selectConfig("Select a role", "Search roles", roleOptions())),
		form.Select("location", "Home location", a.selectConfig("No location", "Search locations", a.locationOptions(true))),
		form.Text("avatar", "Avatar", "/avatars/name.png"),
	)
	loc := ""
	if u.LocationID != nil {
		loc = *u.LocationID
	}
	f.Reset(map[string]string{
		"name":     u.Name,
		"email":    u.Email,
		"role":     u.Role,
		"location": loc,
		"avatar":   u.AvatarPath,
	})
	return f
}

func (a *App) handleUsersKey(m tea.KeyMsg, scope string) tea.Cmd {
	switch {
	case a.keys.IsAction(m, actionNew, scope):
		return a.openEditor(editUser, "", a.newUserForm(repository.User{Role: repository.RoleMember}))
	case a.keys.IsAction(m, actionEdit, scope):
		if u, ok := a.userTable.Selected(); ok {
			return a.openEditor(editUser, u.ID, a.newUserForm(u))
		}
	case a.keys.IsAction(m, actionDelete, scope):
		if u, ok := a.userTable.Selected(); ok {
			a.ask("Delete user "+u.Name+"?", func() tea.Cmd { return a.deleteUserCmd(u) })
		}
	default:
		_, cmd := a.userTable.Update(m)
		return cmd
	}
	return nil
}

func (a *App) saveUserCmd(id string, values map[string]string) tea.Cmd {
	return func() tea.Msg {
		u, err := a.services.Users.Save(a.ctx, service.UserInput{
			ID:         id,
			Name:       values["name"],
			Email:      values["email"],
			Role:       values["role"],
			LocationID: values["location"],
			AvatarPath: values["avatar"],
		})
		if fields := service.FieldErrors(err); fields != nil {
			return formErrMsg{fields}
		}
		if err != nil {
			return errMsg{err}
		}
		return savedMsg{status: "saved " + strings.TrimSpace(u.Name), reload: []tea.Cmd{a.loadUsers()}}
	}
}

func (a *App) deleteUserCmd(u repository.User) tea.Cmd {
	return func() tea.Msg {
		if err := a.services.Users.Delete(a.ctx, u.ID); err != nil {
			return errMsg{err}
		}
		return doneMsg{
			status: "deleted " + u.Name,
			reload: []tea.Cmd{a.loadUsers(), a.loadAssignments(), a.loadNotifications()},
		}
	}
}
