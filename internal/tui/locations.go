package tui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/sage/internal/database/repository"
	"github.com/jask/sage/internal/datatable"
	"github.com/jask/sage/internal/form"
	"github.com/jask/sage/internal/service"
)

func (a *App) locationColumns() []datatable.Column[repository.Location] {
	return []datatable.Column[repository.Location]{
		{Title: "Name", Width: 24, Value: func(l repository.Location) string { return l.Name }},
		{Title: "Building", Width: 16, Value: func(l repository.Location) string { return l.Building }},
		{Title: "Capacity", Width: 8, Value: func(l repository.Location) string { return strconv.Itoa(l.Capacity) }},
		{Title: "Updated", Width: 12, Value: func(l repository.Location) string { return l.UpdatedAt.Format(a.cfg.UI.DateFormat) }},
	}
}

func (a *App) newLocationForm(l repository.Location) *form.Form {
	f := form.New(
		form.Text("name", "Name", "Room 101"),
		form.Text("building", "Building", "Main"),
		form.Text("capacity", "Capacity", "0"),
	)
	capacity := ""
	if l.Capacity > 0 {
		capacity = strconv.Itoa(l.Capacity)
	}
	f.Reset(map[string]string{"name": l.Name, "building": l.Building, "capacity": capacity})
	return f
}

func (a *App) handleLocationsKey(m tea.KeyMsg, scope string) tea.Cmd {
	switch {
	case a.keys.IsAction(m, actionNew, scope):
		return a.openEditor(editLocation, "", a.newLocationForm(repository.Location{}))
	case a.keys.IsAction(m, actionEdit, scope):
		if l, ok := a.locTable.Selected(); ok {
			return a.openEditor(editLocation, l.ID, a.newLocationForm(l))
		}
	case a.keys.IsAction(m, actionDelete, scope):
		if l, ok := a.locTable.Selected(); ok {
			a.ask("Delete location "+l.Name+"?", func() tea.Cmd { return a.deleteLocationCmd(l) })
		}
	default:
		_, cmd := a.locTable.Update(m)
		return cmd
	}
	return nil
}

func (a *App) saveLocationCmd(id string, values map[string]string) tea.Cmd {
	return func() tea.Msg {
		capacity, err := service.ParseCapacity(values["capacity"])
		if err != nil {
			return formErrMsg{service.FieldErrors(err)}
		}
		l, warnings, err := a.services.Locations.Save(a.ctx, service.LocationInput{
			ID:       id,
			Name:     values["name"],
			Building: values["building"],
			Capacity: capacity,
		})
		if fields := service.FieldErrors(err); fields != nil {
			return formErrMsg{fields}
		}
		if err != nil {
			return errMsg{err}
		}
		return savedMsg{
			status:   "saved " + l.Name,
			warnings: warnings,
			reload:   []tea.Cmd{a.loadLocations(), a.loadAssignments()},
		}
	}
}

func (a *App) deleteLocationCmd(l repository.Location) tea.Cmd {
	return func() tea.Msg {
		if err := a.services.Locations.Delete(a.ctx, l.ID); err != nil {
			return errMsg{err}
		}
		return doneMsg{
			status: "deleted " + l.Name,
			reload: []tea.Cmd{a.loadLocations(), a.loadUsers(), a.loadAssignments()},
		}
	}
}
