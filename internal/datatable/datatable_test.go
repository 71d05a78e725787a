package datatable

import (
	"strconv"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type room struct {
	name     string
	building string
	capacity int
}

func newRooms() *Model[room] {
	m := New([]Column[room]{
		{Title: "Name", Width: 12, Value: func(r room) string { return r.name }},
		{Title: "Building", Width: 10, Value: func(r room) string { return r.building }},
		{Title: "Cap", Width: 6, Value: func(r room) string { return strconv.Itoa(r.capacity) }},
	})
	m.SetSize(40, 10)
	m.SetRows([]room{
		{"Library", "East", 40},
		{"atrium", "West", 200},
		{"Boardroom", "East", 12},
		{"Annex", "west", 8},
	})
	return m
}

func names(rows []room) string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.name
	}
	return strings.Join(out, ",")
}

func TestFilterMatchesAnyColumnIgnoringCase(t *testing.T) {
	m := newRooms()
	m.SetFilter("WEST")
	if got := names(m.Visible()); got != "atrium,Annex" {
		t.Fatalf("filter WEST = %s", got)
	}
	m.SetFilter("200")
	if got := names(m.Visible()); got != "atrium" {
		t.Fatalf("filter 200 = %s", got)
	}
	m.SetFilter("")
	if m.Len() != 4 {
		t.Fatalf("cleared filter len = %d", m.Len())
	}
}

func TestSortByTogglesAndIsStable(t *testing.T) {
	m := newRooms()
	m.SortBy(1)
	if got := names(m.Visible()); got != "Library,Boardroom,atrium,Annex" {
		t.Fatalf("building asc = %s", got)
	}
	m.SortBy(1)
	if got := names(m.Visible()); got != "atrium,Annex,Library,Boardroom" {
		t.Fatalf("building desc = %s", got)
	}
	if col, desc := m.Sort(); col != 1 || !desc {
		t.Fatalf("Sort() = %d, %v", col, desc)
	}
	m.SortBy(0)
	if got := names(m.Visible()); got != "Annex,atrium,Boardroom,Library" {
		t.Fatalf("name asc = %s", got)
	}
}

func TestCycleSort(t *testing.T) {
	m := newRooms()
	want := []struct {
		col  int
		desc bool
	}{{0, false}, {0, true}, {1, false}, {1, true}, {2, false}}
	for i, w := range want {
		m.CycleSort()
		if col, desc := m.Sort(); col != w.col || desc != w.desc {
			t.Fatalf("step %d: got (%d,%v), want (%d,%v)", i, col, desc, w.col, w.desc)
		}
	}
}

func TestSelectedFollowsCursorInView(t *testing.T) {
	m := newRooms()
	m.SortBy(0)
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	r, ok := m.Selected()
	if !ok || r.name != "atrium" {
		t.Fatalf("selected = %+v, %v", r, ok)
	}
	m.SetCursor(3)
	m.SetFilter("east")
	r, ok = m.Selected()
	if !ok || r.name != "Library" {
		t.Fatalf("cursor should clamp into the filtered view, got %+v", r)
	}
	m.SetFilter("nothing matches")
	if _, ok := m.Selected(); ok {
		t.Fatal("empty view has no selection")
	}
}

func TestHeaderShowsSortDirection(t *testing.T) {
	m := newRooms()
	m.SortBy(2)
	if !strings.Contains(m.View(), "Cap ▲") {
		t.Fatalf("view missing sort marker:\n%s", m.View())
	}
}
