package datatable

import (
	"cmp"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/cases"
)

// Column describes one column of T.
type Column[T any] struct {
	Title string
	Width int
	Value func(T) string
}

// Model is a filterable, sortable bubbles table over typed rows.
type Model[T any] struct {
	columns []Column[T]
	rows    []T
	visible []T

	filter  string
	sortCol int
	desc    bool

	table table.Model
}

func New[T any](columns []Column[T]) *Model[T] {
	m := &Model[T]{
		columns: columns,
		sortCol: -1,
		table:   table.New(table.WithFocused(true)),
	}
	m.refresh()
	return m
}

// SetRows replaces the data, keeping filter and sort.
func (m *Model[T]) SetRows(rows []T) {
	m.rows = rows
	m.refresh()
}

// SetFilter keeps rows where any column contains q, ignoring case.
func (m *Model[T]) SetFilter(q string) {
	m.filter = q
	m.refresh()
}

func (m *Model[T]) Filter() string { return m.filter }

// SortBy sorts on col. Repeating the same column flips the direction.
// Equal keys keep their input order.
func (m *Model[T]) SortBy(col int) {
	if col < 0 || col >= len(m.columns) {
		return
	}
	if m.sortCol == col {
		m.desc = !m.desc
	} else {
		m.sortCol, m.desc = col, false
	}
	m.refresh()
}

// CycleSort steps through column 0 asc, 0 desc, 1 asc and so on.
func (m *Model[T]) CycleSort() {
	switch {
	case m.sortCol < 0:
		m.SortBy(0)
	case !m.desc:
		m.SortBy(m.sortCol)
	default:
		m.SortBy((m.sortCol + 1) % len(m.columns))
	}
}

// Sort reports the sorted column (-1 for none) and direction.
func (m *Model[T]) Sort() (col int, desc bool) { return m.sortCol, m.desc }

// Visible returns the rows in display order.
func (m *Model[T]) Visible() []T { return m.visible }

func (m *Model[T]) Len() int { return len(m.visible) }

// Selected returns the row under the cursor.
func (m *Model[T]) Selected() (T, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.visible) {
		var zero T
		return zero, false
	}
	return m.visible[i], true
}

func (m *Model[T]) Cursor() int { return m.table.Cursor() }

func (m *Model[T]) SetCursor(i int) { m.table.SetCursor(i) }

func (m *Model[T]) SetStyles(s table.Styles) { m.table.SetStyles(s) }

// SetSize fits the table into width x height cells, header included.
func (m *Model[T]) SetSize(width, height int) {
	m.table.SetWidth(width)
	m.table.SetHeight(max(2, height))
}

func (m *Model[T]) Focus() { m.table.Focus() }
func (m *Model[T]) Blur()  { m.table.Blur() }

func (m *Model[T]) Update(msg tea.Msg) (*Model[T], tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model[T]) View() string { return m.table.View() }

func (m *Model[T]) refresh() {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(m.filter))
	m.visible = m.visible[:0:0]
	for _, r := range m.rows {
		if needle == "" || m.matches(r, needle, fold) {
			m.visible = append(m.visible, r)
		}
	}
	if m.sortCol >= 0 {
		value := m.columns[m.sortCol].Value
		slices.SortStableFunc(m.visible, func(a, b T) int {
			c := cmp.Compare(fold.String(value(a)), fold.String(value(b)))
			if m.desc {
				return -c
			}
			return c
		})
	}

	cols := make([]table.Column, len(m.columns))
	for i, c := range m.columns {
		title := c.Title
		if i == m.sortCol {
			if m.desc {
				title += " ▼"
			} else {
				title += " ▲"
			}
		}
		cols[i] = table.Column{Title: title, Width: c.Width}
	}
	rows := make([]table.Row, len(m.visible))
	for i, r := range m.visible {
		row := make(table.Row, len(m.columns))
		for j, c := range m.columns {
			row[j] = c.Value(r)
		}
		rows[i] = row
	}
	m.table.SetColumns(cols)
	m.table.SetRows(rows)
	switch cur := m.table.Cursor(); {
	case len(rows) == 0:
		m.table.SetCursor(0)
	case cur >= len(rows):
		m.table.SetCursor(len(rows) - 1)
	case cur < 0:
		m.table.SetCursor(0)
	}
}

func (m *Model[T]) matches(r T, needle string, fold cases.Caser) bool {
	for _, c := range m.columns {
		if strings.Contains(fold.String(c.Value(r)), needle) {
			return true
		}
	}
	return false
}
