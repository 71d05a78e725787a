package form

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/sage/internal/combobox"
)

func roleOptions() []combobox.Option {
	return []combobox.Option{
		{Value: "admin", Label: "Admin"},
		{Value: "staff", Label: "Staff"},
		{Value: "member", Label: "Member"},
	}
}

func newUserForm(doc *combobox.Document) *Form {
	return New(
		Text("name", "Name", "Full name"),
		Select("role", "Role", combobox.Config{Options: roleOptions(), Placeholder: "Pick a role", Document: doc}),
	)
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestDirtyTracksSnapshot(t *testing.T) {
	f := newUserForm(combobox.NewDocument())
	f.Reset(map[string]string{"name": "Ada", "role": "admin"})
	if f.Dirty() {
		t.Fatal("freshly loaded form should be clean")
	}
	f.Update(runes("x"))
	if got := f.Values()["name"]; got != "Adax" {
		t.Fatalf("name = %q, want Adax", got)
	}
	if !f.Dirty() {
		t.Fatal("typing should make the form dirty")
	}
	f.MarkClean()
	if f.Dirty() {
		t.Fatal("MarkClean should reset dirty state")
	}
}

func TestTabCyclesFocus(t *testing.T) {
	f := newUserForm(combobox.NewDocument())
	if f.Focused().Key != "name" {
		t.Fatalf("initial focus = %s", f.Focused().Key)
	}
	f.Update(tea.KeyMsg{Type: tea.KeyTab})
	if f.Focused().Key != "role" {
		t.Fatalf("after tab = %s", f.Focused().Key)
	}
	f.Update(tea.KeyMsg{Type: tea.KeyTab})
	if f.Focused().Key != "name" {
		t.Fatalf("tab should wrap, got %s", f.Focused().Key)
	}
	f.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if f.Focused().Key != "role" {
		t.Fatalf("shift+tab should wrap back, got %s", f.Focused().Key)
	}
}

func TestSelectFieldThroughDocument(t *testing.T) {
	doc := combobox.NewDocument()
	var changed []string
	f := New(
		Text("name", "Name", ""),
		Select("role", "Role", combobox.Config{
			Options:       roleOptions(),
			Document:      doc,
			OnValueChange: func(v string) { changed = append(changed, v) },
		}),
	)
	f.FocusNext()
	f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	combo := f.Field("role").Combobox()
	if !combo.IsOpen() || doc.Len() != 1 {
		t.Fatalf("enter should open the combobox (open=%v listeners=%d)", combo.IsOpen(), doc.Len())
	}

	doc.Dispatch(runes("st"))
	doc.Dispatch(tea.KeyMsg{Type: tea.KeyDown})
	consumed, _ := doc.Dispatch(tea.KeyMsg{Type: tea.KeyEnter})
	if !consumed {
		t.Fatal("enter while open should be consumed by the document")
	}
	if combo.IsOpen() {
		t.Fatal("selection should close the panel")
	}
	if got := f.Values()["role"]; got != "staff" {
		t.Fatalf("role = %q, want staff", got)
	}
	if len(changed) != 1 || changed[0] != "staff" {
		t.Fatalf("OnValueChange calls = %v", changed)
	}
	if !f.Dirty() {
		t.Fatal("choosing a role should dirty the form")
	}
}

func TestFocusMoveClosesCombobox(t *testing.T) {
	doc := combobox.NewDocument()
	f := newUserForm(doc)
	f.FocusIndex(1)
	combo := f.Field("role").Combobox()
	combo.Open()
	f.FocusIndex(0)
	if combo.IsOpen() {
		t.Fatal("moving focus should close the panel")
	}
	if doc.Len() != 0 {
		t.Fatalf("listeners = %d, want 0", doc.Len())
	}
}

func TestSetErrorsFocusesFirstErrorAndRenders(t *testing.T) {
	f := newUserForm(combobox.NewDocument())
	f.SetErrors(map[string]string{"role": "is required"})
	if f.Focused().Key != "role" {
		t.Fatalf("focus = %s, want role", f.Focused().Key)
	}
	view := f.View()
	if !strings.Contains(view, "is required") {
		t.Fatalf("view missing error:\n%s", view)
	}
	f.Reset(nil)
	if len(f.Errors()) != 0 {
		t.Fatal("Reset should clear errors")
	}
}

func TestMousePressOnSelectRowFocusesAndOpens(t *testing.T) {
	f := newUserForm(combobox.NewDocument())
	f.SetOrigin(2, 5)
	// label column is 4 wide plus a space, role sits on the second row
	f.Update(tea.MouseMsg{X: 10, Y: 6, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if f.Focused().Key != "role" {
		t.Fatalf("focus = %s, want role", f.Focused().Key)
	}
	if !f.Field("role").Combobox().IsOpen() {
		t.Fatal("press on the trigger should open the panel")
	}
}

func TestSelectEmptyValue(t *testing.T) {
	opts := append([]combobox.Option{{Value: "", Label: "(none)"}}, roleOptions()...)
	withNone := Select("loc", "Location", combobox.Config{Options: opts})
	withNone.SetValue("")
	if _, ok := withNone.Combobox().Value(); !ok {
		t.Fatal("empty value should be set when an option carries it")
	}
	plain := Select("role", "Role", combobox.Config{Options: roleOptions()})
	plain.SetValue("admin")
	plain.SetValue("")
	if _, ok := plain.Combobox().Value(); ok {
		t.Fatal("empty value should clear a select without an empty option")
	}
}
