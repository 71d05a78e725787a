package tui

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	scopeModal  = "modal"
	scopeFilter = "filter"
	scopeForm   = "form"
)

const (
	actionQuit        = "quit"
	actionNextTab     = "next-tab"
	actionPrevTab     = "prev-tab"
	actionJumpTab     = "jump-tab"
	actionNew         = "new"
	actionEdit        = "edit"
	actionDelete      = "delete"
	actionFilter      = "filter"
	actionSort        = "sort"
	actionMarkRead    = "mark-read"
	actionMarkAllRead = "mark-all-read"
	actionSave        = "save"
	actionCancel      = "cancel"
	actionConfirm     = "confirm"
	actionApply       = "apply"
	actionNextField   = "next-field"
)

// KeyBinding maps keys to an action within a set of scopes. Help overrides
// the key shown in the footer.
type KeyBinding struct {
	Keys        []string
	Help        string
	Action      string
	Description string
	Scopes      []string
}

type KeyRegistry struct {
	bindings []KeyBinding
}

func NewKeyRegistry(bindings []KeyBinding) *KeyRegistry {
	return &KeyRegistry{bindings: slices.Clone(bindings)}
}

func (r *KeyRegistry) BindingsForScope(scope string) []KeyBinding {
	out := make([]KeyBinding, 0, len(r.bindings))
	for _, b := range r.bindings {
		if scopeMatch(scope, b.Scopes) {
			out = append(out, b)
		}
	}
	return out
}

func (r *KeyRegistry) IsAction(msg tea.KeyMsg, action, scope string) bool {
	pressed := normalizeKey(msg.String())
	for _, b := range r.bindings {
		if b.Action != action || !scopeMatch(scope, b.Scopes) {
			continue
		}
		for _, k := range b.Keys {
			if normalizeKey(k) == pressed {
				return true
			}
		}
	}
	return false
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}

// scopeMatch treats "*" as every scope and "tab:*" as every tab scope.
func scopeMatch(scope string, scopes []string) bool {
	if len(scopes) == 0 {
		return true
	}
	for _, s := range scopes {
		switch {
		case s == "*" || s == scope:
			return true
		case s == "tab:*" && strings.HasPrefix(scope, "tab:"):
			return true
		}
	}
	return false
}

func DefaultKeyBindings() []KeyBinding {
	tables := []string{"tab:users", "tab:locations", "tab:permissions", "tab:notifications"}
	return []KeyBinding{
		{Keys: []string{"q"}, Action: actionQuit, Description: "quit", Scopes: []string{"tab:*"}},
		{Keys: []string{"tab"}, Action: actionNextTab, Description: "next tab", Scopes: []string{"tab:*"}},
		{Keys: []string{"shift+tab"}, Action: actionPrevTab, Description: "prev tab", Scopes: []string{"tab:*"}},
		{Keys: []string{"1", "2", "3", "4", "5"}, Help: "1-5", Action: actionJumpTab, Description: "jump", Scopes: []string{"tab:*"}},
		{Keys: []string{"n"}, Action: actionNew, Description: "new", Scopes: []string{"tab:users", "tab:locations"}},
		{Keys: []string{"n"}, Action: actionNew, Description: "grant", Scopes: []string{"tab:permissions"}},
		{Keys: []string{"enter"}, Action: actionEdit, Description: "edit", Scopes: []string{"tab:users", "tab:locations"}},
		{Keys: []string{"x"}, Action: actionDelete, Description: "delete", Scopes: []string{"tab:users", "tab:locations"}},
		{Keys: []string{"x"}, Action: actionDelete, Description: "revoke", Scopes: []string{"tab:permissions"}},
		{Keys: []string{"m"}, Action: actionMarkRead, Description: "mark read", Scopes: []string{"tab:notifications"}},
		{Keys: []string{"a"}, Action: actionMarkAllRead, Description: "mark all read", Scopes: []string{"tab:notifications"}},
		{Keys: []string{"/"}, Action: actionFilter, Description: "filter", Scopes: tables},
		{Keys: []string{"s"}, Action: actionSort, Description: "sort", Scopes: tables},
		{Keys: []string{"enter", " "}, Action: actionApply, Description: "change theme", Scopes: []string{"tab:settings"}},
		{Keys: []string{"ctrl+s"}, Action: actionSave, Description: "save", Scopes: []string{scopeForm}},
		{Keys: []string{"tab", "shift+tab"}, Help: "tab", Action: actionNextField, Description: "field", Scopes: []string{scopeForm}},
		{Keys: []string{"esc"}, Action: actionCancel, Description: "cancel", Scopes: []string{scopeForm, scopeModal}},
		{Keys: []string{"y", "enter"}, Action: actionConfirm, Description: "confirm", Scopes: []string{scopeModal}},
		{Keys: []string{"n"}, Action: actionCancel, Description: "keep", Scopes: []string{scopeModal}},
		{Keys: []string{"enter"}, Action: actionConfirm, Description: "apply filter", Scopes: []string{scopeFilter}},
		{Keys: []string{"esc"}, Action: actionCancel, Description: "clear filter", Scopes: []string{scopeFilter}},
	}
}
