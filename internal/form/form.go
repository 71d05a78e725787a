package form

import (
	"maps"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/sage/internal/combobox"
)

// Field is one labelled row: a text input or a combobox.
type Field struct {
	Key   string
	Label string

	input *textinput.Model
	combo *combobox.Model
	row   int
}

// Text builds a free-text field.
func Text(key, label, placeholder string) *Field {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.Width = 32
	return &Field{Key: key, Label: label, input: &ti}
}

// Select builds a combobox field. The form owns the value: a confirmed
// option is written back into the widget and then passed to cfg's
// OnValueChange, if any.
func Select(key, label string, cfg combobox.Config) *Field {
	f := &Field{Key: key, Label: label}
	notify := cfg.OnValueChange
	cfg.OnValueChange = func(v string) {
		f.combo.SetValue(v)
		if notify != nil {
			notify(v)
		}
	}
	f.combo = combobox.New(cfg)
	return f
}

// Combobox returns the widget behind a select field, or nil.
func (f *Field) Combobox() *combobox.Model { return f.combo }

func (f *Field) Value() string {
	if f.combo != nil {
		v, _ := f.combo.Value()
		return v
	}
	return f.input.Value()
}

// SetValue loads v. An empty value clears a select unless one of its
// options carries the empty value.
func (f *Field) SetValue(v string) {
	if f.combo == nil {
		f.input.SetValue(v)
		return
	}
	if _, ok := combobox.Find(f.combo.Options(), v); v == "" && !ok {
		f.combo.ClearValue()
		return
	}
	f.combo.SetValue(v)
}

func (f *Field) focus() tea.Cmd {
	if f.combo != nil {
		f.combo.Focus()
		return nil
	}
	return f.input.Focus()
}

func (f *Field) blur() {
	if f.combo != nil {
		f.combo.Blur()
		return
	}
	f.input.Blur()
}

// Styles for labels and messages.
type Styles struct {
	Label        lipgloss.Style
	FocusedLabel lipgloss.Style
	Error        lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Label:        lipgloss.NewStyle().Faint(true),
		FocusedLabel: lipgloss.NewStyle().Bold(true),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// Form is an ordered set of fields with one focused at a time. It keeps a
// snapshot of the loaded values so callers can ask whether anything changed.
type Form struct {
	fields   []*Field
	focus    int
	errors   map[string]string
	snapshot map[string]string

	originX, originY int

	Next   key.Binding
	Prev   key.Binding
	Styles Styles
}

func New(fields ...*Field) *Form {
	f := &Form{
		fields: fields,
		Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Styles: DefaultStyles(),
	}
	f.MarkClean()
	if len(fields) > 0 {
		fields[0].focus()
	}
	return f
}

func (f *Form) Fields() []*Field { return f.fields }

// Field looks a field up by key.
func (f *Form) Field(key string) *Field {
	for _, fd := range f.fields {
		if fd.Key == key {
			return fd
		}
	}
	return nil
}

// Focused returns the field with focus, or nil for an empty form.
func (f *Form) Focused() *Field {
	if len(f.fields) == 0 {
		return nil
	}
	return f.fields[f.focus]
}

// FocusIndex moves focus to field i, closing any open combobox on the
// field that loses it.
func (f *Form) FocusIndex(i int) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	i = ((i % len(f.fields)) + len(f.fields)) % len(f.fields)
	f.fields[f.focus].blur()
	f.focus = i
	return f.fields[i].focus()
}

func (f *Form) FocusNext() tea.Cmd { return f.FocusIndex(f.focus + 1) }
func (f *Form) FocusPrev() tea.Cmd { return f.FocusIndex(f.focus - 1) }

// Values returns the current value of every field by key.
func (f *Form) Values() map[string]string {
	out := make(map[string]string, len(f.fields))
	for _, fd := range f.fields {
		out[fd.Key] = fd.Value()
	}
	return out
}

// Reset loads values, clears errors and takes a fresh snapshot. Keys not
// present are emptied.
func (f *Form) Reset(values map[string]string) {
	for _, fd := range f.fields {
		fd.SetValue(values[fd.Key])
	}
	f.errors = nil
	f.MarkClean()
}

// MarkClean snapshots the current values, typically after a save.
func (f *Form) MarkClean() {
	f.snapshot = f.Values()
}

// Dirty reports whether any value differs from the snapshot.
func (f *Form) Dirty() bool {
	return !maps.Equal(f.snapshot, f.Values())
}

// SetErrors replaces the per-field messages. Focus jumps to the first
// field with an error.
func (f *Form) SetErrors(errs map[string]string) tea.Cmd {
	f.errors = errs
	for i, fd := range f.fields {
		if _, ok := errs[fd.Key]; ok {
			return f.FocusIndex(i)
		}
	}
	return nil
}

func (f *Form) Errors() map[string]string { return f.errors }

// Unmount releases every combobox.
func (f *Form) Unmount() {
	for _, fd := range f.fields {
		if fd.combo != nil {
			fd.combo.Unmount()
		}
	}
}

// SetOrigin records where the form is drawn, for mouse hit testing.
func (f *Form) SetOrigin(x, y int) {
	f.originX, f.originY = x, y
	f.layout()
}

func (f *Form) labelWidth() int {
	w := 0
	for _, fd := range f.fields {
		w = max(w, lipgloss.Width(fd.Label))
	}
	return w
}

// layout assigns each field its row and places the comboboxes. Rows shift
// when a panel above is open or an error line is shown.
func (f *Form) layout() {
	x := f.originX + f.labelWidth() + 1
	row := 0
	for _, fd := range f.fields {
		fd.row = row
		height := 1
		if fd.combo != nil {
			fd.combo.SetOrigin(x, f.originY+row)
			height = fd.combo.Height()
		}
		row += height
		if f.errors[fd.Key] != "" {
			row++
		}
	}
}

// Update routes keys to the focused field and mouse presses to whichever
// field was hit. Input for an open combobox arrives through its document,
// not here.
func (f *Form) Update(msg tea.Msg) (*Form, tea.Cmd) {
	fd := f.Focused()
	if fd == nil {
		return f, nil
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, f.Next):
			return f, f.FocusNext()
		case key.Matches(msg, f.Prev):
			return f, f.FocusPrev()
		}
		if fd.combo != nil {
			_, cmd := fd.combo.Update(msg)
			return f, cmd
		}
		ti, cmd := fd.input.Update(msg)
		*fd.input = ti
		return f, cmd
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return f, nil
		}
		f.layout()
		for i, other := range f.fields {
			if msg.Y != f.originY+other.row || msg.X < f.originX {
				continue
			}
			cmd := f.FocusIndex(i)
			if other.combo != nil {
				_, open := other.combo.Update(msg)
				cmd = tea.Batch(cmd, open)
			}
			return f, cmd
		}
	}
	return f, nil
}

func (f *Form) View() string {
	f.layout()
	lw := f.labelWidth()
	indent := strings.Repeat(" ", lw+1)
	var lines []string
	for i, fd := range f.fields {
		style := f.Styles.Label
		if i == f.focus {
			style = f.Styles.FocusedLabel
		}
		label := style.Render(lipgloss.NewStyle().Width(lw).Render(fd.Label))
		var control []string
		if fd.combo != nil {
			control = strings.Split(fd.combo.View(), "\n")
		} else {
			control = []string{fd.input.View()}
		}
		lines = append(lines, label+" "+control[0])
		for _, l := range control[1:] {
			lines = append(lines, indent+l)
		}
		if msg := f.errors[fd.Key]; msg != "" {
			lines = append(lines, indent+f.Styles.Error.Render(msg))
		}
	}
	return strings.Join(lines, "\n")
}
