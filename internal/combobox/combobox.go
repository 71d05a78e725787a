package combobox

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	defaultMaxVisible = 8
	defaultWidth      = 32

	emptyText = "No options found."
)

// Config seeds a new widget. The parent owns the selected value and is told
// about confirmed selections through OnValueChange.
type Config struct {
	Options           []Option
	Value             string
	HasValue          bool
	OnValueChange     func(value string)
	Placeholder       string
	SearchPlaceholder string
	Disabled          bool
	MaxVisible        int
	Width             int

	// Document is the shared event target. When nil the widget creates a
	// private one and routes its own Update calls through it.
	Document *Document
}

// Model is a searchable single-select. It is Closed until the trigger is
// activated, then Open with a filter input and a scrollable option panel.
type Model struct {
	options       []Option
	value         string
	hasValue      bool
	onValueChange func(string)
	placeholder   string
	disabled      bool
	focused       bool
	width         int

	open        bool
	filter      textinput.Model
	highlighted int
	win         window

	doc    *Document
	ownDoc bool
	sub    *Subscription

	originX, originY int

	Keys   KeyMap
	Styles Styles
}

func New(cfg Config) *Model {
	ti := textinput.New()
	ti.Placeholder = cfg.SearchPlaceholder
	ti.Prompt = "/ "
	width := cfg.Width
	if width <= 0 {
		width = defaultWidth
	}
	size := cfg.MaxVisible
	if size <= 0 {
		size = defaultMaxVisible
	}
	ti.Width = width - 3
	m := &Model{
		options:       cfg.Options,
		value:         cfg.Value,
		hasValue:      cfg.HasValue || cfg.Value != "",
		onValueChange: cfg.OnValueChange,
		placeholder:   cfg.Placeholder,
		disabled:      cfg.Disabled,
		width:         width,
		filter:        ti,
		highlighted:   -1,
		win:           window{size: size},
		doc:           cfg.Document,
		Keys:          DefaultKeyMap(),
		Styles:        DefaultStyles(),
	}
	if m.doc == nil {
		m.doc = NewDocument()
		m.ownDoc = true
	}
	return m
}

func (m *Model) IsOpen() bool          { return m.open }
func (m *Model) SearchText() string    { return m.filter.Value() }
func (m *Model) HighlightedIndex() int { return m.highlighted }
func (m *Model) Disabled() bool        { return m.disabled }
func (m *Model) Focused() bool         { return m.focused }
func (m *Model) Options() []Option     { return m.options }

// Filtered is derived from the options and the current filter text.
func (m *Model) Filtered() []Option {
	return Filter(m.options, m.filter.Value())
}

func (m *Model) CanScrollUp() bool {
	return m.open && m.win.canScrollUp()
}

func (m *Model) CanScrollDown() bool {
	return m.open && m.win.canScrollDown(len(m.Filtered()))
}

// Value returns the parent-provided value and whether one is set.
func (m *Model) Value() (string, bool) {
	return m.value, m.hasValue
}

// SelectedOption resolves the current value against the options. A stale
// value that matches nothing reports false.
func (m *Model) SelectedOption() (Option, bool) {
	if !m.hasValue {
		return Option{}, false
	}
	return Find(m.options, m.value)
}

func (m *Model) SetValue(value string) {
	m.value = value
	m.hasValue = true
}

func (m *Model) ClearValue() {
	m.value = ""
	m.hasValue = false
}

func (m *Model) SetOnValueChange(fn func(string)) {
	m.onValueChange = fn
}

// SetOptions replaces the option list. An open panel keeps its filter text
// but drops a highlight that no longer points at a row.
func (m *Model) SetOptions(options []Option) {
	m.options = options
	if !m.open {
		return
	}
	n := len(m.Filtered())
	if m.highlighted >= n {
		m.highlighted = -1
	}
	m.win.clamp(n)
}

// SetDisabled closes an open panel when disabling.
func (m *Model) SetDisabled(disabled bool) {
	m.disabled = disabled
	if disabled {
		m.Close()
	}
}

func (m *Model) Focus() { m.focused = true }

// Blur drops focus and closes the panel.
func (m *Model) Blur() {
	m.focused = false
	m.Close()
}

// SetOrigin records where the trigger is drawn on screen, for mouse hit
// testing.
func (m *Model) SetOrigin(x, y int) {
	m.originX, m.originY = x, y
}

func (m *Model) Width() int { return m.width }

// Height is the number of rendered lines.
func (m *Model) Height() int {
	lines, _ := m.panel()
	return 1 + len(lines)
}

// Contains reports whether the screen cell lies inside the rendered widget.
func (m *Model) Contains(x, y int) bool {
	return x >= m.originX && x < m.originX+m.width &&
		y >= m.originY && y < m.originY+m.Height()
}

// Open shows the panel with a fresh filter and no highlight.
func (m *Model) Open() tea.Cmd {
	if m.disabled || m.open {
		return nil
	}
	m.open = true
	m.focused = true
	m.filter.SetValue("")
	m.highlighted = -1
	m.win.offset = 0
	m.sub = m.doc.Subscribe(m.handleDocument)
	return m.filter.Focus()
}

// Close hides the panel and releases its document listeners. It never
// reports a value change.
func (m *Model) Close() {
	if !m.open {
		return
	}
	m.open = false
	m.filter.SetValue("")
	m.filter.Blur()
	m.highlighted = -1
	m.win.offset = 0
	m.sub.Release()
	m.sub = nil
}

// Toggle activates the trigger.
func (m *Model) Toggle() tea.Cmd {
	if m.open {
		m.Close()
		return nil
	}
	return m.Open()
}

// Unmount releases anything the widget still holds.
func (m *Model) Unmount() {
	m.Close()
	m.focused = false
}

// Update handles trigger activation while closed. While open, input arrives
// through the document subscription.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if m.open {
		if m.ownDoc {
			_, cmd := m.doc.Dispatch(msg)
			return m, cmd
		}
		return m, nil
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.focused && key.Matches(msg, m.Keys.Toggle) {
			return m, m.Open()
		}
	case tea.MouseMsg:
		if isPrimaryPress(msg) && m.onTrigger(msg.X, msg.Y) {
			return m, m.Open()
		}
	}
	return m, nil
}

func (m *Model) handleDocument(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return true, m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return false, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.Keys.Close):
		m.Close()
		return nil
	case key.Matches(msg, m.Keys.Down):
		m.move(1)
		return nil
	case key.Matches(msg, m.Keys.Up):
		m.move(-1)
		return nil
	case key.Matches(msg, m.Keys.Select):
		filtered := m.Filtered()
		if m.highlighted < 0 || m.highlighted >= len(filtered) {
			return nil
		}
		m.choose(filtered[m.highlighted])
		return nil
	}
	before := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != before {
		m.highlighted = -1
		m.win.clamp(len(m.Filtered()))
	}
	return cmd
}

func (m *Model) handleMouse(msg tea.MouseMsg) (bool, tea.Cmd) {
	inside := m.Contains(msg.X, msg.Y)
	if !inside {
		if msg.Action == tea.MouseActionPress && !tea.MouseEvent(msg).IsWheel() {
			m.Close()
		}
		return false, nil
	}
	if tea.MouseEvent(msg).IsWheel() {
		if msg.Action == tea.MouseActionPress {
			m.scroll(msg.Button)
		}
		return true, nil
	}
	if !isPrimaryPress(msg) {
		return true, nil
	}
	if m.onTrigger(msg.X, msg.Y) {
		m.Close()
		return true, nil
	}
	_, targets := m.panel()
	row := msg.Y - m.originY - 1
	if row >= 0 && row < len(targets) && targets[row] >= 0 {
		filtered := m.Filtered()
		if idx := targets[row]; idx < len(filtered) {
			m.choose(filtered[idx])
		}
	}
	return true, nil
}

func (m *Model) scroll(button tea.MouseButton) {
	total := len(m.Filtered())
	switch button {
	case tea.MouseButtonWheelUp:
		m.win.offset--
	case tea.MouseButtonWheelDown:
		m.win.offset++
	}
	m.win.clamp(total)
}

func (m *Model) choose(opt Option) {
	m.Close()
	if m.onValueChange != nil {
		m.onValueChange(opt.Value)
	}
}

// move steps the highlight with wrap-around. With nothing highlighted, down
// starts at the first row and up at the last.
func (m *Model) move(delta int) {
	n := len(m.Filtered())
	if n == 0 {
		m.highlighted = -1
		return
	}
	switch {
	case m.highlighted < 0 && delta > 0:
		m.highlighted = 0
	case m.highlighted < 0:
		m.highlighted = n - 1
	default:
		m.highlighted = ((m.highlighted+delta)%n + n) % n
	}
	m.win.reveal(m.highlighted)
}

func (m *Model) onTrigger(x, y int) bool {
	return y == m.originY && x >= m.originX && x < m.originX+m.width
}

func isPrimaryPress(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft
}

// View renders the trigger and, when open, the panel beneath it.
func (m *Model) View() string {
	lines, _ := m.panel()
	return strings.Join(append([]string{m.triggerView()}, lines...), "\n")
}

func (m *Model) triggerView() string {
	arrow := "▾"
	if m.open {
		arrow = "▴"
	}
	inner := m.width - 2
	label := m.placeholder
	style := m.Styles.Placeholder
	if opt, ok := m.SelectedOption(); ok {
		label = opt.Label
		style = m.Styles.Selected
	}
	text := style.Render(fit(label, inner)) + " " + arrow
	switch {
	case m.disabled:
		return m.Styles.TriggerDisabled.Render(text)
	case m.focused:
		return m.Styles.TriggerFocused.Render(text)
	default:
		return m.Styles.Trigger.Render(text)
	}
}

// panel lays out the open panel. targets maps each line to a filtered
// option index, or -1 for lines that are not options.
func (m *Model) panel() (lines []string, targets []int) {
	if !m.open {
		return nil, nil
	}
	add := func(line string, target int) {
		lines = append(lines, m.Styles.Panel.Render(fit(line, m.width)))
		targets = append(targets, target)
	}
	add(m.filter.View(), -1)

	filtered := m.Filtered()
	if len(filtered) == 0 {
		add(m.Styles.Empty.Render(emptyText), -1)
		if q := m.filter.Value(); q != "" {
			if label, ok := Suggest(m.options, q); ok {
				add(m.Styles.Empty.Render(`Did you mean "`+label+`"?`), -1)
			}
		}
		return lines, targets
	}

	up := ""
	if m.win.canScrollUp() {
		up = m.Styles.Indicator.Render("▲ more")
	}
	add(up, -1)
	start, end := m.win.bounds(len(filtered))
	selected, hasSelected := m.SelectedOption()
	for i := start; i < end; i++ {
		opt := filtered[i]
		marker := "  "
		if hasSelected && opt.Value == selected.Value {
			marker = "✓ "
		}
		row := marker + fit(opt.Label, m.width-2)
		switch {
		case i == m.highlighted:
			row = m.Styles.Highlighted.Render(row)
		case hasSelected && opt.Value == selected.Value:
			row = m.Styles.Selected.Render(row)
		default:
			row = m.Styles.Option.Render(row)
		}
		add(row, i)
	}
	down := ""
	if m.win.canScrollDown(len(filtered)) {
		down = m.Styles.Indicator.Render("▼ more")
	}
	add(down, -1)
	return lines, targets
}

// fit truncates or pads s to exactly width cells.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) > width {
		s = ansi.Truncate(s, width, "…")
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}
