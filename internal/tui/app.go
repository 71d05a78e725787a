package tui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/sage/internal/combobox"
	"github.com/jask/sage/internal/config"
	"github.com/jask/sage/internal/database/repository"
	"github.com/jask/sage/internal/datatable"
	"github.com/jask/sage/internal/form"
	"github.com/jask/sage/internal/logging"
	"github.com/jask/sage/internal/service"
	"github.com/jask/sage/internal/theme"
)

// App is the admin console: one tab per entity plus settings.
type App struct {
	ctx      context.Context
	repos    Repos
	services Services
	cfg      config.Config
	logger   *slog.Logger
	keys     *KeyRegistry

	// doc receives every key and mouse event before the tabs do, so an
	// open combobox sees input first.
	doc *combobox.Document

	themes  *theme.Store
	hasDark func() bool
	mode    theme.Mode
	styles  theme.Styles

	width, height int
	tab           tab

	status      string
	statusLevel slog.Level

	filtering   bool
	filterInput textinput.Model

	users         []repository.User
	locations     []repository.Location
	permissions   []repository.Permission
	assignments   []repository.Assignment
	notifications []repository.Notification
	unread        int
	userName      map[string]string

	userTable   *datatable.Model[repository.User]
	locTable    *datatable.Model[repository.Location]
	assignTable *datatable.Model[repository.Assignment]
	noteTable   *datatable.Model[repository.Notification]

	editor    *form.Form
	editKind  editKind
	editingID string

	settings     *form.Form
	pendingTheme *theme.Mode

	modal   modalState
	confirm confirmation
}

type Repos struct {
	Users         *repository.UserRepo
	Locations     *repository.LocationRepo
	Permissions   *repository.PermissionRepo
	Notifications *repository.NotificationRepo
}

type Services struct {
	Users         *service.UserService
	Locations     *service.LocationService
	Permissions   *service.PermissionService
	Notifications *service.NotificationService
}

// Options carries the optional collaborators. Zero values fall back to
// defaults: no theme persistence, termenv background detection and the
// default slog logger.
type Options struct {
	Themes  *theme.Store
	HasDark func() bool
	Logger  *slog.Logger
}

type tab int

const (
	tabUsers tab = iota
	tabLocations
	tabPermissions
	tabNotifications
	tabSettings
	tabCount
)

var tabNames = [tabCount]string{"Users", "Locations", "Permissions", "Notifications", "Settings"}

func (t tab) scope() string {
	switch t {
	case tabUsers:
		return "tab:users"
	case tabLocations:
		return "tab:locations"
	case tabPermissions:
		return "tab:permissions"
	case tabNotifications:
		return "tab:notifications"
	default:
		return "tab:settings"
	}
}

type editKind string

const (
	editNone     editKind = ""
	editUser     editKind = "user"
	editLocation editKind = "location"
	editGrant    editKind = "grant"
)

type modalState string

const (
	modalNone    modalState = ""
	modalConfirm modalState = "confirm"
)

// confirmation is a pending yes/no question and what "yes" does.
type confirmation struct {
	prompt string
	onYes  func() tea.Cmd
}

// Layout rows: header, blank, body..., status bar, footer.
const (
	bodyTop    = 2
	bodyIndent = 2
	chromeRows = 4
)

func New(ctx context.Context, cfg config.Config, repos Repos, services Services, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	fi := textinput.New()
	fi.Prompt = "/ "
	fi.Placeholder = "filter"

	a := &App{
		ctx:         ctx,
		repos:       repos,
		services:    services,
		cfg:         cfg,
		logger:      logger,
		keys:        NewKeyRegistry(DefaultKeyBindings()),
		doc:         combobox.NewDocument(),
		themes:      opts.Themes,
		hasDark:     opts.HasDark,
		mode:        theme.System,
		width:       100,
		height:      32,
		status:      "Ready",
		filterInput: fi,
		userName:    map[string]string{},
	}
	if a.themes != nil {
		a.mode = a.themes.Load()
	} else if m, ok := theme.ParseMode(cfg.UI.Theme); ok {
		a.mode = m
	}
	a.userTable = datatable.New(a.userColumns())
	a.locTable = datatable.New(a.locationColumns())
	a.assignTable = datatable.New(a.assignmentColumns())
	a.noteTable = datatable.New(a.notificationColumns())
	a.settings = a.newSettingsForm()
	a.applyTheme()
	a.resize()
	return a
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.loadUsers(),
		a.loadLocations(),
		a.loadPermissions(),
		a.loadAssignments(),
		a.loadNotifications(),
	)
}

// loaders

func (a *App) loadUsers() tea.Cmd {
	return func() tea.Msg {
		list, err := a.repos.Users.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return usersMsg(list)
	}
}

func (a *App) loadLocations() tea.Cmd {
	return func() tea.Msg {
		list, err := a.repos.Locations.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return locationsMsg(list)
	}
}

func (a *App) loadPermissions() tea.Cmd {
	return func() tea.Msg {
		list, err := a.repos.Permissions.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return permissionsMsg(list)
	}
}

func (a *App) loadAssignments() tea.Cmd {
	return func() tea.Msg {
		list, err := a.repos.Permissions.ListAssignments(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return assignmentsMsg(list)
	}
}

func (a *App) loadNotifications() tea.Cmd {
	return func() tea.Msg {
		list, err := a.services.Notifications.List(a.ctx, false)
		if err != nil {
			return errMsg{err}
		}
		unread, err := a.services.Notifications.UnreadCount(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return notificationsMsg{list: list, unread: unread}
	}
}

// messages

type usersMsg []repository.User

type locationsMsg []repository.Location

type permissionsMsg []repository.Permission

type assignmentsMsg []repository.Assignment

type notificationsMsg struct {
	list   []repository.Notification
	unread int
}

type statusMsg string

type errMsg struct{ error }

// formErrMsg carries validation failures back to the open editor.
type formErrMsg struct{ fields map[string]string }

// savedMsg closes the editor after a successful write.
type savedMsg struct {
	status   string
	warnings []string
	reload   []tea.Cmd
}

// doneMsg reports a finished write and the loaders to rerun.
type doneMsg struct {
	status string
	reload []tea.Cmd
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.resize()
		return a, nil
	case tea.KeyMsg:
		if m.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.dispatch(m)
	case tea.MouseMsg:
		return a.dispatch(m)
	case logging.StatusRecordMsg:
		a.status, a.statusLevel = m.Summary, m.Level
	case usersMsg:
		a.users = []repository.User(m)
		a.userName = make(map[string]string, len(a.users))
		for _, u := range a.users {
			a.userName[u.ID] = u.Name
		}
		a.userTable.SetRows(a.users)
		a.noteTable.SetRows(a.notifications)
		a.refreshOptions()
	case locationsMsg:
		a.locations = []repository.Location(m)
		a.locTable.SetRows(a.locations)
		a.userTable.SetRows(a.users)
		a.refreshOptions()
	case permissionsMsg:
		a.permissions = []repository.Permission(m)
		a.refreshOptions()
	case assignmentsMsg:
		a.assignments = []repository.Assignment(m)
		a.assignTable.SetRows(a.assignments)
	case notificationsMsg:
		a.notifications, a.unread = m.list, m.unread
		a.noteTable.SetRows(a.notifications)
	case statusMsg:
		a.setStatus(string(m), slog.LevelInfo)
	case errMsg:
		a.logger.Error("operation failed", "err", m.error)
		a.setStatus("error: "+m.Error(), slog.LevelError)
	case formErrMsg:
		if a.editor != nil {
			return a, a.editor.SetErrors(m.fields)
		}
	case doneMsg:
		a.setStatus(m.status, slog.LevelInfo)
		return a, tea.Batch(m.reload...)
	case savedMsg:
		a.closeEditor()
		level := slog.LevelInfo
		status := m.status
		if len(m.warnings) > 0 {
			level = slog.LevelWarn
			status += "; " + m.warnings[0]
		}
		a.setStatus(status, level)
		return a, tea.Batch(m.reload...)
	}
	return a, nil
}

// dispatch offers input to the document first. Whatever it does not
// consume continues to the modal, the editor or the active tab.
func (a *App) dispatch(msg tea.Msg) (tea.Model, tea.Cmd) {
	consumed, cmd := a.doc.Dispatch(msg)
	cmd = tea.Batch(cmd, a.flushTheme())
	if consumed {
		return a, cmd
	}
	var next tea.Cmd
	switch m := msg.(type) {
	case tea.KeyMsg:
		next = a.handleKey(m)
	case tea.MouseMsg:
		next = a.handleMouse(m)
	}
	return a, tea.Batch(cmd, next)
}

func (a *App) handleKey(m tea.KeyMsg) tea.Cmd {
	scope := a.scope()
	switch {
	case a.modal != modalNone:
		return a.handleModalKey(m, scope)
	case a.filtering:
		return a.handleFilterKey(m, scope)
	case a.editor != nil:
		return a.handleEditorKey(m, scope)
	}

	switch {
	case a.keys.IsAction(m, actionQuit, scope):
		return tea.Quit
	case a.keys.IsAction(m, actionNextTab, scope):
		return a.switchTab((a.tab + 1) % tabCount)
	case a.keys.IsAction(m, actionPrevTab, scope):
		return a.switchTab((a.tab + tabCount - 1) % tabCount)
	case a.keys.IsAction(m, actionJumpTab, scope):
		return a.switchTab(tab(m.Runes[0] - '1'))
	case a.keys.IsAction(m, actionFilter, scope):
		a.startFilter()
		return a.filterInput.Focus()
	case a.keys.IsAction(m, actionSort, scope):
		a.cycleSort()
		return nil
	}

	switch a.tab {
	case tabUsers:
		return a.handleUsersKey(m, scope)
	case tabLocations:
		return a.handleLocationsKey(m, scope)
	case tabPermissions:
		return a.handlePermissionsKey(m, scope)
	case tabNotifications:
		return a.handleNotificationsKey(m, scope)
	default:
		return a.handleSettingsKey(m, scope)
	}
}

func (a *App) handleModalKey(m tea.KeyMsg, scope string) tea.Cmd {
	switch {
	case a.keys.IsAction(m, actionConfirm, scope):
		onYes := a.confirm.onYes
		a.modal, a.confirm = modalNone, confirmation{}
		if onYes != nil {
			return onYes()
		}
	case a.keys.IsAction(m, actionCancel, scope):
		a.modal, a.confirm = modalNone, confirmation{}
	}
	return nil
}

func (a *App) handleEditorKey(m tea.KeyMsg, scope string) tea.Cmd {
	switch {
	case a.keys.IsAction(m, actionSave, scope):
		return a.saveEditor()
	case a.keys.IsAction(m, actionCancel, scope):
		a.leaveEditor(nil)
		return nil
	}
	_, cmd := a.editor.Update(m)
	return cmd
}

// leaveEditor closes the editor, asking first when it holds unsaved
// changes. then runs after the editor is gone.
func (a *App) leaveEditor(then func() tea.Cmd) tea.Cmd {
	leave := func() tea.Cmd {
		a.closeEditor()
		if then != nil {
			return then()
		}
		return nil
	}
	if a.editor == nil || !a.editor.Dirty() {
		return leave()
	}
	a.ask("Discard unsaved changes?", leave)
	return nil
}

func (a *App) ask(prompt string, onYes func() tea.Cmd) {
	a.modal = modalConfirm
	a.confirm = confirmation{prompt: prompt, onYes: onYes}
}

func (a *App) openEditor(kind editKind, id string, f *form.Form) tea.Cmd {
	a.closeEditor()
	a.editKind, a.editingID, a.editor = kind, id, f
	a.editor.Styles = form.Styles{
		Label:        a.styles.Label,
		FocusedLabel: a.styles.FocusedLabel,
		Error:        a.styles.FieldError,
	}
	a.styleCombos(f)
	a.editor.SetOrigin(bodyIndent, bodyTop+2)
	return a.editor.FocusIndex(0)
}

func (a *App) closeEditor() {
	if a.editor != nil {
		a.editor.Unmount()
	}
	a.editor, a.editKind, a.editingID = nil, editNone, ""
}

func (a *App) saveEditor() tea.Cmd {
	values := a.editor.Values()
	switch a.editKind {
	case editUser:
		return a.saveUserCmd(a.editingID, values)
	case editLocation:
		return a.saveLocationCmd(a.editingID, values)
	case editGrant:
		return a.grantCmd(values)
	}
	return nil
}

func (a *App) switchTab(t tab) tea.Cmd {
	if t < 0 || t >= tabCount {
		return nil
	}
	if a.tab == tabSettings {
		a.settings.Unmount()
	}
	a.tab = t
	a.filtering = false
	a.filterInput.Blur()
	if t == tabSettings {
		return a.settings.FocusIndex(0)
	}
	return nil
}

// table filter

func (a *App) activeFilterable() interface {
	SetFilter(string)
	Filter() string
	CycleSort()
} {
	switch a.tab {
	case tabUsers:
		return a.userTable
	case tabLocations:
		return a.locTable
	case tabPermissions:
		return a.assignTable
	case tabNotifications:
		return a.noteTable
	}
	return nil
}

func (a *App) startFilter() {
	t := a.activeFilterable()
	if t == nil {
		return
	}
	a.filtering = true
	a.filterInput.SetValue(t.Filter())
	a.filterInput.CursorEnd()
}

func (a *App) handleFilterKey(m tea.KeyMsg, scope string) tea.Cmd {
	t := a.activeFilterable()
	switch {
	case t == nil:
		a.filtering = false
		return nil
	case a.keys.IsAction(m, actionConfirm, scope):
		a.filtering = false
		a.filterInput.Blur()
		return nil
	case a.keys.IsAction(m, actionCancel, scope):
		a.filtering = false
		a.filterInput.Blur()
		a.filterInput.SetValue("")
		t.SetFilter("")
		return nil
	}
	var cmd tea.Cmd
	a.filterInput, cmd = a.filterInput.Update(m)
	t.SetFilter(a.filterInput.Value())
	return cmd
}

func (a *App) cycleSort() {
	if t := a.activeFilterable(); t != nil {
		t.CycleSort()
	}
}

func (a *App) scope() string {
	switch {
	case a.modal != modalNone:
		return scopeModal
	case a.filtering:
		return scopeFilter
	case a.editor != nil:
		return scopeForm
	}
	return a.tab.scope()
}

func (a *App) setStatus(text string, level slog.Level) {
	a.status, a.statusLevel = text, level
}

// handleMouse switches tabs from the header and hands presses in the body
// to the editor or settings form.
func (a *App) handleMouse(m tea.MouseMsg) tea.Cmd {
	if a.modal != modalNone {
		return nil
	}
	if m.Action == tea.MouseActionPress && m.Button == tea.MouseButtonLeft && m.Y == 0 {
		if t, ok := a.tabAt(m.X); ok && t != a.tab {
			return a.leaveEditor(func() tea.Cmd { return a.switchTab(t) })
		}
		return nil
	}
	switch {
	case a.editor != nil:
		_, cmd := a.editor.Update(m)
		return cmd
	case a.tab == tabSettings:
		_, cmd := a.settings.Update(m)
		return cmd
	}
	return nil
}

func (a *App) resize() {
	w := max(20, a.width-2*bodyIndent)
	h := max(4, a.height-chromeRows-1)
	for _, t := range []interface{ SetSize(int, int) }{a.userTable, a.locTable, a.assignTable, a.noteTable} {
		t.SetSize(w, h)
	}
}

// applyTheme resolves the current mode into styles and pushes them into
// every widget.
func (a *App) applyTheme() {
	a.styles = theme.NewStyles(theme.Resolve(a.mode, a.hasDark))
	a.userTable.SetStyles(a.styles.Table)
	a.locTable.SetStyles(a.styles.Table)
	a.assignTable.SetStyles(a.styles.Table)
	a.noteTable.SetStyles(a.styles.Table)
	for _, f := range []*form.Form{a.editor, a.settings} {
		if f == nil {
			continue
		}
		f.Styles = form.Styles{Label: a.styles.Label, FocusedLabel: a.styles.FocusedLabel, Error: a.styles.FieldError}
		a.styleCombos(f)
	}
}

func (a *App) styleCombos(f *form.Form) {
	for _, fd := range f.Fields() {
		if c := fd.Combobox(); c != nil {
			c.Styles = a.styles.Combobox
		}
	}
}
