// Package teaui hosts the Bubble Tea program for the content calendar.
package teaui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/contentcal/pkg/app"
	"tableflip.dev/contentcal/pkg/calendar"
	"tableflip.dev/contentcal/pkg/entity"
	"tableflip.dev/contentcal/pkg/filter"
	"tableflip.dev/contentcal/pkg/prefs"
	"tableflip.dev/contentcal/pkg/tui/components/editform"
	"tableflip.dev/contentcal/pkg/tui/theme"
)

type mode int

const (
	modeNormal mode = iota
	modeAddNew
	modeForm
	modeConfirm
	modeFilter
	modePrompt
)

var errNoSelection = errors.New("nothing selected")

// Model is the calendar screen.
type Model struct {
	sess   *app.Session
	ctx    context.Context
	cancel context.CancelFunc
	mode   mode

	keys  keyMap
	help  help.Model
	theme theme.Theme

	today  entity.Date
	cursor entity.Date
	// item indexes the highlighted entry of the cursor cell.
	item int

	prefs prefs.Preferences
	snap  app.Snapshot
	grid  calendar.Grid

	drag     *calendar.DragController
	addNew   calendar.AddNew
	overlays calendar.Overlays
	form     *editform.Model
	// discardArmed is set after esc was refused for unsaved changes.
	discardArmed bool

	confirmRef entity.Ref
	filterIdx  int
	prompt     textinput.Model

	prefsCh     <-chan prefs.Preferences
	prefsCancel context.CancelFunc

	status string
	width  int
	height int
}

// New creates the calendar model over sess, anchored on today.
func New(sess *app.Session, today entity.Date) *Model {
	ti := textinput.New()
	ti.Placeholder = "View name"
	ti.CharLimit = 64
	ti.Prompt = "Save view as: "

	ctx, cancel := context.WithCancel(context.Background())
	p := sess.Prefs.Load()
	m := &Model{
		sess:   sess,
		ctx:    ctx,
		cancel: cancel,
		keys:   defaultKeys(),
		help:   help.New(),
		theme:  theme.For(p.Theme),
		today:  today,
		cursor: today,
		prefs:  p,
		drag:   calendar.NewDragController(sess.Coordinator),
		prompt: ti,
		width:  100,
		height: 32,
	}
	m.rebuild()
	return m
}

// Init loads the entities and starts watching state, toasts and preferences.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		refreshCmd(m.ctx, m.sess.Coordinator),
		waitForSignal(m.sess.State.Changes(), stateChangedMsg{}),
		waitForSignal(m.sess.Notifier.Changes(), toastsChangedMsg{}),
		startPrefsWatchCmd(m.ctx, m.sess.Prefs),
	)
}

// rebuild re-reads the state and lays out the cursor's month.
func (m *Model) rebuild() {
	m.snap = m.sess.State.Snapshot()
	m.grid = calendar.Build(m.cursor, calendar.Input{
		Campaigns:    m.snap.Campaigns,
		ContentItems: m.snap.ContentItems,
		SocialPosts:  m.snap.SocialPosts,
	}, m.prefs.Filters, m.today)
	if n := len(m.cursorCell().Items()); n == 0 || m.item >= n {
		m.item = 0
	}
}

func (m *Model) cursorCell() calendar.Cell {
	c, _ := m.grid.Cell(m.cursor)
	return c
}

// selected returns the highlighted item of the cursor cell.
func (m *Model) selected() (entity.Ref, bool) {
	items := m.cursorCell().Items()
	if len(items) == 0 {
		return entity.Ref{}, false
	}
	return items[m.item%len(items)], true
}

func (m *Model) setPrefs(p prefs.Preferences) {
	m.prefs = p
	m.theme = theme.For(p.Theme)
	m.rebuild()
}

func (m *Model) setStatus(msg string) {
	m.status = msg
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case refreshedMsg:
		if msg.err != nil {
			m.setStatus("ERR: " + msg.err.Error())
		}
		m.rebuild()
	case stateChangedMsg:
		m.rebuild()
		cmds = append(cmds, waitForSignal(m.sess.State.Changes(), stateChangedMsg{}))
	case toastsChangedMsg:
		cmds = append(cmds, waitForSignal(m.sess.Notifier.Changes(), toastsChangedMsg{}))
	case saveDoneMsg:
		m.resolveSave(msg)
		m.rebuild()
	case mutationDoneMsg:
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("ERR: %s: %v", msg.what, msg.err))
		}
		m.rebuild()
	case prefsWatchStartedMsg:
		if msg.err != nil {
			m.setStatus("ERR: watch " + msg.err.Error())
			break
		}
		m.stopPrefsWatch()
		m.prefsCh = msg.ch
		m.prefsCancel = msg.cancel
		if cmd := m.waitForPrefs(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case prefsChangedMsg:
		m.setPrefs(msg.prefs)
		if cmd := m.waitForPrefs(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case prefsWatchStoppedMsg:
		m.stopPrefsWatch()
	case tea.KeyPressMsg:
		if cmd := m.handleKeyPress(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	default:
		if m.mode == modeForm && m.form != nil {
			cmds = append(cmds, m.form.Update(msg))
		}
		if m.mode == modePrompt {
			var cmd tea.Cmd
			m.prompt, cmd = m.prompt.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyPress(msg tea.KeyPressMsg) tea.Cmd {
	switch m.mode {
	case modeAddNew:
		return m.handleAddNewKey(msg)
	case modeForm:
		return m.handleFormKey(msg)
	case modeConfirm:
		return m.handleConfirmKey(msg)
	case modeFilter:
		return m.handleFilterKey(msg)
	case modePrompt:
		return m.handlePromptKey(msg)
	default:
		return m.handleNormalKey(msg)
	}
}

func (m *Model) handleNormalKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.stopPrefsWatch()
		m.cancel()
		return tea.Quit
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(m.cursor.AddDays(-1))
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(m.cursor.AddDays(1))
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(m.cursor.AddDays(-7))
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(m.cursor.AddDays(7))
	case key.Matches(msg, m.keys.NextMonth):
		m.moveCursor(entity.DateOf(m.cursor.FirstOfMonth().AddDate(0, 1, 0)))
	case key.Matches(msg, m.keys.PrevMonth):
		m.moveCursor(entity.DateOf(m.cursor.FirstOfMonth().AddDate(0, -1, 0)))
	case key.Matches(msg, m.keys.Today):
		m.moveCursor(m.today)
	case key.Matches(msg, m.keys.NextItem):
		if n := len(m.cursorCell().Items()); n > 0 {
			m.item = (m.item + 1) % n
		}
	case key.Matches(msg, m.keys.Drag):
		return m.toggleDrag()
	case key.Matches(msg, m.keys.Cancel):
		if _, _, _, ok := m.drag.Dragging(); ok {
			m.drag.Cancel()
			m.setStatus("Move cancelled")
		}
	case key.Matches(msg, m.keys.Open):
		if ref, ok := m.selected(); ok {
			return m.edit(ref)
		}
		m.openAddNew()
	case key.Matches(msg, m.keys.Add):
		m.openAddNew()
	case key.Matches(msg, m.keys.Campaign):
		bands := m.cursorCell().Bands
		if len(bands) == 0 {
			m.setStatus("No campaign on this day")
			return nil
		}
		return m.edit(entity.RefOf(bands[0].Campaign))
	case key.Matches(msg, m.keys.Delete):
		m.beginDelete()
	case key.Matches(msg, m.keys.Filters):
		m.mode = modeFilter
		m.filterIdx = 0
	case key.Matches(msg, m.keys.Clear):
		m.updatePrefs(prefs.KeyFilters, filter.Clear())
	case key.Matches(msg, m.keys.Views):
		m.nextView()
	case key.Matches(msg, m.keys.SaveView):
		m.mode = modePrompt
		m.prompt.SetValue("")
		return m.prompt.Focus()
	case key.Matches(msg, m.keys.Star):
		p, err := m.sess.Views.ToggleStar(m.prefs.ActiveView)
		m.applyPrefs(p, err)
	case key.Matches(msg, m.keys.Nav):
		m.updatePrefs(prefs.KeyNavPanelOpen, !m.prefs.NavPanelOpen)
	case key.Matches(msg, m.keys.Theme):
		m.updatePrefs(prefs.KeyTheme, m.prefs.Theme.Toggle())
	case key.Matches(msg, m.keys.Refresh):
		m.setStatus("Refreshing…")
		return refreshCmd(m.ctx, m.sess.Coordinator)
	}
	return nil
}

// moveCursor moves the cursor and, while dragging, the drop target.
func (m *Model) moveCursor(d entity.Date) {
	m.cursor = d
	m.item = 0
	m.rebuild()
	if _, _, _, ok := m.drag.Dragging(); ok {
		_ = m.drag.DropTarget(d)
	}
}

func (m *Model) toggleDrag() tea.Cmd {
	if ref, _, target, ok := m.drag.Dragging(); ok {
		title := m.title(ref)
		m.setStatus(fmt.Sprintf("Moving %s to %s", title, target))
		drag, ctx := m.drag, m.ctx
		return func() tea.Msg {
			return mutationDoneMsg{what: "move", err: drag.Commit(ctx)}
		}
	}
	ref, ok := m.selected()
	if !ok {
		m.setStatus("Nothing to move")
		return nil
	}
	if err := m.drag.BeginDrag(ref, m.cursor); err != nil {
		m.setStatus(err.Error())
		return nil
	}
	_ = m.drag.DropTarget(m.cursor)
	m.setStatus(fmt.Sprintf("Moving %s: pick a day", m.title(ref)))
	return nil
}

func (m *Model) title(ref entity.Ref) string {
	if e, ok := m.sess.State.Find(ref); ok && e.EntityTitle() != "" {
		return e.EntityTitle()
	}
	return ref.ID
}

func (m *Model) openAddNew() {
	m.addNew.Toggle(m.cursor)
	if _, open := m.addNew.OpenOn(); open {
		m.mode = modeAddNew
		return
	}
	m.mode = modeNormal
}

func (m *Model) handleAddNewKey(msg tea.KeyPressMsg) tea.Cmd {
	var t entity.Type
	switch msg.String() {
	case "1", "c":
		t = entity.TypeContent
	case "2", "s":
		t = entity.TypeSocial
	case "3", "p":
		t = entity.TypeCampaign
	case "esc", "a", "enter":
		m.addNew.Close()
		m.mode = modeNormal
		return nil
	default:
		return nil
	}
	draft, err := m.addNew.Choose(t, m.today)
	if err != nil {
		m.setStatus(err.Error())
		return nil
	}
	return m.openForm(draft)
}

func (m *Model) edit(ref entity.Ref) tea.Cmd {
	e, ok := m.sess.State.Find(ref)
	if !ok {
		m.setStatus(errNoSelection.Error())
		return nil
	}
	return m.openForm(e)
}

func (m *Model) openForm(e entity.Entity) tea.Cmd {
	if err := m.overlays.Open(e); err != nil {
		m.setStatus(err.Error())
		return nil
	}
	m.form = editform.New(e, m.snap.Campaigns)
	m.discardArmed = false
	m.mode = modeForm
	m.setStatus("")
	return m.form.Focus()
}

func (m *Model) beginDelete() {
	ref, ok := m.selected()
	if !ok {
		bands := m.cursorCell().Bands
		if len(bands) == 0 {
			m.setStatus("Nothing to delete")
			return
		}
		ref = entity.RefOf(bands[0].Campaign)
	}
	m.confirmRef = ref
	m.mode = modeConfirm
}

func (m *Model) handleConfirmKey(msg tea.KeyPressMsg) tea.Cmd {
	ref := m.confirmRef
	m.confirmRef = entity.Ref{}
	m.mode = modeNormal
	if !key.Matches(msg, m.keys.ConfirmYes) {
		m.setStatus("Delete cancelled")
		return nil
	}
	coord, ctx := m.sess.Coordinator, m.ctx
	m.setStatus("Deleting " + m.title(ref))
	return func() tea.Msg {
		return mutationDoneMsg{what: "delete", err: coord.Delete(ctx, ref)}
	}
}

func (m *Model) updatePrefs(k prefs.Key, v any) {
	p, err := m.sess.Prefs.Update(k, v)
	m.applyPrefs(p, err)
}

func (m *Model) applyPrefs(p prefs.Preferences, err error) {
	if err != nil {
		m.setStatus("ERR: " + err.Error())
		return
	}
	m.setPrefs(p)
}

func (m *Model) nextView() {
	list := m.prefs.SavedViews
	if len(list) == 0 {
		return
	}
	next := list[0]
	for i, v := range list {
		if v.ID == m.prefs.ActiveView {
			next = list[(i+1)%len(list)]
		}
	}
	p, err := m.sess.Views.Select(next.ID)
	m.applyPrefs(p, err)
	if err == nil {
		m.setStatus("View: " + next.Name)
	}
}

func (m *Model) handlePromptKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.prompt.Blur()
		m.mode = modeNormal
		return nil
	case "enter":
		view, p, err := m.sess.Views.Save(m.prompt.Value(), m.prefs.Filters)
		if err != nil {
			m.setStatus("ERR: " + err.Error())
			return nil
		}
		m.prompt.Blur()
		m.mode = modeNormal
		m.setPrefs(p)
		m.setStatus("Saved view " + view.Name)
		return nil
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return cmd
}

// Run launches the interactive TUI program.
func Run(sess *app.Session) error {
	p := tea.NewProgram(New(sess, entity.Today()), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
