package teaui

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/contentcal/pkg/app"
	"tableflip.dev/contentcal/pkg/devserver"
	"tableflip.dev/contentcal/pkg/entity"
	"tableflip.dev/contentcal/pkg/prefs"
	"tableflip.dev/contentcal/pkg/store"
)

func stripANSI(s string) string {
	var b strings.Builder
	ansiSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			ansiSeq = true
			continue
		}
		if ansiSeq {
			if ansi.IsTerminator(r) {
				ansiSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func june(day int) entity.Date {
	return entity.NewDate(2024, time.June, day)
}

func runeKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

var (
	enterKey = tea.KeyPressMsg{Code: tea.KeyEnter}
	escKey   = tea.KeyPressMsg{Code: tea.KeyEscape}
	tabKey   = tea.KeyPressMsg{Code: tea.KeyTab}
)

// newTestModel serves a seeded devserver and returns a refreshed model whose
// cursor sits on June 5 2024.
func newTestModel(t *testing.T) (*Model, *devserver.Server) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := devserver.New(devserver.WithLogger(logger), devserver.WithIDs(func() string { return "new-1" }))
	srv.Seed(
		[]entity.Campaign{{ID: "c-1", Title: "Summer", StartDate: june(3), EndDate: june(7), Color: "#BAE1FF"}},
		nil,
		[]entity.SocialPost{{
			ID:         "p-1",
			Title:      "Teaser",
			Message:    "Coming soon",
			Platforms:  []entity.Platform{entity.PlatformTwitter},
			Date:       june(5),
			Status:     entity.StatusPlanned,
			CampaignID: "c-1",
		}},
	)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	sess, err := app.Open(&store.FileConfig{Path: t.TempDir(), API: ts.URL},
		app.WithDocuments(store.NewMemory()),
		app.WithLogger(logger))
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	m := New(sess, june(5))
	t.Cleanup(m.cancel)
	m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	m.Update(refreshCmd(m.ctx, sess.Coordinator)())
	return m, srv
}

func press(m *Model, keys ...tea.KeyPressMsg) tea.Cmd {
	var last tea.Cmd
	for _, k := range keys {
		_, last = m.Update(k)
	}
	return last
}

// run executes cmd and feeds its message back into the model.
func run(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c != nil {
				m.Update(c())
			}
		}
		return
	}
	m.Update(msg)
}

func TestViewShowsMonth(t *testing.T) {
	m, _ := newTestModel(t)
	view := stripANSI(m.View())
	for _, want := range []string{"June 2024", "Sun", "Summer", "Teaser", "All Items"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
	if ref, ok := m.selected(); !ok || ref.ID != "p-1" {
		t.Fatalf("expected the post selected on the cursor day, got %v %v", ref, ok)
	}
}

func TestDragMovesSocialPost(t *testing.T) {
	m, srv := newTestModel(t)

	press(m, runeKey('m'))
	if _, _, _, ok := m.drag.Dragging(); !ok {
		t.Fatal("expected a drag in progress")
	}
	press(m, runeKey('l'), runeKey('l'), runeKey('l'), runeKey('l'))
	if _, _, target, _ := m.drag.Dragging(); !target.Equal(june(9)) {
		t.Fatalf("expected drop target june 9, got %s", target)
	}
	run(t, m, press(m, runeKey('m')))

	if p, ok := srv.SocialPost("p-1"); !ok || !p.Date.Equal(june(9)) {
		t.Fatalf("backend should hold june 9, got %+v", p)
	}
	cell, _ := m.grid.Cell(june(9))
	if len(cell.SocialPosts) != 1 {
		t.Fatalf("expected the post on june 9, got %+v", cell)
	}
}

func TestDragCancel(t *testing.T) {
	m, srv := newTestModel(t)
	press(m, runeKey('m'), runeKey('l'), escKey)
	if _, _, _, ok := m.drag.Dragging(); ok {
		t.Fatal("esc should cancel the drag")
	}
	if p, _ := srv.SocialPost("p-1"); !p.Date.Equal(june(5)) {
		t.Fatalf("cancelled drag must not move, got %s", p.Date)
	}
}

func TestAddContentItem(t *testing.T) {
	m, srv := newTestModel(t)

	press(m, runeKey('l'), enterKey)
	if m.mode != modeAddNew {
		t.Fatalf("enter on an empty day should open add new, mode %d", m.mode)
	}
	press(m, runeKey('1'))
	if m.mode != modeForm || m.form == nil || m.form.Type != entity.TypeContent {
		t.Fatalf("expected the content form")
	}
	if view := stripANSI(m.View()); !strings.Contains(view, "New content item") {
		t.Fatalf("view should show the form:\n%s", view)
	}

	m.form.SetText(entity.FieldTitle, "Launch blog")
	run(t, m, press(m, enterKey))

	if m.mode != modeNormal || m.form != nil {
		t.Fatalf("a successful save closes the form, mode %d", m.mode)
	}
	item, ok := srv.ContentItem("new-1")
	if !ok || item.Title != "Launch blog" || !item.Date.Equal(june(6)) {
		t.Fatalf("unexpected stored item %+v", item)
	}
	cell, _ := m.grid.Cell(june(6))
	if len(cell.ContentItems) != 1 {
		t.Fatalf("expected the new item on june 6")
	}
}

func TestFormValidationAndDiscard(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, runeKey('a'), runeKey('1'))

	if cmd := press(m, enterKey); cmd != nil {
		t.Fatal("an invalid draft must not be saved")
	}
	if view := stripANSI(m.View()); !strings.Contains(view, "Title is required") {
		t.Fatalf("expected the title error:\n%s", view)
	}

	m.form.SetText(entity.FieldTitle, "Draft")
	press(m, tabKey, escKey)
	if m.mode != modeForm {
		t.Fatal("esc on an edited form needs confirmation")
	}
	if !strings.Contains(m.status, "Unsaved changes") {
		t.Fatalf("unexpected status %q", m.status)
	}
	press(m, escKey)
	if m.mode != modeNormal || m.overlays.Content.IsOpen() {
		t.Fatal("second esc should discard")
	}
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	m, srv := newTestModel(t)

	press(m, runeKey('d'), runeKey('n'))
	if m.mode != modeNormal || m.status != "Delete cancelled" {
		t.Fatalf("unexpected mode %d status %q", m.mode, m.status)
	}
	if _, ok := srv.SocialPost("p-1"); !ok {
		t.Fatal("cancelled delete must keep the post")
	}

	press(m, runeKey('d'))
	if view := stripANSI(m.View()); !strings.Contains(view, `Delete social post "Teaser"?`) {
		t.Fatalf("expected the confirmation:\n%s", view)
	}
	run(t, m, press(m, runeKey('y')))
	if _, ok := srv.SocialPost("p-1"); ok {
		t.Fatal("confirmed delete should remove the post")
	}
	if _, ok := m.selected(); ok {
		t.Fatal("the deleted post should be gone from the grid")
	}
}

func TestPreferencesKeys(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, runeKey('t'))
	if m.prefs.Theme != prefs.ThemeDark || m.sess.Prefs.Load().Theme != prefs.ThemeDark {
		t.Fatal("t should persist the dark theme")
	}
	if m.theme.Name != prefs.ThemeDark {
		t.Fatal("the model should switch styles")
	}

	press(m, runeKey('b'))
	if !m.sess.Prefs.Load().NavPanelOpen {
		t.Fatal("b should persist the nav panel")
	}
	if view := stripANSI(m.View()); !strings.Contains(view, "Views") || !strings.Contains(view, "→ All Items") {
		t.Fatalf("expected the views panel:\n%s", view)
	}
}

func TestFilterMenuHidesItems(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, runeKey('f'))
	if m.mode != modeFilter {
		t.Fatal("f opens the filter menu")
	}
	// The first option is the Backlog status.
	press(m, runeKey('x'), escKey)
	got := m.sess.Prefs.Load().Filters.Values("status")
	if len(got) != 1 || got[0] != string(entity.StatusBacklog) {
		t.Fatalf("unexpected status filter %v", got)
	}
	if _, ok := m.selected(); ok {
		t.Fatal("the planned post should be filtered out")
	}

	press(m, runeKey('c'))
	if m.prefs.Filters.Active() {
		t.Fatal("c clears the filters")
	}
	if _, ok := m.selected(); !ok {
		t.Fatal("the post should be back")
	}
}

func TestSaveAndCycleViews(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, runeKey('w'))
	if m.mode != modePrompt {
		t.Fatal("w opens the name prompt")
	}
	m.prompt.SetValue("Mine")
	press(m, enterKey)

	active := m.sess.Views.Active()
	if active.Name != "Mine" || m.prefs.ActiveView != active.ID {
		t.Fatalf("the saved view should be active, got %+v", active)
	}

	press(m, runeKey('*'))
	if !m.sess.Views.Active().Starred {
		t.Fatal("* stars the active view")
	}

	press(m, runeKey('v'))
	if m.sess.Views.Active().ID != prefs.DefaultViewID {
		t.Fatalf("v should cycle back to the default view, got %q", m.sess.Views.Active().ID)
	}
}

func TestMonthNavigation(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, runeKey('n'))
	if !m.cursor.Equal(entity.NewDate(2024, time.July, 1)) {
		t.Fatalf("n moves to the next month, got %s", m.cursor)
	}
	if view := stripANSI(m.View()); !strings.Contains(view, "July 2024") {
		t.Fatalf("expected july:\n%s", view)
	}
	press(m, runeKey('p'), runeKey('p'))
	if !m.cursor.Equal(entity.NewDate(2024, time.May, 1)) {
		t.Fatalf("p moves back, got %s", m.cursor)
	}
	press(m, runeKey('.'))
	if !m.cursor.Equal(june(5)) {
		t.Fatalf(". returns to today, got %s", m.cursor)
	}
}
