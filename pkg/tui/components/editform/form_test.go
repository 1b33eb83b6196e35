package editform

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/contentcal/pkg/calendar"
	"tableflip.dev/contentcal/pkg/entity"
	"tableflip.dev/contentcal/pkg/tui/theme"
)

func press(m *Model, keys ...tea.KeyPressMsg) {
	for _, k := range keys {
		m.Update(k)
	}
}

var (
	tab   = tea.KeyPressMsg{Code: tea.KeyTab}
	right = tea.KeyPressMsg{Code: tea.KeyRight}
	space = tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
)

func TestContentFormAppliesEdits(t *testing.T) {
	campaigns := []entity.Campaign{{ID: "c-1", Title: "Summer"}}
	draft := entity.NewContentDraft(entity.MustParseDate("2024-06-05"))

	var o calendar.Overlays
	if err := o.Open(draft); err != nil {
		t.Fatal(err)
	}
	m := New(draft, campaigns)
	m.Focus()
	if m.Focused() != entity.FieldTitle {
		t.Fatalf("expected title focused, got %q", m.Focused())
	}

	m.SetText(entity.FieldTitle, "Launch post")
	press(m, tab, tab, tab)
	if m.Focused() != entity.FieldStatus {
		t.Fatalf("expected status focused, got %q", m.Focused())
	}
	press(m, right)
	press(m, tab, right)

	if err := m.Apply(&o); err != nil {
		t.Fatalf("apply: %v", err)
	}
	got := o.Content.Draft()
	if got.Title != "Launch post" || got.Status != entity.StatusPlanned || got.CampaignID != "c-1" {
		t.Fatalf("unexpected draft %+v", got)
	}
	if !got.Date.Equal(draft.Date) {
		t.Fatalf("date should be kept, got %s", got.Date)
	}
	if !o.Content.Dirty() {
		t.Fatal("applied edits mark the overlay dirty")
	}
	if err := m.Apply(&o); err != nil {
		t.Fatalf("applying nothing should be a no-op: %v", err)
	}
}

func TestSocialFormTogglesPlatforms(t *testing.T) {
	draft := entity.NewSocialDraft(entity.MustParseDate("2024-06-05"))
	var o calendar.Overlays
	_ = o.Open(draft)

	m := New(draft, nil)
	m.Focus()
	press(m, tab, tab)
	if m.Focused() != entity.FieldPlatforms {
		t.Fatalf("expected platforms focused, got %q", m.Focused())
	}
	press(m, space, right, right, space)
	if err := m.Apply(&o); err != nil {
		t.Fatal(err)
	}
	got := o.Social.Draft().Platforms
	if len(got) != 2 || got[0] != entity.PlatformTwitter || got[1] != entity.PlatformInstagram {
		t.Fatalf("unexpected platforms %v", got)
	}

	errs := o.Social.Errors(entity.Date{})
	if _, ok := errs[entity.FieldPlatforms]; ok {
		t.Fatalf("platforms are valid now, got %v", errs)
	}
	if _, ok := errs[entity.FieldTitle]; ok {
		t.Fatalf("untouched title must not show an error, got %v", errs)
	}
}

func TestCampaignFormBadDate(t *testing.T) {
	draft := entity.NewCampaignDraft(entity.MustParseDate("2024-06-05"))
	var o calendar.Overlays
	_ = o.Open(draft)

	m := New(draft, nil)
	m.SetText(entity.FieldEndDate, "not a date")
	if err := m.Apply(&o); err != nil {
		t.Fatal(err)
	}
	errs := o.Campaign.Errors(entity.Date{})
	if errs[entity.FieldEndDate] != "End date is required" {
		t.Fatalf("unexpected errors %v", errs)
	}

	view := m.View(theme.Light().Modal, errs)
	if !strings.Contains(view, "End date is required") || !strings.Contains(view, "#FFB3BA") {
		t.Fatalf("view should show the error and colour:\n%s", view)
	}
}

func TestApplyClosedOverlay(t *testing.T) {
	m := New(entity.NewContentDraft(entity.MustParseDate("2024-06-05")), nil)
	m.SetText(entity.FieldTitle, "x")
	var o calendar.Overlays
	if err := m.Apply(&o); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}
