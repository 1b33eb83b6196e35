package month

import (
	"strings"
	"testing"
	"time"

	"github.com/muesli/reflow/ansi"

	"tableflip.dev/contentcal/pkg/app"
	"tableflip.dev/contentcal/pkg/calendar"
	"tableflip.dev/contentcal/pkg/entity"
	"tableflip.dev/contentcal/pkg/filter"
	"tableflip.dev/contentcal/pkg/tui/theme"
)

func plain(s string) string {
	var b strings.Builder
	seq := false
	for _, r := range s {
		switch {
		case r == ansi.Marker:
			seq = true
		case seq:
			seq = !ansi.IsTerminator(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func june(day int) entity.Date {
	return entity.NewDate(2024, time.June, day)
}

func grid() calendar.Grid {
	in := calendar.Input{
		Campaigns: []entity.Campaign{{ID: "c-1", Title: "Summer", StartDate: june(3), EndDate: june(7), Color: "#BAE1FF"}},
		ContentItems: []entity.ContentItem{
			{ID: "i-1", Title: "One", Date: june(10), Status: entity.StatusPlanned},
			{ID: "i-2", Title: "Two", Date: june(10), Status: entity.StatusPlanned},
			{ID: "i-3", Title: "Three", Date: june(10), Status: entity.StatusPlanned},
			{ID: "i-4", Title: "Blog post", Date: june(4), Status: entity.StatusInProgress},
		},
	}
	return calendar.Build(june(1), in, filter.Clear(), june(5))
}

func TestRenderShowsMonth(t *testing.T) {
	out := plain(Render(grid(), theme.Light().Month, Options{Width: 140, Height: 40, Cursor: june(5)}))
	for _, want := range []string{"June 2024", "Sun", "Sat", "Summer", "Blog post", "30"} {
		if !strings.Contains(out, want) {
			t.Fatalf("render missing %q:\n%s", want, out)
		}
	}
}

func TestRenderCollapsesOverflow(t *testing.T) {
	out := plain(Render(grid(), theme.Light().Month, Options{Width: 140, Height: 0, Cursor: june(5)}))
	if !strings.Contains(out, "One") || !strings.Contains(out, "+2 more") {
		t.Fatalf("expected the first item and an overflow line:\n%s", out)
	}
	if strings.Contains(out, "Three") {
		t.Fatalf("overflowed items should be hidden:\n%s", out)
	}
}

func TestCellSizeMinimum(t *testing.T) {
	if w, h := CellSize(grid(), 10, 1); w != minCellWidth || h != minCellHeight {
		t.Fatalf("expected %dx%d, got %dx%d", minCellWidth, minCellHeight, w, h)
	}
	if w, _ := CellSize(calendar.Grid{}, 140, 40); w != 20 {
		t.Fatalf("expected width 20, got %d", w)
	}
}

func TestToasts(t *testing.T) {
	th := theme.Light().Toast
	if out := Toasts(nil, th, 80); out != "" {
		t.Fatalf("no toasts should render nothing, got %q", out)
	}

	out := plain(Toasts([]app.Toast{
		{Message: "Saved", Kind: app.KindSuccess},
		{Message: "Move failed", Kind: app.KindError},
	}, th, 80))
	lines := strings.Split(out, "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], "Saved") || !strings.Contains(lines[1], "Move failed") {
		t.Fatalf("unexpected toasts:\n%s", out)
	}
}
