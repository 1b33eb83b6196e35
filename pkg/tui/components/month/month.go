// Package month renders a calendar grid as a seven column Lip Gloss block.
package month

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/contentcal/pkg/app"
	"tableflip.dev/contentcal/pkg/calendar"
	"tableflip.dev/contentcal/pkg/entity"
	"tableflip.dev/contentcal/pkg/printers"
	"tableflip.dev/contentcal/pkg/tui/theme"
)

const (
	minCellWidth  = 8
	minCellHeight = 3
)

// Options describes what is highlighted on the grid.
type Options struct {
	Width  int
	Height int

	Cursor entity.Date
	// Selected is the item highlighted inside the cursor cell.
	Selected entity.Ref
	// Target is the drop target while dragging; zero when not dragging.
	Target entity.Date
	// Dragging is the item being dragged.
	Dragging entity.Ref
	// Deleting marks items with a delete in flight.
	Deleting map[entity.Ref]bool
}

// CellSize returns the width and height of one cell for the given bounds.
func CellSize(g calendar.Grid, width, height int) (int, int) {
	rows := len(g.Weeks())
	if rows == 0 {
		rows = 1
	}
	w := width / 7
	if w < minCellWidth {
		w = minCellWidth
	}
	// Two header lines sit above the rows.
	h := (height - 2) / rows
	if h < minCellHeight {
		h = minCellHeight
	}
	return w, h
}

// Render draws g within opts.Width by opts.Height.
func Render(g calendar.Grid, th theme.MonthTheme, opts Options) string {
	cw, ch := CellSize(g, opts.Width, opts.Height)

	title := fmt.Sprintf("%s %d", g.Month.Month(), g.Month.Year())
	lines := []string{th.Header.Width(cw * 7).Align(lipgloss.Center).Render(title)}

	var head []string
	for _, wd := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		head = append(head, th.Weekday.Width(cw).Render(wd))
	}
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, head...))

	for _, week := range g.Weeks() {
		cells := make([]string, 0, 7)
		for _, c := range week {
			cells = append(cells, renderCell(c, th, opts, cw, ch))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(lines, "\n")
}

func renderCell(c *calendar.Cell, th theme.MonthTheme, opts Options, w, h int) string {
	box := lipgloss.NewStyle().Width(w).Height(h).MaxHeight(h)
	if c == nil {
		return box.Render("")
	}

	header := dayStyle(c, th, opts).Render(fmt.Sprintf("%2d", c.Date.Day()))
	rows := []string{header}

	for _, b := range c.Bands {
		label := ""
		if b.Role == calendar.RoleStart || b.Role == calendar.RoleSingle || c.Date.Day() == 1 {
			label = b.Campaign.Title
		}
		rows = append(rows, theme.Band(b.Campaign.Color).Width(w).Render(fit(label, w)))
	}

	refs := c.Items()
	budget := h - len(rows)
	for i, ref := range refs {
		if budget <= 0 {
			break
		}
		if budget == 1 && i < len(refs)-1 {
			rows = append(rows, th.More.Render(fit(fmt.Sprintf("+%d more", len(refs)-i), w)))
			break
		}
		rows = append(rows, itemLine(c, ref, th, opts, w))
		budget--
	}
	return box.Render(strings.Join(rows, "\n"))
}

func dayStyle(c *calendar.Cell, th theme.MonthTheme, opts Options) lipgloss.Style {
	switch {
	case !opts.Target.IsZero() && c.Date.Equal(opts.Target):
		return th.Target
	case c.Date.Equal(opts.Cursor):
		return th.Cursor
	case c.Today:
		return th.Today
	case c.Past:
		return th.Past
	case c.Weekend:
		return th.Weekend
	}
	return th.Day
}

func itemLine(c *calendar.Cell, ref entity.Ref, th theme.MonthTheme, opts Options, w int) string {
	var title string
	var status entity.Status
	var style lipgloss.Style
	switch ref.Type {
	case entity.TypeContent:
		for _, it := range c.ContentItems {
			if it.EntityID() == ref.ID {
				title, status = it.Title, it.Status
			}
		}
		style = th.Item
	case entity.TypeSocial:
		for _, p := range c.SocialPosts {
			if p.EntityID() == ref.ID {
				title, status = p.Title, p.Status
				style = th.Item.Foreground(lipgloss.Color(p.Color()))
			}
		}
	}

	text := fit(printers.StatusGlyph(status)+" "+title, w)
	switch {
	case opts.Deleting[ref]:
		style = th.Deleting
	case ref == opts.Dragging:
		style = th.Target
	case ref == opts.Selected && c.Date.Equal(opts.Cursor):
		style = th.Selected
	}
	return style.Render(text)
}

func fit(s string, w int) string {
	if w <= 1 {
		return ""
	}
	return truncate.StringWithTail(s, uint(w), "…")
}

// Toasts renders the visible notifications, newest last.
func Toasts(toasts []app.Toast, th theme.ToastTheme, width int) string {
	if len(toasts) == 0 {
		return ""
	}
	lines := make([]string, 0, len(toasts))
	for _, t := range toasts {
		style := th.Info
		switch t.Kind {
		case app.KindSuccess:
			style = th.Success
		case app.KindError:
			style = th.Error
		case app.KindWarning:
			style = th.Warning
		}
		lines = append(lines, style.Render(fit(t.Message, width)))
	}
	return strings.Join(lines, "\n")
}
