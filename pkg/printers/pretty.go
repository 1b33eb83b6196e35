// Package printers renders calendar data for the terminal.
package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/contentcal/pkg/app"
	"tableflip.dev/contentcal/pkg/entity"
)

type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

var (
	spacing = strings.Repeat(" ", len("a1b2c3d4-e5f6-  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " item")
	default:
		_, _ = c.Fprintln(pp.out(), " items")
	}
}

// StatusGlyph is the bullet printed in front of an item with status s.
func StatusGlyph(s entity.Status) string {
	switch s {
	case entity.StatusPlanned:
		return "○"
	case entity.StatusInProgress:
		return "◐"
	case entity.StatusDone:
		return "●"
	}
	return "·"
}

func statusColor(s entity.Status) *color.Color {
	switch s {
	case entity.StatusPlanned:
		return color.New(color.FgCyan)
	case entity.StatusInProgress:
		return color.New(color.FgYellow)
	case entity.StatusDone:
		return color.New(color.FgGreen, color.Faint)
	}
	return color.New(color.Faint)
}

// line formats one item the same way in agendas and long calendars.
func (pp *PrettyPrint) line(e entity.Entity, status entity.Status) string {
	g := statusColor(status).Sprint(StatusGlyph(status))
	title := e.EntityTitle()
	if p, ok := e.(entity.SocialPost); ok {
		names := make([]string, 0, len(p.Platforms))
		for _, id := range p.Platforms {
			if info, ok := entity.LookupPlatform(id); ok {
				names = append(names, info.Name)
			} else {
				names = append(names, string(id))
			}
		}
		title = fmt.Sprintf("%s %s", title, color.New(color.Faint).Sprintf("@%s", strings.Join(names, ",")))
	}
	return fmt.Sprintf("%s %s", g, title)
}

func (pp *PrettyPrint) id(e entity.Entity) {
	if !pp.ShowID {
		return
	}
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	id := e.EntityID()
	_, _ = y.Fprint(pp.out(), id)
	if pad := len(spacing) - len(id); pad > 0 {
		_, _ = y.Fprint(pp.out(), strings.Repeat(" ", pad))
	} else {
		_, _ = y.Fprint(pp.out(), " ")
	}
}

// Agenda prints a report one dated section at a time.
func (pp *PrettyPrint) Agenda(r app.ReportResult) {
	pp.TitleWithCount(fmt.Sprintf("%s to %s", r.Since, r.Until), r.Total)
	if len(r.Sections) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Fprint(pp.out(), spacing)
		}
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	h := color.New(color.Bold)
	c := color.New(color.Faint, color.Italic)
	for _, s := range r.Sections {
		if pp.ShowID {
			_, _ = h.Fprint(pp.out(), spacing)
		}
		_, _ = h.Fprintf(pp.out(), "%s %s\n", s.Date, s.Date.Weekday().String()[0:3])
		for _, it := range s.Items {
			pp.id(it.Entity)
			_, _ = fmt.Fprintf(pp.out(), "  %s %s\n", pp.line(it.Entity, it.Status), c.Sprintf("(%s)", it.Campaign))
		}
	}
	pp.NewLine()
}

// Toasts prints the notifications a command produced.
func (pp *PrettyPrint) Toasts(toasts ...app.Toast) {
	for _, t := range toasts {
		var c *color.Color
		switch t.Kind {
		case app.KindSuccess:
			c = color.New(color.FgGreen)
		case app.KindError:
			c = color.New(color.FgRed, color.Bold)
		case app.KindWarning:
			c = color.New(color.FgYellow)
		default:
			c = color.New(color.FgBlue)
		}
		_, _ = c.Fprintln(pp.out(), t.Message)
	}
}
