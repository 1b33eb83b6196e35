package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/contentcal/pkg/calendar"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Month prints the grid as a compact seven column month. Days with items are
// bold, days inside a campaign are magenta and today is underlined.
func (pp *PrettyPrint) Month(g calendar.Grid) {
	out := pp.out()
	tf := color.New(color.FgWhite, color.Italic)

	m := fmt.Sprintf("%s %d", g.Month.Month(), g.Month.Year())
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(out, "%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", width-mid-len(m)))
	_, _ = color.New(color.Faint).Fprintln(out, "Su Mo Tu We Th Fr Sa")

	for _, week := range g.Weeks() {
		for i, c := range week {
			if c == nil {
				if i < 6 {
					_, _ = fmt.Fprint(out, "   ")
				}
				continue
			}
			sep := " "
			if i == 6 {
				sep = ""
			}
			_, _ = dayColor(c).Fprintf(out, "%2d", c.Date.Day())
			_, _ = fmt.Fprint(out, sep)
		}
		_, _ = fmt.Fprint(out, "\n")
	}
	_, _ = fmt.Fprint(out, "\n")
}

func dayColor(c *calendar.Cell) *color.Color {
	attrs := []color.Attribute{}
	switch {
	case len(c.ContentItems)+len(c.SocialPosts) > 0:
		attrs = append(attrs, color.Bold, color.FgHiWhite)
	case len(c.Bands) == 0:
		attrs = append(attrs, color.Faint, color.FgWhite)
	}
	if len(c.Bands) > 0 {
		attrs = append(attrs, color.FgHiMagenta)
	}
	if c.Today {
		attrs = append(attrs, color.Underline)
	}
	return color.New(attrs...)
}

// MonthLong prints one line per day followed by that day's campaigns and
// items. Empty days print only the date.
func (pp *PrettyPrint) MonthLong(g calendar.Grid) {
	out := pp.out()
	p := color.New()
	b := color.New(color.Bold)
	s := color.New(color.Underline)
	bs := color.New(color.Underline, color.Bold)
	band := color.New(color.FgHiMagenta)

	pp.Title(fmt.Sprintf("%s %d", g.Month.Month(), g.Month.Year()))
	for i := range g.Cells {
		c := &g.Cells[i]
		printer := p
		switch {
		case c.Today && c.Weekend:
			printer = bs
		case c.Today:
			printer = b
		case c.Weekend:
			printer = s
		}
		if pp.ShowID {
			_, _ = p.Fprint(out, spacing)
		}
		_, _ = printer.Fprintf(out, "%2d %s", c.Date.Day(), c.Date.Weekday().String()[0:2])

		first := true
		indent := func() {
			if first {
				_, _ = p.Fprint(out, "  ")
				first = false
				return
			}
			if pp.ShowID {
				_, _ = p.Fprint(out, spacing)
			}
			_, _ = p.Fprint(out, "       ")
		}
		for _, bnd := range c.Bands {
			if bnd.Role != calendar.RoleStart && bnd.Role != calendar.RoleSingle && c.Date.Day() != 1 {
				continue
			}
			indent()
			_, _ = band.Fprintf(out, "▬ %s (%s to %s)\n", bnd.Campaign.Title, bnd.Campaign.StartDate, bnd.Campaign.EndDate)
		}
		for _, it := range c.ContentItems {
			indent()
			_, _ = fmt.Fprintln(out, pp.line(it, it.Status))
		}
		for _, post := range c.SocialPosts {
			indent()
			_, _ = fmt.Fprintln(out, pp.line(post, post.Status))
		}
		if first {
			_, _ = p.Fprintln(out)
		}
	}
	pp.NewLine()
}
