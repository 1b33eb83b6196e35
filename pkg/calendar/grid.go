// Package calendar lays out a month of campaigns, content items and social
// posts, and drives drag-to-reschedule and the edit overlays.
package calendar

import (
	"time"

	"tableflip.dev/contentcal/pkg/entity"
	"tableflip.dev/contentcal/pkg/filter"
)

// Role is the position of a date within a campaign band.
type Role int

const (
	RoleMiddle Role = iota
	RoleStart
	RoleEnd
	// RoleSingle is a campaign that starts and ends on the same date.
	RoleSingle
)

func (r Role) String() string {
	switch r {
	case RoleStart:
		return "start"
	case RoleEnd:
		return "end"
	case RoleSingle:
		return "single"
	}
	return "middle"
}

// RoleOn returns the role of d within c. d is assumed to be inside c.
func RoleOn(c entity.Campaign, d entity.Date) Role {
	start, end := d.Equal(c.StartDate), d.Equal(c.EndDate)
	switch {
	case start && end:
		return RoleSingle
	case start:
		return RoleStart
	case end:
		return RoleEnd
	}
	return RoleMiddle
}

// Band is one campaign drawn across a cell.
type Band struct {
	Campaign entity.Campaign
	Role     Role
}

// Cell is one date of the month.
type Cell struct {
	Date         entity.Date
	Bands        []Band
	ContentItems []entity.ContentItem
	SocialPosts  []entity.SocialPost

	Today   bool
	Past    bool
	Weekend bool
}

// Empty reports whether nothing is scheduled on the cell.
func (c Cell) Empty() bool {
	return len(c.Bands) == 0 && len(c.ContentItems) == 0 && len(c.SocialPosts) == 0
}

// Items returns the refs of the draggable entities in the cell, content items
// first.
func (c Cell) Items() []entity.Ref {
	out := make([]entity.Ref, 0, len(c.ContentItems)+len(c.SocialPosts))
	for _, it := range c.ContentItems {
		out = append(out, entity.RefOf(it))
	}
	for _, p := range c.SocialPosts {
		out = append(out, entity.RefOf(p))
	}
	return out
}

// Input is the entity data a grid is built from.
type Input struct {
	Campaigns    []entity.Campaign
	ContentItems []entity.ContentItem
	SocialPosts  []entity.SocialPost
}

// Grid is a rendered month.
type Grid struct {
	Month entity.Date
	// Offset is the weekday of the 1st, Sunday being 0. Renderers pad the
	// first week with this many blank cells.
	Offset int
	Cells  []Cell
}

// Days returns every date of anchor's month, first to last.
func Days(anchor entity.Date) []entity.Date {
	first, last := anchor.FirstOfMonth(), anchor.LastOfMonth()
	out := make([]entity.Date, 0, last.Day())
	for d := first; !d.After(last); d = d.AddDays(1) {
		out = append(out, d)
	}
	return out
}

// Build lays out anchor's month. Entities are filtered with spec first;
// campaigns appear on every date of their range, items on their own date.
func Build(anchor entity.Date, in Input, spec filter.Spec, today entity.Date) Grid {
	campaigns := filter.Apply(in.Campaigns, entity.TypeCampaign, spec)
	items := filter.Apply(in.ContentItems, entity.TypeContent, spec)
	posts := filter.Apply(in.SocialPosts, entity.TypeSocial, spec)

	days := Days(anchor)
	g := Grid{
		Month:  anchor.FirstOfMonth(),
		Offset: int(anchor.FirstOfMonth().Weekday()),
		Cells:  make([]Cell, len(days)),
	}
	index := make(map[entity.Date]int, len(days))
	for i, d := range days {
		wd := d.Weekday()
		g.Cells[i] = Cell{
			Date:    d,
			Today:   !today.IsZero() && d.Equal(today),
			Past:    !today.IsZero() && d.Before(today),
			Weekend: wd == time.Saturday || wd == time.Sunday,
		}
		index[d] = i
	}

	for _, c := range campaigns {
		for i := range g.Cells {
			if d := g.Cells[i].Date; c.Contains(d) {
				g.Cells[i].Bands = append(g.Cells[i].Bands, Band{Campaign: c, Role: RoleOn(c, d)})
			}
		}
	}
	for _, it := range items {
		if i, ok := index[it.Date]; ok {
			g.Cells[i].ContentItems = append(g.Cells[i].ContentItems, it)
		}
	}
	for _, p := range posts {
		if i, ok := index[p.Date]; ok {
			g.Cells[i].SocialPosts = append(g.Cells[i].SocialPosts, p.Clone())
		}
	}
	return g
}

// Cell returns the cell for d.
func (g Grid) Cell(d entity.Date) (Cell, bool) {
	if !d.SameMonth(g.Month) {
		return Cell{}, false
	}
	i := d.Day() - 1
	if i < 0 || i >= len(g.Cells) {
		return Cell{}, false
	}
	return g.Cells[i], true
}

// Weeks groups the cells into Sunday-first rows of seven. Slots outside the
// month are nil.
func (g Grid) Weeks() [][]*Cell {
	var weeks [][]*Cell
	week := make([]*Cell, 7)
	col := g.Offset
	for i := range g.Cells {
		week[col] = &g.Cells[i]
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = make([]*Cell, 7)
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}
