package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/contentcal/pkg/calendar"
	"tableflip.dev/contentcal/pkg/entity"
	"tableflip.dev/contentcal/pkg/filter"
	"tableflip.dev/contentcal/pkg/prefs"
)

func (pp *PrettyPrint) table(header ...interface{}) *uitable.Table {
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	row := make([]interface{}, len(header))
	for i, h := range header {
		row[i] = bold.Sprint(h)
	}
	tbl.AddRow(row...)
	return tbl
}

func (pp *PrettyPrint) flush(tbl *uitable.Table, rows int) {
	if rows == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// ContentItems lists content items with their campaign titles.
func (pp *PrettyPrint) ContentItems(items []entity.ContentItem, campaigns []entity.Campaign) {
	pp.TitleWithCount("Content items", len(items))
	tbl := pp.table("ID", "DATE", "STATUS", "TITLE", "CAMPAIGN", "DESCRIPTION")
	for _, it := range items {
		tbl.AddRow(it.ID, it.Date, statusColor(it.Status).Sprint(it.Status), it.Title,
			entity.CampaignTitle(campaigns, it.CampaignID), calendar.Preview(it.Description))
	}
	pp.flush(tbl, len(items))
}

// SocialPosts lists social posts with their platforms.
func (pp *PrettyPrint) SocialPosts(posts []entity.SocialPost, campaigns []entity.Campaign) {
	pp.TitleWithCount("Social posts", len(posts))
	tbl := pp.table("ID", "DATE", "STATUS", "TITLE", "PLATFORMS", "CAMPAIGN", "MESSAGE")
	for _, p := range posts {
		platforms := make([]string, len(p.Platforms))
		for i, id := range p.Platforms {
			platforms[i] = string(id)
		}
		tbl.AddRow(p.ID, p.Date, statusColor(p.Status).Sprint(p.Status), p.Title,
			strings.Join(platforms, ","), entity.CampaignTitle(campaigns, p.CampaignID), calendar.Preview(p.Message))
	}
	pp.flush(tbl, len(posts))
}

// Campaigns lists campaigns with their date ranges and scheduled counts.
func (pp *PrettyPrint) Campaigns(campaigns []entity.Campaign, items []entity.ContentItem, posts []entity.SocialPost) {
	pp.TitleWithCount("Campaigns", len(campaigns))
	tbl := pp.table("ID", "START", "END", "TITLE", "COLOR", "ITEMS")
	for _, c := range campaigns {
		n := 0
		for _, it := range items {
			if it.CampaignID == c.ID {
				n++
			}
		}
		for _, p := range posts {
			if p.CampaignID == c.ID {
				n++
			}
		}
		tbl.AddRow(c.ID, c.StartDate, c.EndDate, c.Title, c.Color, n)
	}
	pp.flush(tbl, len(campaigns))
}

// Views lists saved views in navigation order: starred first, the active view
// marked with an arrow.
func (pp *PrettyPrint) Views(starred, others []prefs.SavedView, active string) {
	pp.Title("Saved views")
	tbl := pp.table("", "ID", "NAME", "FILTERS")
	add := func(v prefs.SavedView) {
		mark := " "
		if v.ID == active {
			mark = "→"
		}
		name := v.Name
		if v.Starred {
			name = "★ " + name
		}
		tbl.AddRow(mark, v.ID, name, Describe(v.Filters))
	}
	for _, v := range starred {
		add(v)
	}
	for _, v := range others {
		add(v)
	}
	pp.flush(tbl, len(starred)+len(others))
}

// Filters prints each axis of spec and its selected values.
func (pp *PrettyPrint) Filters(spec filter.Spec, campaigns []entity.Campaign) {
	pp.Title("Filters")
	tbl := pp.table("AXIS", "COUNT", "VALUES")
	for _, axis := range filter.Axes() {
		values := spec.Values(axis)
		if axis == filter.AxisCampaign {
			for i, id := range values {
				values[i] = fmt.Sprintf("%s (%s)", id, entity.CampaignTitle(campaigns, entity.ID(id)))
			}
		}
		tbl.AddRow(axis, spec.Count(axis), strings.Join(values, ", "))
	}
	pp.flush(tbl, len(filter.Axes()))
}

// Describe summarises spec as "axis=a|b" pairs, or "none".
func Describe(spec filter.Spec) string {
	if !spec.Active() {
		return "none"
	}
	parts := []string{}
	for _, axis := range filter.Axes() {
		if vs := spec.Values(axis); len(vs) > 0 {
			parts = append(parts, fmt.Sprintf("%s=%s", axis, strings.Join(vs, "|")))
		}
	}
	return strings.Join(parts, " ")
}
