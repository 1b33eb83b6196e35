package app

import (
	"sort"

	"tableflip.dev/contentcal/pkg/entity"
	"tableflip.dev/contentcal/pkg/filter"
)

// ReportItem is one scheduled entity in an agenda.
type ReportItem struct {
	Ref      entity.Ref
	Title    string
	Status   entity.Status
	Campaign string
	Entity   entity.Entity
}

// ReportSection groups the items scheduled on one date.
type ReportSection struct {
	Date  entity.Date
	Items []ReportItem
}

// ReportResult is the agenda for a date window.
type ReportResult struct {
	Since    entity.Date
	Until    entity.Date
	Sections []ReportSection
	Total    int
}

// Report returns the content items and social posts scheduled between since
// and until inclusive, after filtering, grouped by date. Within a date content
// items come before social posts, each in collection order.
func (s Snapshot) Report(since, until entity.Date, spec filter.Spec) ReportResult {
	if since.After(until) {
		since, until = until, since
	}

	grouped := make(map[entity.Date][]ReportItem)
	total := 0
	add := func(e entity.Filterable, d entity.Date) {
		if d.Before(since) || d.After(until) {
			return
		}
		grouped[d] = append(grouped[d], ReportItem{
			Ref:      entity.RefOf(e),
			Title:    e.EntityTitle(),
			Status:   e.StatusValue(),
			Campaign: entity.CampaignTitle(s.Campaigns, entity.ID(e.CampaignRef())),
			Entity:   e,
		})
		total++
	}
	for _, it := range filter.Apply(s.ContentItems, entity.TypeContent, spec) {
		add(it, it.Date)
	}
	for _, p := range filter.Apply(s.SocialPosts, entity.TypeSocial, spec) {
		add(p, p.Date)
	}

	if len(grouped) == 0 {
		return ReportResult{
			Since: since,
			Until: until,
		}
	}

	dates := make([]entity.Date, 0, len(grouped))
	for d := range grouped {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	sections := make([]ReportSection, 0, len(dates))
	for _, d := range dates {
		sections = append(sections, ReportSection{
			Date:  d,
			Items: grouped[d],
		})
	}

	return ReportResult{
		Since:    since,
		Until:    until,
		Sections: sections,
		Total:    total,
	}
}
