// Package month prints a calendar month on the command line.
package month

import (
	"context"
	"fmt"
	"io"

	"tableflip.dev/contentcal/pkg/app"
	"tableflip.dev/contentcal/pkg/calendar"
	"tableflip.dev/contentcal/pkg/entity"
	"tableflip.dev/contentcal/pkg/printers"
)

// Month renders the month containing Anchor with the working filters, or the
// filters of ViewID when set.
type Month struct {
	Session *app.Session
	Anchor  entity.Date
	Today   entity.Date
	ViewID  string
	Long    bool
	ShowID  bool
	Out     io.Writer
}

func (n *Month) Do(ctx context.Context) error {
	if n.Session == nil {
		return app.ErrNoSession
	}
	if err := n.Session.Coordinator.Refresh(ctx); err != nil {
		return err
	}

	p := n.Session.Prefs.Load()
	spec := p.Filters
	if n.ViewID != "" {
		v, ok := p.View(n.ViewID)
		if !ok {
			return fmt.Errorf("unknown view %q", n.ViewID)
		}
		spec = v.Filters
	}

	anchor := n.Anchor
	if anchor.IsZero() {
		anchor = n.Today
	}
	snap := n.Session.State.Snapshot()
	g := calendar.Build(anchor, calendar.Input{
		Campaigns:    snap.Campaigns,
		ContentItems: snap.ContentItems,
		SocialPosts:  snap.SocialPosts,
	}, spec, n.Today)

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.NewLine()
	if n.Long {
		pp.MonthLong(g)
	} else {
		pp.Month(g)
	}
	pp.Toasts(n.Session.Notifier.Active()...)
	return nil
}
