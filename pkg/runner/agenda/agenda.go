// Package agenda prints the scheduled items in a date window.
package agenda

import (
	"context"
	"fmt"
	"io"

	"tableflip.dev/contentcal/pkg/app"
	"tableflip.dev/contentcal/pkg/entity"
	"tableflip.dev/contentcal/pkg/printers"
)

// Agenda lists content items and social posts scheduled from Since to Until.
// A zero Since starts at Today; a zero Until runs one week past Since.
type Agenda struct {
	Session *app.Session
	Since   entity.Date
	Until   entity.Date
	Today   entity.Date
	ViewID  string
	ShowID  bool
	Out     io.Writer
}

func (n *Agenda) Do(ctx context.Context) error {
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

	since, until := n.Since, n.Until
	if since.IsZero() {
		since = n.Today
	}
	if until.IsZero() {
		until = since.AddDays(6)
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.NewLine()
	pp.Agenda(n.Session.State.Snapshot().Report(since, until, spec))
	pp.Toasts(n.Session.Notifier.Active()...)
	return nil
}
