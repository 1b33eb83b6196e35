// Package filters shows and edits the working filters.
package filters

import (
	"context"
	"fmt"
	"io"

	"tableflip.dev/contentcal/pkg/app"
	"tableflip.dev/contentcal/pkg/filter"
	"tableflip.dev/contentcal/pkg/prefs"
	"tableflip.dev/contentcal/pkg/printers"
)

type Action string

const (
	Show   Action = "show"
	Toggle Action = "toggle"
	Clear  Action = "clear"
)

type Filters struct {
	Session *app.Session
	Action  Action
	Axis    filter.Axis
	Value   string
	Out     io.Writer
}

func (n *Filters) Do(ctx context.Context) error {
	if n.Session == nil {
		return app.ErrNoSession
	}
	p := n.Session.Prefs.Load()

	switch n.Action {
	case Toggle:
		v, err := filter.Normalize(n.Axis, n.Value)
		if err != nil {
			return err
		}
		if p, err = n.Session.Prefs.Update(prefs.KeyFilters, p.Filters.Toggle(n.Axis, v)); err != nil {
			return err
		}
	case Clear:
		var err error
		if p, err = n.Session.Prefs.Update(prefs.KeyFilters, filter.Clear()); err != nil {
			return err
		}
	case Show, "":
	default:
		return fmt.Errorf("unknown filter action %q", n.Action)
	}

	// Campaign titles are best effort; an unreachable backend still shows ids.
	_ = n.Session.Coordinator.Refresh(ctx)
	pp := printers.PrettyPrint{Out: n.Out}
	pp.NewLine()
	pp.Filters(p.Filters, n.Session.State.Snapshot().Campaigns)
	return nil
}
