// Package move reschedules a content item or social post.
package move

import (
	"context"
	"io"

	"tableflip.dev/contentcal/pkg/app"
	"tableflip.dev/contentcal/pkg/calendar"
	"tableflip.dev/contentcal/pkg/entity"
	"tableflip.dev/contentcal/pkg/printers"
)

// Move drags Ref from its current date onto To.
type Move struct {
	Session *app.Session
	Ref     entity.Ref
	To      entity.Date
	Out     io.Writer
}

func (n *Move) Do(ctx context.Context) error {
	if n.Session == nil {
		return app.ErrNoSession
	}
	if err := n.Session.Coordinator.Refresh(ctx); err != nil {
		return err
	}

	var from entity.Date
	if e, ok := n.Session.State.Find(n.Ref); ok {
		if s, ok := e.(interface{ ScheduledOn() entity.Date }); ok {
			from = s.ScheduledOn()
		}
	}

	drag := calendar.NewDragController(n.Session.Coordinator)
	if err := drag.BeginDrag(n.Ref, from); err != nil {
		return err
	}
	if err := drag.DropTarget(n.To); err != nil {
		return err
	}
	err := drag.Commit(ctx)

	pp := printers.PrettyPrint{Out: n.Out}
	pp.Toasts(n.Session.Notifier.Active()...)
	return err
}
