// Package remove deletes entities.
package remove

import (
	"context"
	"io"

	"tableflip.dev/contentcal/pkg/app"
	"tableflip.dev/contentcal/pkg/entity"
	"tableflip.dev/contentcal/pkg/printers"
)

type Remove struct {
	Session *app.Session
	Ref     entity.Ref
	Out     io.Writer
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Session == nil {
		return app.ErrNoSession
	}
	if err := n.Session.Coordinator.Refresh(ctx); err != nil {
		return err
	}
	err := n.Session.Coordinator.Delete(ctx, n.Ref)
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Toasts(n.Session.Notifier.Active()...)
	return err
}
