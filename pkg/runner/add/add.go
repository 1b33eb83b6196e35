// Package add creates and edits entities from the command line. Drafts go
// through the same form validation as the interactive overlays.
package add

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"

	"tableflip.dev/contentcal/pkg/app"
	"tableflip.dev/contentcal/pkg/calendar"
	"tableflip.dev/contentcal/pkg/entity"
	"tableflip.dev/contentcal/pkg/printers"
)

// Add validates Draft and creates it.
type Add struct {
	Session *app.Session
	Draft   entity.Entity
	Today   entity.Date
	Out     io.Writer
}

func (n *Add) Do(ctx context.Context) error {
	if n.Session == nil {
		return app.ErrNoSession
	}
	if n.Draft == nil {
		return errors.New("can not add, no draft")
	}
	saved, err := save(ctx, n.Session, n.Draft, n.Today)
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Toasts(n.Session.Notifier.Active()...)
	if err != nil {
		return explain(pp, err)
	}
	_, _ = fmt.Fprintf(out(n.Out), "id: %s\n", saved.EntityID())
	return nil
}

// Edit loads Ref, applies Change to it and saves the result.
type Edit struct {
	Session *app.Session
	Ref     entity.Ref
	Change  func(entity.Entity) (entity.Entity, error)
	Today   entity.Date
	Out     io.Writer
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Session == nil {
		return app.ErrNoSession
	}
	if err := n.Session.Coordinator.Refresh(ctx); err != nil {
		return err
	}
	current, ok := n.Session.State.Find(n.Ref)
	if !ok {
		return fmt.Errorf("%s %s not found", n.Ref.Type.Noun(), n.Ref.ID)
	}
	draft, err := n.Change(current)
	if err != nil {
		return err
	}
	_, err = save(ctx, n.Session, draft, n.Today)
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Toasts(n.Session.Notifier.Active()...)
	if err != nil {
		return explain(pp, err)
	}
	return nil
}

func save(ctx context.Context, s *app.Session, draft entity.Entity, today entity.Date) (entity.Entity, error) {
	var o calendar.Overlays
	if err := o.Open(draft); err != nil {
		return nil, err
	}
	c := s.Coordinator
	switch draft.(type) {
	case entity.ContentItem:
		return calendar.Save(ctx, &o.Content, today, c.SaveContentItem)
	case entity.SocialPost:
		return calendar.Save(ctx, &o.Social, today, c.SaveSocialPost)
	case entity.Campaign:
		return calendar.Save(ctx, &o.Campaign, today, c.SaveCampaign)
	}
	return nil, fmt.Errorf("can not save %T", draft)
}

// explain prints each failing field before returning err.
func explain(pp printers.PrettyPrint, err error) error {
	var verr *entity.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	red := color.New(color.FgRed)
	fields := make([]string, 0, len(verr.Fields))
	for f := range verr.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	w := out(pp.Out)
	for _, f := range fields {
		_, _ = red.Fprintf(w, "  %s: %s\n", f, verr.Fields[f])
	}
	return err
}

func out(w io.Writer) io.Writer {
	if w == nil {
		return color.Output
	}
	return w
}
