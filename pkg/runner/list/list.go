// Package list prints one entity collection as a table.
package list

import (
	"context"
	"fmt"
	"io"

	"tableflip.dev/contentcal/pkg/app"
	"tableflip.dev/contentcal/pkg/entity"
	"tableflip.dev/contentcal/pkg/filter"
	"tableflip.dev/contentcal/pkg/printers"
)

type List struct {
	Session *app.Session
	Type    entity.Type
	// All ignores the working filters.
	All    bool
	ShowID bool
	Out    io.Writer
}

func (n *List) Do(ctx context.Context) error {
	if n.Session == nil {
		return app.ErrNoSession
	}
	if err := n.Session.Coordinator.Refresh(ctx); err != nil {
		return err
	}

	spec := n.Session.Prefs.Load().Filters
	if n.All {
		spec = filter.Clear()
	}
	snap := n.Session.State.Snapshot()
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.NewLine()

	switch n.Type {
	case entity.TypeContent:
		pp.ContentItems(filter.Apply(snap.ContentItems, entity.TypeContent, spec), snap.Campaigns)
	case entity.TypeSocial:
		pp.SocialPosts(filter.Apply(snap.SocialPosts, entity.TypeSocial, spec), snap.Campaigns)
	case entity.TypeCampaign:
		pp.Campaigns(filter.Apply(snap.Campaigns, entity.TypeCampaign, spec), snap.ContentItems, snap.SocialPosts)
	default:
		return fmt.Errorf("can not list %q", n.Type)
	}
	return nil
}
