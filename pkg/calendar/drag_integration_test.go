package calendar_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"tableflip.dev/contentcal/pkg/api"
	"tableflip.dev/contentcal/pkg/app"
	"tableflip.dev/contentcal/pkg/calendar"
	"tableflip.dev/contentcal/pkg/devserver"
	"tableflip.dev/contentcal/pkg/entity"
	"tableflip.dev/contentcal/pkg/filter"
)

func TestDragSocialPostAcrossDays(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := devserver.New(devserver.WithLogger(logger))
	srv.Seed(nil, nil, []entity.SocialPost{{
		ID:        "p-1",
		Title:     "Teaser",
		Message:   "Coming soon",
		Platforms: []entity.Platform{entity.PlatformTwitter},
		Date:      entity.NewDate(2024, time.June, 5),
		Status:    entity.StatusPlanned,
	}})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client, err := api.New(ts.URL)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	state := app.NewState()
	coord := &app.Coordinator{
		State:    state,
		Backend:  app.NewBackend(client),
		Notifier: app.NewNotifier(),
		Logger:   logger,
	}
	ctx := context.Background()
	if err := coord.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	ref := entity.Ref{Type: entity.TypeSocial, ID: "p-1"}
	drag := calendar.NewDragController(coord)
	if err := drag.BeginDrag(ref, entity.NewDate(2024, time.June, 5)); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := drag.DropTarget(entity.NewDate(2024, time.June, 9)); err != nil {
		t.Fatalf("target: %v", err)
	}
	if err := drag.Commit(ctx); err != nil {
		t.Fatalf("commit: %v", err)
	}

	stored, ok := srv.SocialPost("p-1")
	if !ok || stored.Date.String() != "2024-06-09" {
		t.Fatalf("expected the backend to hold 2024-06-09, got %q", stored.Date)
	}

	snap := state.Snapshot()
	grid := calendar.Build(entity.NewDate(2024, time.June, 1), calendar.Input{
		Campaigns:    snap.Campaigns,
		ContentItems: snap.ContentItems,
		SocialPosts:  snap.SocialPosts,
	}, filter.Spec{}, entity.Date{})

	for _, cell := range grid.Cells {
		has := false
		for _, p := range cell.SocialPosts {
			if p.ID == "p-1" {
				has = true
			}
		}
		if want := cell.Date.Day() == 9; has != want {
			t.Fatalf("june %d: post present = %v", cell.Date.Day(), has)
		}
	}
}
