// Package runnertest opens sessions against a seeded in-memory backend.
package runnertest

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"tableflip.dev/contentcal/pkg/app"
	"tableflip.dev/contentcal/pkg/devserver"
	"tableflip.dev/contentcal/pkg/entity"
	"tableflip.dev/contentcal/pkg/store"
)

func June(day int) entity.Date {
	return entity.NewDate(2024, time.June, day)
}

// Session serves the fixture: campaign c-1 "Summer" from June 3 to 7, content
// item i-1 "Blog post" on June 4 and social post p-1 "Teaser" on June 5.
func Session(t *testing.T) (*app.Session, *devserver.Server) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := devserver.New(devserver.WithLogger(logger), devserver.WithIDs(func() string { return "new-1" }))
	srv.Seed(
		[]entity.Campaign{{ID: "c-1", Title: "Summer", StartDate: June(3), EndDate: June(7), Color: "#BAE1FF"}},
		[]entity.ContentItem{{ID: "i-1", Title: "Blog post", Date: June(4), Status: entity.StatusInProgress, CampaignID: "c-1"}},
		[]entity.SocialPost{{
			ID:         "p-1",
			Title:      "Teaser",
			Message:    "Coming soon",
			Platforms:  []entity.Platform{entity.PlatformTwitter},
			Date:       June(5),
			Status:     entity.StatusPlanned,
			CampaignID: "c-1",
		}},
	)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return Open(t, ts.URL), srv
}

// Open opens a session with memory preferences against base.
func Open(t *testing.T, base string) *app.Session {
	t.Helper()
	sess, err := app.Open(&store.FileConfig{Path: t.TempDir(), API: base},
		app.WithDocuments(store.NewMemory()),
		app.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	return sess
}
