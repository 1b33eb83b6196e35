// Package serve runs the in-memory development backend.
package serve

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"tableflip.dev/contentcal/pkg/devserver"
	"tableflip.dev/contentcal/pkg/entity"
)

const DefaultAddr = "127.0.0.1:8080"

type Serve struct {
	Addr    string
	Latency time.Duration
	// Demo seeds a campaign with a few items around Today.
	Demo        bool
	Today       entity.Date
	Logger      *slog.Logger
	OnListening func(net.Addr)
}

func (r Serve) Do(ctx context.Context) error {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	srv := devserver.New(devserver.WithLogger(logger), devserver.WithLatency(r.Latency))
	if r.Demo {
		today := r.Today
		if today.IsZero() {
			today = entity.Today()
		}
		srv.Seed(Demo(today))
	}

	addr := r.Addr
	if addr == "" {
		addr = DefaultAddr
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	if r.OnListening != nil {
		r.OnListening(ln.Addr())
	}

	httpSrv := &http.Server{
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if ctx != nil {
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = httpSrv.Shutdown(shutdownCtx)
		}()
	}

	err = httpSrv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Demo returns a small data set centered on today.
func Demo(today entity.Date) ([]entity.Campaign, []entity.ContentItem, []entity.SocialPost) {
	campaigns := []entity.Campaign{{
		ID:          "demo-launch",
		Title:       "Product Launch",
		Description: "Launch week",
		StartDate:   today.AddDays(-2),
		EndDate:     today.AddDays(4),
		Color:       entity.Palette[1],
	}}
	items := []entity.ContentItem{
		{ID: "demo-blog", Title: "Launch blog post", Date: today, Status: entity.StatusInProgress, CampaignID: "demo-launch"},
		{ID: "demo-guide", Title: "Getting started guide", Date: today.AddDays(3), Status: entity.StatusPlanned, CampaignID: "demo-launch"},
		{ID: "demo-recap", Title: "Monthly recap", Date: today.AddDays(9), Status: entity.StatusBacklog},
	}
	posts := []entity.SocialPost{
		{
			ID:         "demo-teaser",
			Title:      "Teaser",
			Message:    "Something new is coming.",
			Platforms:  []entity.Platform{entity.PlatformTwitter, entity.PlatformLinkedIn},
			Date:       today.AddDays(-1),
			Status:     entity.StatusDone,
			CampaignID: "demo-launch",
		},
		{
			ID:         "demo-live",
			Title:      "We are live",
			Message:    "It is here. Read the announcement on the blog.",
			Platforms:  []entity.Platform{entity.PlatformTwitter, entity.PlatformFacebook, entity.PlatformInstagram},
			Date:       today,
			Status:     entity.StatusPlanned,
			CampaignID: "demo-launch",
		},
	}
	return campaigns, items, posts
}
