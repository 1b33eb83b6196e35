package devserver

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/contentcal/pkg/api"
	"tableflip.dev/contentcal/pkg/entity"
)

func newTestServer(t *testing.T) (*Server, *api.Client) {
	t.Helper()
	n := 0
	srv := New(
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithIDs(func() string { n++; return fmt.Sprintf("id-%d", n) }),
	)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	client, err := api.New(ts.URL)
	require.NoError(t, err)
	return srv, client
}

func june(day int) entity.Date {
	return entity.NewDate(2024, time.June, day)
}

func TestCreateAssignsIDs(t *testing.T) {
	srv, client := newTestServer(t)
	ctx := context.Background()

	item, err := client.ContentItems().Create(ctx, entity.ContentItem{Title: "Blog", Date: june(5), Status: entity.StatusPlanned})
	require.NoError(t, err)
	assert.Equal(t, entity.ID("id-1"), item.ID)

	stored, ok := srv.ContentItem("id-1")
	require.True(t, ok)
	assert.Equal(t, "Blog", stored.Title)
	assert.True(t, stored.Date.Equal(june(5)))

	items, err := client.ContentItems().List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCreateRequiresTitle(t *testing.T) {
	_, client := newTestServer(t)
	_, err := client.SocialPosts().Create(context.Background(), entity.SocialPost{Date: june(5)})

	var status *api.StatusError
	require.ErrorAs(t, err, &status)
	assert.Equal(t, http.StatusBadRequest, status.Code)
	assert.Equal(t, "title is required", status.Message)
}

func TestUpdateMergesPartialBodies(t *testing.T) {
	srv, _ := newTestServer(t)
	srv.Seed(nil, nil, []entity.SocialPost{{
		ID: "p-1", Title: "Teaser", Message: "Soon", Date: june(5),
		Platforms: []entity.Platform{entity.PlatformTwitter},
	}})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	req, err := http.NewRequest(http.MethodPut, ts.URL+api.SocialPostsPath+"/p-1", strings.NewReader(`{"date":"2024-06-09"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	post, ok := srv.SocialPost("p-1")
	require.True(t, ok)
	assert.True(t, post.Date.Equal(june(9)))
	assert.Equal(t, "Soon", post.Message)
	assert.Equal(t, []entity.Platform{entity.PlatformTwitter}, post.Platforms)
}

func TestUpdateAndDeleteMissing(t *testing.T) {
	_, client := newTestServer(t)
	ctx := context.Background()

	_, err := client.ContentItems().Update(ctx, "nope", entity.ContentItem{Title: "x", Date: june(1)})
	require.ErrorIs(t, err, api.ErrNotFound)
	var status *api.StatusError
	require.ErrorAs(t, err, &status)
	assert.Equal(t, "Content item not found", status.Message)

	err = client.Campaigns().Delete(ctx, "nope")
	require.ErrorIs(t, err, api.ErrNotFound)
	require.ErrorAs(t, err, &status)
	assert.Equal(t, "Campaign not found", status.Message)
}

func TestDeleteRemovesRow(t *testing.T) {
	srv, client := newTestServer(t)
	srv.Seed(nil, []entity.ContentItem{{ID: "1", Title: "A", Date: june(5)}, {ID: "2", Title: "B", Date: june(6)}}, nil)
	ctx := context.Background()

	require.NoError(t, client.ContentItems().Delete(ctx, "1"))
	_, ok := srv.ContentItem("1")
	assert.False(t, ok)

	items, err := client.ContentItems().List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, entity.ID("2"), items[0].ID)
}

func TestCampaignListingIncludesRelatedRows(t *testing.T) {
	srv, client := newTestServer(t)
	srv.Seed(
		[]entity.Campaign{{ID: "c-1", Title: "Launch", StartDate: june(1), EndDate: june(3)}},
		[]entity.ContentItem{{ID: "1", Title: "A", Date: june(2), CampaignID: "c-1"}, {ID: "2", Title: "B", Date: june(2)}},
		[]entity.SocialPost{{ID: "p-1", Title: "P", Date: june(2), CampaignID: "c-1"}},
	)
	ctx := context.Background()

	campaigns, err := client.Campaigns().List(ctx)
	require.NoError(t, err)
	require.Len(t, campaigns, 1)
	assert.Len(t, campaigns[0].ContentItems, 1)
	assert.Len(t, campaigns[0].SocialPosts, 1)

	// Writing the listed campaign back must not store the included rows.
	c := campaigns[0]
	c.Title = "Launch week"
	_, err = client.Campaigns().Update(ctx, "c-1", c)
	require.NoError(t, err)
	stored, ok := srv.Campaign("c-1")
	require.True(t, ok)
	assert.Equal(t, "Launch week", stored.Title)
	assert.Nil(t, stored.ContentItems)
}

func TestSeedFillsMissingIDs(t *testing.T) {
	srv, _ := newTestServer(t)
	srv.Seed([]entity.Campaign{{Title: "No id"}}, nil, nil)
	_, ok := srv.Campaign("id-1")
	assert.True(t, ok)
}

func TestMalformedBody(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, api.ContentItemsPath, strings.NewReader("{")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid JSON body")
}
