package options

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/contentcal/pkg/entity"
)

func TestParseDate(t *testing.T) {
	today := entity.NewDate(2024, time.June, 5)
	tests := []struct {
		in   string
		want entity.Date
	}{
		{"", entity.Date{}},
		{"2024-06-09", entity.NewDate(2024, time.June, 9)},
		{"6/9", entity.NewDate(2024, time.June, 9)},
		{"1/3", entity.NewDate(2025, time.January, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in, today)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %s", got)
		})
	}
	_, err := ParseDate("tomorrow", today)
	assert.Error(t, err)
}

func TestMonthAnchor(t *testing.T) {
	today := entity.NewDate(2024, time.June, 5)
	o := MonthOptions{}
	got, err := o.Anchor(today)
	require.NoError(t, err)
	assert.True(t, got.Equal(today))

	o.Month = "2024-09"
	got, err = o.Anchor(today)
	require.NoError(t, err)
	assert.True(t, got.Equal(entity.NewDate(2024, time.September, 1)))

	o.Month = "September"
	_, err = o.Anchor(today)
	assert.Error(t, err)
}

func TestSocialDraft(t *testing.T) {
	today := entity.NewDate(2024, time.June, 5)
	cmd := &cobra.Command{Use: "social"}
	o := &EntityOptions{}
	AddSocialArgs(cmd, o)
	require.NoError(t, cmd.ParseFlags([]string{"--title", "Hello", "--message", "Hi", "--platforms", "Twitter,linkedin", "--on", "6/7", "--status", "in-progress"}))

	e, err := o.Draft(entity.TypeSocial, today)
	require.NoError(t, err)
	p := e.(entity.SocialPost)
	assert.Equal(t, "Hello", p.Title)
	assert.Equal(t, []entity.Platform{entity.PlatformTwitter, entity.PlatformLinkedIn}, p.Platforms)
	assert.True(t, p.Date.Equal(entity.NewDate(2024, time.June, 7)))
	assert.Equal(t, entity.StatusInProgress, p.Status)
}

func TestApplyOnlyChangedFlags(t *testing.T) {
	today := entity.NewDate(2024, time.June, 5)
	cmd := &cobra.Command{Use: "content"}
	o := &EntityOptions{}
	AddContentArgs(cmd, o)
	require.NoError(t, cmd.ParseFlags([]string{"--status", "done"}))

	in := entity.ContentItem{ID: "i-1", Title: "Blog", Date: today, Status: entity.StatusPlanned, CampaignID: "c-1"}
	e, err := o.Apply(cmd, in, today)
	require.NoError(t, err)
	out := e.(entity.ContentItem)
	assert.Equal(t, "Blog", out.Title)
	assert.Equal(t, entity.ID("c-1"), out.CampaignID)
	assert.Equal(t, entity.StatusDone, out.Status)
}

func TestParseRef(t *testing.T) {
	ref, err := ParseRef("posts", "p-1")
	require.NoError(t, err)
	assert.Equal(t, entity.Ref{Type: entity.TypeSocial, ID: "p-1"}, ref)

	_, err = ParseRef("videos", "v-1")
	assert.Error(t, err)
	_, err = ParseRef("content", " ")
	assert.Error(t, err)
}

func TestWindowNext(t *testing.T) {
	today := entity.NewDate(2024, time.June, 5)
	o := WindowOptions{Next: "2w"}
	since, until, err := o.Window(today)
	require.NoError(t, err)
	assert.True(t, since.Equal(today))
	assert.True(t, until.Equal(entity.NewDate(2024, time.June, 18)), "got %s", until)

	o = WindowOptions{Next: "1w", Until: "2024-06-30"}
	_, _, err = o.Window(today)
	assert.Error(t, err)
}
