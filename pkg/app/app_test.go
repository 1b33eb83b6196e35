package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/contentcal/pkg/api"
	"tableflip.dev/contentcal/pkg/entity"
	"tableflip.dev/contentcal/pkg/filter"
)

// memoryResource is an in-memory Resource with failure injection and an
// optional gate that holds requests until released.
type memoryResource[T entity.Entity] struct {
	mu      sync.Mutex
	items   []T
	counter int
	withID  func(T, string) T

	fail    error
	calls   []string
	updates []T
	// blank makes Update answer with a zero entity.
	blank bool

	gate    chan struct{}
	entered chan struct{}
}

func newMemoryResource[T entity.Entity](withID func(T, string) T, items ...T) *memoryResource[T] {
	return &memoryResource[T]{items: items, withID: withID}
}

func (m *memoryResource[T]) hold() {
	m.gate = make(chan struct{})
	m.entered = make(chan struct{}, 1)
}

func (m *memoryResource[T]) record(call string) error {
	m.mu.Lock()
	m.calls = append(m.calls, call)
	gate, entered, fail := m.gate, m.entered, m.fail
	m.mu.Unlock()
	if gate != nil {
		entered <- struct{}{}
		<-gate
	}
	return fail
}

func (m *memoryResource[T]) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *memoryResource[T]) List(ctx context.Context) ([]T, error) {
	if err := m.record("GET"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]T{}, m.items...), nil
}

func (m *memoryResource[T]) Create(ctx context.Context, v T) (T, error) {
	if err := m.record("POST"); err != nil {
		var zero T
		return zero, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	v = m.withID(v, fmt.Sprintf("new-%d", m.counter))
	m.items = append(m.items, v)
	return v, nil
}

func (m *memoryResource[T]) Update(ctx context.Context, id string, v T) (T, error) {
	m.mu.Lock()
	m.updates = append(m.updates, v)
	m.mu.Unlock()
	if err := m.record("PUT " + id); err != nil {
		var zero T
		return zero, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var zero T
	for i := range m.items {
		if m.items[i].EntityID() == id {
			m.items[i] = v
			if m.blank {
				return zero, nil
			}
			return v, nil
		}
	}
	return zero, &api.StatusError{Method: "PUT", Path: id, Code: 404}
}

func (m *memoryResource[T]) Delete(ctx context.Context, id string) error {
	if err := m.record("DELETE " + id); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].EntityID() == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return &api.StatusError{Method: "DELETE", Path: id, Code: 404}
}

func contentWithID(v entity.ContentItem, id string) entity.ContentItem {
	v.ID = entity.ID(id)
	return v
}

func socialWithID(v entity.SocialPost, id string) entity.SocialPost {
	v.ID = entity.ID(id)
	return v
}

func campaignWithID(v entity.Campaign, id string) entity.Campaign {
	v.ID = entity.ID(id)
	return v
}

type fixture struct {
	coord     *Coordinator
	campaigns *memoryResource[entity.Campaign]
	content   *memoryResource[entity.ContentItem]
	social    *memoryResource[entity.SocialPost]
}

func june(day int) entity.Date {
	return entity.NewDate(2024, time.June, day)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		campaigns: newMemoryResource(campaignWithID, entity.Campaign{ID: "c-1", Title: "Summer", StartDate: june(1), EndDate: june(3)}),
		content: newMemoryResource(contentWithID,
			entity.ContentItem{ID: "1", Title: "Blog post", Date: june(5), Status: entity.StatusPlanned},
			entity.ContentItem{ID: "2", Title: "Video", Date: june(6), Status: entity.StatusBacklog},
			entity.ContentItem{ID: "3", Title: "Podcast", Date: june(7), Status: entity.StatusDone},
		),
		social: newMemoryResource(socialWithID,
			entity.SocialPost{ID: "p-1", Title: "Teaser", Message: "soon", Platforms: []entity.Platform{entity.PlatformTwitter}, Date: june(5), Status: entity.StatusPlanned},
		),
	}
	f.coord = &Coordinator{
		State:    NewState(),
		Backend:  Backend{Campaigns: f.campaigns, ContentItems: f.content, SocialPosts: f.social},
		Notifier: NewNotifier(),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	require.NoError(t, f.coord.Refresh(context.Background()))
	return f
}

func lastToast(t *testing.T, n *Notifier) Toast {
	t.Helper()
	active := n.Active()
	require.NotEmpty(t, active, "expected a toast")
	return active[len(active)-1]
}

func contentIDs(s Snapshot) []string {
	out := make([]string, 0, len(s.ContentItems))
	for _, it := range s.ContentItems {
		out = append(out, string(it.ID))
	}
	return out
}

func TestRefreshLoadsCollections(t *testing.T) {
	f := newFixture(t)
	snap := f.coord.State.Snapshot()
	assert.Len(t, snap.Campaigns, 1)
	assert.Equal(t, []string{"1", "2", "3"}, contentIDs(snap))
	assert.Len(t, snap.SocialPosts, 1)
}

func TestRefreshJoinsFailures(t *testing.T) {
	f := newFixture(t)
	f.campaigns.fail = errors.New("campaigns down")
	f.social.fail = errors.New("posts down")

	err := f.coord.Refresh(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "campaigns down")
	assert.Contains(t, err.Error(), "posts down")

	// Failed collections keep their previous contents.
	snap := f.coord.State.Snapshot()
	assert.Len(t, snap.Campaigns, 1)
	assert.Len(t, snap.SocialPosts, 1)
}

func TestSaveCreatesAndAppends(t *testing.T) {
	f := newFixture(t)
	draft := entity.NewContentDraft(june(10))
	draft.Title = "Launch"

	saved, err := f.coord.SaveContentItem(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, entity.ID("new-1"), saved.ID)

	snap := f.coord.State.Snapshot()
	assert.Equal(t, []string{"1", "2", "3", "new-1"}, contentIDs(snap))
	assert.Equal(t, `Successfully created "Launch"`, lastToast(t, f.coord.Notifier).Message)
}

func TestSaveUpdatesInPlace(t *testing.T) {
	f := newFixture(t)
	item := f.coord.State.Snapshot().ContentItems[1]
	item.Title = "Video v2"

	_, err := f.coord.SaveContentItem(context.Background(), item)
	require.NoError(t, err)
	snap := f.coord.State.Snapshot()
	assert.Equal(t, []string{"1", "2", "3"}, contentIDs(snap))
	assert.Equal(t, "Video v2", snap.ContentItems[1].Title)
	assert.Equal(t, `Successfully updated "Video v2"`, lastToast(t, f.coord.Notifier).Message)
}

func TestSaveFailureLeavesStateUntouched(t *testing.T) {
	f := newFixture(t)
	f.content.fail = errors.New("boom")
	before := f.coord.State.Snapshot()

	draft := entity.NewContentDraft(june(10))
	draft.Title = "Launch"
	_, err := f.coord.SaveContentItem(context.Background(), draft)
	require.Error(t, err)

	assert.Equal(t, contentIDs(before), contentIDs(f.coord.State.Snapshot()))
	toast := lastToast(t, f.coord.Notifier)
	assert.Equal(t, KindError, toast.Kind)
	assert.Equal(t, "Failed to create content item: boom", toast.Message)
}

func TestUpdateWithoutIDKeepsState(t *testing.T) {
	f := newFixture(t)
	f.content.blank = true
	item := f.coord.State.Snapshot().ContentItems[0]
	item.Title = "Launch"

	_, err := f.coord.SaveContentItem(context.Background(), item)
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrNoID))

	snap := f.coord.State.Snapshot()
	assert.Equal(t, []string{"1", "2", "3"}, contentIDs(snap))
	assert.Equal(t, "Blog post", snap.ContentItems[0].Title)
	assert.Equal(t, KindError, lastToast(t, f.coord.Notifier).Kind)
}

func TestUpdateNotFoundDropsLocalEntity(t *testing.T) {
	f := newFixture(t)
	ghost := entity.ContentItem{ID: "9", Title: "Ghost", Date: june(9)}
	put(f.coord.State, ghost)

	_, err := f.coord.SaveContentItem(context.Background(), ghost)
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrNotFound))
	assert.Equal(t, []string{"1", "2", "3"}, contentIDs(f.coord.State.Snapshot()))
	assert.Equal(t, KindWarning, lastToast(t, f.coord.Notifier).Kind)
}

func TestDeleteRollsBackOnFailure(t *testing.T) {
	f := newFixture(t)
	f.content.fail = errors.New("server unavailable")
	f.content.hold()
	ref := entity.Ref{Type: entity.TypeContent, ID: "2"}

	done := make(chan error, 1)
	go func() { done <- f.coord.Delete(context.Background(), ref) }()

	<-f.content.entered
	// Removed immediately, before the server answers.
	during := f.coord.State.Snapshot()
	assert.Equal(t, []string{"1", "3"}, contentIDs(during))
	assert.True(t, during.Deleting(ref))
	close(f.content.gate)

	require.Error(t, <-done)
	after := f.coord.State.Snapshot()
	assert.Equal(t, []string{"1", "2", "3"}, contentIDs(after), "restored at its original position")
	assert.False(t, f.coord.State.InProgress(ref))

	toast := lastToast(t, f.coord.Notifier)
	assert.Equal(t, KindError, toast.Kind)
	assert.True(t, strings.HasPrefix(toast.Message, "Failed to delete content item:"), toast.Message)
}

func TestDeleteSucceeds(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.coord.Delete(context.Background(), entity.Ref{Type: entity.TypeContent, ID: "1"}))
	assert.Equal(t, []string{"2", "3"}, contentIDs(f.coord.State.Snapshot()))
	assert.Equal(t, `Successfully deleted "Blog post"`, lastToast(t, f.coord.Notifier).Message)
}

func TestDeleteInProgressGuard(t *testing.T) {
	f := newFixture(t)
	f.content.hold()
	ref := entity.Ref{Type: entity.TypeContent, ID: "1"}

	done := make(chan error, 1)
	go func() { done <- f.coord.Delete(context.Background(), ref) }()
	<-f.content.entered

	err := f.coord.Delete(context.Background(), ref)
	assert.True(t, errors.Is(err, ErrInProgress))
	assert.Equal(t, 2, f.content.callCount(), "second delete must not reach the server")

	close(f.content.gate)
	require.NoError(t, <-done)
}

func TestDeleteFailureKeepsNewerEntity(t *testing.T) {
	f := newFixture(t)
	f.content.fail = errors.New("boom")
	f.content.hold()
	ref := entity.Ref{Type: entity.TypeContent, ID: "2"}

	done := make(chan error, 1)
	go func() { done <- f.coord.Delete(context.Background(), ref) }()
	<-f.content.entered

	// A refresh lands a newer copy while the delete is in flight.
	put(f.coord.State, entity.ContentItem{ID: "2", Title: "Video (edited)", Date: june(6)})
	close(f.content.gate)
	require.Error(t, <-done)

	snap := f.coord.State.Snapshot()
	require.Len(t, snap.ContentItems, 3)
	found := false
	for _, it := range snap.ContentItems {
		if it.ID == "2" {
			found = true
			assert.Equal(t, "Video (edited)", it.Title)
		}
	}
	assert.True(t, found)
}

func TestDeleteNotFoundStaysDeleted(t *testing.T) {
	f := newFixture(t)
	put(f.coord.State, entity.ContentItem{ID: "9", Title: "Ghost"})

	err := f.coord.Delete(context.Background(), entity.Ref{Type: entity.TypeContent, ID: "9"})
	assert.True(t, errors.Is(err, api.ErrNotFound))
	assert.Equal(t, []string{"1", "2", "3"}, contentIDs(f.coord.State.Snapshot()))
	assert.Equal(t, KindWarning, lastToast(t, f.coord.Notifier).Kind)
}

func TestMoveSocialPost(t *testing.T) {
	f := newFixture(t)
	ref := entity.Ref{Type: entity.TypeSocial, ID: "p-1"}

	require.NoError(t, f.coord.Move(context.Background(), ref, june(9)))

	require.Len(t, f.social.updates, 1)
	assert.Equal(t, "2024-06-09", f.social.updates[0].Date.String())
	assert.Equal(t, []string{"PUT p-1"}, f.social.calls[1:])
	assert.Equal(t, june(9), f.coord.State.Snapshot().SocialPosts[0].Date)
	assert.Equal(t, KindSuccess, lastToast(t, f.coord.Notifier).Kind)
}

func TestMoveShowsNewDateImmediately(t *testing.T) {
	f := newFixture(t)
	f.content.hold()
	ref := entity.Ref{Type: entity.TypeContent, ID: "1"}

	done := make(chan error, 1)
	go func() { done <- f.coord.Move(context.Background(), ref, june(12)) }()
	<-f.content.entered
	assert.Equal(t, june(12), f.coord.State.Snapshot().ContentItems[0].Date)
	close(f.content.gate)
	require.NoError(t, <-done)
}

func TestMoveRollsBackOnFailure(t *testing.T) {
	f := newFixture(t)
	f.content.fail = errors.New("boom")

	err := f.coord.Move(context.Background(), entity.Ref{Type: entity.TypeContent, ID: "1"}, june(12))
	require.Error(t, err)
	assert.Equal(t, june(5), f.coord.State.Snapshot().ContentItems[0].Date)
	assert.Equal(t, "Failed to move content item: boom", lastToast(t, f.coord.Notifier).Message)
}

func TestMoveWithoutIDRollsBack(t *testing.T) {
	f := newFixture(t)
	f.content.blank = true

	err := f.coord.Move(context.Background(), entity.Ref{Type: entity.TypeContent, ID: "1"}, june(12))
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrNoID))
	snap := f.coord.State.Snapshot()
	assert.Equal(t, []string{"1", "2", "3"}, contentIDs(snap))
	assert.Equal(t, june(5), snap.ContentItems[0].Date)
}

func TestMoveFailureKeepsNewerState(t *testing.T) {
	f := newFixture(t)
	f.content.fail = errors.New("boom")
	f.content.hold()
	ref := entity.Ref{Type: entity.TypeContent, ID: "1"}

	done := make(chan error, 1)
	go func() { done <- f.coord.Move(context.Background(), ref, june(12)) }()
	<-f.content.entered
	put(f.coord.State, entity.ContentItem{ID: "1", Title: "Blog post", Date: june(20)})
	close(f.content.gate)
	require.Error(t, <-done)

	assert.Equal(t, june(20), f.coord.State.Snapshot().ContentItems[0].Date)
}

func TestMoveSameDateIsNoop(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.coord.Move(context.Background(), entity.Ref{Type: entity.TypeContent, ID: "1"}, june(5)))
	assert.Equal(t, 1, f.content.callCount(), "only the initial list")
}

func TestMoveCampaignUnsupported(t *testing.T) {
	f := newFixture(t)
	err := f.coord.Move(context.Background(), entity.Ref{Type: entity.TypeCampaign, ID: "c-1"}, june(9))
	assert.True(t, errors.Is(err, ErrUnsupportedMove))
}

func TestNotifierAutoDismiss(t *testing.T) {
	n := NewNotifier()
	var pending []func()
	var delays []time.Duration
	n.afterFunc = func(d time.Duration, f func()) {
		delays = append(delays, d)
		pending = append(pending, f)
	}

	first := n.Successf("one")
	n.Errorf("two")
	if len(n.Active()) != 2 {
		t.Fatalf("expected two toasts, got %d", len(n.Active()))
	}
	if delays[0] != ToastTTL {
		t.Fatalf("expected %v ttl, got %v", ToastTTL, delays[0])
	}
	if !first.Expires.Equal(first.Created.Add(ToastTTL)) {
		t.Fatalf("unexpected expiry %v", first.Expires)
	}

	pending[0]()
	active := n.Active()
	if len(active) != 1 || active[0].Message != "two" {
		t.Fatalf("expected only the second toast, got %+v", active)
	}
	n.Dismiss(active[0].ID)
	n.Dismiss(active[0].ID)
	pending[1]()
	if len(n.Active()) != 0 {
		t.Fatalf("expected no toasts")
	}
}

func TestStateChangesCoalesce(t *testing.T) {
	s := NewState()
	put(s, entity.ContentItem{ID: "1"})
	put(s, entity.ContentItem{ID: "2"})
	select {
	case <-s.Changes():
	default:
		t.Fatalf("expected a change notification")
	}
	select {
	case <-s.Changes():
		t.Fatalf("notifications should coalesce")
	default:
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := NewState()
	put(s, entity.SocialPost{ID: "p", Platforms: []entity.Platform{entity.PlatformTwitter}})
	snap := s.Snapshot()
	snap.SocialPosts[0].Platforms[0] = entity.PlatformFacebook
	if got := s.Snapshot().SocialPosts[0].Platforms[0]; got != entity.PlatformTwitter {
		t.Fatalf("snapshot shares memory with state, got %q", got)
	}
}

func TestReportGroupsByDate(t *testing.T) {
	f := newFixture(t)
	snap := f.coord.State.Snapshot()
	res := snap.Report(june(6), june(4), filter.Spec{})
	if res.Total != 3 {
		t.Fatalf("expected 3 items, got %d", res.Total)
	}
	if len(res.Sections) != 2 || !res.Sections[0].Date.Equal(june(5)) || !res.Sections[1].Date.Equal(june(6)) {
		t.Fatalf("unexpected sections %+v", res.Sections)
	}
	first := res.Sections[0].Items
	if len(first) != 2 || first[0].Ref.Type != entity.TypeContent || first[1].Ref.Type != entity.TypeSocial {
		t.Fatalf("content items should precede social posts, got %+v", first)
	}
	if first[0].Campaign != "no campaign" {
		t.Fatalf("expected no campaign, got %q", first[0].Campaign)
	}
}
