package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tableflip.dev/contentcal/pkg/api"
	"tableflip.dev/contentcal/pkg/entity"
)

var (
	// ErrInProgress is returned for a delete of an entity already being
	// deleted.
	ErrInProgress = errors.New("app: operation already in progress")

	// ErrUnsupportedMove is returned when moving anything but a content item
	// or social post.
	ErrUnsupportedMove = errors.New("app: only content items and social posts can be moved")
)

// Resource is the remote CRUD surface of one collection. *api.Resource
// implements it.
type Resource[T entity.Entity] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, v T) (T, error)
	Update(ctx context.Context, id string, v T) (T, error)
	Delete(ctx context.Context, id string) error
}

// Backend groups the three remote collections.
type Backend struct {
	Campaigns    Resource[entity.Campaign]
	ContentItems Resource[entity.ContentItem]
	SocialPosts  Resource[entity.SocialPost]
}

func NewBackend(c *api.Client) Backend {
	return Backend{
		Campaigns:    c.Campaigns(),
		ContentItems: c.ContentItems(),
		SocialPosts:  c.SocialPosts(),
	}
}

// Coordinator applies mutations to State and the backend. Creates and updates
// wait for the server; deletes and moves change State first and roll back when
// the request fails. Every mutation ends with a toast.
type Coordinator struct {
	State    *State
	Backend  Backend
	Notifier *Notifier
	Logger   *slog.Logger
}

func (c *Coordinator) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// Refresh loads all three collections. A failed collection keeps its previous
// contents; the failures are joined.
func (c *Coordinator) Refresh(ctx context.Context) error {
	var errs []error
	if err := refresh(ctx, c, c.Backend.Campaigns, "campaigns"); err != nil {
		errs = append(errs, err)
	}
	if err := refresh(ctx, c, c.Backend.ContentItems, "content items"); err != nil {
		errs = append(errs, err)
	}
	if err := refresh(ctx, c, c.Backend.SocialPosts, "social posts"); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func refresh[T entity.Entity](ctx context.Context, c *Coordinator, res Resource[T], what string) error {
	if res == nil {
		return fmt.Errorf("app: no backend for %s", what)
	}
	items, err := res.List(ctx)
	if err != nil {
		c.logger().Error("app: fetch failed", "collection", what, "err", err)
		c.Notifier.Errorf("Failed to load %s: %v", what, err)
		return fmt.Errorf("app: fetch %s: %w", what, err)
	}
	replaceAll(c.State, items)
	return nil
}

func (c *Coordinator) SaveCampaign(ctx context.Context, v entity.Campaign) (entity.Campaign, error) {
	return save(ctx, c, c.Backend.Campaigns, v.WithoutRelated())
}

func (c *Coordinator) SaveContentItem(ctx context.Context, v entity.ContentItem) (entity.ContentItem, error) {
	return save(ctx, c, c.Backend.ContentItems, v)
}

func (c *Coordinator) SaveSocialPost(ctx context.Context, v entity.SocialPost) (entity.SocialPost, error) {
	return save(ctx, c, c.Backend.SocialPosts, v.Clone())
}

// save creates v when it has no id and updates it otherwise. State changes
// only after the server answers.
func save[T entity.Entity](ctx context.Context, c *Coordinator, res Resource[T], v T) (T, error) {
	noun := v.EntityType().Noun()
	verb := "create"
	var out T
	var err error
	if v.EntityID() == "" {
		out, err = res.Create(ctx, v)
	} else {
		verb = "update"
		out, err = res.Update(ctx, v.EntityID(), v)
	}
	if err == nil && out.EntityID() == "" {
		err = api.ErrNoID
	}

	if err != nil {
		if verb == "update" && errors.Is(err, api.ErrNotFound) {
			take[T](c.State, v.EntityID())
			c.Notifier.Warnf("%s not found: %q", v.EntityType().Label(), v.EntityTitle())
		} else {
			c.Notifier.Errorf("Failed to %s %s: %v", verb, noun, err)
		}
		var zero T
		return zero, fmt.Errorf("app: %s %s: %w", verb, noun, err)
	}

	put(c.State, out)
	c.Notifier.Successf("Successfully %sd %q", verb, out.EntityTitle())
	return out, nil
}

// Delete removes the entity locally, then on the server. A failed request
// puts it back unless a newer entity with the same id has arrived meanwhile.
func (c *Coordinator) Delete(ctx context.Context, ref entity.Ref) error {
	switch ref.Type {
	case entity.TypeCampaign:
		return remove(ctx, c, c.Backend.Campaigns, ref)
	case entity.TypeContent:
		return remove(ctx, c, c.Backend.ContentItems, ref)
	case entity.TypeSocial:
		return remove(ctx, c, c.Backend.SocialPosts, ref)
	}
	return fmt.Errorf("app: unknown entity type %q", ref.Type)
}

func remove[T entity.Entity](ctx context.Context, c *Coordinator, res Resource[T], ref entity.Ref) error {
	if !c.State.mark(ref) {
		return fmt.Errorf("app: delete %s: %w", ref, ErrInProgress)
	}
	defer c.State.unmark(ref)

	noun := ref.Type.Noun()
	old, at, found := take[T](c.State, ref.ID)
	title := old.EntityTitle()
	if !found {
		title = ref.ID
	}

	err := res.Delete(ctx, ref.ID)
	switch {
	case err == nil:
		c.Notifier.Successf("Successfully deleted %q", title)
		return nil
	case errors.Is(err, api.ErrNotFound):
		// Already gone on the server; keep it gone here.
		c.Notifier.Warnf("%s not found: %q", ref.Type.Label(), title)
		return fmt.Errorf("app: delete %s: %w", ref, err)
	}

	if found && !restore(c.State, old, at) {
		c.logger().Warn("app: delete failed but a newer version exists, not restoring", "ref", ref.String())
	}
	c.Notifier.Errorf("Failed to delete %s: %v", noun, err)
	return fmt.Errorf("app: delete %s: %w", ref, err)
}

// movable is implemented by the entities that sit on a single date.
type movable[T any] interface {
	entity.Entity
	ScheduledOn() entity.Date
	WithDate(entity.Date) T
}

// Move reschedules a content item or social post to date. The new date shows
// immediately and is reverted if the server rejects it.
func (c *Coordinator) Move(ctx context.Context, ref entity.Ref, date entity.Date) error {
	switch ref.Type {
	case entity.TypeContent:
		return move(ctx, c, c.Backend.ContentItems, ref, date)
	case entity.TypeSocial:
		return move(ctx, c, c.Backend.SocialPosts, ref, date)
	}
	return fmt.Errorf("app: move %s: %w", ref, ErrUnsupportedMove)
}

func move[T movable[T]](ctx context.Context, c *Coordinator, res Resource[T], ref entity.Ref, date entity.Date) error {
	cur, _, ok := lookup[T](c.State, ref.ID)
	if !ok {
		return fmt.Errorf("app: move %s: %w", ref, api.ErrNotFound)
	}
	from := cur.ScheduledOn()
	if from.Equal(date) {
		return nil
	}

	moved := cur.WithDate(date)
	rev := put(c.State, moved)

	saved, err := res.Update(ctx, ref.ID, moved)
	if err == nil && saved.EntityID() == "" {
		err = api.ErrNoID
	}
	if err == nil {
		if !putIfRev(c.State, saved, rev) {
			c.logger().Info("app: entity changed while moving, keeping local version", "ref", ref.String())
		}
		c.Notifier.Successf("Moved %q to %s", saved.EntityTitle(), date)
		return nil
	}

	if errors.Is(err, api.ErrNotFound) {
		take[T](c.State, ref.ID)
		c.Notifier.Warnf("%s not found: %q", ref.Type.Label(), cur.EntityTitle())
		return fmt.Errorf("app: move %s: %w", ref, err)
	}

	if !putIfRev(c.State, moved.WithDate(from), rev) {
		c.logger().Warn("app: move failed but the entity changed since, not reverting", "ref", ref.String())
	}
	c.Notifier.Errorf("Failed to move %s: %v", ref.Type.Noun(), err)
	return fmt.Errorf("app: move %s: %w", ref, err)
}
