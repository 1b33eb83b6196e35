package app

import (
	"sync"

	"tableflip.dev/contentcal/pkg/entity"
)

// collection is an ordered, id-keyed list with a revision stamp per id. The
// stamp changes on every local write so an async completion can tell whether
// the entity was touched again while it was in flight.
type collection[T entity.Entity] struct {
	items []T
	revs  map[string]uint64
}

func (c *collection[T]) index(id string) int {
	for i, it := range c.items {
		if it.EntityID() == id {
			return i
		}
	}
	return -1
}

func (c *collection[T]) set(v T, rev uint64) {
	if c.revs == nil {
		c.revs = make(map[string]uint64)
	}
	id := v.EntityID()
	if i := c.index(id); i >= 0 {
		c.items[i] = v
	} else {
		c.items = append(c.items, v)
	}
	c.revs[id] = rev
}

func (c *collection[T]) insertAt(v T, at int, rev uint64) {
	if c.revs == nil {
		c.revs = make(map[string]uint64)
	}
	if at < 0 || at > len(c.items) {
		at = len(c.items)
	}
	c.items = append(c.items, v)
	copy(c.items[at+1:], c.items[at:])
	c.items[at] = v
	c.revs[v.EntityID()] = rev
}

func (c *collection[T]) remove(id string) (T, int, bool) {
	var zero T
	i := c.index(id)
	if i < 0 {
		return zero, -1, false
	}
	v := c.items[i]
	c.items = append(c.items[:i:i], c.items[i+1:]...)
	delete(c.revs, id)
	return v, i, true
}

func (c *collection[T]) reset(items []T, rev uint64) {
	c.items = make([]T, 0, len(items))
	c.revs = make(map[string]uint64, len(items))
	for _, it := range items {
		c.set(it, rev)
	}
}

// State holds the three entity collections the calendar renders, plus the
// set of entities with a delete in flight. It is safe for concurrent use;
// locks are never held across network calls.
type State struct {
	mu sync.RWMutex

	campaigns    collection[entity.Campaign]
	contentItems collection[entity.ContentItem]
	socialPosts  collection[entity.SocialPost]

	inProgress map[entity.Ref]struct{}
	rev        uint64

	changes chan struct{}
}

func NewState() *State {
	return &State{
		inProgress: make(map[entity.Ref]struct{}),
		changes:    make(chan struct{}, 1),
	}
}

// Snapshot is a point-in-time copy of State.
type Snapshot struct {
	Campaigns    []entity.Campaign
	ContentItems []entity.ContentItem
	SocialPosts  []entity.SocialPost
	InProgress   map[entity.Ref]bool
}

func (s Snapshot) Deleting(ref entity.Ref) bool {
	return s.InProgress[ref]
}

func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		Campaigns:    append([]entity.Campaign{}, s.campaigns.items...),
		ContentItems: append([]entity.ContentItem{}, s.contentItems.items...),
		SocialPosts:  make([]entity.SocialPost, len(s.socialPosts.items)),
		InProgress:   make(map[entity.Ref]bool, len(s.inProgress)),
	}
	for i, p := range s.socialPosts.items {
		snap.SocialPosts[i] = p.Clone()
	}
	for ref := range s.inProgress {
		snap.InProgress[ref] = true
	}
	return snap
}

// Changes receives a value after any mutation. Bursts coalesce into one
// notification; readers take a fresh Snapshot.
func (s *State) Changes() <-chan struct{} {
	return s.changes
}

func (s *State) notifyLocked() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

func (s *State) nextRevLocked() uint64 {
	s.rev++
	return s.rev
}

// InProgress reports whether ref has a delete in flight.
func (s *State) InProgress(ref entity.Ref) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.inProgress[ref]
	return ok
}

// mark records ref as in flight. It returns false if it already was.
func (s *State) mark(ref entity.Ref) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.inProgress[ref]; ok {
		return false
	}
	s.inProgress[ref] = struct{}{}
	s.notifyLocked()
	return true
}

func (s *State) unmark(ref entity.Ref) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inProgress, ref)
	s.notifyLocked()
}

func (s *State) SetCampaigns(items []entity.Campaign) {
	replaceAll(s, items)
}

func (s *State) SetContentItems(items []entity.ContentItem) {
	replaceAll(s, items)
}

func (s *State) SetSocialPosts(items []entity.SocialPost) {
	replaceAll(s, items)
}

// Find looks up an entity of any type by ref.
func (s *State) Find(ref entity.Ref) (entity.Entity, bool) {
	switch ref.Type {
	case entity.TypeCampaign:
		v, _, ok := lookup[entity.Campaign](s, ref.ID)
		return v, ok
	case entity.TypeContent:
		v, _, ok := lookup[entity.ContentItem](s, ref.ID)
		return v, ok
	case entity.TypeSocial:
		v, _, ok := lookup[entity.SocialPost](s, ref.ID)
		return v, ok
	}
	return nil, false
}

// collectionOf selects the collection holding T. Callers hold s.mu.
func collectionOf[T entity.Entity](s *State) *collection[T] {
	var zero T
	switch any(zero).(type) {
	case entity.Campaign:
		return any(&s.campaigns).(*collection[T])
	case entity.ContentItem:
		return any(&s.contentItems).(*collection[T])
	case entity.SocialPost:
		return any(&s.socialPosts).(*collection[T])
	}
	panic("app: no collection for entity type")
}

func replaceAll[T entity.Entity](s *State, items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	collectionOf[T](s).reset(items, s.nextRevLocked())
	s.notifyLocked()
}

func lookup[T entity.Entity](s *State, id string) (T, uint64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := collectionOf[T](s)
	var zero T
	i := c.index(id)
	if i < 0 {
		return zero, 0, false
	}
	return c.items[i], c.revs[id], true
}

// put replaces the entity with v's id, or appends v. It returns the new
// revision.
func put[T entity.Entity](s *State, v T) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	rev := s.nextRevLocked()
	collectionOf[T](s).set(v, rev)
	s.notifyLocked()
	return rev
}

// putIfRev writes v only if the entity is still at revision want.
func putIfRev[T entity.Entity](s *State, v T, want uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := collectionOf[T](s)
	if c.index(v.EntityID()) < 0 || c.revs[v.EntityID()] != want {
		return false
	}
	c.set(v, s.nextRevLocked())
	s.notifyLocked()
	return true
}

func take[T entity.Entity](s *State, id string) (T, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, at, ok := collectionOf[T](s).remove(id)
	if ok {
		s.notifyLocked()
	}
	return v, at, ok
}

// restore re-inserts v at its old position unless an entity with the same id
// has appeared since.
func restore[T entity.Entity](s *State, v T, at int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := collectionOf[T](s)
	if c.index(v.EntityID()) >= 0 {
		return false
	}
	c.insertAt(v, at, s.nextRevLocked())
	s.notifyLocked()
	return true
}
