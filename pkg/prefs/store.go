package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"tableflip.dev/contentcal/pkg/filter"
	"tableflip.dev/contentcal/pkg/store"
)

// Key names a top-level preferences field that Update may set.
type Key string

const (
	KeyTheme        Key = "theme"
	KeyFilters      Key = "filters"
	KeyNavPanelOpen Key = "navPanelOpen"
	KeySavedViews   Key = "savedViews"
	KeyActiveView   Key = "activeView"
)

// Change is one key assignment for UpdateAll.
type Change struct {
	Key   Key
	Value any
}

// Store loads, migrates and saves preferences through store.Documents.
// Persistence is best effort: Load and Save never fail, they log.
type Store struct {
	docs       store.Documents
	migrations Migrations
	logger     *slog.Logger

	mu sync.Mutex
}

type Option func(*Store)

// WithMigrations replaces the migration registry.
func WithMigrations(ms Migrations) Option {
	return func(s *Store) {
		s.migrations = ms
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore returns a Store over docs. The migration registry must cover every
// version up to CurrentVersion.
func NewStore(docs store.Documents, opts ...Option) (*Store, error) {
	if docs == nil {
		return nil, errors.New("prefs: documents required")
	}
	s := &Store{
		docs:       docs,
		migrations: DefaultMigrations(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.migrations.Check(0, CurrentVersion); err != nil {
		return nil, err
	}
	return s, nil
}

// Load returns the stored preferences, migrating and persisting stale
// documents first. Absent, corrupt or invalid documents yield Defaults, as do
// documents written by a newer schema version. Load never rewrites those; the
// next Update replaces them.
func (s *Store) Load() Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().Clone()
}

func (s *Store) load() Preferences {
	data, err := s.docs.Read(StorageKey)
	if errors.Is(err, store.ErrNotFound) {
		return Defaults()
	}
	if err != nil {
		s.logger.Error("prefs: error loading preferences", "err", err)
		return Defaults()
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil || doc == nil {
		s.logger.Error("prefs: corrupt preferences, resetting to defaults", "err", err)
		return Defaults()
	}

	version, ok := docVersion(doc)
	if !ok {
		s.logger.Error("prefs: invalid preferences found, resetting to defaults", "err", "version is not a number")
		return Defaults()
	}
	if version > CurrentVersion {
		s.logger.Error("prefs: preferences from a newer version, resetting to defaults", "version", version, "current", CurrentVersion)
		return Defaults()
	}
	if version < CurrentVersion {
		migrated, err := Migrate(doc, s.migrations, CurrentVersion)
		if err != nil {
			s.logger.Error("prefs: migration failed, resetting to defaults", "from", version, "err", err)
			return Defaults()
		}
		doc = migrated
		s.write(doc)
	}

	if err := validateDoc(doc); err != nil {
		s.logger.Error("prefs: invalid preferences found, resetting to defaults", "err", err)
		return Defaults()
	}

	p, err := bind(doc)
	if err != nil {
		s.logger.Error("prefs: invalid preferences found, resetting to defaults", "err", err)
		return Defaults()
	}
	if _, ok := p.View(p.ActiveView); !ok {
		s.logger.Warn("prefs: active view not found, using default", "view", p.ActiveView)
		p.ActiveView = DefaultViewID
	}
	if err := p.Validate(); err != nil {
		s.logger.Error("prefs: invalid preferences found, resetting to defaults", "err", err)
		return Defaults()
	}
	return p
}

func bind(doc map[string]any) (Preferences, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return Preferences{}, err
	}
	var p Preferences
	if err := json.Unmarshal(b, &p); err != nil {
		return Preferences{}, err
	}
	return p, nil
}

// Save persists p. Failures are logged and otherwise ignored.
func (s *Store) Save(p Preferences) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.write(p)
}

func (s *Store) write(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("prefs: error saving preferences", "err", err)
		return
	}
	if err := s.docs.Write(StorageKey, b); err != nil {
		s.logger.Error("prefs: error saving preferences", "err", err)
	}
}

// Update loads the current document, sets key to value, saves and returns the
// result. A value of the wrong type, or one that leaves the document invalid,
// is rejected and nothing is written.
func (s *Store) Update(key Key, value any) (Preferences, error) {
	return s.UpdateAll(Change{Key: key, Value: value})
}

// UpdateAll applies several changes in one read-modify-write.
func (s *Store) UpdateAll(changes ...Change) (Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.load()
	for _, c := range changes {
		if err := apply(&p, c); err != nil {
			return Preferences{}, err
		}
	}
	if err := p.Validate(); err != nil {
		return Preferences{}, err
	}
	p.Version = CurrentVersion
	s.write(p)
	return p.Clone(), nil
}

func apply(p *Preferences, c Change) error {
	switch c.Key {
	case KeyTheme:
		switch v := c.Value.(type) {
		case Theme:
			p.Theme = v
		case string:
			p.Theme = Theme(v)
		default:
			return typeError(c)
		}
	case KeyFilters:
		v, ok := c.Value.(filter.Spec)
		if !ok {
			return typeError(c)
		}
		p.Filters = v.Clone()
	case KeyNavPanelOpen:
		v, ok := c.Value.(bool)
		if !ok {
			return typeError(c)
		}
		p.NavPanelOpen = v
	case KeySavedViews:
		v, ok := c.Value.([]SavedView)
		if !ok {
			return typeError(c)
		}
		p.SavedViews = Preferences{SavedViews: v}.Clone().SavedViews
	case KeyActiveView:
		v, ok := c.Value.(string)
		if !ok {
			return typeError(c)
		}
		p.ActiveView = v
	default:
		return fmt.Errorf("prefs: unknown key %q", c.Key)
	}
	return nil
}

func typeError(c Change) error {
	return fmt.Errorf("prefs: %s cannot be set to %T", c.Key, c.Value)
}

// Watch emits a freshly loaded document whenever the stored preferences
// change, including writes by other processes. The channel closes when ctx
// is done.
func (s *Store) Watch(ctx context.Context) (<-chan Preferences, error) {
	events, err := s.docs.Watch(ctx)
	if err != nil {
		return nil, fmt.Errorf("prefs: watch: %w", err)
	}
	out := make(chan Preferences, 1)
	go func() {
		defer close(out)
		for ev := range events {
			if ev.Type == store.EventDocumentChanged && ev.Key != StorageKey {
				continue
			}
			p := s.Load()
			select {
			case out <- p:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
