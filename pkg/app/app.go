// Package app holds the client's entity state, transient notifications and the
// coordinator that applies mutations optimistically against the backend.
package app

import (
	"errors"
	"fmt"
	"log/slog"

	"tableflip.dev/contentcal/pkg/api"
	"tableflip.dev/contentcal/pkg/prefs"
	"tableflip.dev/contentcal/pkg/store"
	"tableflip.dev/contentcal/pkg/views"
)

// Session wires configuration, preferences, state and the coordinator so UIs
// and CLIs can share them.
type Session struct {
	Config      store.Config
	Prefs       *prefs.Store
	Views       *views.Manager
	State       *State
	Notifier    *Notifier
	Coordinator *Coordinator
}

type options struct {
	docs    store.Documents
	backend *Backend
	logger  *slog.Logger
}

type Option func(*options)

// WithDocuments replaces the diskv preferences storage.
func WithDocuments(docs store.Documents) Option {
	return func(o *options) {
		o.docs = docs
	}
}

// WithBackend replaces the REST backend built from the config.
func WithBackend(b Backend) Option {
	return func(o *options) {
		o.backend = &b
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Open builds a Session. A nil cfg loads configuration from the environment.
func Open(cfg store.Config, opts ...Option) (*Session, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	if cfg == nil {
		var err error
		if cfg, err = store.LoadConfig(); err != nil {
			return nil, err
		}
	}

	if o.docs == nil {
		docs, err := store.Load(cfg)
		if err != nil {
			return nil, fmt.Errorf("app: open preferences: %w", err)
		}
		o.docs = docs
	}
	ps, err := prefs.NewStore(o.docs, prefs.WithLogger(o.logger))
	if err != nil {
		return nil, err
	}

	if o.backend == nil {
		client, err := api.New(cfg.APIBase(), api.WithTimeout(cfg.Timeout()))
		if err != nil {
			return nil, err
		}
		b := NewBackend(client)
		o.backend = &b
	}

	state := NewState()
	notifier := NewNotifier()
	return &Session{
		Config:   cfg,
		Prefs:    ps,
		Views:    views.NewManager(ps),
		State:    state,
		Notifier: notifier,
		Coordinator: &Coordinator{
			State:    state,
			Backend:  *o.backend,
			Notifier: notifier,
			Logger:   o.logger,
		},
	}, nil
}

// ErrNoSession is returned by runners invoked without an opened Session.
var ErrNoSession = errors.New("app: no session configured")
