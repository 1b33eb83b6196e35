// Package devserver is an in-memory backend for the campaigns, content items
// and social posts REST resources. It is meant for local use and tests.
package devserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"tableflip.dev/contentcal/pkg/api"
	"tableflip.dev/contentcal/pkg/entity"
)

type Option func(*Server)

// WithLogger logs every request at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithIDs replaces the uuid generator used for created rows.
func WithIDs(next func() string) Option {
	return func(s *Server) { s.newID = next }
}

// WithLatency delays every response by d.
func WithLatency(d time.Duration) Option {
	return func(s *Server) { s.latency = d }
}

// Server holds the three collections in memory and serves them over HTTP.
type Server struct {
	mu           sync.Mutex
	campaigns    table[entity.Campaign]
	contentItems table[entity.ContentItem]
	socialPosts  table[entity.SocialPost]

	newID   func() string
	latency time.Duration
	logger  *slog.Logger
	router  chi.Router
}

func New(opts ...Option) *Server {
	s := &Server{
		campaigns: table[entity.Campaign]{
			noun:  "Campaign",
			setID: func(c entity.Campaign, id entity.ID) entity.Campaign { c.ID = id; return c },
		},
		contentItems: table[entity.ContentItem]{
			noun:  "Content item",
			setID: func(c entity.ContentItem, id entity.ID) entity.ContentItem { c.ID = id; return c },
		},
		socialPosts: table[entity.SocialPost]{
			noun:  "Social post",
			setID: func(p entity.SocialPost, id entity.ID) entity.SocialPost { p.ID = id; return p },
		},
		newID:  uuid.NewString,
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Route(api.CampaignsPath, func(r chi.Router) {
		r.Get("/", s.listCampaigns)
		mount(r, s, &s.campaigns)
	})
	r.Route(api.ContentItemsPath, func(r chi.Router) {
		r.Get("/", list(s, &s.contentItems))
		mount(r, s, &s.contentItems)
	})
	r.Route(api.SocialPostsPath, func(r chi.Router) {
		r.Get("/", list(s, &s.socialPosts))
		mount(r, s, &s.socialPosts)
	})
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Seed replaces the stored collections. Rows without an id are given one.
func (s *Server) Seed(campaigns []entity.Campaign, items []entity.ContentItem, posts []entity.SocialPost) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.campaigns.replace(campaigns, s.newID)
	s.contentItems.replace(items, s.newID)
	s.socialPosts.replace(posts, s.newID)
}

// ContentItem returns the stored content item with id.
func (s *Server) ContentItem(id entity.ID) (entity.ContentItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contentItems.get(id)
}

// SocialPost returns the stored social post with id.
func (s *Server) SocialPost(id entity.ID) (entity.SocialPost, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.socialPosts.get(id)
	return p.Clone(), ok
}

// Campaign returns the stored campaign with id, without related rows.
func (s *Server) Campaign(id entity.ID) (entity.Campaign, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.campaigns.get(id)
}

// listCampaigns includes each campaign's content items and social posts.
func (s *Server) listCampaigns(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	out := make([]entity.Campaign, 0, len(s.campaigns.rows))
	for _, c := range s.campaigns.rows {
		for _, it := range s.contentItems.rows {
			if it.CampaignID == c.ID {
				c.ContentItems = append(c.ContentItems, it)
			}
		}
		for _, p := range s.socialPosts.rows {
			if p.CampaignID == c.ID {
				c.SocialPosts = append(c.SocialPosts, p.Clone())
			}
		}
		out = append(out, c)
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.latency > 0 {
			select {
			case <-time.After(s.latency):
			case <-r.Context().Done():
				return
			}
		}
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

type message struct {
	Message string `json:"message"`
}

var errBadBody = errors.New("invalid JSON body")

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, message{Message: msg})
}
