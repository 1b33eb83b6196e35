package devserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"tableflip.dev/contentcal/pkg/entity"
)

// table is one collection in insertion order.
type table[T entity.Entity] struct {
	noun  string
	rows  []T
	setID func(T, entity.ID) T
}

func (t *table[T]) index(id entity.ID) int {
	for i, row := range t.rows {
		if row.EntityID() == string(id) {
			return i
		}
	}
	return -1
}

func (t *table[T]) get(id entity.ID) (T, bool) {
	if i := t.index(id); i >= 0 {
		return t.rows[i], true
	}
	var zero T
	return zero, false
}

func (t *table[T]) replace(rows []T, newID func() string) {
	t.rows = make([]T, 0, len(rows))
	for _, row := range rows {
		if row.EntityID() == "" {
			row = t.setID(row, entity.ID(newID()))
		}
		t.rows = append(t.rows, row)
	}
}

func (t *table[T]) notFound() string {
	return t.noun + " not found"
}

// stored strips what the server never keeps, such as the rows included in
// campaign listings.
func stored[T entity.Entity](v T) T {
	if c, ok := any(v).(entity.Campaign); ok {
		return any(c.WithoutRelated()).(T)
	}
	return v
}

func list[T entity.Entity](s *Server, t *table[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		s.mu.Lock()
		out := make([]T, len(t.rows))
		copy(out, t.rows)
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, out)
	}
}

func mount[T entity.Entity](r chi.Router, s *Server, t *table[T]) {
	r.Post("/", create(s, t))
	r.Put("/{id}", update(s, t))
	r.Delete("/{id}", remove(s, t))
}

func create[T entity.Entity](s *Server, t *table[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var v T
		if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
			writeMessage(w, http.StatusBadRequest, fmt.Sprintf("%s: %v", errBadBody, err))
			return
		}
		if strings.TrimSpace(v.EntityTitle()) == "" {
			writeMessage(w, http.StatusBadRequest, "title is required")
			return
		}

		s.mu.Lock()
		v = t.setID(stored(v), entity.ID(s.newID()))
		t.rows = append(t.rows, v)
		s.mu.Unlock()

		writeJSON(w, http.StatusCreated, v)
	}
}

// update merges the fields present in the body into the stored row, so
// partial bodies leave the other fields alone.
func update[T entity.Entity](s *Server, t *table[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := entity.ID(chi.URLParam(r, "id"))

		var patch map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			writeMessage(w, http.StatusBadRequest, fmt.Sprintf("%s: %v", errBadBody, err))
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		i := t.index(id)
		if i < 0 {
			writeMessage(w, http.StatusNotFound, t.notFound())
			return
		}
		merged, err := merge(t.rows[i], patch)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, fmt.Sprintf("%s: %v", errBadBody, err))
			return
		}
		merged = t.setID(stored(merged), id)
		t.rows[i] = merged
		writeJSON(w, http.StatusOK, merged)
	}
}

func remove[T entity.Entity](s *Server, t *table[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := entity.ID(chi.URLParam(r, "id"))

		s.mu.Lock()
		defer s.mu.Unlock()
		i := t.index(id)
		if i < 0 {
			writeMessage(w, http.StatusNotFound, t.notFound())
			return
		}
		t.rows = append(t.rows[:i], t.rows[i+1:]...)
		w.WriteHeader(http.StatusNoContent)
	}
}

func merge[T any](current T, patch map[string]json.RawMessage) (T, error) {
	var out T
	b, err := json.Marshal(current)
	if err != nil {
		return out, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(b, &fields); err != nil {
		return out, err
	}
	for k, v := range patch {
		fields[k] = v
	}
	if b, err = json.Marshal(fields); err != nil {
		return out, err
	}
	err = json.Unmarshal(b, &out)
	return out, err
}
