// Package views manages saved filter views. Every operation is a pure
// transform of the saved view list followed by one preferences update.
package views

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"tableflip.dev/contentcal/pkg/filter"
	"tableflip.dev/contentcal/pkg/prefs"
)

var (
	ErrUnknownView  = errors.New("views: unknown view")
	ErrNameRequired = errors.New("views: view name required")
)

// CopySuffix is appended to the name of a duplicated view.
const CopySuffix = " (Copy)"

// Manager applies saved view operations to a preferences store.
type Manager struct {
	prefs *prefs.Store
	newID func() string
}

func NewManager(p *prefs.Store) *Manager {
	return &Manager{
		prefs: p,
		newID: func() string { return "view-" + uuid.NewString() },
	}
}

// List returns the saved views in stored order.
func (m *Manager) List() []prefs.SavedView {
	return m.prefs.Load().SavedViews
}

// Active returns the active view.
func (m *Manager) Active() prefs.SavedView {
	p := m.prefs.Load()
	if v, ok := p.View(p.ActiveView); ok {
		return v
	}
	return prefs.DefaultView()
}

// Select makes id the active view and its filters the working filters.
func (m *Manager) Select(id string) (prefs.Preferences, error) {
	v, ok := m.prefs.Load().View(id)
	if !ok {
		return prefs.Preferences{}, fmt.Errorf("%w: %s", ErrUnknownView, id)
	}
	return m.prefs.UpdateAll(
		prefs.Change{Key: prefs.KeyFilters, Value: v.Filters.Clone()},
		prefs.Change{Key: prefs.KeyActiveView, Value: id},
	)
}

// Save stores the current filters as a new active view.
func (m *Manager) Save(name string, current filter.Spec) (prefs.SavedView, prefs.Preferences, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return prefs.SavedView{}, prefs.Preferences{}, ErrNameRequired
	}
	view := prefs.SavedView{ID: m.newID(), Name: name, Filters: current.Clone()}
	views := Append(m.List(), view)
	p, err := m.prefs.UpdateAll(
		prefs.Change{Key: prefs.KeySavedViews, Value: views},
		prefs.Change{Key: prefs.KeyActiveView, Value: view.ID},
		prefs.Change{Key: prefs.KeyFilters, Value: current.Clone()},
	)
	return view, p, err
}

// Duplicate copies view id under a new id. An empty name yields the
// original's name with CopySuffix. The copy is unstarred and not active.
func (m *Manager) Duplicate(id, name string) (prefs.SavedView, prefs.Preferences, error) {
	list := m.List()
	views, view, err := Duplicate(list, id, name, m.newID())
	if err != nil {
		return prefs.SavedView{}, prefs.Preferences{}, err
	}
	p, err := m.prefs.Update(prefs.KeySavedViews, views)
	return view, p, err
}

func (m *Manager) ToggleStar(id string) (prefs.Preferences, error) {
	views, err := ToggleStar(m.List(), id)
	if err != nil {
		return prefs.Preferences{}, err
	}
	return m.prefs.Update(prefs.KeySavedViews, views)
}

// Delete removes view id. Deleting the default view does nothing. When the
// active view is deleted the default view becomes active.
func (m *Manager) Delete(id string) (prefs.Preferences, error) {
	p := m.prefs.Load()
	if id == prefs.DefaultViewID {
		return p, nil
	}
	views, err := Delete(p.SavedViews, id)
	if err != nil {
		return prefs.Preferences{}, err
	}
	changes := []prefs.Change{{Key: prefs.KeySavedViews, Value: views}}
	if p.ActiveView == id {
		changes = append(changes, prefs.Change{Key: prefs.KeyActiveView, Value: prefs.DefaultViewID})
	}
	return m.prefs.UpdateAll(changes...)
}

// Search returns the views whose name contains query, ignoring case.
func (m *Manager) Search(query string) []prefs.SavedView {
	return Search(m.List(), query)
}

// Grouped splits the views matching query into starred and the rest.
func (m *Manager) Grouped(query string) (starred, others []prefs.SavedView) {
	return Group(Search(m.List(), query))
}
