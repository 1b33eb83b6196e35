// Package prefs persists the versioned user preferences document: theme,
// active filters, navigation panel state and saved views.
package prefs

import (
	"errors"
	"fmt"

	"tableflip.dev/contentcal/pkg/filter"
)

const (
	// StorageKey is the document key preferences live under.
	StorageKey = "app_preferences"

	// CurrentVersion is the schema version this build reads and writes.
	CurrentVersion = 2

	DefaultViewID   = "default"
	DefaultViewName = "All Items"
)

// ErrInvalid marks a preferences document that failed structural validation.
var ErrInvalid = errors.New("prefs: invalid preferences")

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Toggle flips between light and dark.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// SavedView is a named filter preset.
type SavedView struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Filters filter.Spec `json:"filters"`
	Starred bool        `json:"starred"`
}

// Preferences is the whole persisted document.
type Preferences struct {
	Theme        Theme       `json:"theme"`
	Filters      filter.Spec `json:"filters"`
	NavPanelOpen bool        `json:"navPanelOpen"`
	SavedViews   []SavedView `json:"savedViews"`
	ActiveView   string      `json:"activeView"`
	Version      int         `json:"version"`
}

// DefaultView is the undeletable unfiltered view.
func DefaultView() SavedView {
	return SavedView{ID: DefaultViewID, Name: DefaultViewName, Filters: filter.Clear()}
}

// Defaults returns a fresh copy of the hard defaults.
func Defaults() Preferences {
	return Preferences{
		Theme:        ThemeLight,
		Filters:      filter.Clear(),
		NavPanelOpen: false,
		SavedViews:   []SavedView{DefaultView()},
		ActiveView:   DefaultViewID,
		Version:      CurrentVersion,
	}
}

// Clone returns a deep copy so callers never share slices with the store.
func (p Preferences) Clone() Preferences {
	out := p
	out.Filters = p.Filters.Clone()
	out.SavedViews = make([]SavedView, len(p.SavedViews))
	for i, v := range p.SavedViews {
		v.Filters = v.Filters.Clone()
		out.SavedViews[i] = v
	}
	return out
}

// View returns the saved view with id.
func (p Preferences) View(id string) (SavedView, bool) {
	for _, v := range p.SavedViews {
		if v.ID == id {
			return v, true
		}
	}
	return SavedView{}, false
}

// Validate checks a typed document. The default view must exist and the
// active view must name a saved view.
func (p Preferences) Validate() error {
	if !p.Theme.Valid() {
		return fmt.Errorf("%w: theme %q", ErrInvalid, p.Theme)
	}
	seen := make(map[string]bool, len(p.SavedViews))
	for _, v := range p.SavedViews {
		if v.ID == "" {
			return fmt.Errorf("%w: saved view without id", ErrInvalid)
		}
		if seen[v.ID] {
			return fmt.Errorf("%w: duplicate saved view %q", ErrInvalid, v.ID)
		}
		seen[v.ID] = true
	}
	if !seen[DefaultViewID] {
		return fmt.Errorf("%w: default view missing", ErrInvalid)
	}
	if !seen[p.ActiveView] {
		return fmt.Errorf("%w: active view %q not found", ErrInvalid, p.ActiveView)
	}
	return nil
}
