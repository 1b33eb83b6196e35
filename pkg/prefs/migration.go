package prefs

import (
	"errors"
	"fmt"
)

// ErrMigrationGap is returned when no migration is registered for a version
// between the stored one and CurrentVersion.
var ErrMigrationGap = errors.New("prefs: migration gap")

// Migration turns a document of version N into version N+1. It receives a
// private copy and may modify it. The runner stamps the new version.
type Migration func(doc map[string]any) map[string]any

// Migrations are keyed by source version.
type Migrations map[int]Migration

// DefaultMigrations returns the registry for CurrentVersion.
func DefaultMigrations() Migrations {
	return Migrations{
		0: addSavedViews,
		1: addStarsAndPinDefault,
	}
}

// Check reports the first missing step between from and to.
func (ms Migrations) Check(from, to int) error {
	for v := from; v < to; v++ {
		if ms[v] == nil {
			return fmt.Errorf("%w: no migration from version %d", ErrMigrationGap, v)
		}
	}
	return nil
}

// Migrate applies every step from the document's version up to target, in
// order. doc is not modified.
func Migrate(doc map[string]any, ms Migrations, target int) (map[string]any, error) {
	from, ok := docVersion(doc)
	if !ok {
		return nil, fmt.Errorf("%w: version is not a number", ErrInvalid)
	}
	if err := ms.Check(from, target); err != nil {
		return nil, err
	}
	out := copyDoc(doc)
	for v := from; v < target; v++ {
		out = ms[v](out)
		if out == nil {
			return nil, fmt.Errorf("prefs: migration from version %d returned nothing", v)
		}
		out["version"] = float64(v + 1)
	}
	return out, nil
}

// docVersion reads the version key. Absent counts as version 0.
func docVersion(doc map[string]any) (int, bool) {
	raw, present := doc["version"]
	if !present || raw == nil {
		return 0, true
	}
	f, ok := raw.(float64)
	if !ok || f != float64(int(f)) || f < 0 {
		return 0, false
	}
	return int(f), true
}

func emptyFiltersDoc() map[string]any {
	return map[string]any{
		"status":   []any{},
		"campaign": []any{},
		"type":     []any{},
	}
}

// v0 documents only carried theme, filters and navPanelOpen. The current
// filters become the default view.
func addSavedViews(doc map[string]any) map[string]any {
	filters, ok := doc["filters"]
	if !ok || filters == nil {
		filters = emptyFiltersDoc()
	}
	doc["savedViews"] = []any{
		map[string]any{
			"id":      DefaultViewID,
			"name":    DefaultViewName,
			"filters": copyValue(filters),
		},
	}
	doc["activeView"] = DefaultViewID
	return doc
}

// v2 adds starred to every view and keeps the unfiltered default view first.
func addStarsAndPinDefault(doc map[string]any) map[string]any {
	views, _ := doc["savedViews"].([]any)
	out := make([]any, 0, len(views)+1)
	out = append(out, map[string]any{
		"id":      DefaultViewID,
		"name":    DefaultViewName,
		"filters": emptyFiltersDoc(),
		"starred": false,
	})
	for _, raw := range views {
		v, ok := raw.(map[string]any)
		if !ok {
			// Left for validation to reject.
			out = append(out, raw)
			continue
		}
		if v["id"] == DefaultViewID {
			if starred, ok := v["starred"].(bool); ok {
				out[0].(map[string]any)["starred"] = starred
			}
			continue
		}
		if _, ok := v["starred"]; !ok {
			v["starred"] = false
		}
		out = append(out, v)
	}
	doc["savedViews"] = out
	return doc
}

func copyDoc(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return copyDoc(t)
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = copyValue(t[i])
		}
		return out
	default:
		return v
	}
}
