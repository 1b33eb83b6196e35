package views

import (
	"fmt"
	"strings"

	"tableflip.dev/contentcal/pkg/prefs"
)

func clone(views []prefs.SavedView) []prefs.SavedView {
	return prefs.Preferences{SavedViews: views}.Clone().SavedViews
}

func indexOf(views []prefs.SavedView, id string) int {
	for i, v := range views {
		if v.ID == id {
			return i
		}
	}
	return -1
}

// Append returns views with v added at the end.
func Append(views []prefs.SavedView, v prefs.SavedView) []prefs.SavedView {
	out := clone(views)
	v.Filters = v.Filters.Clone()
	return append(out, v)
}

// Duplicate returns views plus a copy of view id with newID.
func Duplicate(views []prefs.SavedView, id, name, newID string) ([]prefs.SavedView, prefs.SavedView, error) {
	i := indexOf(views, id)
	if i < 0 {
		return nil, prefs.SavedView{}, fmt.Errorf("%w: %s", ErrUnknownView, id)
	}
	src := views[i]
	name = strings.TrimSpace(name)
	if name == "" {
		name = src.Name + CopySuffix
	}
	cp := prefs.SavedView{ID: newID, Name: name, Filters: src.Filters.Clone()}
	return Append(views, cp), cp, nil
}

// ToggleStar flips the starred flag of view id.
func ToggleStar(views []prefs.SavedView, id string) ([]prefs.SavedView, error) {
	i := indexOf(views, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownView, id)
	}
	out := clone(views)
	out[i].Starred = !out[i].Starred
	return out, nil
}

// Delete returns views without id. The default view is never removed.
func Delete(views []prefs.SavedView, id string) ([]prefs.SavedView, error) {
	if id == prefs.DefaultViewID {
		return clone(views), nil
	}
	i := indexOf(views, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownView, id)
	}
	out := clone(views)
	return append(out[:i], out[i+1:]...), nil
}

// Search keeps the views whose name contains query, case-insensitively. An
// empty query keeps everything.
func Search(views []prefs.SavedView, query string) []prefs.SavedView {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]prefs.SavedView, 0, len(views))
	for _, v := range views {
		if q == "" || strings.Contains(strings.ToLower(v.Name), q) {
			out = append(out, v)
		}
	}
	return out
}

// Group splits views into starred and unstarred, each in input order.
func Group(views []prefs.SavedView) (starred, others []prefs.SavedView) {
	for _, v := range views {
		if v.Starred {
			starred = append(starred, v)
		} else {
			others = append(others, v)
		}
	}
	return starred, others
}
