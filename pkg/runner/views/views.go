// Package views lists and edits saved views.
package views

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"tableflip.dev/contentcal/pkg/app"
	"tableflip.dev/contentcal/pkg/filter"
	"tableflip.dev/contentcal/pkg/prefs"
	"tableflip.dev/contentcal/pkg/printers"
)

type Action string

const (
	List      Action = "list"
	Save      Action = "save"
	Select    Action = "select"
	Star      Action = "star"
	Duplicate Action = "duplicate"
	Delete    Action = "delete"
)

type Views struct {
	Session *app.Session
	Action  Action
	// ID names the view for select, star, duplicate and delete.
	ID string
	// Name is the new view's name for save and duplicate.
	Name string
	// Query narrows the list by name.
	Query string
	// Output is "yaml" for machine readable output, empty for a table.
	Output string
	Out    io.Writer
}

// yamlView is the exported shape of a saved view.
type yamlView struct {
	ID      string              `yaml:"id"`
	Name    string              `yaml:"name"`
	Starred bool                `yaml:"starred"`
	Active  bool                `yaml:"active"`
	Filters map[string][]string `yaml:"filters"`
}

func (n *Views) Do(ctx context.Context) error {
	if n.Session == nil {
		return app.ErrNoSession
	}
	m := n.Session.Views
	var err error
	switch n.Action {
	case Save:
		var v prefs.SavedView
		v, _, err = m.Save(n.Name, n.Session.Prefs.Load().Filters)
		if err == nil {
			n.Session.Notifier.Successf("Saved view %q", v.Name)
		}
	case Select:
		_, err = m.Select(n.ID)
	case Star:
		_, err = m.ToggleStar(n.ID)
	case Duplicate:
		var v prefs.SavedView
		v, _, err = m.Duplicate(n.ID, n.Name)
		if err == nil {
			n.Session.Notifier.Successf("Duplicated view as %q", v.Name)
		}
	case Delete:
		_, err = m.Delete(n.ID)
	case List, "":
	default:
		err = fmt.Errorf("unknown views action %q", n.Action)
	}
	if err != nil {
		return err
	}

	starred, others := m.Grouped(n.Query)
	active := m.Active().ID
	if n.Output == "yaml" {
		return n.yaml(append(starred, others...), active)
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Toasts(n.Session.Notifier.Active()...)
	pp.NewLine()
	pp.Views(starred, others, active)
	return nil
}

func (n *Views) yaml(list []prefs.SavedView, active string) error {
	out := make([]yamlView, 0, len(list))
	for _, v := range list {
		filters := map[string][]string{}
		for _, axis := range filter.Axes() {
			filters[string(axis)] = append([]string{}, v.Filters.Values(axis)...)
		}
		out = append(out, yamlView{ID: v.ID, Name: v.Name, Starred: v.Starred, Active: v.ID == active, Filters: filters})
	}
	w := n.Out
	if w == nil {
		w = color.Output
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return err
	}
	return enc.Close()
}
