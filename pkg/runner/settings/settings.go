// Package settings changes the theme and navigation panel preferences.
package settings

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/contentcal/pkg/app"
	"tableflip.dev/contentcal/pkg/prefs"
)

// Theme sets the theme to Set, or toggles it when Set is empty.
type Theme struct {
	Session *app.Session
	Set     prefs.Theme
	Out     io.Writer
}

func (n *Theme) Do(ctx context.Context) error {
	if n.Session == nil {
		return app.ErrNoSession
	}
	next := n.Set
	if next == "" {
		next = n.Session.Prefs.Load().Theme.Toggle()
	}
	if !next.Valid() {
		return fmt.Errorf("unknown theme %q, expected light or dark", next)
	}
	p, err := n.Session.Prefs.Update(prefs.KeyTheme, next)
	if err != nil {
		return err
	}
	show(n.Out, p)
	return nil
}

// Nav opens or closes the navigation panel. A nil Open toggles it.
type Nav struct {
	Session *app.Session
	Open    *bool
	Out     io.Writer
}

func (n *Nav) Do(ctx context.Context) error {
	if n.Session == nil {
		return app.ErrNoSession
	}
	open := !n.Session.Prefs.Load().NavPanelOpen
	if n.Open != nil {
		open = *n.Open
	}
	p, err := n.Session.Prefs.Update(prefs.KeyNavPanelOpen, open)
	if err != nil {
		return err
	}
	show(n.Out, p)
	return nil
}

// Show prints the current preferences.
type Show struct {
	Session *app.Session
	Out     io.Writer
}

func (n *Show) Do(ctx context.Context) error {
	if n.Session == nil {
		return app.ErrNoSession
	}
	show(n.Out, n.Session.Prefs.Load())
	return nil
}

func show(w io.Writer, p prefs.Preferences) {
	if w == nil {
		w = color.Output
	}
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("theme"), p.Theme)
	tbl.AddRow(bold.Sprint("nav panel"), navState(p.NavPanelOpen))
	tbl.AddRow(bold.Sprint("active view"), p.ActiveView)
	tbl.AddRow(bold.Sprint("version"), p.Version)
	_, _ = fmt.Fprintln(w, tbl)
}

func navState(open bool) string {
	if open {
		return "open"
	}
	return "closed"
}
