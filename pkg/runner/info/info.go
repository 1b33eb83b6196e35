package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/contentcal/pkg/app"
	"tableflip.dev/contentcal/pkg/printers"
)

// Info prints where configuration and preferences come from.
type Info struct {
	Session *app.Session
	Out     io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	w := n.Out
	if w == nil {
		w = color.Output
	}

	if override := os.Getenv("CONTENTCAL_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(w, "CONTENTCAL_CONFIG_PATH found on env, using ", override)
	} else {
		_, _ = fmt.Fprintln(w, "CONTENTCAL_CONFIG_PATH env var not set")
	}

	if n.Session == nil {
		return app.ErrNoSession
	}
	cfg := n.Session.Config
	_, _ = fmt.Fprintln(w, "Config.path: ", cfg.BasePath())
	_, _ = fmt.Fprintln(w, "Config.api:  ", cfg.APIBase())
	if t := cfg.Timeout(); t > 0 {
		_, _ = fmt.Fprintln(w, "Config.timeout: ", t)
	}

	p := n.Session.Prefs.Load()
	active, _ := p.View(p.ActiveView)
	_, _ = fmt.Fprintf(w, "Preferences (version %d):\n", p.Version)
	_, _ = fmt.Fprintf(w, "  theme: %s\n", p.Theme)
	_, _ = fmt.Fprintf(w, "  filters: %s\n", printers.Describe(p.Filters))
	_, _ = fmt.Fprintf(w, "  active view: %s\n", active.Name)
	_, _ = fmt.Fprintf(w, "  saved views: %d\n", len(p.SavedViews))
	return nil
}
