package ui

import (
	"context"
	"errors"
	"os"

	"github.com/mattn/go-isatty"

	"tableflip.dev/contentcal/pkg/app"
	teaui "tableflip.dev/contentcal/pkg/tui/app"
)

var ErrNotTerminal = errors.New("ui: stdout is not a terminal")

type UI struct {
	Session *app.Session
}

func (n *UI) Do(ctx context.Context) error {
	if n.Session == nil {
		return app.ErrNoSession
	}
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return ErrNotTerminal
	}
	return teaui.Run(n.Session)
}
