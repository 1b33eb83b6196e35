package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/contentcal/pkg/app"
)

var (
	oo    = &base.OutputOptions{}
	debug bool
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "contentcal",
		Short: base.Wrap80("Plan content items, social posts and campaigns on a calendar."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log requests and state changes to stderr.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addMonth(topLevel)
	addAgenda(topLevel)
	addList(topLevel)
	addAdd(topLevel)
	addEdit(topLevel)
	addMove(topLevel)
	addDelete(topLevel)
	addFilter(topLevel)
	addViews(topLevel)
	addTheme(topLevel)
	addNav(topLevel)
	addInfo(topLevel)
	addServe(topLevel)
	addVersion(topLevel)
}

func logger() *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// session opens the configured session. Commands share one per invocation.
func session() (*app.Session, error) {
	return app.Open(nil, app.WithLogger(logger()))
}
