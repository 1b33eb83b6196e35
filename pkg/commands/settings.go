package commands

import (
	"context"
	"errors"
	"fmt"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/contentcal/pkg/prefs"
	"tableflip.dev/contentcal/pkg/runner/settings"
)

func addTheme(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:       "theme [light|dark]",
		Short:     "Toggle the theme, or set it",
		ValidArgs: []string{string(prefs.ThemeLight), string(prefs.ThemeDark)},
		Example: `
contentcal theme
contentcal theme dark
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			sess, err := session()
			if err != nil {
				return err
			}
			s := settings.Theme{Session: sess, Out: cmd.OutOrStdout()}
			if len(args) == 1 {
				s.Set = prefs.Theme(args[0])
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addNav(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:       "nav [open|closed]",
		Short:     "Toggle the navigation panel, or open or close it",
		ValidArgs: []string{"open", "closed"},
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.New("accepts at most one of open or closed")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s := settings.Nav{Out: cmd.OutOrStdout()}
			if len(args) == 1 {
				var open bool
				switch args[0] {
				case "open":
					open = true
				case "close", "closed":
				default:
					return fmt.Errorf("unknown nav state %q, expected open or closed", args[0])
				}
				s.Open = &open
			}
			sess, err := session()
			if err != nil {
				return err
			}
			s.Session = sess
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
