package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/contentcal/pkg/runner/info"
	"tableflip.dev/contentcal/pkg/runner/settings"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about configuration and where preferences are stored.",
		Example: `
contentcal info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			sess, err := session()
			if err != nil {
				return err
			}
			s := info.Info{
				Session: sess,
				Out:     cmd.OutOrStdout(),
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	prefsCmd := &cobra.Command{
		Use:   "prefs",
		Short: "Print the stored preferences.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			sess, err := session()
			if err != nil {
				return err
			}
			s := settings.Show{Session: sess, Out: cmd.OutOrStdout()}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	cmd.AddCommand(prefsCmd)
	topLevel.AddCommand(cmd)
}
