package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/contentcal/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the interactive calendar",
		Example: `
contentcal ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := session()
			if err != nil {
				return err
			}
			i := ui.UI{Session: sess}
			return i.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
