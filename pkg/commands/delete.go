package commands

import (
	"context"
	"errors"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/contentcal/pkg/commands/options"
	"tableflip.dev/contentcal/pkg/entity"
	"tableflip.dev/contentcal/pkg/runner/remove"
)

func addDelete(topLevel *cobra.Command) {
	var ref entity.Ref

	cmd := &cobra.Command{
		Use:     "delete content|social|campaign <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an item",
		Example: `
contentcal delete social <id>
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("requires a type and an id")
			}
			var err error
			ref, err = options.ParseRef(args[0], args[1])
			return err
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			sess, err := session()
			if err != nil {
				return err
			}
			s := remove.Remove{
				Session: sess,
				Ref:     ref,
				Out:     cmd.OutOrStdout(),
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
