package commands

import (
	"context"
	"errors"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/contentcal/pkg/commands/options"
	"tableflip.dev/contentcal/pkg/entity"
	"tableflip.dev/contentcal/pkg/runner/move"
)

func addMove(topLevel *cobra.Command) {
	var (
		ref entity.Ref
		to  entity.Date
	)

	cmd := &cobra.Command{
		Use:   "move content|social <id> <date>",
		Short: "Reschedule a content item or social post",
		Example: `
contentcal move social <id> 2024-06-09
contentcal move content <id> 6/9
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 3 {
				return errors.New("requires a type, an id and a date")
			}
			var err error
			if ref, err = options.ParseRef(args[0], args[1]); err != nil {
				return err
			}
			if to, err = options.ParseDate(args[2], entity.Today()); err != nil {
				return err
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			sess, err := session()
			if err != nil {
				return err
			}
			s := move.Move{
				Session: sess,
				Ref:     ref,
				To:      to,
				Out:     cmd.OutOrStdout(),
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
