package commands

import (
	"context"
	"errors"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/contentcal/pkg/commands/options"
	"tableflip.dev/contentcal/pkg/entity"
	"tableflip.dev/contentcal/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	ido := &options.IDOptions{}
	all := false
	var typ entity.Type

	cmd := &cobra.Command{
		Use:       "list content|social|campaigns",
		Short:     "List one collection as a table",
		ValidArgs: []string{"content", "social", "campaigns"},
		Example: `
contentcal list content
contentcal list social --all
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires one of content, social or campaigns")
			}
			var err error
			typ, err = entity.ParseType(args[0])
			return err
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			sess, err := session()
			if err != nil {
				return err
			}
			s := list.List{
				Session: sess,
				Type:    typ,
				All:     all,
				ShowID:  ido.ShowID,
				Out:     cmd.OutOrStdout(),
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddShowIDArgs(cmd, ido)
	cmd.Flags().BoolVar(&all, "all", false, "Ignore the working filters.")
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
