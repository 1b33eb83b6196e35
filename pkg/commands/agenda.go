package commands

import (
	"context"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/contentcal/pkg/commands/options"
	"tableflip.dev/contentcal/pkg/entity"
	"tableflip.dev/contentcal/pkg/runner/agenda"
)

func addAgenda(topLevel *cobra.Command) {
	wo := &options.WindowOptions{}
	vo := &options.ViewOptions{}
	ido := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "List what is scheduled, one day at a time",
		Example: `
contentcal agenda
contentcal agenda --since 2024-06-01 --until 2024-06-30
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			today := entity.Today()
			since, until, err := wo.Window(today)
			if err != nil {
				return err
			}
			sess, err := session()
			if err != nil {
				return err
			}
			s := agenda.Agenda{
				Session: sess,
				Since:   since,
				Until:   until,
				Today:   today,
				ViewID:  vo.View,
				ShowID:  ido.ShowID,
				Out:     cmd.OutOrStdout(),
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddWindowArgs(cmd, wo)
	options.AddViewArgs(cmd, vo)
	options.AddShowIDArgs(cmd, ido)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
