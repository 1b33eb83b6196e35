package commands

import (
	"context"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/contentcal/pkg/commands/options"
	"tableflip.dev/contentcal/pkg/entity"
	"tableflip.dev/contentcal/pkg/runner/month"
)

func addMonth(topLevel *cobra.Command) {
	mo := &options.MonthOptions{}
	vo := &options.ViewOptions{}
	ido := &options.IDOptions{}
	long := false

	cmd := &cobra.Command{
		Use:   "month",
		Short: "Print a calendar month",
		Example: `
contentcal month
contentcal month --month 2024-06 --long
contentcal month --view <view-id>
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			today := entity.Today()
			anchor, err := mo.Anchor(today)
			if err != nil {
				return err
			}
			sess, err := session()
			if err != nil {
				return err
			}
			s := month.Month{
				Session: sess,
				Anchor:  anchor,
				Today:   today,
				ViewID:  vo.View,
				Long:    long,
				ShowID:  ido.ShowID,
				Out:     cmd.OutOrStdout(),
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddMonthArgs(cmd, mo)
	options.AddViewArgs(cmd, vo)
	options.AddShowIDArgs(cmd, ido)
	cmd.Flags().BoolVarP(&long, "long", "l", false, "List every day with its items.")
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
