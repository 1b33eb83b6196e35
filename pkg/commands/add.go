package commands

import (
	"context"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/contentcal/pkg/commands/options"
	"tableflip.dev/contentcal/pkg/entity"
	"tableflip.dev/contentcal/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add something to the calendar",
		Example: `
contentcal add content --title "Launch blog" --on 2024-06-05
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addDraft(cmd, entity.TypeContent, options.AddContentArgs, `
contentcal add content --title "Launch blog" --on 6/5 --status planned --campaign <campaign-id>
`)
	addDraft(cmd, entity.TypeSocial, options.AddSocialArgs, `
contentcal add social --title Teaser --message "Coming soon" --platforms twitter,linkedin --on 6/4
`)
	addDraft(cmd, entity.TypeCampaign, options.AddCampaignArgs, `
contentcal add campaign --title Summer --start 2024-06-03 --end 2024-06-07 --color "#BAE1FF"
`)

	topLevel.AddCommand(cmd)
}

func addDraft(parent *cobra.Command, typ entity.Type, flags func(*cobra.Command, *options.EntityOptions), example string) {
	eo := &options.EntityOptions{}

	cmd := &cobra.Command{
		Use:     string(typ),
		Short:   "Add a " + typ.Noun(),
		Example: example,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			today := entity.Today()
			draft, err := eo.Draft(typ, today)
			if err != nil {
				return err
			}
			sess, err := session()
			if err != nil {
				return err
			}
			s := add.Add{
				Session: sess,
				Draft:   draft,
				Today:   today,
				Out:     cmd.OutOrStdout(),
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	flags(cmd, eo)
	base.AddOutputArg(cmd, oo)

	parent.AddCommand(cmd)
}
