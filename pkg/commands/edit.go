package commands

import (
	"context"
	"errors"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/contentcal/pkg/commands/options"
	"tableflip.dev/contentcal/pkg/entity"
	"tableflip.dev/contentcal/pkg/runner/add"
)

func addEdit(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Change fields of an existing item",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addEditType(cmd, entity.TypeContent, options.AddContentArgs)
	addEditType(cmd, entity.TypeSocial, options.AddSocialArgs)
	addEditType(cmd, entity.TypeCampaign, options.AddCampaignArgs)

	topLevel.AddCommand(cmd)
}

func addEditType(parent *cobra.Command, typ entity.Type, flags func(*cobra.Command, *options.EntityOptions)) {
	eo := &options.EntityOptions{}
	var ref entity.Ref

	cmd := &cobra.Command{
		Use:   string(typ) + " <id>",
		Short: "Edit a " + typ.Noun(),
		Example: `
contentcal edit ` + string(typ) + ` <id> --title "New title"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires an id")
			}
			var err error
			ref, err = options.ParseRef(string(typ), args[0])
			return err
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			sess, err := session()
			if err != nil {
				return err
			}
			today := entity.Today()
			s := add.Edit{
				Session: sess,
				Ref:     ref,
				Change: func(e entity.Entity) (entity.Entity, error) {
					return eo.Apply(cmd, e, today)
				},
				Today: today,
				Out:   cmd.OutOrStdout(),
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	flags(cmd, eo)
	base.AddOutputArg(cmd, oo)

	parent.AddCommand(cmd)
}
