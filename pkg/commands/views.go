package commands

import (
	"context"
	"errors"
	"strings"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/contentcal/pkg/runner/views"
)

func addViews(topLevel *cobra.Command) {
	var (
		query  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "views",
		Short: "Manage saved views",
		Example: `
contentcal views
contentcal views --search launch -o yaml
contentcal views save "Launch week"
contentcal views select <view-id>
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runViews(cmd, views.Views{Action: views.List, Query: query, Output: output})
		},
	}
	cmd.Flags().StringVar(&query, "search", "", "Only list views whose name contains this text.")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output format. Empty for a table or 'yaml'.")
	base.AddOutputArg(cmd, oo)

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved views, starred first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runViews(cmd, views.Views{Action: views.List, Query: query, Output: output})
		},
	}
	list.Flags().StringVar(&query, "search", "", "Only list views whose name contains this text.")
	list.Flags().StringVarP(&output, "output", "o", "", "Output format. Empty for a table or 'yaml'.")

	save := &cobra.Command{
		Use:   "save <name>",
		Short: "Save the working filters as a new view and make it active",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViews(cmd, views.Views{Action: views.Save, Name: strings.Join(args, " ")})
		},
	}

	duplicate := &cobra.Command{
		Use:   "duplicate <view-id> [name]",
		Short: "Copy a view",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a view id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViews(cmd, views.Views{Action: views.Duplicate, ID: args[0], Name: strings.Join(args[1:], " ")})
		},
	}

	byID := func(use, short string, action views.Action) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <view-id>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runViews(cmd, views.Views{Action: action, ID: args[0]})
			},
		}
	}

	subs := []*cobra.Command{
		list,
		save,
		duplicate,
		byID("select", "Make a view active and load its filters", views.Select),
		byID("star", "Star or unstar a view", views.Star),
		byID("delete", "Delete a view", views.Delete),
	}
	for _, c := range subs {
		base.AddOutputArg(c, oo)
	}
	cmd.AddCommand(subs...)
	topLevel.AddCommand(cmd)
}

func runViews(cmd *cobra.Command, s views.Views) error {
	cmd.SilenceUsage = true
	sess, err := session()
	if err != nil {
		return err
	}
	s.Session = sess
	s.Out = cmd.OutOrStdout()
	err = s.Do(context.Background())
	return oo.HandleError(err)
}
