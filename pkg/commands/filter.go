package commands

import (
	"context"
	"errors"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/contentcal/pkg/filter"
	"tableflip.dev/contentcal/pkg/runner/filters"
)

func addFilter(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Show or change the working filters",
		Example: `
contentcal filter
contentcal filter toggle status planned
contentcal filter toggle campaign <campaign-id>
contentcal filter clear
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFilters(cmd, filters.Show, "", "")
		},
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the working filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFilters(cmd, filters.Show, "", "")
		},
	}

	toggle := &cobra.Command{
		Use:       "toggle status|campaign|type <value>",
		Short:     "Add a value to an axis, or remove it when present",
		ValidArgs: []string{string(filter.AxisStatus), string(filter.AxisCampaign), string(filter.AxisType)},
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("requires an axis and a value")
			}
			_, err := filter.ParseAxis(args[0])
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			axis, _ := filter.ParseAxis(args[0])
			return runFilters(cmd, filters.Toggle, axis, args[1])
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFilters(cmd, filters.Clear, "", "")
		},
	}

	for _, c := range []*cobra.Command{cmd, show, toggle, clearCmd} {
		base.AddOutputArg(c, oo)
	}
	cmd.AddCommand(show, toggle, clearCmd)
	topLevel.AddCommand(cmd)
}

func runFilters(cmd *cobra.Command, action filters.Action, axis filter.Axis, value string) error {
	cmd.SilenceUsage = true
	sess, err := session()
	if err != nil {
		return err
	}
	s := filters.Filters{
		Session: sess,
		Action:  action,
		Axis:    axis,
		Value:   value,
		Out:     cmd.OutOrStdout(),
	}
	err = s.Do(context.Background())
	return oo.HandleError(err)
}
