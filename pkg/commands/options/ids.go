package options

import (
	"github.com/spf13/cobra"
)

// IDOptions
type IDOptions struct {
	ShowID bool
}

func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "show-id", "k", false,
		"Show the ID of each item.")
}

// ViewOptions
type ViewOptions struct {
	View string
}

func AddViewArgs(cmd *cobra.Command, o *ViewOptions) {
	cmd.Flags().StringVar(&o.View, "view", "",
		"Use the filters of a saved view instead of the working filters.")
}
