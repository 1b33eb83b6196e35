package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTree(t *testing.T) {
	root := New()
	for _, path := range [][]string{
		{"ui"},
		{"month"},
		{"agenda"},
		{"list"},
		{"add", "content"},
		{"add", "social"},
		{"add", "campaign"},
		{"edit", "social"},
		{"move"},
		{"delete"},
		{"rm"},
		{"filter", "toggle"},
		{"filter", "clear"},
		{"views", "save"},
		{"views", "list"},
		{"views", "star"},
		{"theme"},
		{"nav"},
		{"info", "prefs"},
		{"serve"},
		{"version"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.NotEqual(t, root, cmd, "%v resolved to the root", path)
	}
}

func TestArgumentValidation(t *testing.T) {
	root := New()
	tests := []struct {
		args []string
	}{
		{[]string{"list", "videos"}},
		{[]string{"move", "social", "p-1"}},
		{[]string{"move", "social", "p-1", "someday"}},
		{[]string{"delete", "content"}},
		{[]string{"filter", "toggle", "colour", "red"}},
		{[]string{"edit", "content"}},
	}
	for _, tt := range tests {
		cmd, args, err := root.Find(tt.args)
		require.NoError(t, err, tt.args)
		assert.Error(t, cmd.ValidateArgs(args), tt.args)
	}
}

func TestAddFlagsPerType(t *testing.T) {
	root := New()
	social, _, err := root.Find([]string{"add", "social"})
	require.NoError(t, err)
	assert.NotNil(t, social.Flags().Lookup("platforms"))
	assert.Nil(t, social.Flags().Lookup("start"))

	campaign, _, err := root.Find([]string{"add", "campaign"})
	require.NoError(t, err)
	assert.NotNil(t, campaign.Flags().Lookup("color"))
	assert.Nil(t, campaign.Flags().Lookup("on"))
}
