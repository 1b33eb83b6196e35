package settings

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/contentcal/pkg/prefs"
	"tableflip.dev/contentcal/pkg/runner/runnertest"
)

func TestThemeToggleAndSet(t *testing.T) {
	sess, _ := runnertest.Session(t)
	ctx := context.Background()

	var buf bytes.Buffer
	require.NoError(t, (&Theme{Session: sess, Out: &buf}).Do(ctx))
	assert.Equal(t, prefs.ThemeDark, sess.Prefs.Load().Theme)
	assert.Contains(t, buf.String(), "dark")

	require.NoError(t, (&Theme{Session: sess, Set: prefs.ThemeDark, Out: &bytes.Buffer{}}).Do(ctx))
	assert.Equal(t, prefs.ThemeDark, sess.Prefs.Load().Theme)

	assert.Error(t, (&Theme{Session: sess, Set: "sepia", Out: &bytes.Buffer{}}).Do(ctx))
}

func TestNav(t *testing.T) {
	sess, _ := runnertest.Session(t)
	ctx := context.Background()

	require.NoError(t, (&Nav{Session: sess, Out: &bytes.Buffer{}}).Do(ctx))
	assert.True(t, sess.Prefs.Load().NavPanelOpen)

	closed := false
	var buf bytes.Buffer
	require.NoError(t, (&Nav{Session: sess, Open: &closed, Out: &buf}).Do(ctx))
	assert.False(t, sess.Prefs.Load().NavPanelOpen)
	assert.Contains(t, buf.String(), "closed")
}
