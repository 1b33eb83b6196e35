package views

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"tableflip.dev/contentcal/pkg/filter"
	"tableflip.dev/contentcal/pkg/prefs"
	"tableflip.dev/contentcal/pkg/runner/runnertest"
)

func TestSaveStarAndExport(t *testing.T) {
	sess, _ := runnertest.Session(t)
	ctx := context.Background()
	_, err := sess.Prefs.Update(prefs.KeyFilters, filter.Clear().Toggle(filter.AxisStatus, "Done"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, (&Views{Session: sess, Action: Save, Name: "Done", Out: &buf}).Do(ctx))
	assert.Contains(t, buf.String(), `Saved view "Done"`)
	id := sess.Views.Active().ID
	require.NotEqual(t, prefs.DefaultViewID, id)

	require.NoError(t, (&Views{Session: sess, Action: Star, ID: id, Out: &bytes.Buffer{}}).Do(ctx))

	buf.Reset()
	require.NoError(t, (&Views{Session: sess, Action: List, Output: "yaml", Out: &buf}).Do(ctx))
	var got []yamlView
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Done", got[0].Name)
	assert.True(t, got[0].Starred)
	assert.True(t, got[0].Active)
	assert.Equal(t, []string{"Done"}, got[0].Filters["status"])
	assert.Equal(t, prefs.DefaultViewName, got[1].Name)
}

func TestDuplicateSelectDelete(t *testing.T) {
	sess, _ := runnertest.Session(t)
	ctx := context.Background()

	require.NoError(t, (&Views{Session: sess, Action: Duplicate, ID: prefs.DefaultViewID, Name: "Copy", Out: &bytes.Buffer{}}).Do(ctx))
	list := sess.Views.List()
	require.Len(t, list, 2)
	copyID := list[1].ID

	require.NoError(t, (&Views{Session: sess, Action: Select, ID: copyID, Out: &bytes.Buffer{}}).Do(ctx))
	assert.Equal(t, copyID, sess.Prefs.Load().ActiveView)

	require.NoError(t, (&Views{Session: sess, Action: Delete, ID: copyID, Out: &bytes.Buffer{}}).Do(ctx))
	assert.Equal(t, prefs.DefaultViewID, sess.Prefs.Load().ActiveView)
	assert.Len(t, sess.Views.List(), 1)
}

func TestUnknownView(t *testing.T) {
	sess, _ := runnertest.Session(t)
	assert.Error(t, (&Views{Session: sess, Action: Select, ID: "missing"}).Do(context.Background()))
}
