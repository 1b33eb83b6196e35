package agenda

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/contentcal/pkg/entity"
	"tableflip.dev/contentcal/pkg/filter"
	"tableflip.dev/contentcal/pkg/prefs"
	"tableflip.dev/contentcal/pkg/runner/runnertest"
)

func TestAgendaDefaultsToOneWeek(t *testing.T) {
	sess, _ := runnertest.Session(t)
	var buf bytes.Buffer
	n := Agenda{Session: sess, Today: runnertest.June(5), Out: &buf}
	require.NoError(t, n.Do(context.Background()))

	out := buf.String()
	assert.Contains(t, out, "2024-06-05 to 2024-06-11 - 1 item")
	assert.Contains(t, out, "Teaser")
	assert.NotContains(t, out, "Blog post")
}

func TestAgendaFollowsWorkingFilters(t *testing.T) {
	sess, _ := runnertest.Session(t)
	_, err := sess.Prefs.Update(prefs.KeyFilters, filter.Clear().Toggle(filter.AxisType, string(entity.TypeContent)))
	require.NoError(t, err)

	var buf bytes.Buffer
	n := Agenda{Session: sess, Since: runnertest.June(1), Until: runnertest.June(30), Out: &buf}
	require.NoError(t, n.Do(context.Background()))
	assert.Contains(t, buf.String(), "Blog post")
	assert.NotContains(t, buf.String(), "Teaser")
}
