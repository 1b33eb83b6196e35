package remove

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/contentcal/pkg/entity"
	"tableflip.dev/contentcal/pkg/runner/runnertest"
)

func TestRemoveSocialPost(t *testing.T) {
	sess, srv := runnertest.Session(t)
	ref := entity.Ref{Type: entity.TypeSocial, ID: "p-1"}
	n := Remove{Session: sess, Ref: ref, Out: &bytes.Buffer{}}
	require.NoError(t, n.Do(context.Background()))

	_, ok := srv.SocialPost("p-1")
	assert.False(t, ok)
	_, ok = sess.State.Find(ref)
	assert.False(t, ok)
}
