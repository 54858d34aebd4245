package oauth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateIsSingleUse(t *testing.T) {
	s := NewStateStore(time.Minute)
	defer s.Close()

	s.Save("state-1")
	assert.True(t, s.Consume("state-1"))
	// Replay fails: the first consume removed the state.
	assert.False(t, s.Consume("state-1"))
}

func TestUnknownStateRejected(t *testing.T) {
	s := NewStateStore(time.Minute)
	defer s.Close()

	assert.False(t, s.Consume("never-saved"))
}

func TestExpiredStateRejected(t *testing.T) {
	s := NewStateStore(-time.Second)
	defer s.Close()

	s.Save("state-1")
	assert.False(t, s.Consume("state-1"))
}

func TestGenerateStateIsRandom(t *testing.T) {
	s1, err := generateState()
	require.NoError(t, err)
	s2, err := generateState()
	require.NoError(t, err)

	assert.NotEqual(t, s1, s2)
	assert.GreaterOrEqual(t, len(s1), 32)
}
