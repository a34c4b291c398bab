package sessiontoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	token, err := New("secret", "session-123", time.Minute)
	require.NoError(t, err)

	claims, err := Parse("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "session-123", claims.SessionID)
}

func TestWrongSecret(t *testing.T) {
	token, err := New("secret", "session-123", time.Minute)
	require.NoError(t, err)

	_, err = Parse("other-secret", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredToken(t *testing.T) {
	token, err := New("secret", "session-123", -time.Minute)
	require.NoError(t, err)

	_, err = Parse("secret", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGarbageToken(t *testing.T) {
	_, err := Parse("secret", "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
