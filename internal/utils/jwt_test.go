package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := NewAccessToken("test-secret", "user-123", "CRITIC", 15)
	require.NoError(t, err)
	require.NotEmpty(t, token.Token)
	assert.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), token.Exp, 5*time.Second)

	userID, role, err := ParseAccessToken("test-secret", token.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
	assert.Equal(t, "CRITIC", role)
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewAccessToken("test-secret", "user-123", "USER", 15)
	require.NoError(t, err)

	_, _, err = ParseAccessToken("other-secret", token.Token)
	assert.Error(t, err)
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	token, err := NewAccessToken("test-secret", "user-123", "USER", -1)
	require.NoError(t, err)

	_, _, err = ParseAccessToken("test-secret", token.Token)
	assert.Error(t, err)
}

func TestParseAccessTokenRejectsGarbage(t *testing.T) {
	_, _, err := ParseAccessToken("test-secret", "not.a.jwt")
	assert.Error(t, err)
}
