package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	s, err := NewService("test-secret", time.Hour, 4)
	require.NoError(t, err)
	return s
}

func TestNewServiceRequiresSecret(t *testing.T) {
	_, err := NewService("", time.Hour, 4)
	require.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	s := newTestService(t)

	hash, err := s.HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.True(t, s.CheckPassword(hash, "hunter2"))
	assert.False(t, s.CheckPassword(hash, "hunter3"))
	assert.False(t, s.CheckPassword("not-a-hash", "hunter2"))
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	s := newTestService(t)
	_, err := s.HashPassword("")
	require.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	s := newTestService(t)

	token, err := s.IssueToken("player-123", "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	playerID, err := s.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "player-123", playerID)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	s := newTestService(t)
	other, err := NewService("different-secret", time.Hour, 4)
	require.NoError(t, err)

	token, err := s.IssueToken("player-123", "alice")
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	require.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	s, err := NewService("test-secret", -time.Minute, 4)
	require.NoError(t, err)
	// Negative TTLs fall back to the default, so force a short-lived one.
	s.tokenTTL = -time.Minute

	token, err := s.IssueToken("player-123", "alice")
	require.NoError(t, err)

	_, err = s.VerifyToken(token)
	require.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	s := newTestService(t)
	_, err := s.VerifyToken("not.a.token")
	require.Error(t, err)
}
