package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inviteapi/internal/domain"
)

func TestTokenManager_IssueAndVerify(t *testing.T) {
	m := NewTokenManager("test-secret", "inviteapi", "inviteapi-web", time.Hour)

	token, expiresAt, err := m.Issue("admin@example.com", domain.AdminRole)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, domain.AdminRole, claims.Role)
}

func TestTokenManager_Verify_Failures(t *testing.T) {
	m := NewTokenManager("test-secret", "inviteapi", "inviteapi-web", time.Hour)

	t.Run("garbage token", func(t *testing.T) {
		_, err := m.Verify("not-a-token")
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("wrong key", func(t *testing.T) {
		other := NewTokenManager("other-secret", "inviteapi", "inviteapi-web", time.Hour)
		token, _, err := other.Issue("admin@example.com", domain.AdminRole)
		require.NoError(t, err)
		_, err = m.Verify(token)
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewTokenManager("test-secret", "someone-else", "inviteapi-web", time.Hour)
		token, _, err := other.Issue("admin@example.com", domain.AdminRole)
		require.NoError(t, err)
		_, err = m.Verify(token)
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("wrong audience", func(t *testing.T) {
		other := NewTokenManager("test-secret", "inviteapi", "someone-else", time.Hour)
		token, _, err := other.Issue("admin@example.com", domain.AdminRole)
		require.NoError(t, err)
		_, err = m.Verify(token)
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("expired", func(t *testing.T) {
		short := NewTokenManager("test-secret", "inviteapi", "inviteapi-web", -time.Minute)
		token, _, err := short.Issue("admin@example.com", domain.AdminRole)
		require.NoError(t, err)
		_, err = m.Verify(token)
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}
