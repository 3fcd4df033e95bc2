package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventhub/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	user := &models.User{ID: "user-1", Email: "alice@example.com"}

	token, err := NewToken(user, "secret", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token, "secret")
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestParseTokenWrongSecret(t *testing.T) {
	t.Parallel()

	user := &models.User{ID: "user-1", Email: "alice@example.com"}

	token, err := NewToken(user, "secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, "another-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenExpired(t *testing.T) {
	t.Parallel()

	user := &models.User{ID: "user-1", Email: "alice@example.com"}

	token, err := NewToken(user, "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, "secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenGarbage(t *testing.T) {
	t.Parallel()

	_, err := ParseToken("not-a-token", "secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
