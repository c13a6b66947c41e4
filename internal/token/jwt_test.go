package token

import (
	"errors"
	"testing"
	"time"

	"github.com/Karmugilan015/aution-platform/internal/auctionerrors"
	model "github.com/Karmugilan015/aution-platform/internal/models"

	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	user := model.User{UserID: "u1", Username: "alice"}

	signed, err := manager.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := manager.Verify(signed)
	require.NoError(t, err)
	require.Equal(t, "u1", claims.UserID)
	require.Equal(t, "alice", claims.Username)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute)

	signed, err := manager.Issue(model.User{UserID: "u1", Username: "alice"})
	require.NoError(t, err)

	_, err = manager.Verify(signed)
	require.True(t, errors.Is(err, auctionerrors.ErrInvalidToken))
}

func TestJWTManager_WrongSecret(t *testing.T) {
	signed, err := NewJWTManager("secret-one", time.Hour).Issue(model.User{UserID: "u1", Username: "alice"})
	require.NoError(t, err)

	_, err = NewJWTManager("secret-two", time.Hour).Verify(signed)
	require.True(t, errors.Is(err, auctionerrors.ErrInvalidToken))
}

func TestJWTManager_MalformedToken(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	for _, tokenString := range []string{"", "not-a-token", "aaa.bbb.ccc"} {
		_, err := manager.Verify(tokenString)
		require.True(t, errors.Is(err, auctionerrors.ErrInvalidToken), "token %q should be invalid", tokenString)
	}
}
