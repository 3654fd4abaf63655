package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJWTGenerateAndParse(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, exp, err := m.Generate("u1", "publisher")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	require.Equal(t, "u1", claims.UserID)
	require.Equal(t, "publisher", claims.Role)
}

func TestJWTParseRejectsWrongSecret(t *testing.T) {
	token, _, err := NewJWTManager("secret-a", time.Hour).Generate("u1", "user")
	require.NoError(t, err)

	_, err = NewJWTManager("secret-b", time.Hour).Parse(token)
	require.Error(t, err)
}

func TestJWTParseRejectsExpired(t *testing.T) {
	token, _, err := NewJWTManager("secret", -time.Minute).Generate("u1", "user")
	require.NoError(t, err)

	_, err = NewJWTManager("secret", time.Hour).Parse(token)
	require.Error(t, err)
}

func TestJWTParseRejectsGarbage(t *testing.T) {
	_, err := NewJWTManager("secret", time.Hour).Parse("not-a-token")
	require.Error(t, err)
}
