package helpers

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewResetToken(t *testing.T) {
	raw, hashed, err := NewResetToken()
	require.NoError(t, err)

	// 20 random bytes, hex encoded
	require.Len(t, raw, 40)
	_, err = hex.DecodeString(raw)
	require.NoError(t, err)

	// stored form is the sha256 digest, never the raw token
	require.Len(t, hashed, 64)
	require.NotEqual(t, raw, hashed)
	require.Equal(t, HashResetToken(raw), hashed)
}

func TestNewResetTokenUnique(t *testing.T) {
	a, _, err := NewResetToken()
	require.NoError(t, err)
	b, _, err := NewResetToken()
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}
