package application

import (
	"testing"

	"github.com/stretchr/testify/require"

	"campdir/pkg/apperr"
)

func TestCanModifyOwner(t *testing.T) {
	actor := Actor{ID: "u1", Role: "publisher"}
	require.NoError(t, CanModify(actor, "u1"))
}

func TestCanModifyAdminBypassesOwnership(t *testing.T) {
	actor := Actor{ID: "admin-1", Role: "admin"}
	require.NoError(t, CanModify(actor, "someone-else"))
}

func TestCanModifyForeignResourceDenied(t *testing.T) {
	actor := Actor{ID: "u1", Role: "publisher"}
	err := CanModify(actor, "u2")
	require.Error(t, err)
	require.Equal(t, apperr.Authorization, apperr.KindOf(err))
}
