package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"campdir/internal/domain/entity"
	"campdir/pkg/apperr"
)

var (
	testReview = entity.Review{Title: "t", Text: "x", Rating: 8, BootcampID: "b1", UserID: "u1"}
	testUser   = entity.User{Name: "Demo", Email: "demo@example.com", Role: entity.RoleUser, Password: "hash"}
)

// errRow is a pgx.Row double that fails every Scan with a fixed error.
type errRow struct{ err error }

func (r errRow) Scan(dest ...any) error { return r.err }

func TestBootcampGetByIDNotFound(t *testing.T) {
	db := &FakeDB{
		QueryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
			return errRow{pgx.ErrNoRows}
		},
	}
	repo := NewBootcampRepository(db)

	_, err := repo.GetByID(context.Background(), "missing")
	require.Error(t, err)
	require.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestBootcampGetByOwnerNoneIsNotAnError(t *testing.T) {
	db := &FakeDB{
		QueryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
			return errRow{pgx.ErrNoRows}
		},
	}
	repo := NewBootcampRepository(db)

	b, err := repo.GetByOwner(context.Background(), "u1")
	require.NoError(t, err)
	require.Nil(t, b)
}

func TestReviewCreateDuplicateIsConflict(t *testing.T) {
	db := &FakeDB{
		QueryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
			return errRow{&pgconn.PgError{Code: "23505"}}
		},
	}
	repo := NewReviewRepository(db)

	err := repo.Create(context.Background(), &testReview)
	require.Error(t, err)
	require.Equal(t, apperr.Conflict, apperr.KindOf(err))
}

func TestUserCreateDuplicateEmailIsConflict(t *testing.T) {
	db := &FakeDB{
		QueryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
			return errRow{&pgconn.PgError{Code: "23505"}}
		},
	}
	repo := NewUserRepository(db)

	err := repo.Create(context.Background(), &testUser)
	require.Error(t, err)
	require.Equal(t, apperr.Conflict, apperr.KindOf(err))
}

func TestUserGetByResetTokenInvalid(t *testing.T) {
	db := &FakeDB{
		QueryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
			return errRow{pgx.ErrNoRows}
		},
	}
	repo := NewUserRepository(db)

	_, err := repo.GetByResetToken(context.Background(), "deadbeef")
	require.Error(t, err)
	require.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestIsUniqueViolation(t *testing.T) {
	require.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	require.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	require.False(t, isUniqueViolation(pgx.ErrNoRows))
}
