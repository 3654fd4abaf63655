package repository

import (
	"context"
	"time"

	"campdir/internal/domain/entity"
	"campdir/internal/query"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	// Fields exposes the public filter/sort allow-list for the collection.
	Fields() query.Fields
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, opts *query.Options) ([]*entity.User, int, error)
	Update(ctx context.Context, u *entity.User) error
	UpdatePassword(ctx context.Context, id, hash string) error
	SetResetToken(ctx context.Context, id, hashedToken string, expire time.Time) error
	// GetByResetToken matches the hashed token against unexpired reset records.
	GetByResetToken(ctx context.Context, hashedToken string) (*entity.User, error)
	ClearResetToken(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
