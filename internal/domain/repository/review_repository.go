package repository

import (
	"context"

	"campdir/internal/domain/entity"
	"campdir/internal/query"
)

// ReviewRepository defines the interface for review database operations.
type ReviewRepository interface {
	// Fields exposes the public filter/sort allow-list for the collection.
	Fields() query.Fields
	// Create fails with a Conflict error when the user already reviewed the
	// bootcamp (unique (bootcamp_id, user_id) pair).
	Create(ctx context.Context, r *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	List(ctx context.Context, opts *query.Options, populate bool) ([]*entity.Review, int, error)
	ListByBootcamp(ctx context.Context, bootcampID string) ([]*entity.Review, error)
	Update(ctx context.Context, r *entity.Review) error
	Delete(ctx context.Context, id string) error
	// AverageRating computes the mean rating over a fresh snapshot of the
	// bootcamp's reviews; nil when the bootcamp has none.
	AverageRating(ctx context.Context, bootcampID string) (*float64, error)
}
