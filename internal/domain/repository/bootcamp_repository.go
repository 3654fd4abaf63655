package repository

import (
	"context"

	"campdir/internal/domain/entity"
	"campdir/internal/query"
)

// BootcampRepository defines the interface for bootcamp database operations.
// Deleting a bootcamp cascades to its courses and reviews at the store level.
type BootcampRepository interface {
	// Fields exposes the public filter/sort allow-list for the collection.
	Fields() query.Fields
	Create(ctx context.Context, b *entity.Bootcamp) error
	GetByID(ctx context.Context, id string) (*entity.Bootcamp, error)
	// GetByOwner returns any bootcamp already published by the user, or nil.
	GetByOwner(ctx context.Context, userID string) (*entity.Bootcamp, error)
	List(ctx context.Context, opts *query.Options, withCourses bool) ([]*entity.Bootcamp, int, error)
	// WithinRadius returns bootcamps whose location lies within the given
	// great-circle radius (in radians) around the center point.
	WithinRadius(ctx context.Context, lat, lng, radiusRadians float64) ([]*entity.Bootcamp, error)
	Update(ctx context.Context, b *entity.Bootcamp) error
	UpdatePhoto(ctx context.Context, id, photo string) error
	UpdateAverageCost(ctx context.Context, id string, avg *float64) error
	UpdateAverageRating(ctx context.Context, id string, avg *float64) error
	Delete(ctx context.Context, id string) error
}
