package repository

import (
	"context"

	"campdir/internal/domain/entity"
	"campdir/internal/query"
)

// CourseRepository defines the interface for course database operations.
type CourseRepository interface {
	// Fields exposes the public filter/sort allow-list for the collection.
	Fields() query.Fields
	Create(ctx context.Context, c *entity.Course) error
	GetByID(ctx context.Context, id string) (*entity.Course, error)
	List(ctx context.Context, opts *query.Options, populate bool) ([]*entity.Course, int, error)
	ListByBootcamp(ctx context.Context, bootcampID string) ([]*entity.Course, error)
	Update(ctx context.Context, c *entity.Course) error
	Delete(ctx context.Context, id string) error
	// AverageTuition computes the mean tuition over a fresh snapshot of the
	// bootcamp's courses; nil when the bootcamp has none.
	AverageTuition(ctx context.Context, bootcampID string) (*float64, error)
}
