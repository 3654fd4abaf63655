package application

import (
	"context"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	repo "campdir/internal/domain/repository"
)

// Aggregates recomputes a bootcamp's derived statistics (average course
// tuition, average review rating) after a dependent record is created or
// removed. Each recomputation reads a fresh snapshot via the store's AVG, so
// concurrent triggers settle last-write-wins.
type Aggregates struct {
	Bootcamps repo.BootcampRepository
	Courses   repo.CourseRepository
	Reviews   repo.ReviewRepository
	Logger    *logrus.Logger
}

func NewAggregates(b repo.BootcampRepository, c repo.CourseRepository, r repo.ReviewRepository, logger *logrus.Logger) *Aggregates {
	return &Aggregates{Bootcamps: b, Courses: c, Reviews: r, Logger: logger}
}

// RoundUpToTen rounds a mean cost up to the next multiple of 10.
func RoundUpToTen(v float64) float64 {
	return math.Ceil(v/10) * 10
}

// RecomputeAverageCost refreshes average_cost from the bootcamp's courses.
// A bootcamp with no courses gets the aggregate cleared, not zeroed.
func (a *Aggregates) RecomputeAverageCost(ctx context.Context, bootcampID string) error {
	avg, err := a.Courses.AverageTuition(ctx, bootcampID)
	if err != nil {
		return err
	}
	if avg != nil {
		rounded := RoundUpToTen(*avg)
		avg = &rounded
	}
	return a.Bootcamps.UpdateAverageCost(ctx, bootcampID, avg)
}

// RecomputeAverageRating refreshes average_rating from the bootcamp's
// reviews; the raw mean is stored, cleared when no reviews remain.
func (a *Aggregates) RecomputeAverageRating(ctx context.Context, bootcampID string) error {
	avg, err := a.Reviews.AverageRating(ctx, bootcampID)
	if err != nil {
		return err
	}
	return a.Bootcamps.UpdateAverageRating(ctx, bootcampID, avg)
}

// CourseChanged triggers the cost recompute in the background. The caller's
// write has already committed; a recompute failure is logged, never returned.
func (a *Aggregates) CourseChanged(bootcampID string) {
	go a.run("average_cost", bootcampID, a.RecomputeAverageCost)
}

// ReviewChanged triggers the rating recompute in the background.
func (a *Aggregates) ReviewChanged(bootcampID string) {
	go a.run("average_rating", bootcampID, a.RecomputeAverageRating)
}

func (a *Aggregates) run(name, bootcampID string, fn func(context.Context, string) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := fn(ctx, bootcampID); err != nil && a.Logger != nil {
		a.Logger.WithError(err).WithFields(logrus.Fields{
			"bootcamp_id": bootcampID,
			"aggregate":   name,
		}).Error("aggregate recompute failed")
	}
}
