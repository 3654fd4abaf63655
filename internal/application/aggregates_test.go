package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"campdir/internal/domain/repository"
)

type fakeCourseRepo struct {
	repository.CourseRepository
	avg *float64
}

func (f *fakeCourseRepo) AverageTuition(ctx context.Context, bootcampID string) (*float64, error) {
	return f.avg, nil
}

type fakeReviewRepo struct {
	repository.ReviewRepository
	avg *float64
}

func (f *fakeReviewRepo) AverageRating(ctx context.Context, bootcampID string) (*float64, error) {
	return f.avg, nil
}

type fakeBootcampRepo struct {
	repository.BootcampRepository
	cost       *float64
	rating     *float64
	costSet    bool
	ratingSet  bool
	lastCalled string
}

func (f *fakeBootcampRepo) UpdateAverageCost(ctx context.Context, id string, avg *float64) error {
	f.cost, f.costSet, f.lastCalled = avg, true, id
	return nil
}

func (f *fakeBootcampRepo) UpdateAverageRating(ctx context.Context, id string, avg *float64) error {
	f.rating, f.ratingSet, f.lastCalled = avg, true, id
	return nil
}

func ptr(v float64) *float64 { return &v }

func TestRoundUpToTen(t *testing.T) {
	require.Equal(t, 150.0, RoundUpToTen(145.0))
	require.Equal(t, 150.0, RoundUpToTen(141.0))
	require.Equal(t, 150.0, RoundUpToTen(150.0))
	require.Equal(t, 9570.0, RoundUpToTen(9566.666))
	require.Equal(t, 0.0, RoundUpToTen(0))
}

func TestRecomputeAverageCostRoundsUp(t *testing.T) {
	bootcamps := &fakeBootcampRepo{}
	a := &Aggregates{Bootcamps: bootcamps, Courses: &fakeCourseRepo{avg: ptr(9566.666)}}

	require.NoError(t, a.RecomputeAverageCost(context.Background(), "b1"))
	require.True(t, bootcamps.costSet)
	require.Equal(t, "b1", bootcamps.lastCalled)
	require.NotNil(t, bootcamps.cost)
	require.Equal(t, 9570.0, *bootcamps.cost)
}

// A bootcamp whose last course was removed gets the aggregate cleared rather
// than set to zero.
func TestRecomputeAverageCostClearsWhenNoCourses(t *testing.T) {
	bootcamps := &fakeBootcampRepo{}
	a := &Aggregates{Bootcamps: bootcamps, Courses: &fakeCourseRepo{avg: nil}}

	require.NoError(t, a.RecomputeAverageCost(context.Background(), "b1"))
	require.True(t, bootcamps.costSet)
	require.Nil(t, bootcamps.cost)
}

func TestRecomputeAverageRatingStoresRawMean(t *testing.T) {
	bootcamps := &fakeBootcampRepo{}
	a := &Aggregates{Bootcamps: bootcamps, Reviews: &fakeReviewRepo{avg: ptr(7.5)}}

	require.NoError(t, a.RecomputeAverageRating(context.Background(), "b2"))
	require.True(t, bootcamps.ratingSet)
	require.NotNil(t, bootcamps.rating)
	require.Equal(t, 7.5, *bootcamps.rating)
}

func TestRecomputeAverageRatingClearsWhenNoReviews(t *testing.T) {
	bootcamps := &fakeBootcampRepo{}
	a := &Aggregates{Bootcamps: bootcamps, Reviews: &fakeReviewRepo{avg: nil}}

	require.NoError(t, a.RecomputeAverageRating(context.Background(), "b2"))
	require.True(t, bootcamps.ratingSet)
	require.Nil(t, bootcamps.rating)
}
