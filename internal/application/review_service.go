package application

import (
	"context"

	"campdir/internal/domain/entity"
	repo "campdir/internal/domain/repository"
	"campdir/internal/query"
	"campdir/pkg/apperr"
)

type ReviewService struct {
	Reviews   repo.ReviewRepository
	Bootcamps repo.BootcampRepository
	Agg       *Aggregates
}

type CreateReviewInput struct {
	Title  string `json:"title" binding:"required,max=100"`
	Text   string `json:"text" binding:"required"`
	Rating int    `json:"rating" binding:"required,min=1,max=10"`
}

type UpdateReviewInput struct {
	Title  *string `json:"title" binding:"omitempty,max=100"`
	Text   *string `json:"text"`
	Rating *int    `json:"rating" binding:"omitempty,min=1,max=10"`
}

func (s *ReviewService) List(ctx context.Context, opts *query.Options) ([]*entity.Review, int, error) {
	return s.Reviews.List(ctx, opts, true)
}

func (s *ReviewService) ListByBootcamp(ctx context.Context, bootcampID string) ([]*entity.Review, error) {
	if _, err := s.Bootcamps.GetByID(ctx, bootcampID); err != nil {
		return nil, err
	}
	return s.Reviews.ListByBootcamp(ctx, bootcampID)
}

func (s *ReviewService) Get(ctx context.Context, id string) (*entity.Review, error) {
	rv, err := s.Reviews.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b, err := s.Bootcamps.GetByID(ctx, rv.BootcampID); err == nil {
		rv.Bootcamp = &entity.Summary{ID: b.ID, Name: b.Name, Description: b.Description}
	}
	return rv, nil
}

// Create records the actor's review of a bootcamp. The store's unique pair
// constraint rejects a second review by the same user as a conflict. The
// rating recompute runs in the background after the write commits.
func (s *ReviewService) Create(ctx context.Context, actor Actor, bootcampID string, in *CreateReviewInput) (*entity.Review, error) {
	if _, err := s.Bootcamps.GetByID(ctx, bootcampID); err != nil {
		return nil, err
	}

	rv := &entity.Review{
		Title:      in.Title,
		Text:       in.Text,
		Rating:     in.Rating,
		BootcampID: bootcampID,
		UserID:     actor.ID,
	}
	if err := s.Reviews.Create(ctx, rv); err != nil {
		return nil, err
	}
	s.Agg.ReviewChanged(bootcampID)
	return rv, nil
}

func (s *ReviewService) Update(ctx context.Context, actor Actor, id string, in *UpdateReviewInput) (*entity.Review, error) {
	rv, err := s.Reviews.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := CanModify(actor, rv.UserID); err != nil {
		return nil, apperr.New(apperr.Authorization, "not authorized to update review %s", id)
	}

	if in.Title != nil {
		rv.Title = *in.Title
	}
	if in.Text != nil {
		rv.Text = *in.Text
	}
	if in.Rating != nil {
		rv.Rating = *in.Rating
	}

	if err := s.Reviews.Update(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *ReviewService) Delete(ctx context.Context, actor Actor, id string) error {
	rv, err := s.Reviews.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := CanModify(actor, rv.UserID); err != nil {
		return apperr.New(apperr.Authorization, "not authorized to delete review %s", id)
	}
	if err := s.Reviews.Delete(ctx, id); err != nil {
		return err
	}
	s.Agg.ReviewChanged(rv.BootcampID)
	return nil
}
