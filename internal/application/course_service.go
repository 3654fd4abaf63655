package application

import (
	"context"

	"campdir/internal/domain/entity"
	repo "campdir/internal/domain/repository"
	"campdir/internal/query"
	"campdir/pkg/apperr"
)

type CourseService struct {
	Courses   repo.CourseRepository
	Bootcamps repo.BootcampRepository
	Agg       *Aggregates
}

type CreateCourseInput struct {
	Title                string  `json:"title" binding:"required"`
	Description          string  `json:"description" binding:"required"`
	Weeks                string  `json:"weeks" binding:"required"`
	Tuition              float64 `json:"tuition" binding:"required,gt=0"`
	MinimumSkill         string  `json:"minimumSkill" binding:"required,skill"`
	ScholarshipAvailable bool    `json:"scholarshipAvailable"`
}

type UpdateCourseInput struct {
	Title                *string  `json:"title"`
	Description          *string  `json:"description"`
	Weeks                *string  `json:"weeks"`
	Tuition              *float64 `json:"tuition" binding:"omitempty,gt=0"`
	MinimumSkill         *string  `json:"minimumSkill" binding:"omitempty,skill"`
	ScholarshipAvailable *bool    `json:"scholarshipAvailable"`
}

func (s *CourseService) List(ctx context.Context, opts *query.Options) ([]*entity.Course, int, error) {
	return s.Courses.List(ctx, opts, true)
}

// ListByBootcamp returns the courses nested under a bootcamp; a missing
// bootcamp is a not-found, not an empty list.
func (s *CourseService) ListByBootcamp(ctx context.Context, bootcampID string) ([]*entity.Course, error) {
	if _, err := s.Bootcamps.GetByID(ctx, bootcampID); err != nil {
		return nil, err
	}
	return s.Courses.ListByBootcamp(ctx, bootcampID)
}

func (s *CourseService) Get(ctx context.Context, id string) (*entity.Course, error) {
	c, err := s.Courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b, err := s.Bootcamps.GetByID(ctx, c.BootcampID); err == nil {
		c.Bootcamp = &entity.Summary{ID: b.ID, Name: b.Name, Description: b.Description}
	}
	return c, nil
}

// Create adds a course under a bootcamp the actor owns and schedules the
// bootcamp's average cost recompute.
func (s *CourseService) Create(ctx context.Context, actor Actor, bootcampID string, in *CreateCourseInput) (*entity.Course, error) {
	b, err := s.Bootcamps.GetByID(ctx, bootcampID)
	if err != nil {
		return nil, err
	}
	if err := CanModify(actor, b.UserID); err != nil {
		return nil, apperr.New(apperr.Authorization,
			"user %s is not authorized to add a course to bootcamp %s", actor.ID, bootcampID)
	}

	c := &entity.Course{
		Title:                in.Title,
		Description:          in.Description,
		Weeks:                in.Weeks,
		Tuition:              in.Tuition,
		MinimumSkill:         in.MinimumSkill,
		ScholarshipAvailable: in.ScholarshipAvailable,
		BootcampID:           bootcampID,
		UserID:               actor.ID,
	}
	if err := s.Courses.Create(ctx, c); err != nil {
		return nil, err
	}
	s.Agg.CourseChanged(bootcampID)
	return c, nil
}

func (s *CourseService) Update(ctx context.Context, actor Actor, id string, in *UpdateCourseInput) (*entity.Course, error) {
	c, err := s.Courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := CanModify(actor, c.UserID); err != nil {
		return nil, apperr.New(apperr.Authorization,
			"user %s is not authorized to update course %s", actor.ID, id)
	}

	if in.Title != nil {
		c.Title = *in.Title
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.Weeks != nil {
		c.Weeks = *in.Weeks
	}
	if in.Tuition != nil {
		c.Tuition = *in.Tuition
	}
	if in.MinimumSkill != nil {
		c.MinimumSkill = *in.MinimumSkill
	}
	if in.ScholarshipAvailable != nil {
		c.ScholarshipAvailable = *in.ScholarshipAvailable
	}

	if err := s.Courses.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CourseService) Delete(ctx context.Context, actor Actor, id string) error {
	c, err := s.Courses.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := CanModify(actor, c.UserID); err != nil {
		return apperr.New(apperr.Authorization,
			"user %s is not authorized to delete course %s", actor.ID, id)
	}
	if err := s.Courses.Delete(ctx, id); err != nil {
		return err
	}
	s.Agg.CourseChanged(c.BootcampID)
	return nil
}
