package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"campdir/internal/domain/entity"
	"campdir/internal/domain/repository"
	"campdir/internal/query"
	"campdir/pkg/apperr"
)

// ReviewFields is the public filter/sort allow-list for reviews.
var ReviewFields = query.Fields{
	"title":     {Column: "title", Kind: query.Text},
	"rating":    {Column: "rating", Kind: query.Numeric},
	"bootcamp":  {Column: "bootcamp_id", Kind: query.Text},
	"user":      {Column: "user_id", Kind: query.Text},
	"createdAt": {Column: "created_at", Kind: query.Text},
}

const reviewCols = `id, title, text, rating, bootcamp_id, user_id, created_at`

type ReviewRepository struct {
	db DB
}

func NewReviewRepository(db DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func scanReview(row pgx.Row) (*entity.Review, error) {
	rv := &entity.Review{}
	if err := row.Scan(&rv.ID, &rv.Title, &rv.Text, &rv.Rating,
		&rv.BootcampID, &rv.UserID, &rv.CreatedAt); err != nil {
		return nil, err
	}
	return rv, nil
}

func (r *ReviewRepository) Fields() query.Fields { return ReviewFields }

func (r *ReviewRepository) Create(ctx context.Context, rv *entity.Review) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO reviews (title, text, rating, bootcamp_id, user_id)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, created_at
	`, rv.Title, rv.Text, rv.Rating, rv.BootcampID, rv.UserID)
	if err := row.Scan(&rv.ID, &rv.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return apperr.New(apperr.Conflict, "you have already reviewed this bootcamp")
		}
		return err
	}
	return nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	row := r.db.QueryRow(ctx, `SELECT `+reviewCols+` FROM reviews WHERE id = $1`, id)
	rv, err := scanReview(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "no review with the id of %s", id)
		}
		return nil, err
	}
	return rv, nil
}

func (r *ReviewRepository) List(ctx context.Context, opts *query.Options, populate bool) ([]*entity.Review, int, error) {
	where, args, err := query.Where(opts, ReviewFields, 0)
	if err != nil {
		return nil, 0, err
	}

	sel := `SELECT ` + reviewCols + ` FROM reviews`
	cnt := `SELECT COUNT(*) FROM reviews`
	if where != "" {
		sel += ` WHERE ` + where
		cnt += ` WHERE ` + where
	}
	sel += ` ` + query.OrderBy(opts, ReviewFields) + ` ` + query.LimitOffset(opts)

	rows, err := r.db.Query(ctx, sel, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*entity.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRow(ctx, cnt, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if populate && len(out) > 0 {
		summaries, err := bootcampSummaries(ctx, r.db, reviewBootcampIDs(out))
		if err != nil {
			return nil, 0, err
		}
		for _, rv := range out {
			rv.Bootcamp = summaries[rv.BootcampID]
		}
	}
	return out, total, nil
}

func (r *ReviewRepository) ListByBootcamp(ctx context.Context, bootcampID string) ([]*entity.Review, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+reviewCols+` FROM reviews WHERE bootcamp_id = $1 ORDER BY created_at DESC`,
		bootcampID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *ReviewRepository) Update(ctx context.Context, rv *entity.Review) error {
	res, err := r.db.Exec(ctx, `
		UPDATE reviews SET title = $1, text = $2, rating = $3 WHERE id = $4
	`, rv.Title, rv.Text, rv.Rating, rv.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.New(apperr.NotFound, "no review with the id of %s", rv.ID)
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.New(apperr.NotFound, "no review with the id of %s", id)
	}
	return nil
}

func (r *ReviewRepository) AverageRating(ctx context.Context, bootcampID string) (*float64, error) {
	var avg *float64
	err := r.db.QueryRow(ctx,
		`SELECT AVG(rating) FROM reviews WHERE bootcamp_id = $1`, bootcampID).Scan(&avg)
	if err != nil {
		return nil, err
	}
	return avg, nil
}

func reviewBootcampIDs(reviews []*entity.Review) []string {
	seen := make(map[string]struct{}, len(reviews))
	ids := make([]string, 0, len(reviews))
	for _, rv := range reviews {
		if _, ok := seen[rv.BootcampID]; !ok {
			seen[rv.BootcampID] = struct{}{}
			ids = append(ids, rv.BootcampID)
		}
	}
	return ids
}

var _ repository.ReviewRepository = (*ReviewRepository)(nil)
