package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"campdir/internal/domain/entity"
	"campdir/internal/domain/repository"
	"campdir/internal/query"
	"campdir/pkg/apperr"
)

// BootcampFields is the public filter/sort allow-list for bootcamps.
var BootcampFields = query.Fields{
	"name":          {Column: "name", Kind: query.Text},
	"slug":          {Column: "slug", Kind: query.Text},
	"careers":       {Column: "careers", Kind: query.TextArray},
	"averageRating": {Column: "average_rating", Kind: query.Numeric},
	"averageCost":   {Column: "average_cost", Kind: query.Numeric},
	"housing":       {Column: "housing", Kind: query.Bool},
	"jobAssistance": {Column: "job_assistance", Kind: query.Bool},
	"jobGuarantee":  {Column: "job_guarantee", Kind: query.Bool},
	"acceptGi":      {Column: "accept_gi", Kind: query.Bool},
	"city":          {Column: "city", Kind: query.Text},
	"state":         {Column: "state", Kind: query.Text},
	"user":          {Column: "user_id", Kind: query.Text},
	"createdAt":     {Column: "created_at", Kind: query.Text},
}

const bootcampCols = `id, name, slug, description, email, website, careers,
	latitude, longitude, formatted_address, street, city, state, zipcode, country,
	average_rating, average_cost, photo, housing, job_assistance, job_guarantee,
	accept_gi, user_id, created_at`

type BootcampRepository struct {
	db DB
}

func NewBootcampRepository(db DB) *BootcampRepository {
	return &BootcampRepository{db: db}
}

func scanBootcamp(row pgx.Row) (*entity.Bootcamp, error) {
	b := &entity.Bootcamp{}
	var lat, lng float64
	if err := row.Scan(
		&b.ID, &b.Name, &b.Slug, &b.Description, &b.Email, &b.Website, &b.Careers,
		&lat, &lng, &b.Location.FormattedAddress, &b.Location.Street, &b.Location.City,
		&b.Location.State, &b.Location.Zipcode, &b.Location.Country,
		&b.AverageRating, &b.AverageCost, &b.Photo, &b.Housing, &b.JobAssistance,
		&b.JobGuarantee, &b.AcceptGi, &b.UserID, &b.CreatedAt,
	); err != nil {
		return nil, err
	}
	b.Location.Type = "Point"
	b.Location.Coordinates = []float64{lng, lat}
	return b, nil
}

func (r *BootcampRepository) Fields() query.Fields { return BootcampFields }

func (r *BootcampRepository) Create(ctx context.Context, b *entity.Bootcamp) error {
	lng, lat := pointOf(b.Location)
	row := r.db.QueryRow(ctx, `
		INSERT INTO bootcamps (name, slug, description, email, website, careers,
			latitude, longitude, formatted_address, street, city, state, zipcode, country,
			photo, housing, job_assistance, job_guarantee, accept_gi, user_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
		RETURNING id, created_at
	`, b.Name, b.Slug, b.Description, b.Email, b.Website, b.Careers,
		lat, lng, b.Location.FormattedAddress, b.Location.Street, b.Location.City,
		b.Location.State, b.Location.Zipcode, b.Location.Country,
		b.Photo, b.Housing, b.JobAssistance, b.JobGuarantee, b.AcceptGi, b.UserID)

	if err := row.Scan(&b.ID, &b.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return apperr.New(apperr.Conflict, "bootcamp name %q is already taken", b.Name)
		}
		return err
	}
	return nil
}

func (r *BootcampRepository) GetByID(ctx context.Context, id string) (*entity.Bootcamp, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bootcampCols+` FROM bootcamps WHERE id = $1`, id)
	b, err := scanBootcamp(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "bootcamp not found with id of %s", id)
		}
		return nil, err
	}
	return b, nil
}

func (r *BootcampRepository) GetByOwner(ctx context.Context, userID string) (*entity.Bootcamp, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bootcampCols+` FROM bootcamps WHERE user_id = $1 LIMIT 1`, userID)
	b, err := scanBootcamp(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return b, nil
}

func (r *BootcampRepository) List(ctx context.Context, opts *query.Options, withCourses bool) ([]*entity.Bootcamp, int, error) {
	where, args, err := query.Where(opts, BootcampFields, 0)
	if err != nil {
		return nil, 0, err
	}

	sel := `SELECT ` + bootcampCols + ` FROM bootcamps`
	cnt := `SELECT COUNT(*) FROM bootcamps`
	if where != "" {
		sel += ` WHERE ` + where
		cnt += ` WHERE ` + where
	}
	sel += ` ` + query.OrderBy(opts, BootcampFields) + ` ` + query.LimitOffset(opts)

	rows, err := r.db.Query(ctx, sel, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*entity.Bootcamp
	for rows.Next() {
		b, err := scanBootcamp(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRow(ctx, cnt, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if withCourses && len(out) > 0 {
		if err := r.attachCourses(ctx, out); err != nil {
			return nil, 0, err
		}
	}
	return out, total, nil
}

// attachCourses reverse-populates each bootcamp's courses with one batched
// query by foreign key.
func (r *BootcampRepository) attachCourses(ctx context.Context, bootcamps []*entity.Bootcamp) error {
	ids := make([]string, len(bootcamps))
	byID := make(map[string]*entity.Bootcamp, len(bootcamps))
	for i, b := range bootcamps {
		ids[i] = b.ID
		byID[b.ID] = b
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, title, description, weeks, tuition, minimum_skill,
			scholarship_available, bootcamp_id, user_id, created_at
		FROM courses WHERE bootcamp_id = ANY($1)
		ORDER BY created_at DESC
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		c := &entity.Course{}
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Weeks, &c.Tuition,
			&c.MinimumSkill, &c.ScholarshipAvailable, &c.BootcampID, &c.UserID, &c.CreatedAt); err != nil {
			return err
		}
		if b, ok := byID[c.BootcampID]; ok {
			b.Courses = append(b.Courses, c)
		}
	}
	return rows.Err()
}

// WithinRadius compares the central angle between the stored point and the
// center against the radius in radians (spherical search, as with a
// $centerSphere query).
func (r *BootcampRepository) WithinRadius(ctx context.Context, lat, lng, radiusRadians float64) ([]*entity.Bootcamp, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+bootcampCols+` FROM bootcamps
		WHERE acos(LEAST(1.0,
			sin(radians($1)) * sin(radians(latitude)) +
			cos(radians($1)) * cos(radians(latitude)) * cos(radians(longitude - $2))
		)) <= $3
	`, lat, lng, radiusRadians)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Bootcamp
	for rows.Next() {
		b, err := scanBootcamp(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BootcampRepository) Update(ctx context.Context, b *entity.Bootcamp) error {
	lng, lat := pointOf(b.Location)
	res, err := r.db.Exec(ctx, `
		UPDATE bootcamps
		SET name = $1, slug = $2, description = $3, email = $4, website = $5, careers = $6,
			latitude = $7, longitude = $8, formatted_address = $9, street = $10, city = $11,
			state = $12, zipcode = $13, country = $14, housing = $15, job_assistance = $16,
			job_guarantee = $17, accept_gi = $18
		WHERE id = $19
	`, b.Name, b.Slug, b.Description, b.Email, b.Website, b.Careers,
		lat, lng, b.Location.FormattedAddress, b.Location.Street, b.Location.City,
		b.Location.State, b.Location.Zipcode, b.Location.Country,
		b.Housing, b.JobAssistance, b.JobGuarantee, b.AcceptGi, b.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.New(apperr.Conflict, "bootcamp name %q is already taken", b.Name)
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.New(apperr.NotFound, "bootcamp not found with id of %s", b.ID)
	}
	return nil
}

func (r *BootcampRepository) UpdatePhoto(ctx context.Context, id, photo string) error {
	res, err := r.db.Exec(ctx, `UPDATE bootcamps SET photo = $1 WHERE id = $2`, photo, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.New(apperr.NotFound, "bootcamp not found with id of %s", id)
	}
	return nil
}

func (r *BootcampRepository) UpdateAverageCost(ctx context.Context, id string, avg *float64) error {
	_, err := r.db.Exec(ctx, `UPDATE bootcamps SET average_cost = $1 WHERE id = $2`, avg, id)
	return err
}

func (r *BootcampRepository) UpdateAverageRating(ctx context.Context, id string, avg *float64) error {
	_, err := r.db.Exec(ctx, `UPDATE bootcamps SET average_rating = $1 WHERE id = $2`, avg, id)
	return err
}

// Delete removes the bootcamp; courses and reviews go with it via ON DELETE CASCADE.
func (r *BootcampRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM bootcamps WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.New(apperr.NotFound, "bootcamp not found with id of %s", id)
	}
	return nil
}

func pointOf(l entity.Location) (lng, lat float64) {
	if len(l.Coordinates) == 2 {
		return l.Coordinates[0], l.Coordinates[1]
	}
	return 0, 0
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ repository.BootcampRepository = (*BootcampRepository)(nil)
