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

// CourseFields is the public filter/sort allow-list for courses.
var CourseFields = query.Fields{
	"title":                {Column: "title", Kind: query.Text},
	"weeks":                {Column: "weeks", Kind: query.Text},
	"tuition":              {Column: "tuition", Kind: query.Numeric},
	"minimumSkill":         {Column: "minimum_skill", Kind: query.Text},
	"scholarshipAvailable": {Column: "scholarship_available", Kind: query.Bool},
	"bootcamp":             {Column: "bootcamp_id", Kind: query.Text},
	"user":                 {Column: "user_id", Kind: query.Text},
	"createdAt":            {Column: "created_at", Kind: query.Text},
}

const courseCols = `id, title, description, weeks, tuition, minimum_skill,
	scholarship_available, bootcamp_id, user_id, created_at`

type CourseRepository struct {
	db DB
}

func NewCourseRepository(db DB) *CourseRepository {
	return &CourseRepository{db: db}
}

func scanCourse(row pgx.Row) (*entity.Course, error) {
	c := &entity.Course{}
	if err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Weeks, &c.Tuition,
		&c.MinimumSkill, &c.ScholarshipAvailable, &c.BootcampID, &c.UserID, &c.CreatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CourseRepository) Fields() query.Fields { return CourseFields }

func (r *CourseRepository) Create(ctx context.Context, c *entity.Course) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO courses (title, description, weeks, tuition, minimum_skill,
			scholarship_available, bootcamp_id, user_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id, created_at
	`, c.Title, c.Description, c.Weeks, c.Tuition, c.MinimumSkill,
		c.ScholarshipAvailable, c.BootcampID, c.UserID)
	return row.Scan(&c.ID, &c.CreatedAt)
}

func (r *CourseRepository) GetByID(ctx context.Context, id string) (*entity.Course, error) {
	row := r.db.QueryRow(ctx, `SELECT `+courseCols+` FROM courses WHERE id = $1`, id)
	c, err := scanCourse(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "no course with the id of %s", id)
		}
		return nil, err
	}
	return c, nil
}

func (r *CourseRepository) List(ctx context.Context, opts *query.Options, populate bool) ([]*entity.Course, int, error) {
	where, args, err := query.Where(opts, CourseFields, 0)
	if err != nil {
		return nil, 0, err
	}

	sel := `SELECT ` + courseCols + ` FROM courses`
	cnt := `SELECT COUNT(*) FROM courses`
	if where != "" {
		sel += ` WHERE ` + where
		cnt += ` WHERE ` + where
	}
	sel += ` ` + query.OrderBy(opts, CourseFields) + ` ` + query.LimitOffset(opts)

	rows, err := r.db.Query(ctx, sel, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*entity.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRow(ctx, cnt, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if populate && len(out) > 0 {
		summaries, err := bootcampSummaries(ctx, r.db, courseBootcampIDs(out))
		if err != nil {
			return nil, 0, err
		}
		for _, c := range out {
			c.Bootcamp = summaries[c.BootcampID]
		}
	}
	return out, total, nil
}

func (r *CourseRepository) ListByBootcamp(ctx context.Context, bootcampID string) ([]*entity.Course, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+courseCols+` FROM courses WHERE bootcamp_id = $1 ORDER BY created_at DESC`,
		bootcampID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CourseRepository) Update(ctx context.Context, c *entity.Course) error {
	res, err := r.db.Exec(ctx, `
		UPDATE courses
		SET title = $1, description = $2, weeks = $3, tuition = $4,
			minimum_skill = $5, scholarship_available = $6
		WHERE id = $7
	`, c.Title, c.Description, c.Weeks, c.Tuition, c.MinimumSkill, c.ScholarshipAvailable, c.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.New(apperr.NotFound, "no course with the id of %s", c.ID)
	}
	return nil
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.New(apperr.NotFound, "no course with the id of %s", id)
	}
	return nil
}

func (r *CourseRepository) AverageTuition(ctx context.Context, bootcampID string) (*float64, error) {
	var avg *float64
	err := r.db.QueryRow(ctx,
		`SELECT AVG(tuition) FROM courses WHERE bootcamp_id = $1`, bootcampID).Scan(&avg)
	if err != nil {
		return nil, err
	}
	return avg, nil
}

func courseBootcampIDs(courses []*entity.Course) []string {
	seen := make(map[string]struct{}, len(courses))
	ids := make([]string, 0, len(courses))
	for _, c := range courses {
		if _, ok := seen[c.BootcampID]; !ok {
			seen[c.BootcampID] = struct{}{}
			ids = append(ids, c.BootcampID)
		}
	}
	return ids
}

// bootcampSummaries fetches the name/description slice attached to populated
// courses and reviews.
func bootcampSummaries(ctx context.Context, db DB, ids []string) (map[string]*entity.Summary, error) {
	rows, err := db.Query(ctx,
		`SELECT id, name, description FROM bootcamps WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]*entity.Summary, len(ids))
	for rows.Next() {
		s := &entity.Summary{}
		if err := rows.Scan(&s.ID, &s.Name, &s.Description); err != nil {
			return nil, err
		}
		out[s.ID] = s
	}
	return out, rows.Err()
}

var _ repository.CourseRepository = (*CourseRepository)(nil)
