package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"campdir/internal/domain/entity"
	"campdir/internal/domain/repository"
	"campdir/internal/query"
	"campdir/pkg/apperr"
)

// UserFields is the public filter/sort allow-list for the admin user listing.
var UserFields = query.Fields{
	"name":      {Column: "name", Kind: query.Text},
	"email":     {Column: "email", Kind: query.Text},
	"role":      {Column: "role", Kind: query.Text},
	"createdAt": {Column: "created_at", Kind: query.Text},
}

const userCols = `id, name, email, role, password_hash, reset_password_token, reset_password_expire, created_at`

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var resetToken *string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Password,
		&resetToken, &u.ResetPasswordExpire, &u.CreatedAt); err != nil {
		return nil, err
	}
	if resetToken != nil {
		u.ResetPasswordToken = *resetToken
	}
	return u, nil
}

func (r *UserRepository) Fields() query.Fields { return UserFields }

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (name, email, role, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, u.Name, u.Email, u.Role, u.Password)
	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return apperr.New(apperr.Conflict, "email %s is already registered", u.Email)
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "user not found with id of %s", id)
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE email = $1`, email)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "there is no user with that email")
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context, opts *query.Options) ([]*entity.User, int, error) {
	where, args, err := query.Where(opts, UserFields, 0)
	if err != nil {
		return nil, 0, err
	}

	sel := `SELECT ` + userCols + ` FROM users`
	cnt := `SELECT COUNT(*) FROM users`
	if where != "" {
		sel += ` WHERE ` + where
		cnt += ` WHERE ` + where
	}
	sel += ` ` + query.OrderBy(opts, UserFields) + ` ` + query.LimitOffset(opts)

	rows, err := r.db.Query(ctx, sel, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRow(ctx, cnt, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	res, err := r.db.Exec(ctx, `
		UPDATE users SET name = $1, email = $2, role = $3 WHERE id = $4
	`, u.Name, u.Email, u.Role, u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.New(apperr.Conflict, "email %s is already registered", u.Email)
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.New(apperr.NotFound, "user not found with id of %s", u.ID)
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	res, err := r.db.Exec(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, hash, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.New(apperr.NotFound, "user not found with id of %s", id)
	}
	return nil
}

func (r *UserRepository) SetResetToken(ctx context.Context, id, hashedToken string, expire time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET reset_password_token = $1, reset_password_expire = $2 WHERE id = $3
	`, hashedToken, expire, id)
	return err
}

func (r *UserRepository) GetByResetToken(ctx context.Context, hashedToken string) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+userCols+` FROM users
		WHERE reset_password_token = $1 AND reset_password_expire > now()
	`, hashedToken)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.Validation, "invalid token")
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) ClearResetToken(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET reset_password_token = NULL, reset_password_expire = NULL WHERE id = $1
	`, id)
	return err
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.New(apperr.NotFound, "user not found with id of %s", id)
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
