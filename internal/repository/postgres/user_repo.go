package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"user-management/internal/domain/user"
)

// The schema lives in the database: users are written and flagged through
// stored routines (add_user, get_active_users, update_user_details,
// soft_delete_user_proc, toggle_user_status) whose internals are owned by
// the DBA side.
type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.ExecContext(ctx,
		`SELECT add_user($1, $2, $3, $4, $5, $6)`,
		u.FirstName, u.LastName, u.Contact, u.Email, u.Address, u.PasswordHash,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.ErrEmailTaken
		}
		return err
	}

	query := `
        SELECT id, is_active, created_at
        FROM users WHERE email = $1 AND is_deleted = false
    `
	return r.db.QueryRowContext(ctx, query, u.Email).
		Scan(&u.ID, &u.IsActive, &u.CreatedAt)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `
        SELECT id, first_name, last_name, contact, email, address,
               password, is_active, profile_image, created_at
        FROM users WHERE email = $1 AND is_deleted = false
    `
	u := &user.User{}
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&u.ID, &u.FirstName, &u.LastName, &u.Contact, &u.Email,
			&u.Address, &u.PasswordHash, &u.IsActive, &u.ProfileImage, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	query := `
        SELECT id, first_name, last_name, contact, email, address,
               password, is_active, profile_image, created_at
        FROM users WHERE id = $1 AND is_deleted = false
    `
	u := &user.User{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&u.ID, &u.FirstName, &u.LastName, &u.Contact, &u.Email,
			&u.Address, &u.PasswordHash, &u.IsActive, &u.ProfileImage, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepo) ListActive(ctx context.Context) ([]user.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT * FROM get_active_users()`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usersList []user.User
	for rows.Next() {
		var u user.User
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Contact,
			&u.Email, &u.Address, &u.IsActive, &u.ProfileImage, &u.CreatedAt); err != nil {
			return nil, err
		}
		usersList = append(usersList, u)
	}
	return usersList, rows.Err()
}

func (r *UserRepo) Update(ctx context.Context, id int64, in user.UpdateInput) error {
	_, err := r.db.ExecContext(ctx,
		`SELECT update_user_details($1, $2, $3, $4, $5)`,
		id, in.FirstName, in.LastName, in.Contact, in.Address,
	)
	return err
}

func (r *UserRepo) SoftDelete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `CALL soft_delete_user_proc($1)`, id)
	return err
}

func (r *UserRepo) ToggleStatus(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `SELECT toggle_user_status($1)`, id)
	return err
}

func (r *UserRepo) SetProfileImage(ctx context.Context, id int64, image string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET profile_image = $1 WHERE id = $2`, image, id)
	return err
}
