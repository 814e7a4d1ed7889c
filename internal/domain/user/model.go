package user

import (
	"context"
	"time"
)

type User struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Contact      string    `json:"contact"`
	Email        string    `json:"email"`
	Address      string    `json:"address"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	ProfileImage *string   `json:"profile_image"`
	CreatedAt    time.Time `json:"created_at"`
}

type CreateInput struct {
	FirstName string
	LastName  string
	Contact   string
	Email     string
	Address   string
	Password  string
}

// UpdateInput deliberately has no email or password field: both are
// immutable after creation.
type UpdateInput struct {
	FirstName string
	LastName  string
	Contact   string
	Address   string
}

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	ListActive(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id int64, in UpdateInput) error
	SoftDelete(ctx context.Context, id int64) error
	ToggleStatus(ctx context.Context, id int64) error
	SetProfileImage(ctx context.Context, id int64, image string) error
}
