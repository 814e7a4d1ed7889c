package user

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// A 2MB file grows by ~4/3 when base64-encoded into a data URI.
const maxImageBytes = 3 << 20

var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveAccount    = errors.New("account is inactive")
	ErrEmailTaken         = errors.New("email already exists")
	ErrNameTooLong        = errors.New("name too long")
	ErrInvalidContact     = errors.New("contact number must be exactly 10 digits")
	ErrInvalidEmail       = errors.New("email must be a valid @gmail.com address")
	ErrWeakPassword       = errors.New("password must be 8-12 chars with upper, lower, number & special (# $ & @)")
	ErrInvalidImage       = errors.New("profile image must be an image data URI of at most 2MB")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates the input, hashes the password and persists the user.
// New users start active and not deleted.
func (s *Service) Create(ctx context.Context, in CreateInput) (*User, error) {
	if !validName(in.FirstName) || !validName(in.LastName) {
		return nil, ErrNameTooLong
	}
	if !ValidContact(in.Contact) {
		return nil, ErrInvalidContact
	}
	if !ValidEmail(in.Email) {
		return nil, ErrInvalidEmail
	}
	if !ValidPassword(in.Password) {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Contact:      in.Contact,
		Email:        strings.ToLower(in.Email),
		Address:      in.Address,
		PasswordHash: string(hash),
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// Authenticate checks credentials against non-deleted users. Failures are
// reported in order: missing fields, bad credentials, inactive account.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	u, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !u.IsActive {
		return nil, ErrInactiveAccount
	}

	return u, nil
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.ListActive(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// Update changes name, contact and address only. Email and password are
// immutable after creation.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) error {
	if !validName(in.FirstName) || !validName(in.LastName) {
		return ErrNameTooLong
	}
	if !ValidContact(in.Contact) {
		return ErrInvalidContact
	}
	return s.repo.Update(ctx, id, in)
}

// SoftDelete hides the user from listing and login. Repeated calls for the
// same id are harmless.
func (s *Service) SoftDelete(ctx context.Context, id int64) error {
	return s.repo.SoftDelete(ctx, id)
}

// ToggleStatus flips is_active with no explicit target state, so calling it
// twice restores the original value.
func (s *Service) ToggleStatus(ctx context.Context, id int64) error {
	return s.repo.ToggleStatus(ctx, id)
}

// SetProfileImage stores a base64 image data URI on the user.
func (s *Service) SetProfileImage(ctx context.Context, id int64, image string) error {
	if !strings.HasPrefix(image, "data:image/") || len(image) > maxImageBytes {
		return ErrInvalidImage
	}
	return s.repo.SetProfileImage(ctx, id, image)
}
