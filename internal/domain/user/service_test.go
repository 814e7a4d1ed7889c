package user

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"
)

type memoryUserRepo struct {
	mu      sync.Mutex
	users   map[int64]*User
	byMail  map[string]int64
	deleted map[int64]bool
	nextID  int64
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{
		users:   make(map[int64]*User),
		byMail:  make(map[string]int64),
		deleted: make(map[int64]bool),
		nextID:  1,
	}
}

func (r *memoryUserRepo) Create(ctx context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.byMail[u.Email]; ok && !r.deleted[id] {
		return ErrEmailTaken
	}
	u.ID = r.nextID
	r.nextID++
	u.CreatedAt = time.Now()
	copyUser := *u
	r.users[u.ID] = &copyUser
	r.byMail[u.Email] = u.ID
	return nil
}

func (r *memoryUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byMail[email]
	if !ok || r.deleted[id] {
		return nil, sql.ErrNoRows
	}
	copyUser := *r.users[id]
	return &copyUser, nil
}

func (r *memoryUserRepo) GetByID(ctx context.Context, id int64) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || r.deleted[id] {
		return nil, sql.ErrNoRows
	}
	copyUser := *u
	return &copyUser, nil
}

func (r *memoryUserRepo) ListActive(ctx context.Context) ([]User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]User, 0, len(r.users))
	for id, u := range r.users {
		if r.deleted[id] {
			continue
		}
		res = append(res, *u)
	}
	return res, nil
}

func (r *memoryUserRepo) Update(ctx context.Context, id int64, in UpdateInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || r.deleted[id] {
		return nil
	}
	u.FirstName = in.FirstName
	u.LastName = in.LastName
	u.Contact = in.Contact
	u.Address = in.Address
	return nil
}

func (r *memoryUserRepo) SoftDelete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted[id] = true
	return nil
}

func (r *memoryUserRepo) ToggleStatus(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.IsActive = !u.IsActive
	}
	return nil
}

func (r *memoryUserRepo) SetProfileImage(ctx context.Context, id int64, image string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.ProfileImage = &image
	}
	return nil
}

func validInput() CreateInput {
	return CreateInput{
		FirstName: "Ann",
		LastName:  "Lee",
		Contact:   "1234567890",
		Email:     "ann@gmail.com",
		Address:   "X",
		Password:  "Abc123#4",
	}
}

func TestCreateAndAuthenticate(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := NewService(repo)
	ctx := context.Background()

	u, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !u.IsActive {
		t.Fatalf("new user should be active")
	}
	if u.PasswordHash == "Abc123#4" || u.PasswordHash == "" {
		t.Fatalf("password should be hashed")
	}

	if _, err := svc.Authenticate(ctx, "ann@gmail.com", "Abc123#4"); err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "ann@gmail.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "ghost@gmail.com", "Abc123#4"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown email, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "", ""); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("expected missing credentials, got %v", err)
	}

	if _, err := svc.Create(ctx, validInput()); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected email taken, got %v", err)
	}

	if err := svc.ToggleStatus(ctx, u.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "ann@gmail.com", "Abc123#4"); !errors.Is(err, ErrInactiveAccount) {
		t.Fatalf("expected inactive account, got %v", err)
	}

	if err := svc.SoftDelete(ctx, u.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "ann@gmail.com", "Abc123#4"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("deleted user must not authenticate, got %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := NewService(repo)
	ctx := context.Background()

	long := make([]byte, 51)
	for i := range long {
		long[i] = 'a'
	}

	tests := []struct {
		name    string
		mutate  func(*CreateInput)
		wantErr error
	}{
		{"first name too long", func(in *CreateInput) { in.FirstName = string(long) }, ErrNameTooLong},
		{"empty last name", func(in *CreateInput) { in.LastName = "" }, ErrNameTooLong},
		{"short contact", func(in *CreateInput) { in.Contact = "12345" }, ErrInvalidContact},
		{"non-gmail email", func(in *CreateInput) { in.Email = "ann@outlook.com" }, ErrInvalidEmail},
		{"weak password", func(in *CreateInput) { in.Password = "abc12345" }, ErrWeakPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			if _, err := svc.Create(ctx, in); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestUpdateDoesNotTouchEmailOrPassword(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := NewService(repo)
	ctx := context.Background()

	u, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Update(ctx, u.ID, UpdateInput{
		FirstName: "Anna",
		LastName:  "Lee",
		Contact:   "0987654321",
		Address:   "Y",
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := svc.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.FirstName != "Anna" || got.Contact != "0987654321" || got.Address != "Y" {
		t.Fatalf("update not applied: %+v", got)
	}
	if got.Email != "ann@gmail.com" || got.PasswordHash != u.PasswordHash {
		t.Fatalf("email and password must be immutable")
	}

	if err := svc.Update(ctx, u.ID, UpdateInput{
		FirstName: "Anna", LastName: "Lee", Contact: "123", Address: "Y",
	}); !errors.Is(err, ErrInvalidContact) {
		t.Fatalf("expected invalid contact, got %v", err)
	}
}

func TestToggleTwiceRestoresStatus(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := NewService(repo)
	ctx := context.Background()

	u, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := svc.ToggleStatus(ctx, u.ID); err != nil {
			t.Fatalf("toggle %d: %v", i, err)
		}
	}
	got, err := svc.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.IsActive {
		t.Fatalf("two toggles must restore original status")
	}
}

func TestSetProfileImage(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := NewService(repo)
	ctx := context.Background()

	u, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.SetProfileImage(ctx, u.ID, "data:text/plain;base64,aGk="); !errors.Is(err, ErrInvalidImage) {
		t.Fatalf("expected invalid image, got %v", err)
	}

	img := "data:image/png;base64,iVBORw0KGgo="
	if err := svc.SetProfileImage(ctx, u.ID, img); err != nil {
		t.Fatalf("set image: %v", err)
	}
	got, err := svc.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ProfileImage == nil || *got.ProfileImage != img {
		t.Fatalf("image not stored")
	}
}
