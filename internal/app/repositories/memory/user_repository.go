package memory

import (
	"context"
	"sync"

	"github.com/deniz/learnhub/internal/app/models"
	"github.com/deniz/learnhub/internal/pkg/apperrors"
)

// UserRepository is the in-memory user directory.
type UserRepository struct {
	mu      sync.RWMutex
	users   []models.User
	byEmail map[string]int // index into users
}

// NewUserRepository creates an empty directory.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		byEmail: make(map[string]int),
	}
}

// Create appends a directory entry; emails are unique.
func (r *UserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return apperrors.ErrEmailAlreadyExists
	}

	r.byEmail[user.Email] = len(r.users)
	r.users = append(r.users, *user)
	return nil
}

// GetByID returns a copy of the user with the given id.
func (r *UserRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			user := u
			return &user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

// GetByEmail returns a copy of the entry matching the email exactly.
func (r *UserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byEmail[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}

	user := r.users[idx]
	return &user, nil
}

// EmailExists reports whether the email is taken.
func (r *UserRepository) EmailExists(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byEmail[email]
	return ok, nil
}
