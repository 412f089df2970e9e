package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/minibank/minibank/pkg/domain/user"
)

// UserRepository keeps users in two maps, one keyed by id and one by
// email, both guarded by a single reader/writer lock. Emails are compared
// case-sensitively, exactly as stored.
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*user.User
	byEmail map[string]*user.User
}

// NewUserRepository returns an empty in-memory identity store.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[uuid.UUID]*user.User),
		byEmail: make(map[string]*user.User),
	}
}

// Create inserts the user, failing with user.ErrEmailTaken when the email
// is already registered.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[u.Email]; exists {
		return fmt.Errorf("%w: %s", user.ErrEmailTaken, u.Email)
	}
	stored := *u
	r.byID[stored.ID] = &stored
	r.byEmail[stored.Email] = &stored
	return nil
}

// GetByEmail returns a copy of the user with the given email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, exists := r.byEmail[email]
	if !exists {
		return nil, fmt.Errorf("%w: %s", user.ErrUserNotFound, email)
	}
	copied := *u
	return &copied, nil
}

// GetByID returns a copy of the user with the given id.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, exists := r.byID[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", user.ErrUserNotFound, id)
	}
	copied := *u
	return &copied, nil
}
