package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"payanam/internal/domain/user"
)

type UserRepository struct {
	mu      sync.RWMutex
	byEmail map[string]user.User
}

var _ user.Repository = (*UserRepository)(nil)

func NewUserRepository() *UserRepository {
	return &UserRepository{byEmail: make(map[string]user.User)}
}

func (r *UserRepository) Create(_ context.Context, u user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[u.Email]; exists {
		return user.User{}, user.ErrAlreadyExists
	}
	u.ID = uuid.NewString()
	r.byEmail[u.Email] = u
	return u, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}
