package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/howl2go/v2/internal/domain/user"
)

// UserRepository keeps saved preferences in memory.
type UserRepository struct {
	mu    sync.RWMutex
	prefs map[uuid.UUID]user.Preferences
}

func NewUserRepository() *UserRepository {
	return &UserRepository{prefs: map[uuid.UUID]user.Preferences{}}
}

func (r *UserRepository) Preferences(ctx context.Context, userID uuid.UUID) (*user.Preferences, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.prefs[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *UserRepository) SavePreferences(ctx context.Context, prefs user.Preferences) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefs[prefs.UserID] = prefs
	return nil
}
