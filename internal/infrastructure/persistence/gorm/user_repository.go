package gorm

import (
	"context"

	"github.com/google/uuid"
	"github.com/howl2go/v2/internal/domain/user"
	"github.com/howl2go/v2/pkg/errors"
	"gorm.io/gorm"
)

// UserRepository implements outbound.UserRepository over GORM.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Preferences returns the user's saved preferences, or nil when none
// have been saved.
func (r *UserRepository) Preferences(ctx context.Context, userID uuid.UUID) (*user.Preferences, error) {
	var m PreferencesModel
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewDatabaseError("load preferences", err)
	}
	return preferencesToDomain(m), nil
}

// SavePreferences upserts the user's preferences.
func (r *UserRepository) SavePreferences(ctx context.Context, prefs user.Preferences) error {
	m := preferencesToModel(prefs)
	if err := r.db.WithContext(ctx).Save(&m).Error; err != nil {
		return errors.NewDatabaseError("save preferences", err)
	}
	return nil
}
