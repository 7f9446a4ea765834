package postgres

import (
	"fmt"
	"strings"
	"time"

	"github.com/frahmantamala/attendance-management/internal/auth"
	userDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/user"
	"gorm.io/gorm"
)

// Repository implements auth.Repository using GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) auth.Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByEmail(email string) (*userDatamodel.User, error) {
	var record userDatamodel.User
	err := r.db.Preload("Profile").
		Where("lower(email) = ?", strings.ToLower(email)).
		First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *Repository) GetByID(userID int64) (*userDatamodel.User, error) {
	var record userDatamodel.User
	err := r.db.Preload("Profile").Where("id = ?", userID).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}
	return &record, nil
}

// CreateWithProfile persists the user and its profile in one transaction.
// Profile creation is explicit here, not a save-hook side effect.
func (r *Repository) CreateWithProfile(u *userDatamodel.User, p *userDatamodel.Profile) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		p.UserID = u.ID
		if err := tx.Create(p).Error; err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}
		return nil
	})
}

// Activate flips the user active and marks the profile email-verified.
func (r *Repository) Activate(userID int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&userDatamodel.User{}).
			Where("id = ?", userID).
			Updates(map[string]interface{}{"is_active": true, "updated_at": time.Now()}).Error; err != nil {
			return err
		}
		return tx.Model(&userDatamodel.Profile{}).
			Where("user_id = ?", userID).
			Updates(map[string]interface{}{"is_email_verified": true, "updated_at": time.Now()}).Error
	})
}

func (r *Repository) UpdatePasswordHash(userID int64, hash string) error {
	return r.db.Model(&userDatamodel.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{"password_hash": hash, "updated_at": time.Now()}).Error
}
