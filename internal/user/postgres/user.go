package postgres

import (
	userDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/user"
	"github.com/frahmantamala/attendance-management/internal/user"
	"gorm.io/gorm"
)

// UserRepository implements tenant-scoped member queries using GORM
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func toMember(u *userDatamodel.User) *user.Member {
	member := &user.Member{
		UserID:   u.ID,
		Email:    u.Email,
		Name:     u.Name,
		IsActive: u.IsActive,
	}
	if u.Profile != nil {
		member.ProfileID = u.Profile.ID
		member.IsManager = u.Profile.IsManager
		member.IsTenantAdmin = u.Profile.IsTenantAdmin
		member.IsEmailVerified = u.Profile.IsEmailVerified
		member.ManagerID = u.Profile.ManagerID
	}
	return member
}

func (r *UserRepository) ListByTenant(tenantID int64, limit, offset int) ([]*user.Member, error) {
	var users []*userDatamodel.User
	err := r.db.
		Joins("JOIN profiles ON profiles.user_id = users.id").
		Where("profiles.tenant_id = ?", tenantID).
		Preload("Profile").
		Order("users.id ASC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	members := make([]*user.Member, 0, len(users))
	for _, u := range users {
		members = append(members, toMember(u))
	}
	return members, nil
}

func (r *UserRepository) GetMember(tenantID, userID int64) (*user.Member, error) {
	var u userDatamodel.User
	err := r.db.
		Joins("JOIN profiles ON profiles.user_id = users.id").
		Where("profiles.tenant_id = ? AND users.id = ?", tenantID, userID).
		Preload("Profile").
		First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, user.ErrMemberNotFound
		}
		return nil, err
	}
	return toMember(&u), nil
}

func (r *UserRepository) GetMemberByProfileID(tenantID, profileID int64) (*user.Member, error) {
	var u userDatamodel.User
	err := r.db.
		Joins("JOIN profiles ON profiles.user_id = users.id").
		Where("profiles.tenant_id = ? AND profiles.id = ?", tenantID, profileID).
		Preload("Profile").
		First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, user.ErrMemberNotFound
		}
		return nil, err
	}
	return toMember(&u), nil
}

// SetManager updates the member's profile, scoped by tenant. Returns whether
// a row changed.
func (r *UserRepository) SetManager(tenantID, userID int64, managerProfileID *int64) (bool, error) {
	result := r.db.Model(&userDatamodel.Profile{}).
		Where("user_id = ? AND tenant_id = ?", userID, tenantID).
		Update("manager_id", managerProfileID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
