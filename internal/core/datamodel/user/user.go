package user

import "time"

// User is the persistence model for a principal. Accounts start inactive and
// are switched on by the email verification flow.
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	Name         string    `json:"name" gorm:"not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	IsActive     bool      `json:"is_active" gorm:"column:is_active;default:false"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`

	Profile *Profile `json:"profile,omitempty" gorm:"foreignKey:UserID"`
}

func (User) TableName() string {
	return "users"
}

// Profile extends a user with role flags and the reporting hierarchy. Exactly
// one profile exists per user; it is created in the same transaction as the
// user itself.
type Profile struct {
	ID              int64     `json:"id" gorm:"primaryKey"`
	UserID          int64     `json:"user_id" gorm:"column:user_id;uniqueIndex;not null"`
	TenantID        *int64    `json:"tenant_id,omitempty" gorm:"column:tenant_id"`
	IsManager       bool      `json:"is_manager" gorm:"column:is_manager;default:false"`
	IsTenantAdmin   bool      `json:"is_tenant_admin" gorm:"column:is_tenant_admin;default:false"`
	IsEmailVerified bool      `json:"is_email_verified" gorm:"column:is_email_verified;default:false"`
	ManagerID       *int64    `json:"manager_id,omitempty" gorm:"column:manager_id"`
	CreatedAt       time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Profile) TableName() string {
	return "profiles"
}
