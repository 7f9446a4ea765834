package user

import "errors"

// Member is one user as seen by a tenant admin: the user row flattened with
// its profile.
type Member struct {
	UserID          int64  `json:"user_id"`
	Email           string `json:"email"`
	Name            string `json:"name"`
	IsActive        bool   `json:"is_active"`
	ProfileID       int64  `json:"profile_id"`
	IsManager       bool   `json:"is_manager"`
	IsTenantAdmin   bool   `json:"is_tenant_admin"`
	IsEmailVerified bool   `json:"is_email_verified"`
	ManagerID       *int64 `json:"manager_id,omitempty"`
}

var (
	ErrMemberNotFound  = errors.New("user not found in tenant")
	ErrManagerNotFound = errors.New("manager profile not found in tenant")
	ErrNotAManager     = errors.New("target profile is not a manager")
	ErrSelfManager     = errors.New("user cannot be their own manager")
)
