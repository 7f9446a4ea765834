package auth

import (
	"context"
	"errors"

	userDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/user"
)

// User is the authenticated principal attached to the request context.
type User struct {
	ID              int64  `json:"id"`
	Email           string `json:"email"`
	Name            string `json:"name"`
	IsActive        bool   `json:"is_active"`
	ProfileID       int64  `json:"profile_id"`
	IsManager       bool   `json:"is_manager"`
	IsTenantAdmin   bool   `json:"is_tenant_admin"`
	IsEmailVerified bool   `json:"is_email_verified"`
	ManagerID       *int64 `json:"manager_id,omitempty"`
	TenantID        *int64 `json:"tenant_id,omitempty"`
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUserInactive       = errors.New("user is inactive")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrPasswordReuse      = errors.New("cannot reuse the previous password")
	ErrUserNotFound       = errors.New("user not found")
)

type ctxKey string

const ContextUserKey ctxKey = "authUser"

func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}

func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ContextUserKey).(*User)
	return u, ok
}

// FromDataModel flattens the persistence user and its profile into the
// request-scoped principal. A missing profile leaves the role flags at their
// zero values.
func FromDataModel(u *userDatamodel.User) *User {
	principal := &User{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		IsActive: u.IsActive,
	}

	if u.Profile != nil {
		principal.ProfileID = u.Profile.ID
		principal.IsManager = u.Profile.IsManager
		principal.IsTenantAdmin = u.Profile.IsTenantAdmin
		principal.IsEmailVerified = u.Profile.IsEmailVerified
		principal.ManagerID = u.Profile.ManagerID
		principal.TenantID = u.Profile.TenantID
	}

	return principal
}
