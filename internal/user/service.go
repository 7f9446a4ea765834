package user

import (
	"log/slog"
)

// Repository defines tenant-scoped member access. All lookups carry the
// tenant ID so one tenant's admin can never see or touch another tenant's
// users.
type Repository interface {
	ListByTenant(tenantID int64, limit, offset int) ([]*Member, error)
	GetMember(tenantID, userID int64) (*Member, error)
	GetMemberByProfileID(tenantID, profileID int64) (*Member, error)
	SetManager(tenantID, userID int64, managerProfileID *int64) (bool, error)
}

// Service handles tenant administration over users.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListTenantUsers lists members of a tenant.
func (s *Service) ListTenantUsers(tenantID int64, limit, offset int) ([]*Member, error) {
	members, err := s.repo.ListByTenant(tenantID, limit, offset)
	if err != nil {
		s.logger.Error("failed to list tenant users", "error", err, "tenant_id", tenantID)
		return nil, err
	}
	return members, nil
}

// AssignManager points a member's profile at a manager profile within the
// same tenant. A nil managerProfileID clears the assignment.
func (s *Service) AssignManager(tenantID, userID int64, managerProfileID *int64) (*Member, error) {
	member, err := s.repo.GetMember(tenantID, userID)
	if err != nil {
		return nil, ErrMemberNotFound
	}

	if managerProfileID != nil {
		if *managerProfileID == member.ProfileID {
			return nil, ErrSelfManager
		}

		manager, err := s.repo.GetMemberByProfileID(tenantID, *managerProfileID)
		if err != nil {
			return nil, ErrManagerNotFound
		}
		if !manager.IsManager {
			return nil, ErrNotAManager
		}
	}

	updated, err := s.repo.SetManager(tenantID, userID, managerProfileID)
	if err != nil {
		s.logger.Error("failed to assign manager", "error", err, "tenant_id", tenantID, "user_id", userID)
		return nil, err
	}
	if !updated {
		return nil, ErrMemberNotFound
	}

	member.ManagerID = managerProfileID

	s.logger.Info("manager assignment updated",
		"tenant_id", tenantID,
		"user_id", userID,
		"manager_profile_id", managerProfileID)

	return member, nil
}
