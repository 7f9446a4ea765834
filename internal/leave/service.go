package leave

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/frahmantamala/attendance-management/internal/auth"
	"github.com/frahmantamala/attendance-management/internal/core/events"
)

// Repository defines the data access methods for leave requests.
type Repository interface {
	Create(request *Request) error
	GetByUserID(userID int64, limit, offset int) ([]*Request, error)
	GetPendingByManager(managerProfileID int64, limit, offset int) ([]*Request, error)
	// GetForManager is manager-scoped: a request addressed to a different
	// manager is reported as not found.
	GetForManager(id, managerProfileID int64) (*Request, error)
	UpdateDecision(id int64, status string, decidedAt time.Time) error
}

// UserDirectory resolves requester details for decision notifications.
type UserDirectory interface {
	GetUserByID(userID int64) (*auth.User, error)
}

// Service handles the leave request workflow.
type Service struct {
	repo   Repository
	users  UserDirectory
	bus    *events.EventBus
	clock  clockwork.Clock
	logger *slog.Logger
}

func NewService(repo Repository, users UserDirectory, bus *events.EventBus, clock clockwork.Clock, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		bus:    bus,
		clock:  clock,
		logger: logger,
	}
}

// CreateRequest submits a leave request. The request is addressed to the
// requester's manager; users without a manager still get a request recorded,
// it just sits unaddressed until one is assigned.
func (s *Service) CreateRequest(user *auth.User, dto CreateRequestDTO) (*Request, error) {
	start, end, err := dto.Validate(s.clock.Now())
	if err != nil {
		s.logger.Error("leave request validation failed", "error", err, "user_id", user.ID)
		return nil, err
	}

	request := &Request{
		UserID:           user.ID,
		LeaveType:        dto.LeaveType,
		StartDate:        start,
		EndDate:          end,
		Status:           StatusPending,
		ManagerProfileID: user.ManagerID,
	}

	if err := s.repo.Create(request); err != nil {
		s.logger.Error("failed to create leave request", "error", err, "user_id", user.ID)
		return nil, err
	}

	s.logger.Info("leave request created",
		"leave_request_id", request.ID,
		"user_id", user.ID,
		"leave_type", dto.LeaveType,
		"start_date", dto.StartDate,
		"end_date", dto.EndDate)

	return request, nil
}

// GetUserRequests retrieves leave requests submitted by a specific user.
func (s *Service) GetUserRequests(userID int64, limit, offset int) ([]*Request, error) {
	requests, err := s.repo.GetByUserID(userID, limit, offset)
	if err != nil {
		s.logger.Error("failed to get leave requests", "error", err, "user_id", userID)
		return nil, err
	}
	return requests, nil
}

// GetPendingForManager retrieves pending requests addressed to a manager.
func (s *Service) GetPendingForManager(managerProfileID int64, limit, offset int) ([]*Request, error) {
	requests, err := s.repo.GetPendingByManager(managerProfileID, limit, offset)
	if err != nil {
		s.logger.Error("failed to get pending leave requests", "error", err, "manager_profile_id", managerProfileID)
		return nil, err
	}
	return requests, nil
}

// ApproveRequest approves a pending request addressed to the acting manager.
func (s *Service) ApproveRequest(ctx context.Context, id, managerProfileID int64) (*Request, error) {
	return s.decide(ctx, id, managerProfileID, StatusApproved)
}

// DenyRequest denies a pending request addressed to the acting manager.
func (s *Service) DenyRequest(ctx context.Context, id, managerProfileID int64) (*Request, error) {
	return s.decide(ctx, id, managerProfileID, StatusDenied)
}

func (s *Service) decide(ctx context.Context, id, managerProfileID int64, status string) (*Request, error) {
	request, err := s.repo.GetForManager(id, managerProfileID)
	if err != nil {
		s.logger.Warn("leave request lookup failed",
			"error", err,
			"leave_request_id", id,
			"manager_profile_id", managerProfileID)
		return nil, ErrLeaveNotFound
	}

	if request.Status != StatusPending {
		s.logger.Warn("decision on non-pending leave request rejected",
			"leave_request_id", id,
			"status", request.Status)
		return nil, ErrAlreadyDecided
	}

	decidedAt := s.clock.Now()
	if err := s.repo.UpdateDecision(id, status, decidedAt); err != nil {
		s.logger.Error("failed to update leave request", "error", err, "leave_request_id", id)
		return nil, err
	}

	request.Status = status
	request.DecidedAt = &decidedAt

	s.logger.Info("leave request decided",
		"leave_request_id", id,
		"status", status,
		"manager_profile_id", managerProfileID)

	s.publishDecision(ctx, request)

	return request, nil
}

func (s *Service) publishDecision(ctx context.Context, request *Request) {
	if s.bus == nil {
		return
	}

	requester, err := s.users.GetUserByID(request.UserID)
	if err != nil {
		s.logger.Error("failed to resolve requester for decision notification",
			"error", err,
			"leave_request_id", request.ID,
			"user_id", request.UserID)
		return
	}

	event := events.NewLeaveDecidedEvent(
		request.ID,
		request.UserID,
		requester.Email,
		request.LeaveType,
		request.Status,
		request.StartDate.Format(DateLayout),
		request.EndDate.Format(DateLayout),
	)
	if err := s.bus.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish leave decision event",
			"error", err,
			"leave_request_id", request.ID)
	}
}
