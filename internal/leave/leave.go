package leave

import (
	"errors"
	"time"

	leaveDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/leave"
)

// Request is one leave request. ManagerProfileID is the profile of the
// manager who must decide it; nil when the requester has no manager assigned.
type Request struct {
	ID               int64      `json:"id"`
	UserID           int64      `json:"user_id"`
	LeaveType        string     `json:"leave_type"`
	StartDate        time.Time  `json:"start_date"`
	EndDate          time.Time  `json:"end_date"`
	Status           string     `json:"status"`
	ManagerProfileID *int64     `json:"manager_profile_id,omitempty"`
	DecidedAt        *time.Time `json:"decided_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// Leave type codes.
const (
	LeaveTypeSick          = "SL"
	LeaveTypePersonal      = "PL"
	LeaveTypeAnnual        = "AL"
	LeaveTypeFlexi         = "FL"
	LeaveTypeNonWorkingDay = "NWD"
)

// LeaveTypeLabels maps codes to their display names.
var LeaveTypeLabels = map[string]string{
	LeaveTypeSick:          "Sick Leave",
	LeaveTypePersonal:      "Personal Leave",
	LeaveTypeAnnual:        "Annual Leave",
	LeaveTypeFlexi:         "Flexi Leave",
	LeaveTypeNonWorkingDay: "Non Working Day",
}

func IsValidLeaveType(code string) bool {
	_, ok := LeaveTypeLabels[code]
	return ok
}

// Status values. CancellationPending and Cancelled have no producer yet;
// nothing in the workflow sets them until the cancellation flow lands.
const (
	StatusPending             = "pending"
	StatusApproved            = "approved"
	StatusDenied              = "denied"
	StatusCancellationPending = "cancellation_pending"
	StatusCancelled           = "cancelled"
)

var (
	ErrLeaveNotFound   = errors.New("leave request not found")
	ErrAlreadyDecided  = errors.New("leave request has already been decided")
	ErrStartDateInPast = errors.New("leave start date cannot be in the past")
	ErrEndBeforeStart  = errors.New("leave end date cannot be before start date")
)

func ToDataModel(r *Request) *leaveDatamodel.Request {
	return &leaveDatamodel.Request{
		ID:               r.ID,
		UserID:           r.UserID,
		LeaveType:        r.LeaveType,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		Status:           r.Status,
		ManagerProfileID: r.ManagerProfileID,
		DecidedAt:        r.DecidedAt,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func FromDataModel(r *leaveDatamodel.Request) *Request {
	return &Request{
		ID:               r.ID,
		UserID:           r.UserID,
		LeaveType:        r.LeaveType,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		Status:           r.Status,
		ManagerProfileID: r.ManagerProfileID,
		DecidedAt:        r.DecidedAt,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func FromDataModelSlice(requests []*leaveDatamodel.Request) []*Request {
	out := make([]*Request, 0, len(requests))
	for _, r := range requests {
		out = append(out, FromDataModel(r))
	}
	return out
}
