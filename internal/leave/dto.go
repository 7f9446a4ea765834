package leave

import (
	"fmt"
	"time"

	"github.com/frahmantamala/attendance-management/internal"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// CreateRequestDTO represents the request payload for submitting leave.
type CreateRequestDTO struct {
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Validate checks the payload against "now". Leave may start today or later
// and must end no earlier than it starts.
func (dto CreateRequestDTO) Validate(now time.Time) (start, end time.Time, err error) {
	if dto.LeaveType == "" {
		return time.Time{}, time.Time{}, internal.NewValidationError("leave_type is required", internal.ErrCodeValidationFailed)
	}
	if !IsValidLeaveType(dto.LeaveType) {
		return time.Time{}, time.Time{}, internal.NewValidationError(fmt.Sprintf("leave_type %q is not a known leave type", dto.LeaveType), internal.ErrCodeInvalidLeaveType)
	}

	if dto.StartDate == "" || dto.EndDate == "" {
		return time.Time{}, time.Time{}, internal.NewValidationError("start_date and end_date are required", internal.ErrCodeValidationFailed)
	}

	start, err = time.ParseInLocation(DateLayout, dto.StartDate, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, internal.NewValidationError(fmt.Sprintf("start_date must be in %s format", DateLayout), internal.ErrCodeInvalidDate)
	}
	end, err = time.ParseInLocation(DateLayout, dto.EndDate, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, internal.NewValidationError(fmt.Sprintf("end_date must be in %s format", DateLayout), internal.ErrCodeInvalidDate)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if start.Before(today) {
		return time.Time{}, time.Time{}, ErrStartDateInPast
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, ErrEndBeforeStart
	}

	return start, end, nil
}
