package attendance

import (
	"fmt"
	"time"

	"github.com/frahmantamala/attendance-management/internal"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// CreateRecordDTO represents the request payload for logging attendance.
type CreateRecordDTO struct {
	Date     string `json:"date"`
	WorkType string `json:"work_type"`
}

// Validate checks the payload against "now". The record date may not lie in
// the future; recording today or backfilling past days is allowed.
func (dto CreateRecordDTO) Validate(now time.Time) (time.Time, error) {
	if dto.Date == "" {
		return time.Time{}, internal.NewValidationError("date is required", internal.ErrCodeValidationFailed)
	}

	date, err := time.ParseInLocation(DateLayout, dto.Date, time.UTC)
	if err != nil {
		return time.Time{}, internal.NewValidationError(fmt.Sprintf("date must be in %s format", DateLayout), internal.ErrCodeInvalidDate)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.After(today) {
		return time.Time{}, ErrDateInFuture
	}

	if dto.WorkType == "" {
		return time.Time{}, internal.NewValidationError("work_type is required", internal.ErrCodeValidationFailed)
	}
	if !IsValidWorkType(dto.WorkType) {
		return time.Time{}, internal.NewValidationError(fmt.Sprintf("work_type %q is not a known work type", dto.WorkType), internal.ErrCodeInvalidWorkType)
	}

	return date, nil
}
