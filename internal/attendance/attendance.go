package attendance

import (
	"errors"
	"time"

	attendanceDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/attendance"
)

// Record is one work-status entry for a user and calendar date.
type Record struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Date      time.Time `json:"date"`
	WorkType  string    `json:"work_type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Work type codes.
const (
	WorkTypeHome          = "WFH"
	WorkTypeOffice        = "IO"
	WorkTypeAnnualLeave   = "AL"
	WorkTypeSick          = "S"
	WorkTypeFlexiLeave    = "FL"
	WorkTypeNonWorkingDay = "NWD"
	WorkTypeTravel        = "BT"
	WorkTypeTraining      = "T"
)

// WorkTypeLabels maps codes to their display names.
var WorkTypeLabels = map[string]string{
	WorkTypeHome:          "Work from Home",
	WorkTypeOffice:        "In Office",
	WorkTypeAnnualLeave:   "Annual Leave",
	WorkTypeSick:          "Sick",
	WorkTypeFlexiLeave:    "Flexi Leave",
	WorkTypeNonWorkingDay: "Non Working Day",
	WorkTypeTravel:        "Business Travel",
	WorkTypeTraining:      "Training",
}

func IsValidWorkType(code string) bool {
	_, ok := WorkTypeLabels[code]
	return ok
}

var (
	ErrRecordNotFound  = errors.New("attendance record not found")
	ErrDuplicateRecord = errors.New("attendance record already exists for this date")
	ErrDateInFuture    = errors.New("attendance date cannot be in the future")
)

func ToDataModel(r *Record) *attendanceDatamodel.Record {
	return &attendanceDatamodel.Record{
		ID:        r.ID,
		UserID:    r.UserID,
		Date:      r.Date,
		WorkType:  r.WorkType,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func FromDataModel(r *attendanceDatamodel.Record) *Record {
	return &Record{
		ID:        r.ID,
		UserID:    r.UserID,
		Date:      r.Date,
		WorkType:  r.WorkType,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func FromDataModelSlice(records []*attendanceDatamodel.Record) []*Record {
	result := make([]*Record, len(records))
	for i, r := range records {
		result[i] = FromDataModel(r)
	}
	return result
}
