package worktype

import (
	"sort"

	"github.com/frahmantamala/attendance-management/internal/attendance"
	"github.com/frahmantamala/attendance-management/internal/leave"
)

// WorkType is one catalog entry: a short code plus its display label.
type WorkType struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	Kind  string `json:"kind"`
}

const (
	KindAttendance = "attendance"
	KindLeave      = "leave"
)

// Catalog returns the full set of work and leave type codes, sorted by code
// within each kind. The catalog is static; it exists as an endpoint so
// clients never hardcode the enums.
func Catalog() []WorkType {
	out := make([]WorkType, 0, len(attendance.WorkTypeLabels)+len(leave.LeaveTypeLabels))
	for code, label := range attendance.WorkTypeLabels {
		out = append(out, WorkType{Code: code, Label: label, Kind: KindAttendance})
	}
	for code, label := range leave.LeaveTypeLabels {
		out = append(out, WorkType{Code: code, Label: label, Kind: KindLeave})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Code < out[j].Code
	})
	return out
}
