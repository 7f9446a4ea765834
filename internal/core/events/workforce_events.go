package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeUserRegistered = "user.registered"
	EventTypeLeaveDecided   = "leave.decided"
)

type UserRegisteredEvent struct {
	BaseEvent
	UserID          int64  `json:"user_id"`
	Email           string `json:"email"`
	Name            string `json:"name"`
	VerificationURL string `json:"verification_url"`
}

func NewUserRegisteredEvent(userID int64, email, name, verificationURL string) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeUserRegistered,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id":          userID,
				"email":            email,
				"name":             name,
				"verification_url": verificationURL,
			},
		},
		UserID:          userID,
		Email:           email,
		Name:            name,
		VerificationURL: verificationURL,
	}
}

type LeaveDecidedEvent struct {
	BaseEvent
	LeaveRequestID int64  `json:"leave_request_id"`
	UserID         int64  `json:"user_id"`
	Email          string `json:"email"`
	LeaveType      string `json:"leave_type"`
	Status         string `json:"status"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
}

func NewLeaveDecidedEvent(leaveRequestID, userID int64, email, leaveType, status, startDate, endDate string) *LeaveDecidedEvent {
	return &LeaveDecidedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeLeaveDecided,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"leave_request_id": leaveRequestID,
				"user_id":          userID,
				"email":            email,
				"leave_type":       leaveType,
				"status":           status,
				"start_date":       startDate,
				"end_date":         endDate,
			},
		},
		LeaveRequestID: leaveRequestID,
		UserID:         userID,
		Email:          email,
		LeaveType:      leaveType,
		Status:         status,
		StartDate:      startDate,
		EndDate:        endDate,
	}
}
