package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLeaveRequested EventType = "leave_requested"
	EventLeaveDecided   EventType = "leave_decided"
	EventUserRegistered EventType = "user_registered"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID             string      `json:"id"`
	Type           EventType   `json:"type"`
	OrganizationID string      `json:"organization_id"`
	ActorID        string      `json:"actor_id"`
	Timestamp      time.Time   `json:"timestamp"`
	Payload        interface{} `json:"payload"`
}

// LeaveRequestedPayload payload.
type LeaveRequestedPayload struct {
	LeaveID   string    `json:"leave_id"`
	UserID    string    `json:"user_id"`
	LeaveType string    `json:"leave_type"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Days      int       `json:"days"`
}

// LeaveDecidedPayload payload.
type LeaveDecidedPayload struct {
	LeaveID   string `json:"leave_id"`
	UserID    string `json:"user_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}
