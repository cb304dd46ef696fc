package dto

import "time"

// LeaveCreateRequest submits a leave request over an inclusive range.
type LeaveCreateRequest struct {
	LeaveType string    `json:"leave_type"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// LeaveDecisionRequest approves or rejects a pending request.
type LeaveDecisionRequest struct {
	Decision string `json:"decision"`
}

// LeaveResponse is the leave request shape returned by the API.
type LeaveResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	LeaveType string    `json:"leave_type"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Days      int       `json:"days"`
	Status    string    `json:"status"`
}

// AttendanceResponse is the attendance record shape returned by the API.
type AttendanceResponse struct {
	ID       string     `json:"id"`
	Date     time.Time  `json:"date"`
	CheckIn  *time.Time `json:"check_in,omitempty"`
	CheckOut *time.Time `json:"check_out,omitempty"`
	Status   string     `json:"status"`
}

// AssistantQueryRequest carries one free-text question.
type AssistantQueryRequest struct {
	Query string `json:"query"`
}
