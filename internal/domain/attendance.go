package domain

import "time"

// AttendanceRecord captures one user's presence for a calendar day.
type AttendanceRecord struct {
	ID             string
	UserID         string
	OrganizationID string
	Date           time.Time
	CheckIn        *time.Time
	CheckOut       *time.Time
	Status         string
	UserFullName   string
}
