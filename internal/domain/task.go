package domain

import "time"

// TaskAssignee pairs a user id with the display name used in answers.
type TaskAssignee struct {
	UserID   string
	FullName string
}

// Task models an assignable work item with a due date.
type Task struct {
	ID             string
	OrganizationID string
	Title          string
	Status         string
	EndDate        time.Time
	Assignees      []TaskAssignee
}
