package domain

import "time"

// Expense claim status vocabulary.
const (
	ExpenseStatusPending  = "Pending"
	ExpenseStatusApproved = "Approved"
	ExpenseStatusRejected = "Rejected"
)

// ExpenseClaim models a reimbursable expense submitted by staff.
type ExpenseClaim struct {
	ID             string
	StaffID        string
	OrganizationID string
	Title          string
	Category       string
	TotalAmount    float64
	ExpenseDate    time.Time
	Status         string
}
