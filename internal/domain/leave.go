package domain

import "time"

// Leave request status vocabulary. Historical rows also carry lowercase
// variants, which queries must accept alongside these.
const (
	LeaveStatusPending  = "Pending"
	LeaveStatusApproved = "Approved"
	LeaveStatusRejected = "Rejected"
)

// LeaveTypeAnnual is the leave type counted against the yearly allotment.
const LeaveTypeAnnual = "Annual"

// AnnualLeaveAllotment is the fixed number of annual leave days per year.
const AnnualLeaveAllotment = 30

// LeaveRequest models a leave application over an inclusive date range.
type LeaveRequest struct {
	ID             string
	UserID         string
	OrganizationID string
	LeaveType      string
	StartDate      time.Time
	EndDate        time.Time
	Status         string
	CreatedAt      time.Time
}

// Days returns the inclusive calendar day count of the range:
// floor((end-start)/24h) + 1, so a single-day leave counts as 1.
func (l *LeaveRequest) Days() int {
	if l.EndDate.Before(l.StartDate) {
		return 0
	}
	return int(l.EndDate.Sub(l.StartDate)/(24*time.Hour)) + 1
}
