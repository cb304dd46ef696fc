package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/hrms-service/internal/domain"
	"github.com/spec-kit/hrms-service/internal/repository"
)

// Historical rows carry lowercase statuses alongside the capitalized
// vocabulary, so leave queries match both spellings.
func leaveStatuses(status string) []string {
	return []string{status, strings.ToLower(status)}
}

func handleLeaveDaysLeft(ctx context.Context, d *Dispatcher, s *session) (Reply, error) {
	year := s.now.Year()
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, s.loc)
	yearEnd := time.Date(year, time.December, 31, 23, 59, 59, 999000000, s.loc)

	leaves, err := d.stores.Leave.List(ctx, repository.LeaveFilter{
		UserID:    s.subject.ID,
		LeaveType: domain.LeaveTypeAnnual,
		Statuses:  leaveStatuses(domain.LeaveStatusApproved),
		StartFrom: &yearStart,
		StartTo:   &yearEnd,
	})
	if err != nil {
		return Reply{}, err
	}

	daysUsed := 0
	for i := range leaves {
		daysUsed += leaves[i].Days()
	}
	daysLeft := domain.AnnualLeaveAllotment - daysUsed
	if daysLeft < 0 {
		daysLeft = 0
	}

	return Reply{
		Answer: fmt.Sprintf("%s %d annual leave %s left this year.",
			s.who("have", "has"), daysLeft, plural(daysLeft, "day", "days")),
		Actions: []Action{
			{Label: "Show leave history", Query: "Show leave history for " + s.subject.FullName},
		},
	}, nil
}

func handleLeaveHistory(ctx context.Context, d *Dispatcher, s *session) (Reply, error) {
	leaves, err := d.stores.Leave.List(ctx, repository.LeaveFilter{UserID: s.subject.ID, Limit: 5})
	if err != nil {
		return Reply{}, err
	}
	if len(leaves) == 0 {
		return Reply{Answer: s.who("have", "has") + " no leave requests."}, nil
	}
	lines := make([]string, len(leaves))
	for i, l := range leaves {
		lines[i] = fmt.Sprintf("%s leave: %s to %s (%s)",
			l.LeaveType, formatDate(l.StartDate, s.loc), formatDate(l.EndDate, s.loc), l.Status)
	}
	return Reply{Answer: s.poss() + " recent leave requests:\n" + strings.Join(lines, "\n")}, nil
}

func handleLastLeaveStatus(ctx context.Context, d *Dispatcher, s *session) (Reply, error) {
	last, err := d.stores.Leave.LatestByCreated(ctx, s.subject.ID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return Reply{Answer: s.who("have", "has") + " not submitted any leave requests."}, nil
		}
		return Reply{}, err
	}
	return Reply{Answer: fmt.Sprintf("%s last leave request (%s to %s) is %s.",
		s.poss(), formatDate(last.StartDate, s.loc), formatDate(last.EndDate, s.loc), last.Status)}, nil
}

func handleApplyLeave(ctx context.Context, d *Dispatcher, s *session) (Reply, error) {
	return Reply{
		Answer: "Your leave request has been submitted. Would you like to view its status?",
		Actions: []Action{
			{Label: "What's the status of my last leave request?", Query: "What's the status of my last leave request?"},
		},
	}, nil
}

func handleLeaveTracker(ctx context.Context, d *Dispatcher, s *session) (Reply, error) {
	year := s.now.Year()
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, s.loc)
	yearEnd := time.Date(year, time.December, 31, 23, 59, 59, 999000000, s.loc)

	leaves, err := d.stores.Leave.List(ctx, repository.LeaveFilter{
		UserID:    s.subject.ID,
		StartFrom: &yearStart,
		StartTo:   &yearEnd,
	})
	if err != nil {
		return Reply{}, err
	}
	if len(leaves) == 0 {
		return Reply{Answer: s.who("have", "has") + " no leave records this year."}, nil
	}

	// Aggregate inclusive day counts per leave type, keeping first-seen
	// type order stable for the answer.
	totals := map[string]int{}
	var order []string
	for i := range leaves {
		l := &leaves[i]
		if _, seen := totals[l.LeaveType]; !seen {
			order = append(order, l.LeaveType)
		}
		totals[l.LeaveType] += l.Days()
	}
	lines := make([]string, len(order))
	for i, leaveType := range order {
		lines[i] = fmt.Sprintf("%s: %d days", leaveType, totals[leaveType])
	}
	return Reply{Answer: s.poss() + " leave tracker for this year:\n" + strings.Join(lines, "\n")}, nil
}

func handleUpcomingLeaves(ctx context.Context, d *Dispatcher, s *session) (Reply, error) {
	now := s.now
	leaves, err := d.stores.Leave.List(ctx, repository.LeaveFilter{
		UserID:        s.subject.ID,
		Statuses:      leaveStatuses(domain.LeaveStatusApproved),
		StartFrom:     &now,
		SortAscending: true,
		Limit:         5,
	})
	if err != nil {
		return Reply{}, err
	}
	if len(leaves) == 0 {
		return Reply{Answer: s.who("have", "has") + " no upcoming approved leaves."}, nil
	}
	lines := make([]string, len(leaves))
	for i, l := range leaves {
		lines[i] = fmt.Sprintf("%s leave: %s to %s",
			l.LeaveType, formatDate(l.StartDate, s.loc), formatDate(l.EndDate, s.loc))
	}
	return Reply{Answer: s.poss() + " upcoming approved leaves:\n" + strings.Join(lines, "\n")}, nil
}

func leaveByStatus(ctx context.Context, d *Dispatcher, s *session, status string) (Reply, error) {
	leaves, err := d.stores.Leave.List(ctx, repository.LeaveFilter{
		UserID:   s.subject.ID,
		Statuses: leaveStatuses(status),
		Limit:    5,
	})
	if err != nil {
		return Reply{}, err
	}
	lower := strings.ToLower(status)
	if len(leaves) == 0 {
		return Reply{Answer: fmt.Sprintf("%s no %s leave records.", s.who("have", "has"), lower)}, nil
	}
	lines := make([]string, len(leaves))
	for i, l := range leaves {
		lines[i] = fmt.Sprintf("%s leave: %s to %s",
			l.LeaveType, formatDate(l.StartDate, s.loc), formatDate(l.EndDate, s.loc))
	}
	return Reply{Answer: fmt.Sprintf("%s %s leaves:\n%s", s.poss(), lower, strings.Join(lines, "\n"))}, nil
}

func handleApprovedLeave(ctx context.Context, d *Dispatcher, s *session) (Reply, error) {
	return leaveByStatus(ctx, d, s, domain.LeaveStatusApproved)
}

func handlePendingLeave(ctx context.Context, d *Dispatcher, s *session) (Reply, error) {
	return leaveByStatus(ctx, d, s, domain.LeaveStatusPending)
}

func handleRejectedLeave(ctx context.Context, d *Dispatcher, s *session) (Reply, error) {
	return leaveByStatus(ctx, d, s, domain.LeaveStatusRejected)
}
