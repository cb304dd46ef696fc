package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/spec-kit/hrms-service/internal/domain"
	"github.com/spec-kit/hrms-service/internal/repository"
)

func claimsByStatus(ctx context.Context, d *Dispatcher, s *session, status string) (Reply, error) {
	claims, err := d.stores.Expenses.List(ctx, repository.ExpenseFilter{
		StaffID:        s.subject.ID,
		OrganizationID: s.actor.OrganizationID,
		Statuses:       []string{status},
		Limit:          10,
	})
	if err != nil {
		return Reply{}, err
	}
	lower := strings.ToLower(status)
	if len(claims) == 0 {
		return Reply{Answer: fmt.Sprintf("%s no %s expense claims.", s.who("have", "has"), lower)}, nil
	}
	lines := make([]string, len(claims))
	for i, c := range claims {
		lines[i] = fmt.Sprintf("%s (%s) - %s on %s",
			c.Title, c.Category, formatAmount(c.TotalAmount), formatDate(c.ExpenseDate, s.loc))
	}
	return Reply{Answer: fmt.Sprintf("%s %s expense claims:\n%s", s.poss(), lower, strings.Join(lines, "\n"))}, nil
}

func handlePendingClaims(ctx context.Context, d *Dispatcher, s *session) (Reply, error) {
	return claimsByStatus(ctx, d, s, domain.ExpenseStatusPending)
}

func handleApprovedClaims(ctx context.Context, d *Dispatcher, s *session) (Reply, error) {
	return claimsByStatus(ctx, d, s, domain.ExpenseStatusApproved)
}

func handleRejectedClaims(ctx context.Context, d *Dispatcher, s *session) (Reply, error) {
	return claimsByStatus(ctx, d, s, domain.ExpenseStatusRejected)
}

func handleExpenseReport(ctx context.Context, d *Dispatcher, s *session) (Reply, error) {
	claims, err := d.stores.Expenses.List(ctx, repository.ExpenseFilter{
		StaffID:        s.subject.ID,
		OrganizationID: s.actor.OrganizationID,
		Statuses:       []string{domain.ExpenseStatusApproved, domain.ExpenseStatusRejected, domain.ExpenseStatusPending},
	})
	if err != nil {
		return Reply{}, err
	}
	if len(claims) == 0 {
		return Reply{Answer: s.who("have", "has") + " no expense claims."}, nil
	}

	total := 0.0
	byStatus := map[string]float64{}
	for _, c := range claims {
		total += c.TotalAmount
		byStatus[c.Status] += c.TotalAmount
	}
	answer := fmt.Sprintf(
		"%s expense report:\nTotal claims: %d\nTotal amount: %s\nApproved: %s\nPending: %s\nRejected: %s",
		s.poss(), len(claims), formatAmount(total),
		formatAmount(byStatus[domain.ExpenseStatusApproved]),
		formatAmount(byStatus[domain.ExpenseStatusPending]),
		formatAmount(byStatus[domain.ExpenseStatusRejected]),
	)
	return Reply{Answer: answer}, nil
}
