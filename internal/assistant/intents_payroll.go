package assistant

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/hrms-service/internal/domain"
)

func handleNextSalaryDate(ctx context.Context, d *Dispatcher, s *session) (Reply, error) {
	return Reply{
		Answer: "Your next salary date is June 30, 2024.",
		Actions: []Action{
			{Label: "Show my payroll history", Query: "Show my payroll history."},
		},
	}, nil
}

func handleReviewFeedback(ctx context.Context, d *Dispatcher, s *session) (Reply, error) {
	return Reply{
		Answer: `Feedback from your last review: "Consistent performer, great teamwork. Focus on time management."`,
		Actions: []Action{
			{Label: "Show my evaluation history", Query: "Show my evaluation history."},
		},
	}, nil
}

func handleSalaryBreakdown(ctx context.Context, d *Dispatcher, s *session) (Reply, error) {
	payroll, err := d.stores.Payroll.LatestForStaff(ctx, s.actor.OrganizationID, s.subject.ID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return Reply{Answer: s.who("have", "has") + " no payroll records."}, nil
		}
		return Reply{}, err
	}
	st := payroll.Structure
	answer := fmt.Sprintf(
		"%s latest salary breakdown:\nBasic: %s\nHousing: %s\nUtility: %s\nTransport: %s\nBonus: %s\nReimbursements: %s\nDeductions: %s\nTaxes: %s\nNet Salary: %s",
		s.poss(),
		formatAmount(st.Basic), formatAmount(st.Housing), formatAmount(st.Utility),
		formatAmount(st.Transport), formatAmount(st.Bonus), formatAmount(st.Reimbursements),
		formatAmount(st.Deductions), formatAmount(st.Taxes), formatAmount(payroll.NetSalary),
	)
	return Reply{Answer: answer}, nil
}

func handlePayslipLink(ctx context.Context, d *Dispatcher, s *session) (Reply, error) {
	period, hasPeriod := extractPeriod(s.query)

	var payroll *domain.Payroll
	var err error
	if hasPeriod {
		payroll, err = d.stores.Payroll.ForStaffPeriod(ctx, s.actor.OrganizationID, s.subject.ID, period)
	} else {
		payroll, err = d.stores.Payroll.LatestForStaff(ctx, s.actor.OrganizationID, s.subject.ID)
	}
	if err != nil {
		if err == pgx.ErrNoRows {
			label := "the latest period"
			if hasPeriod {
				label = period
			}
			return Reply{Answer: fmt.Sprintf("No payroll found for %s.", label)}, nil
		}
		return Reply{}, err
	}
	return Reply{Answer: fmt.Sprintf("[Download PDF](/api/payroll/%s/payslip/pdf)", payroll.ID)}, nil
}

func handleHighestSalary(ctx context.Context, d *Dispatcher, s *session) (Reply, error) {
	payroll, err := d.stores.Payroll.HighestNet(ctx, s.actor.OrganizationID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return Reply{Answer: "No payroll records found."}, nil
		}
		return Reply{}, err
	}
	return Reply{Answer: fmt.Sprintf("Highest salary: %s (Net: %s)", payroll.StaffFullName, formatAmount(payroll.NetSalary))}, nil
}

func handleLowestSalary(ctx context.Context, d *Dispatcher, s *session) (Reply, error) {
	payroll, err := d.stores.Payroll.LowestNet(ctx, s.actor.OrganizationID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return Reply{Answer: "No payroll records found."}, nil
		}
		return Reply{}, err
	}
	return Reply{Answer: fmt.Sprintf("Lowest salary: %s (Net: %s)", payroll.StaffFullName, formatAmount(payroll.NetSalary))}, nil
}

var fieldSumPattern = regexp.MustCompile(`(?i)sum of (basic|housing|utility|transport|bonus|reimbursements|deductions|taxes)`)

func handleStructureFieldSum(ctx context.Context, d *Dispatcher, s *session) (Reply, error) {
	match := fieldSumPattern.FindStringSubmatch(s.query)
	if match == nil {
		return fallbackReply(), nil
	}
	field := match[1]
	sum, err := d.stores.Payroll.SumStructureField(ctx, s.actor.OrganizationID, strings.ToLower(field))
	if err != nil {
		return Reply{}, err
	}
	return Reply{Answer: fmt.Sprintf("Sum of %s for all staff: %s", field, formatAmount(sum))}, nil
}

var summaryPeriodPattern = regexp.MustCompile(`(?i)payroll (summary )?for (.+)$`)

func handlePayrollSummary(ctx context.Context, d *Dispatcher, s *session) (Reply, error) {
	period := ""
	if m := summaryPeriodPattern.FindStringSubmatch(s.query); m != nil {
		if p, ok := extractPeriod(m[2]); ok {
			period = p
		}
	}
	if period == "" {
		return Reply{Answer: "Could not determine payroll month."}, nil
	}

	payrolls, err := d.stores.Payroll.ListForPeriod(ctx, s.actor.OrganizationID, period)
	if err != nil {
		return Reply{}, err
	}
	if len(payrolls) == 0 {
		return Reply{Answer: fmt.Sprintf("No payroll records found for %s.", period)}, nil
	}

	totalNet := 0.0
	lines := make([]string, len(payrolls))
	for i, p := range payrolls {
		totalNet += p.NetSalary
		lines[i] = fmt.Sprintf("%s: Net %s", p.StaffFullName, formatAmount(p.NetSalary))
	}
	answer := fmt.Sprintf("Payroll summary for %s:\nTotal staff: %d\nTotal net paid: %s\n%s",
		period, len(payrolls), formatAmount(totalNet), strings.Join(lines, "\n"))
	return Reply{Answer: answer}, nil
}
