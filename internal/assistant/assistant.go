// Package assistant implements the natural-language query endpoint: a
// priority-ordered table of regex-matched intents dispatched against
// read-only HR stores. Every call is stateless; pattern order resolves
// overlapping matches, so more specific rules sit above generic catch-alls.
package assistant

import (
	"context"
	"regexp"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/hrms-service/internal/domain"
	"github.com/spec-kit/hrms-service/internal/repository"
)

// Action is a suggested follow-up query offered back to the caller.
type Action struct {
	Label string `json:"label"`
	Query string `json:"query"`
}

// Reply is the dispatcher's answer payload.
type Reply struct {
	Answer  string   `json:"answer"`
	Actions []Action `json:"actions"`
}

// Stores bundles the read-only collaborators the dispatcher queries.
type Stores struct {
	Users         repository.UserRepository
	Organizations repository.OrganizationRepository
	Attendance    repository.AttendanceRepository
	Leave         repository.LeaveRepository
	Training      repository.TrainingRepository
	Tasks         repository.TaskRepository
	Payroll       repository.PayrollRepository
	Expenses      repository.ExpenseRepository
	Inventory     repository.InventoryRepository
}

// handlerFunc executes one matched intent against the session.
type handlerFunc func(ctx context.Context, d *Dispatcher, s *session) (Reply, error)

// intent is one ordered dispatch rule. adminOnly rules do not match for
// non-admin actors at all: they fall through silently instead of producing
// an authorization error, so staff cannot probe the admin vocabulary.
type intent struct {
	name              string
	pattern           *regexp.Regexp
	adminOnly         bool
	subjectOverridable bool
	handle            handlerFunc
}

// Dispatcher matches free-text queries against the intent table and
// formats answers. It holds no per-request state.
type Dispatcher struct {
	stores  Stores
	logger  *zap.Logger
	now     func() time.Time
	intents []intent
}

// Option customizes dispatcher construction.
type Option func(*Dispatcher)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) { d.now = now }
}

// NewDispatcher builds the dispatcher with the full intent table.
func NewDispatcher(stores Stores, logger *zap.Logger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		stores: stores,
		logger: logger,
		now:    time.Now,
	}
	d.intents = intentTable()
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch resolves a query for the actor. Subject ambiguity and unknown
// names are terminal answers, not errors; store failures propagate.
func (d *Dispatcher) Dispatch(ctx context.Context, actor *domain.User, query string) (Reply, error) {
	s := &session{
		actor:   actor,
		subject: actor,
		query:   query,
		loc:     d.location(ctx, actor),
	}
	s.now = d.now().In(s.loc)

	for i := range d.intents {
		in := &d.intents[i]
		if in.adminOnly && !actor.IsAdmin() {
			continue
		}
		if !in.pattern.MatchString(query) {
			continue
		}
		if in.subjectOverridable && actor.IsAdmin() {
			terminal, err := d.resolveSubject(ctx, s)
			if err != nil {
				return Reply{}, err
			}
			if terminal != nil {
				return *terminal, nil
			}
		}
		reply, err := in.handle(ctx, d, s)
		if err != nil {
			return Reply{}, err
		}
		return d.postProcess(actor, query, reply)
	}

	return d.postProcess(actor, query, fallbackReply())
}

// location loads the organization timezone, falling back to the default
// when settings are absent or the zone is unknown.
func (d *Dispatcher) location(ctx context.Context, actor *domain.User) *time.Location {
	var settings *domain.OrganizationSettings
	if actor != nil && actor.OrganizationID != "" {
		loaded, err := d.stores.Organizations.GetSettings(ctx, actor.OrganizationID)
		if err != nil && err != pgx.ErrNoRows {
			d.logger.Warn("load organization settings", zap.Error(err))
		}
		if err == nil {
			settings = loaded
		}
	}
	return settings.Location()
}

func fallbackReply() Reply {
	return Reply{
		Answer: "Sorry, I'm not sure how to help with that yet. Try asking about attendance, leave, payroll, or training.",
		Actions: []Action{
			{Label: "What time did I clock in today?", Query: "What time did I clock in today?"},
			{Label: "How many leave days do I have left?", Query: "How many leave days do I have left?"},
		},
	}
}

// intentTable returns the dispatch rules in priority order. The order is
// load-bearing: generic catch-alls (for example the bare inventory rule)
// must stay below the specific rules they would otherwise shadow.
func intentTable() []intent {
	return []intent{
		{name: "attendance.clock_in_today", pattern: regexp.MustCompile(`(?i)clock in|check[- ]?in.*today`), handle: handleClockInToday},
		{name: "attendance.last_7_days", pattern: regexp.MustCompile(`(?i)last 7 days.*attendance`), handle: handleLastSevenDays},
		{name: "attendance.missed_check_ins", pattern: regexp.MustCompile(`(?i)missed check[- ]?ins?`), handle: handleMissedCheckIns},
		{name: "attendance.present_today", pattern: regexp.MustCompile(`(?i)who.*present.*today|present staff.*today`), adminOnly: true, handle: handlePresentToday},
		{name: "attendance.absent_today", pattern: regexp.MustCompile(`(?i)who.*absent.*today|absent staff.*today`), adminOnly: true, handle: handleAbsentToday},
		{name: "leave.days_left", pattern: regexp.MustCompile(`(?i)leave days.*left`), subjectOverridable: true, handle: handleLeaveDaysLeft},
		{name: "leave.history", pattern: regexp.MustCompile(`(?i)leave history|my leave requests`), subjectOverridable: true, handle: handleLeaveHistory},
		{name: "leave.last_status", pattern: regexp.MustCompile(`(?i)status.*last leave request`), subjectOverridable: true, handle: handleLastLeaveStatus},
		{name: "leave.apply", pattern: regexp.MustCompile(`(?i)apply for.*leave`), handle: handleApplyLeave},
		{name: "training.upcoming", pattern: regexp.MustCompile(`(?i)upcoming training`), subjectOverridable: true, handle: handleUpcomingTraining},
		{name: "training.history", pattern: regexp.MustCompile(`(?i)all.*training sessions|my training history`), subjectOverridable: true, handle: handleTrainingHistory},
		{name: "tasks.mine", pattern: regexp.MustCompile(`(?i)my tasks|tasks assigned to me|what are my tasks`), subjectOverridable: true, handle: handleMyTasks},
		{name: "tasks.all_mine", pattern: regexp.MustCompile(`(?i)all my tasks|show all my tasks`), subjectOverridable: true, handle: handleAllMyTasks},
		{name: "tasks.org_wide", pattern: regexp.MustCompile(`(?i)all staff tasks|tasks for all staff`), adminOnly: true, handle: handleAllStaffTasks},
		{name: "payroll.next_date", pattern: regexp.MustCompile(`(?i)next salary date`), handle: handleNextSalaryDate},
		{name: "evaluation.feedback", pattern: regexp.MustCompile(`(?i)feedback.*performance review`), handle: handleReviewFeedback},
		{name: "training.approved", pattern: regexp.MustCompile(`(?i)approved training`), subjectOverridable: true, handle: handleApprovedTraining},
		{name: "training.requests", pattern: regexp.MustCompile(`(?i)training requests?`), subjectOverridable: true, handle: handleTrainingRequests},
		{name: "training.costs", pattern: regexp.MustCompile(`(?i)training costs?`), adminOnly: true, handle: handleTrainingCosts},
		{name: "tasks.view", pattern: regexp.MustCompile(`(?i)view tasks|show tasks|list tasks`), subjectOverridable: true, handle: handleViewTasks},
		{name: "leave.tracker", pattern: regexp.MustCompile(`(?i)leave tracker|leave summary`), subjectOverridable: true, handle: handleLeaveTracker},
		{name: "leave.upcoming", pattern: regexp.MustCompile(`(?i)upcoming leaves?`), subjectOverridable: true, handle: handleUpcomingLeaves},
		{name: "payroll.breakdown", pattern: regexp.MustCompile(`(?i)salary breakdown|salary details|show salary for|salary structure`), subjectOverridable: true, handle: handleSalaryBreakdown},
		{name: "payroll.payslip", pattern: regexp.MustCompile(`(?i)download.*payslip|payslip.*pdf`), subjectOverridable: true, handle: handlePayslipLink},
		{name: "payroll.highest", pattern: regexp.MustCompile(`(?i)highest salary|top salary|most paid`), adminOnly: true, handle: handleHighestSalary},
		{name: "payroll.lowest", pattern: regexp.MustCompile(`(?i)lowest salary|least paid|lowest paid`), adminOnly: true, handle: handleLowestSalary},
		{name: "payroll.field_sum", pattern: regexp.MustCompile(`(?i)sum of (basic|housing|utility|transport|bonus|reimbursements|deductions|taxes)`), adminOnly: true, handle: handleStructureFieldSum},
		{name: "payroll.monthly_summary", pattern: regexp.MustCompile(`(?i)payroll (summary )?for (\d{4})[-/ ]?(\d{1,2})|payroll (summary )?for ([A-Za-z]+)\s*(\d{4})`), handle: handlePayrollSummary},
		{name: "expenses.pending", pattern: regexp.MustCompile(`(?i)pending (expense )?claims?`), handle: handlePendingClaims},
		{name: "expenses.approved", pattern: regexp.MustCompile(`(?i)approved (expense )?claims?`), handle: handleApprovedClaims},
		{name: "expenses.rejected", pattern: regexp.MustCompile(`(?i)rejected (expense )?claims?`), handle: handleRejectedClaims},
		{name: "expenses.report", pattern: regexp.MustCompile(`(?i)expense reports?|expense summary`), handle: handleExpenseReport},
		{name: "inventory.assigned", pattern: regexp.MustCompile(`(?i)inventory assigned( to)?`), subjectOverridable: true, handle: handleAssignedInventory},
		{name: "inventory.availability", pattern: regexp.MustCompile(`(?i)total (items )?available for ([\w .'-]+)`), handle: handleItemAvailability},
		{name: "inventory.new_requests", pattern: regexp.MustCompile(`(?i)new inventory requests?`), adminOnly: true, handle: handleNewInventoryRequests},
		{name: "inventory.summary", pattern: regexp.MustCompile(`(?i)inventory summary|inventory report`), handle: handleInventorySummary},
		{name: "leave.approved", pattern: regexp.MustCompile(`(?i)approved leave`), subjectOverridable: true, handle: handleApprovedLeave},
		{name: "leave.pending", pattern: regexp.MustCompile(`(?i)pending leave`), subjectOverridable: true, handle: handlePendingLeave},
		{name: "leave.rejected", pattern: regexp.MustCompile(`(?i)rejected leave`), subjectOverridable: true, handle: handleRejectedLeave},
		{name: "inventory.catch_all", pattern: regexp.MustCompile(`(?i)inventory (for|of|assigned to)?`), subjectOverridable: true, handle: handleAssignedInventory},
	}
}
