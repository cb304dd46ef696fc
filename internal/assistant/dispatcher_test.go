package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/hrms-service/internal/domain"
	"github.com/spec-kit/hrms-service/internal/repository"
)

// The fakes embed the repository interfaces so only the methods a test
// exercises need an implementation; anything else panics loudly.

type fakeUsers struct {
	repository.UserRepository
	byEmail     map[string]*domain.User
	searchHits  map[string][]domain.User
	searchCalls int
}

func (f *fakeUsers) GetByEmailInOrg(ctx context.Context, organizationID, email string) (*domain.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (f *fakeUsers) SearchByNameInOrg(ctx context.Context, organizationID, name string) ([]domain.User, error) {
	f.searchCalls++
	return f.searchHits[name], nil
}

type fakeOrgs struct {
	repository.OrganizationRepository
}

func (f *fakeOrgs) GetSettings(ctx context.Context, organizationID string) (*domain.OrganizationSettings, error) {
	return nil, pgx.ErrNoRows
}

type fakeAttendance struct {
	repository.AttendanceRepository
	latest    *domain.AttendanceRecord
	latestErr error
	records   []domain.AttendanceRecord
	listFrom  time.Time
	listTo    time.Time
}

func (f *fakeAttendance) LatestForUserBetween(ctx context.Context, userID string, from, to time.Time) (*domain.AttendanceRecord, error) {
	if f.latestErr != nil {
		return nil, f.latestErr
	}
	return f.latest, nil
}

func (f *fakeAttendance) ListForUserBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.AttendanceRecord, error) {
	f.listFrom, f.listTo = from, to
	return f.records, nil
}

type fakeLeave struct {
	repository.LeaveRepository
	leaves     []domain.LeaveRequest
	lastFilter repository.LeaveFilter
}

func (f *fakeLeave) List(ctx context.Context, filter repository.LeaveFilter) ([]domain.LeaveRequest, error) {
	f.lastFilter = filter
	return f.leaves, nil
}

var testNow = time.Date(2025, time.June, 11, 9, 0, 0, 0, time.UTC)

func newTestDispatcher(stores Stores) *Dispatcher {
	if stores.Organizations == nil {
		stores.Organizations = &fakeOrgs{}
	}
	return NewDispatcher(stores, zap.NewNop(), WithClock(func() time.Time { return testNow }))
}

func staffActor() *domain.User {
	return &domain.User{ID: "u-alice", FullName: "Alice", Role: domain.RoleStaff, OrganizationID: "org1"}
}

func adminActor() *domain.User {
	return &domain.User{ID: "u-admin", FullName: "Omar", Role: domain.RoleAdmin, OrganizationID: "org1"}
}

func TestDispatchClockInTodayNoRecord(t *testing.T) {
	d := newTestDispatcher(Stores{Attendance: &fakeAttendance{latestErr: pgx.ErrNoRows}})

	reply, err := d.Dispatch(context.Background(), staffActor(), "What time did I clock in today?")
	require.NoError(t, err)
	assert.Equal(t, "You have not clocked in today.", reply.Answer)
	require.Len(t, reply.Actions, 2)
	assert.Equal(t, "Show my last 7 days' attendance", reply.Actions[0].Label)
	assert.Equal(t, "Do I have any missed check-ins this week?", reply.Actions[1].Label)
}

func TestDispatchClockInTodayWithRecord(t *testing.T) {
	checkIn := testNow
	d := newTestDispatcher(Stores{Attendance: &fakeAttendance{latest: &domain.AttendanceRecord{
		Date:    testNow,
		CheckIn: &checkIn,
	}}})

	reply, err := d.Dispatch(context.Background(), staffActor(), "What time did I clock in today?")
	require.NoError(t, err)
	// 09:00 UTC renders in the organization zone (Asia/Qatar, UTC+3).
	assert.Equal(t, "You clocked in today at 12:00 PM.", reply.Answer)
}

func TestDispatchFirstMatchWins(t *testing.T) {
	d := newTestDispatcher(Stores{
		Attendance: &fakeAttendance{latestErr: pgx.ErrNoRows},
		Leave:      &fakeLeave{},
	})

	// Both the clock-in rule and the leave-history rule match; the earlier
	// one in the table answers.
	reply, err := d.Dispatch(context.Background(), staffActor(), "Did I clock in today, and show my leave history")
	require.NoError(t, err)
	assert.Equal(t, "You have not clocked in today.", reply.Answer)
}

func TestDispatchMissedCheckInsWindowStartsPreviousMonday(t *testing.T) {
	qatar, err := time.LoadLocation("Asia/Qatar")
	require.NoError(t, err)

	// Sunday: weekday 0 must map to the Monday six days back, not tomorrow.
	sunday := time.Date(2025, time.June, 15, 9, 0, 0, 0, time.UTC)
	att := &fakeAttendance{records: []domain.AttendanceRecord{
		{Date: time.Date(2025, time.June, 9, 0, 0, 0, 0, qatar)},
		{Date: time.Date(2025, time.June, 10, 0, 0, 0, 0, qatar)},
	}}
	d := NewDispatcher(Stores{Attendance: att, Organizations: &fakeOrgs{}}, zap.NewNop(),
		WithClock(func() time.Time { return sunday }))

	reply, err := d.Dispatch(context.Background(), staffActor(), "Do I have any missed check-ins this week?")
	require.NoError(t, err)
	assert.True(t, att.listFrom.Equal(time.Date(2025, time.June, 9, 0, 0, 0, 0, qatar)),
		"window start %v", att.listFrom)
	assert.True(t, att.listTo.Equal(time.Date(2025, time.June, 15, 0, 0, 0, 0, qatar)),
		"window end %v", att.listTo)
	// Monday through Sunday is seven days; two have records.
	assert.Equal(t, "You have 5 missed check-ins this week.", reply.Answer)
}

func TestDispatchMissedCheckInsNone(t *testing.T) {
	qatar, err := time.LoadLocation("Asia/Qatar")
	require.NoError(t, err)

	// Wednesday June 11: the week so far is Monday the 9th through today.
	att := &fakeAttendance{records: []domain.AttendanceRecord{
		{Date: time.Date(2025, time.June, 9, 0, 0, 0, 0, qatar)},
		{Date: time.Date(2025, time.June, 10, 0, 0, 0, 0, qatar)},
		{Date: time.Date(2025, time.June, 11, 0, 0, 0, 0, qatar)},
	}}
	d := newTestDispatcher(Stores{Attendance: att})

	reply, err := d.Dispatch(context.Background(), staffActor(), "Do I have any missed check-ins this week?")
	require.NoError(t, err)
	assert.Equal(t, "You have no missed check-ins this week!", reply.Answer)
}

func TestDispatchMissedCheckInsSingular(t *testing.T) {
	qatar, err := time.LoadLocation("Asia/Qatar")
	require.NoError(t, err)

	att := &fakeAttendance{records: []domain.AttendanceRecord{
		{Date: time.Date(2025, time.June, 9, 0, 0, 0, 0, qatar)},
		{Date: time.Date(2025, time.June, 10, 0, 0, 0, 0, qatar)},
	}}
	d := newTestDispatcher(Stores{Attendance: att})

	reply, err := d.Dispatch(context.Background(), staffActor(), "Do I have any missed check-ins this week?")
	require.NoError(t, err)
	assert.Equal(t, "You have 1 missed check-in this week.", reply.Answer)
}

func TestDispatchAdminOnlyInvisibleToStaff(t *testing.T) {
	d := newTestDispatcher(Stores{})

	reply, err := d.Dispatch(context.Background(), staffActor(), "What is the sum of basic for everyone?")
	require.NoError(t, err)
	assert.Contains(t, reply.Answer, "Sorry, I'm not sure")
	// Two fallback follow-ups plus the appended Show Examples chip.
	require.Len(t, reply.Actions, 3)
	assert.Equal(t, "Show Examples", reply.Actions[2].Label)
}

func TestDispatchStoreErrorPropagates(t *testing.T) {
	d := newTestDispatcher(Stores{Attendance: &fakeAttendance{latestErr: errors.New("connection reset")}})

	_, err := d.Dispatch(context.Background(), staffActor(), "What time did I clock in today?")
	assert.Error(t, err)
}

func TestDispatchApprovedLeaveForSubject(t *testing.T) {
	jane := domain.User{ID: "u-jane", FullName: "Jane Smith", Role: domain.RoleStaff, OrganizationID: "org1"}
	leaveRepo := &fakeLeave{leaves: []domain.LeaveRequest{
		{
			LeaveType: domain.LeaveTypeAnnual,
			StartDate: time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, time.March, 7, 0, 0, 0, 0, time.UTC),
			Status:    domain.LeaveStatusApproved,
		},
		{
			LeaveType: domain.LeaveTypeAnnual,
			StartDate: time.Date(2025, time.May, 12, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, time.May, 13, 0, 0, 0, 0, time.UTC),
			Status:    domain.LeaveStatusApproved,
		},
	}}
	users := &fakeUsers{searchHits: map[string][]domain.User{"Jane Smith": {jane}}}
	d := newTestDispatcher(Stores{Users: users, Leave: leaveRepo})

	reply, err := d.Dispatch(context.Background(), adminActor(), "Show approved leave for Jane Smith")
	require.NoError(t, err)
	assert.Contains(t, reply.Answer, "Jane Smith's approved leaves:")
	assert.Contains(t, reply.Answer, "3/3/2025 to 3/7/2025")
	assert.Contains(t, reply.Answer, "5/12/2025 to 5/13/2025")

	assert.Equal(t, jane.ID, leaveRepo.lastFilter.UserID)
	assert.Equal(t, []string{"Approved", "approved"}, leaveRepo.lastFilter.Statuses)

	// Admin leave vocabulary earns the suggestion chips.
	require.Len(t, reply.Actions, 3)
	assert.Equal(t, "Show approved leave for [staff]", reply.Actions[0].Label)
}

func TestDispatchSubjectClauseIgnoredForStaff(t *testing.T) {
	users := &fakeUsers{searchHits: map[string][]domain.User{}}
	d := newTestDispatcher(Stores{Users: users, Leave: &fakeLeave{}})

	reply, err := d.Dispatch(context.Background(), staffActor(), "Show approved leave for Jane Smith")
	require.NoError(t, err)
	assert.Equal(t, "You have no approved leave records.", reply.Answer)
	assert.Zero(t, users.searchCalls)
}

func TestDispatchAmbiguousSubjectIsTerminal(t *testing.T) {
	users := &fakeUsers{searchHits: map[string][]domain.User{"Doe": {
		{ID: "u1", FullName: "Jane Doe"},
		{ID: "u2", FullName: "John Doe"},
	}}}
	d := newTestDispatcher(Stores{Users: users, Leave: &fakeLeave{}})

	reply, err := d.Dispatch(context.Background(), adminActor(), "Show approved leave for Doe")
	require.NoError(t, err)
	assert.Equal(t,
		"Multiple staff found matching 'Doe': Jane Doe, John Doe. Please specify the full name or email.",
		reply.Answer)
	// Terminal subject replies skip post-processing: no chips.
	assert.Empty(t, reply.Actions)
}

func TestDispatchUnknownSubjectEmail(t *testing.T) {
	users := &fakeUsers{byEmail: map[string]*domain.User{}}
	d := newTestDispatcher(Stores{Users: users, Leave: &fakeLeave{}})

	reply, err := d.Dispatch(context.Background(), adminActor(), "Show approved leave for bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, "No staff found with bob@example.com.", reply.Answer)
	assert.Empty(t, reply.Actions)
}

func TestDispatchMonthTokenIsNotASubject(t *testing.T) {
	users := &fakeUsers{}
	d := newTestDispatcher(Stores{Users: users, Leave: &fakeLeave{}})

	reply, err := d.Dispatch(context.Background(), adminActor(), "Show leave tracker for June")
	require.NoError(t, err)
	assert.Equal(t, "You have no leave records this year.", reply.Answer)
	assert.Zero(t, users.searchCalls)
}

func TestDispatchAllStaffIsNotASubject(t *testing.T) {
	users := &fakeUsers{}
	d := newTestDispatcher(Stores{Users: users, Leave: &fakeLeave{}})

	reply, err := d.Dispatch(context.Background(), adminActor(), "Show upcoming leaves for all staff")
	require.NoError(t, err)
	assert.Equal(t, "You have no upcoming approved leaves.", reply.Answer)
	assert.Zero(t, users.searchCalls)
}

func TestDispatchLeaveDaysLeft(t *testing.T) {
	leaveRepo := &fakeLeave{leaves: []domain.LeaveRequest{{
		LeaveType: domain.LeaveTypeAnnual,
		StartDate: time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, time.February, 9, 0, 0, 0, 0, time.UTC),
		Status:    domain.LeaveStatusApproved,
	}}}
	d := newTestDispatcher(Stores{Leave: leaveRepo})

	reply, err := d.Dispatch(context.Background(), staffActor(), "How many leave days do I have left?")
	require.NoError(t, err)
	assert.Equal(t, "You have 23 annual leave days left this year.", reply.Answer)
	assert.Equal(t, domain.LeaveTypeAnnual, leaveRepo.lastFilter.LeaveType)
	assert.Equal(t, []string{"Approved", "approved"}, leaveRepo.lastFilter.Statuses)
}

func TestDispatchSampleQuestionsOverride(t *testing.T) {
	d := newTestDispatcher(Stores{})

	reply, err := d.Dispatch(context.Background(), staffActor(), "help")
	require.NoError(t, err)
	assert.Equal(t, sampleQuestionsAnswer, reply.Answer)
	assert.Empty(t, reply.Actions)
}

func TestDispatchHowToGuideReplacesEverything(t *testing.T) {
	d := newTestDispatcher(Stores{})

	reply, err := d.Dispatch(context.Background(), adminActor(), "how to use ask ai")
	require.NoError(t, err)
	assert.Equal(t, howToAnswer, reply.Answer)
	require.Len(t, reply.Actions, 1)
	assert.Equal(t, "Show Examples", reply.Actions[0].Label)
}
