package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/hrms-service/internal/domain"
	"github.com/spec-kit/hrms-service/internal/repository"
	apperrors "github.com/spec-kit/hrms-service/pkg/util/errorutil"
)

type fakeLeaveRepo struct {
	byID    map[string]*domain.LeaveRequest
	created *domain.LeaveRequest
	status  map[string]string
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{byID: map[string]*domain.LeaveRequest{}, status: map[string]string{}}
}

func (f *fakeLeaveRepo) Create(ctx context.Context, leave *domain.LeaveRequest) error {
	leave.ID = "l-1"
	f.created = leave
	return nil
}

func (f *fakeLeaveRepo) GetByID(ctx context.Context, id string) (*domain.LeaveRequest, error) {
	leave, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return leave, nil
}

func (f *fakeLeaveRepo) UpdateStatus(ctx context.Context, id, status string) error {
	f.status[id] = status
	return nil
}

func (f *fakeLeaveRepo) List(ctx context.Context, filter repository.LeaveFilter) ([]domain.LeaveRequest, error) {
	return nil, nil
}

func (f *fakeLeaveRepo) LatestByCreated(ctx context.Context, userID string) (*domain.LeaveRequest, error) {
	return nil, pgx.ErrNoRows
}

func testUser(id, role, org string) *domain.User {
	return &domain.User{ID: id, Role: role, OrganizationID: org, Status: domain.UserStatusActive}
}

func TestLeaveCreateValidation(t *testing.T) {
	svc := NewLeaveService(newFakeLeaveRepo(), nil)
	user := testUser("u1", domain.RoleStaff, "org1")
	start := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	_, err := svc.Create(context.Background(), user, "", start, start)
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), user, domain.LeaveTypeAnnual, start, start.AddDate(0, 0, -1))
	assert.Error(t, err)
}

func TestLeaveCreateStartsPending(t *testing.T) {
	repo := newFakeLeaveRepo()
	svc := NewLeaveService(repo, nil)
	user := testUser("u1", domain.RoleStaff, "org1")
	start := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	leave, err := svc.Create(context.Background(), user, domain.LeaveTypeAnnual, start, start.AddDate(0, 0, 4))
	require.NoError(t, err)
	assert.Equal(t, domain.LeaveStatusPending, leave.Status)
	assert.Equal(t, 5, leave.Days())
	assert.Equal(t, "org1", repo.created.OrganizationID)
}

func TestLeaveDecide(t *testing.T) {
	repo := newFakeLeaveRepo()
	repo.byID["l-9"] = &domain.LeaveRequest{
		ID: "l-9", UserID: "u2", OrganizationID: "org1", Status: domain.LeaveStatusPending,
	}
	svc := NewLeaveService(repo, nil)
	admin := testUser("u-admin", domain.RoleAdmin, "org1")

	_, err := svc.Decide(context.Background(), admin, "l-9", "Maybe")
	assert.Error(t, err)

	// Requests outside the actor's organization do not exist for them.
	outsider := testUser("u-x", domain.RoleAdmin, "org2")
	_, err = svc.Decide(context.Background(), outsider, "l-9", domain.LeaveStatusApproved)
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)

	leave, err := svc.Decide(context.Background(), admin, "l-9", domain.LeaveStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, domain.LeaveStatusApproved, leave.Status)
	assert.Equal(t, domain.LeaveStatusApproved, repo.status["l-9"])

	// A decided request cannot be re-decided.
	_, err = svc.Decide(context.Background(), admin, "l-9", domain.LeaveStatusRejected)
	require.Error(t, err)
	assert.Equal(t, 409, apperrors.ToDomainError(err).HTTPStatus)
}
