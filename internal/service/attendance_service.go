package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/hrms-service/internal/domain"
	"github.com/spec-kit/hrms-service/internal/repository"
	apperrors "github.com/spec-kit/hrms-service/pkg/util/errorutil"
)

// AttendanceService records daily presence.
type AttendanceService struct {
	attendance repository.AttendanceRepository
	orgs       repository.OrganizationRepository
}

// NewAttendanceService builds the service.
func NewAttendanceService(attendance repository.AttendanceRepository, orgs repository.OrganizationRepository) *AttendanceService {
	return &AttendanceService{attendance: attendance, orgs: orgs}
}

// CheckIn opens today's attendance record for the user. A second check-in
// on the same organization-local day is rejected.
func (s *AttendanceService) CheckIn(ctx context.Context, user *domain.User, at time.Time) (*domain.AttendanceRecord, error) {
	loc := s.location(ctx, user.OrganizationID)
	day := startOfDay(at, loc)
	next := day.AddDate(0, 0, 1)

	existing, err := s.attendance.LatestForUserBetween(ctx, user.ID, day, next)
	if err != nil && err != pgx.ErrNoRows {
		return nil, err
	}
	if existing != nil && existing.CheckIn != nil {
		return nil, apperrors.NewConflict("already checked in today", nil)
	}

	checkIn := at
	record := &domain.AttendanceRecord{
		UserID:         user.ID,
		OrganizationID: user.OrganizationID,
		Date:           day,
		CheckIn:        &checkIn,
		Status:         "present",
	}
	if err := s.attendance.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// CheckOut closes today's open record.
func (s *AttendanceService) CheckOut(ctx context.Context, user *domain.User, at time.Time) (*domain.AttendanceRecord, error) {
	loc := s.location(ctx, user.OrganizationID)
	day := startOfDay(at, loc)
	next := day.AddDate(0, 0, 1)

	record, err := s.attendance.LatestForUserBetween(ctx, user.ID, day, next)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewValidationError("not checked in today", nil)
		}
		return nil, err
	}
	if record.CheckOut != nil {
		return nil, apperrors.NewConflict("already checked out today", nil)
	}
	if err := s.attendance.SetCheckOut(ctx, record.ID, at); err != nil {
		return nil, err
	}
	checkOut := at
	record.CheckOut = &checkOut
	return record, nil
}

// ListMine returns the user's records over the inclusive day range.
func (s *AttendanceService) ListMine(ctx context.Context, user *domain.User, from, to time.Time) ([]domain.AttendanceRecord, error) {
	return s.attendance.ListForUserBetween(ctx, user.ID, from, to)
}

func (s *AttendanceService) location(ctx context.Context, organizationID string) *time.Location {
	settings, err := s.orgs.GetSettings(ctx, organizationID)
	if err != nil {
		settings = nil
	}
	return settings.Location()
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
