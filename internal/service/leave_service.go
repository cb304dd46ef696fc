package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/hrms-service/internal/domain"
	"github.com/spec-kit/hrms-service/internal/events"
	"github.com/spec-kit/hrms-service/internal/repository"
	apperrors "github.com/spec-kit/hrms-service/pkg/util/errorutil"
)

// LeaveService manages leave requests and their decisions.
type LeaveService struct {
	leaves     repository.LeaveRepository
	dispatcher events.Dispatcher
}

// NewLeaveService builds the service.
func NewLeaveService(leaves repository.LeaveRepository, dispatcher events.Dispatcher) *LeaveService {
	return &LeaveService{leaves: leaves, dispatcher: dispatcher}
}

// Create submits a leave request over an inclusive date range.
func (s *LeaveService) Create(ctx context.Context, user *domain.User, leaveType string, start, end time.Time) (*domain.LeaveRequest, error) {
	if leaveType == "" {
		return nil, apperrors.NewValidationError("leave type is required", nil)
	}
	if end.Before(start) {
		return nil, apperrors.NewValidationError("end date must not precede start date", nil)
	}

	leave := &domain.LeaveRequest{
		UserID:         user.ID,
		OrganizationID: user.OrganizationID,
		LeaveType:      leaveType,
		StartDate:      start,
		EndDate:        end,
		Status:         domain.LeaveStatusPending,
	}
	if err := s.leaves.Create(ctx, leave); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventLeaveRequested, user.OrganizationID, user.ID, events.LeaveRequestedPayload{
		LeaveID:   leave.ID,
		UserID:    user.ID,
		LeaveType: leaveType,
		StartDate: start,
		EndDate:   end,
		Days:      leave.Days(),
	})
	return leave, nil
}

// ListMine returns the caller's requests, newest first.
func (s *LeaveService) ListMine(ctx context.Context, user *domain.User, limit int) ([]domain.LeaveRequest, error) {
	return s.leaves.List(ctx, repository.LeaveFilter{UserID: user.ID, Limit: limit})
}

// Decide approves or rejects a pending request. Only pending requests may
// be decided; the outcome is published for notification fan-out.
func (s *LeaveService) Decide(ctx context.Context, actor *domain.User, leaveID, decision string) (*domain.LeaveRequest, error) {
	if decision != domain.LeaveStatusApproved && decision != domain.LeaveStatusRejected {
		return nil, apperrors.NewValidationError("decision must be Approved or Rejected", nil)
	}

	leave, err := s.leaves.GetByID(ctx, leaveID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("leave request", nil)
		}
		return nil, err
	}
	if leave.OrganizationID != actor.OrganizationID {
		return nil, apperrors.NewNotFound("leave request", nil)
	}
	if leave.Status != domain.LeaveStatusPending {
		return nil, apperrors.NewConflict("leave request already decided", nil)
	}

	oldStatus := leave.Status
	if err := s.leaves.UpdateStatus(ctx, leave.ID, decision); err != nil {
		return nil, err
	}
	leave.Status = decision
	s.publish(ctx, events.EventLeaveDecided, actor.OrganizationID, actor.ID, events.LeaveDecidedPayload{
		LeaveID:   leave.ID,
		UserID:    leave.UserID,
		OldStatus: oldStatus,
		NewStatus: decision,
	})
	return leave, nil
}

func (s *LeaveService) publish(ctx context.Context, eventType events.EventType, orgID, actorID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:             uuid.NewString(),
		Type:           eventType,
		OrganizationID: orgID,
		ActorID:        actorID,
		Timestamp:      time.Now(),
		Payload:        payload,
	})
}
