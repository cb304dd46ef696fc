package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/hrms-service/internal/domain"
	"github.com/spec-kit/hrms-service/internal/repository"
	apperrors "github.com/spec-kit/hrms-service/pkg/util/errorutil"
)

// StaffService manages staff accounts inside an organization.
type StaffService struct {
	users repository.UserRepository
}

// NewStaffService builds the service.
func NewStaffService(users repository.UserRepository) *StaffService {
	return &StaffService{users: users}
}

// List returns accounts in the organization, optionally filtered.
func (s *StaffService) List(ctx context.Context, organizationID string, role *string, status *domain.UserStatus, limit, offset int) ([]domain.User, error) {
	return s.users.List(ctx, repository.UserFilter{
		OrganizationID: organizationID,
		Role:           role,
		Status:         status,
		Limit:          limit,
		Offset:         offset,
	})
}

// Get fetches one account, scoped to the caller's organization.
func (s *StaffService) Get(ctx context.Context, organizationID, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	if user.OrganizationID != organizationID {
		return nil, apperrors.NewNotFound("user", nil)
	}
	return user, nil
}

// AssignRole changes an account's role tag.
func (s *StaffService) AssignRole(ctx context.Context, organizationID, id, role string) (*domain.User, error) {
	user, err := s.Get(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Archive retires an account; archived accounts cannot authenticate and
// drop out of absence listings.
func (s *StaffService) Archive(ctx context.Context, organizationID, id string) (*domain.User, error) {
	user, err := s.Get(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	user.Status = domain.UserStatusArchived
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
