package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/hrms-service/internal/domain"
	"github.com/spec-kit/hrms-service/internal/repository"
	apperrors "github.com/spec-kit/hrms-service/pkg/util/errorutil"
)

// RoleService manages the named permission bundles the resolver reads.
type RoleService struct {
	roles repository.RoleRepository
}

// NewRoleService builds the service.
func NewRoleService(roles repository.RoleRepository) *RoleService {
	return &RoleService{roles: roles}
}

// List returns all stored roles.
func (s *RoleService) List(ctx context.Context) ([]domain.Role, error) {
	return s.roles.List(ctx)
}

// Get fetches one role by name.
func (s *RoleService) Get(ctx context.Context, name string) (*domain.Role, error) {
	role, err := s.roles.GetByName(ctx, name)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("role", nil)
		}
		return nil, err
	}
	return role, nil
}

// Create stores a new role after validating every grant level.
func (s *RoleService) Create(ctx context.Context, role *domain.Role) error {
	role.Name = strings.TrimSpace(role.Name)
	if role.Name == "" {
		return apperrors.NewValidationError("role name is required", nil)
	}
	if role.Name == domain.RoleAdmin {
		return apperrors.NewValidationError("the admin role is built in and cannot be redefined", nil)
	}
	if err := validatePermissions(role.Permissions); err != nil {
		return err
	}
	if _, err := s.roles.GetByName(ctx, role.Name); err == nil {
		return apperrors.NewConflict("role already exists", nil)
	} else if err != pgx.ErrNoRows {
		return err
	}
	return s.roles.Create(ctx, role)
}

// Update replaces an existing role's permission set.
func (s *RoleService) Update(ctx context.Context, role *domain.Role) error {
	if err := validatePermissions(role.Permissions); err != nil {
		return err
	}
	if _, err := s.roles.GetByName(ctx, role.Name); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("role", nil)
		}
		return err
	}
	return s.roles.Update(ctx, role)
}

// Delete removes a role. Accounts still tagged with the name fall back to
// the resolver's unknown-role handling afterwards.
func (s *RoleService) Delete(ctx context.Context, name string) error {
	if _, err := s.roles.GetByName(ctx, name); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("role", nil)
		}
		return err
	}
	return s.roles.Delete(ctx, name)
}

func validatePermissions(perms domain.PermissionSet) error {
	for module, grant := range perms {
		if grant.Level != nil && !grant.Level.Valid() {
			return apperrors.NewValidationError(
				fmt.Sprintf("invalid permission level %q for module %q", *grant.Level, module), nil)
		}
		for page, level := range grant.Pages {
			if !level.Valid() {
				return apperrors.NewValidationError(
					fmt.Sprintf("invalid permission level %q for %s - %s", level, module, page), nil)
			}
		}
	}
	return nil
}
