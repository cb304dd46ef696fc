package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/hrms-service/internal/domain"
	apperrors "github.com/spec-kit/hrms-service/pkg/util/errorutil"
)

type fakeRoleRepo struct {
	roles map[string]*domain.Role
	err   error
}

func (f *fakeRoleRepo) Create(ctx context.Context, role *domain.Role) error { return nil }
func (f *fakeRoleRepo) Update(ctx context.Context, role *domain.Role) error { return nil }
func (f *fakeRoleRepo) Delete(ctx context.Context, name string) error       { return nil }
func (f *fakeRoleRepo) List(ctx context.Context) ([]domain.Role, error)     { return nil, nil }

func (f *fakeRoleRepo) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	if f.err != nil {
		return nil, f.err
	}
	role, ok := f.roles[name]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return role, nil
}

func levelPtr(l domain.PermissionLevel) *domain.PermissionLevel { return &l }

func userWithRole(role string) *domain.User {
	return &domain.User{ID: "u1", Role: role, OrganizationID: "org1", Status: domain.UserStatusActive}
}

func TestResolveAdminAlwaysFull(t *testing.T) {
	resolver := NewPermissionResolver(&fakeRoleRepo{roles: map[string]*domain.Role{}})

	level, err := resolver.Resolve(context.Background(), userWithRole(domain.RoleAdmin), "payroll", "Payslips")
	require.NoError(t, err)
	assert.Equal(t, domain.PermissionFull, level)
}

func TestResolveModuleLevelGrant(t *testing.T) {
	repo := &fakeRoleRepo{roles: map[string]*domain.Role{
		"hr_viewer": {Name: "hr_viewer", Permissions: domain.PermissionSet{
			"leave": {Level: levelPtr(domain.PermissionView)},
		}},
	}}
	resolver := NewPermissionResolver(repo)

	level, err := resolver.Resolve(context.Background(), userWithRole("hr_viewer"), "leave", "")
	require.NoError(t, err)
	assert.Equal(t, domain.PermissionView, level)

	// A module absent from the grant map resolves to none.
	level, err = resolver.Resolve(context.Background(), userWithRole("hr_viewer"), "payroll", "")
	require.NoError(t, err)
	assert.Equal(t, domain.PermissionNone, level)
}

func TestResolvePageLevelGrant(t *testing.T) {
	repo := &fakeRoleRepo{roles: map[string]*domain.Role{
		"payroll_clerk": {Name: "payroll_clerk", Permissions: domain.PermissionSet{
			"payroll": {Pages: map[string]domain.PermissionLevel{
				"Payslips": domain.PermissionFull,
				"Reports":  domain.PermissionNone,
			}},
		}},
	}}
	resolver := NewPermissionResolver(repo)
	actor := userWithRole("payroll_clerk")

	level, err := resolver.Resolve(context.Background(), actor, "payroll", "Payslips")
	require.NoError(t, err)
	assert.Equal(t, domain.PermissionFull, level)

	// Explicit none stays none even though a sibling page grants full.
	level, err = resolver.Resolve(context.Background(), actor, "payroll", "Reports")
	require.NoError(t, err)
	assert.Equal(t, domain.PermissionNone, level)

	// Pages not listed in the map default to none.
	level, err = resolver.Resolve(context.Background(), actor, "payroll", "Settings")
	require.NoError(t, err)
	assert.Equal(t, domain.PermissionNone, level)
}

func TestResolveLegacyRolesUnrestricted(t *testing.T) {
	resolver := NewPermissionResolver(&fakeRoleRepo{roles: map[string]*domain.Role{}})

	for role := range LegacyUnrestrictedRoles {
		level, err := resolver.Resolve(context.Background(), userWithRole(role), "inventory", "Stock")
		require.NoError(t, err)
		assert.Equal(t, domain.PermissionFull, level, "legacy role %q", role)
	}
}

func TestAuthorizeUnknownRoleDenied(t *testing.T) {
	resolver := NewPermissionResolver(&fakeRoleRepo{roles: map[string]*domain.Role{}})

	err := resolver.Authorize(context.Background(), userWithRole("ghost_role"), "leave", domain.PermissionView, "")
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, 403, domainErr.HTTPStatus)
	assert.Equal(t, "Role not found or no permissions", domainErr.Message)
}

func TestAuthorizeInsufficientLevelWording(t *testing.T) {
	repo := &fakeRoleRepo{roles: map[string]*domain.Role{
		"hr_viewer": {Name: "hr_viewer", Permissions: domain.PermissionSet{
			"leave": {Level: levelPtr(domain.PermissionView)},
		}},
	}}
	resolver := NewPermissionResolver(repo)
	actor := userWithRole("hr_viewer")

	err := resolver.Authorize(context.Background(), actor, "leave", domain.PermissionFull, "")
	require.Error(t, err)
	assert.Equal(t, "Insufficient permission for leave", apperrors.ToDomainError(err).Message)

	err = resolver.Authorize(context.Background(), actor, "leave", domain.PermissionFull, "Approvals")
	require.Error(t, err)
	assert.Equal(t, "Insufficient permission for leave - Approvals", apperrors.ToDomainError(err).Message)
}

func TestAuthorizeViewSatisfiesView(t *testing.T) {
	repo := &fakeRoleRepo{roles: map[string]*domain.Role{
		"hr_viewer": {Name: "hr_viewer", Permissions: domain.PermissionSet{
			"leave": {Level: levelPtr(domain.PermissionView)},
		}},
	}}
	resolver := NewPermissionResolver(repo)

	err := resolver.Authorize(context.Background(), userWithRole("hr_viewer"), "leave", domain.PermissionView, "")
	assert.NoError(t, err)
}

func TestAuthorizeNilActorFailsClosed(t *testing.T) {
	resolver := NewPermissionResolver(&fakeRoleRepo{roles: map[string]*domain.Role{}})

	err := resolver.Authorize(context.Background(), nil, "leave", domain.PermissionView, "")
	require.Error(t, err)
	assert.Equal(t, 401, apperrors.ToDomainError(err).HTTPStatus)
}

func TestResolveStoreFailurePropagates(t *testing.T) {
	resolver := NewPermissionResolver(&fakeRoleRepo{err: errors.New("connection reset")})

	_, err := resolver.Resolve(context.Background(), userWithRole("hr_viewer"), "leave", "")
	require.Error(t, err)
	// Store failures must not silently deny or allow.
	assert.NotEqual(t, pgx.ErrNoRows, err)
}

func TestPermissionLevelOrder(t *testing.T) {
	assert.True(t, domain.PermissionFull.AtLeast(domain.PermissionView))
	assert.True(t, domain.PermissionFull.AtLeast(domain.PermissionFull))
	assert.True(t, domain.PermissionView.AtLeast(domain.PermissionNone))
	assert.False(t, domain.PermissionView.AtLeast(domain.PermissionFull))
	assert.False(t, domain.PermissionNone.AtLeast(domain.PermissionView))
	// Unknown strings rank as none.
	assert.False(t, domain.PermissionLevel("write").AtLeast(domain.PermissionView))
}
