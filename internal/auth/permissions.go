package auth

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/hrms-service/internal/domain"
	"github.com/spec-kit/hrms-service/internal/repository"
	apperrors "github.com/spec-kit/hrms-service/pkg/util/errorutil"
)

// LegacyUnrestrictedRoles names built-in role tags that predate the roles
// store. Accounts carrying one of these with no stored role document get
// unrestricted access. This is a deliberate backward-compatibility
// carve-out kept from the previous permission scheme; any other unknown
// role is a hard denial.
var LegacyUnrestrictedRoles = map[string]struct{}{
	domain.RoleStaff:    {},
	"academic_admin":    {},
	"inventory_manager": {},
}

// PermissionResolver decides the access level an actor holds for a
// (module, page) pair. It is stateless; every call reads the roles store.
type PermissionResolver struct {
	roles repository.RoleRepository
}

// NewPermissionResolver constructs the resolver.
func NewPermissionResolver(roles repository.RoleRepository) *PermissionResolver {
	return &PermissionResolver{roles: roles}
}

// Resolve returns the actor's level for the module/page. Admins resolve to
// full unconditionally. A missing module or page resolves to none. An
// unknown role resolves to none unless it is a legacy unrestricted role.
func (r *PermissionResolver) Resolve(ctx context.Context, actor *domain.User, module, page string) (domain.PermissionLevel, error) {
	level, _, err := r.resolve(ctx, actor, module, page)
	return level, err
}

// resolve additionally reports whether the actor's role was recognized at
// all, so Authorize can word the denial accordingly.
func (r *PermissionResolver) resolve(ctx context.Context, actor *domain.User, module, page string) (domain.PermissionLevel, bool, error) {
	if actor == nil {
		return domain.PermissionNone, false, nil
	}
	if actor.IsAdmin() {
		return domain.PermissionFull, true, nil
	}

	role, err := r.roles.GetByName(ctx, actor.Role)
	if err != nil {
		if err == pgx.ErrNoRows {
			if _, legacy := LegacyUnrestrictedRoles[actor.Role]; legacy {
				return domain.PermissionFull, true, nil
			}
			return domain.PermissionNone, false, nil
		}
		return domain.PermissionNone, false, err
	}
	return role.Grant(module, page), true, nil
}

// Authorize allows the action iff the resolved level satisfies the
// required one. Denials carry a human-readable reason; an unauthenticated
// actor fails closed before any lookup.
func (r *PermissionResolver) Authorize(ctx context.Context, actor *domain.User, module string, required domain.PermissionLevel, page string) error {
	if actor == nil {
		return apperrors.NewUnauthorized("not authenticated")
	}

	level, roleKnown, err := r.resolve(ctx, actor, module, page)
	if err != nil {
		return apperrors.MapError(err)
	}
	if !roleKnown {
		return apperrors.NewForbidden("Role not found or no permissions")
	}
	if !level.AtLeast(required) {
		reason := "Insufficient permission for " + module
		if page != "" {
			reason += " - " + page
		}
		return apperrors.NewForbidden(reason)
	}
	return nil
}

// RequirePermission gates a route on the resolver's decision. Denials
// respond 403 with a {"message": ...} body; that shape is part of the API
// contract consumed by the web client.
func RequirePermission(resolver *PermissionResolver, module string, required domain.PermissionLevel, page string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "Not authenticated"})
		}
		if err := resolver.Authorize(c.Context(), principal.User, module, required, page); err != nil {
			domainErr := apperrors.ToDomainError(err)
			if domainErr.HTTPStatus == http.StatusForbidden {
				return c.Status(http.StatusForbidden).JSON(fiber.Map{"message": domainErr.Message})
			}
			return err
		}
		return c.Next()
	}
}

// RequireAdmin short-circuits routes that only the admin tag may reach.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return apperrors.NewUnauthorized("not authenticated")
		}
		if !principal.User.IsAdmin() {
			return apperrors.NewForbidden("admin role required")
		}
		return c.Next()
	}
}
