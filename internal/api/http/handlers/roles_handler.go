package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hrms-service/internal/api/dto"
	"github.com/spec-kit/hrms-service/internal/domain"
	"github.com/spec-kit/hrms-service/internal/service"
	apperrors "github.com/spec-kit/hrms-service/pkg/util/errorutil"
)

// RolesHandler exposes role CRUD. All routes sit behind the admin gate.
type RolesHandler struct {
	roles *service.RoleService
}

// NewRolesHandler constructs handler.
func NewRolesHandler(roles *service.RoleService) *RolesHandler {
	return &RolesHandler{roles: roles}
}

func roleResponse(role *domain.Role) dto.RoleResponse {
	return dto.RoleResponse{Name: role.Name, Permissions: role.Permissions}
}

// List handles GET /api/roles.
func (h *RolesHandler) List(c *fiber.Ctx) error {
	roles, err := h.roles.List(c.Context())
	if err != nil {
		return err
	}
	out := make([]dto.RoleResponse, 0, len(roles))
	for i := range roles {
		out = append(out, roleResponse(&roles[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Get handles GET /api/roles/:name.
func (h *RolesHandler) Get(c *fiber.Ctx) error {
	role, err := h.roles.Get(c.Context(), c.Params("name"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": roleResponse(role)})
}

// Create handles POST /api/roles.
func (h *RolesHandler) Create(c *fiber.Ctx) error {
	var req dto.RoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	role := &domain.Role{Name: req.Name, Permissions: req.Permissions}
	if err := h.roles.Create(c.Context(), role); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": roleResponse(role)})
}

// Update handles PUT /api/roles/:name.
func (h *RolesHandler) Update(c *fiber.Ctx) error {
	var req dto.RoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	role := &domain.Role{Name: c.Params("name"), Permissions: req.Permissions}
	if err := h.roles.Update(c.Context(), role); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": roleResponse(role)})
}

// Delete handles DELETE /api/roles/:name.
func (h *RolesHandler) Delete(c *fiber.Ctx) error {
	if err := h.roles.Delete(c.Context(), c.Params("name")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
