package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hrms-service/internal/api/dto"
	"github.com/spec-kit/hrms-service/internal/auth"
	"github.com/spec-kit/hrms-service/internal/domain"
	"github.com/spec-kit/hrms-service/internal/service"
	apperrors "github.com/spec-kit/hrms-service/pkg/util/errorutil"
)

// LeaveHandler exposes leave submission and decisions.
type LeaveHandler struct {
	leave *service.LeaveService
}

// NewLeaveHandler constructs handler.
func NewLeaveHandler(leave *service.LeaveService) *LeaveHandler {
	return &LeaveHandler{leave: leave}
}

func leaveResponse(l *domain.LeaveRequest) dto.LeaveResponse {
	return dto.LeaveResponse{
		ID:        l.ID,
		UserID:    l.UserID,
		LeaveType: l.LeaveType,
		StartDate: l.StartDate,
		EndDate:   l.EndDate,
		Days:      l.Days(),
		Status:    l.Status,
	}
}

// Create handles POST /api/leaves.
func (h *LeaveHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	var req dto.LeaveCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.LeaveType == "" || req.StartDate.IsZero() || req.EndDate.IsZero() {
		return apperrors.NewValidationError("leave_type, start_date, end_date required", nil)
	}

	leave, err := h.leave.Create(c.Context(), principal.User, req.LeaveType, req.StartDate, req.EndDate)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": leaveResponse(leave)})
}

// ListMine handles GET /api/leaves.
func (h *LeaveHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	leaves, err := h.leave.ListMine(c.Context(), principal.User, limit)
	if err != nil {
		return err
	}
	out := make([]dto.LeaveResponse, 0, len(leaves))
	for i := range leaves {
		out = append(out, leaveResponse(&leaves[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Decide handles PUT /api/leaves/:id/decision (admin only).
func (h *LeaveHandler) Decide(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	var req dto.LeaveDecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Decision == "" {
		return apperrors.NewValidationError("decision required", nil)
	}

	leave, err := h.leave.Decide(c.Context(), principal.User, c.Params("id"), req.Decision)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": leaveResponse(leave)})
}
