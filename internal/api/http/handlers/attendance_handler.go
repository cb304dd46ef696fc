package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hrms-service/internal/api/dto"
	"github.com/spec-kit/hrms-service/internal/auth"
	"github.com/spec-kit/hrms-service/internal/domain"
	"github.com/spec-kit/hrms-service/internal/service"
	apperrors "github.com/spec-kit/hrms-service/pkg/util/errorutil"
)

// AttendanceHandler exposes check-in, check-out and attendance listing.
type AttendanceHandler struct {
	attendance *service.AttendanceService
}

// NewAttendanceHandler constructs handler.
func NewAttendanceHandler(attendance *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

func attendanceResponse(r *domain.AttendanceRecord) dto.AttendanceResponse {
	return dto.AttendanceResponse{
		ID:       r.ID,
		Date:     r.Date,
		CheckIn:  r.CheckIn,
		CheckOut: r.CheckOut,
		Status:   r.Status,
	}
}

// CheckIn handles POST /api/attendance/check-in.
func (h *AttendanceHandler) CheckIn(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	record, err := h.attendance.CheckIn(c.Context(), principal.User, time.Now())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": attendanceResponse(record)})
}

// CheckOut handles POST /api/attendance/check-out.
func (h *AttendanceHandler) CheckOut(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	record, err := h.attendance.CheckOut(c.Context(), principal.User, time.Now())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": attendanceResponse(record)})
}

// ListMine handles GET /api/attendance. Defaults to the last 7 days when
// no range is given.
func (h *AttendanceHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	to := time.Now()
	from := to.AddDate(0, 0, -7)
	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return apperrors.NewValidationError("from must be YYYY-MM-DD", nil)
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return apperrors.NewValidationError("to must be YYYY-MM-DD", nil)
		}
		to = parsed
	}

	records, err := h.attendance.ListMine(c.Context(), principal.User, from, to)
	if err != nil {
		return err
	}
	out := make([]dto.AttendanceResponse, 0, len(records))
	for i := range records {
		out = append(out, attendanceResponse(&records[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}
