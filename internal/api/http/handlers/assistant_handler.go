package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hrms-service/internal/api/dto"
	"github.com/spec-kit/hrms-service/internal/assistant"
	"github.com/spec-kit/hrms-service/internal/auth"
	"github.com/spec-kit/hrms-service/internal/persistence"
	apperrors "github.com/spec-kit/hrms-service/pkg/util/errorutil"
)

// AssistantHandler exposes the natural-language query endpoint.
type AssistantHandler struct {
	dispatcher *assistant.Dispatcher
	limiter    *persistence.RateLimiter
}

// NewAssistantHandler constructs handler.
func NewAssistantHandler(dispatcher *assistant.Dispatcher, limiter *persistence.RateLimiter) *AssistantHandler {
	return &AssistantHandler{dispatcher: dispatcher, limiter: limiter}
}

// Query handles POST /api/assistant/query. Queries are rate limited per
// user; ambiguous or unknown subjects come back as normal answers, not
// errors.
func (h *AssistantHandler) Query(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	if h.limiter != nil && !h.limiter.Allow(c.Context(), principal.User.ID) {
		return apperrors.NewTooManyRequests("too many queries, slow down")
	}

	var req dto.AssistantQueryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		return apperrors.NewValidationError("query required", nil)
	}

	reply, err := h.dispatcher.Dispatch(c.Context(), principal.User, req.Query)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reply})
}
