package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/emberworks/studio-portal/internal/api/dto"
	"github.com/emberworks/studio-portal/internal/gate"
	"github.com/emberworks/studio-portal/internal/service"
	apperrors "github.com/emberworks/studio-portal/pkg/util"
)

// SuggestionsHandler exposes the community suggestion surface.
type SuggestionsHandler struct {
	suggestions *service.SuggestionService
}

// NewSuggestionsHandler constructs handler.
func NewSuggestionsHandler(suggestions *service.SuggestionService) *SuggestionsHandler {
	return &SuggestionsHandler{suggestions: suggestions}
}

// List handles GET /api/suggestions.
func (h *SuggestionsHandler) List(c *fiber.Ctx) error {
	out, err := h.suggestions.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromSuggestions(out)})
}

// Create handles POST /api/suggestions. The author comes from the verified
// session.
func (h *SuggestionsHandler) Create(c *fiber.Ctx) error {
	claims, ok := gate.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}

	var req dto.SuggestionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	suggestion, err := h.suggestions.Create(c.Context(), claims.UserID, req.Title, req.Description)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromSuggestion(suggestion)})
}
