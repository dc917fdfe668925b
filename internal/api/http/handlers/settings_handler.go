package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/emberworks/studio-portal/internal/api/dto"
	"github.com/emberworks/studio-portal/internal/gate"
	"github.com/emberworks/studio-portal/internal/service"
	apperrors "github.com/emberworks/studio-portal/pkg/util"
)

// SettingsHandler exposes the site settings singleton.
type SettingsHandler struct {
	settings *service.SettingsService
}

// NewSettingsHandler constructs handler.
func NewSettingsHandler(settings *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Get handles GET /api/admin/settings. The record is publicly readable;
// the gate itself depends on this endpoint's data.
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	settings, err := h.settings.Get(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.SettingsResponse{MaintenanceMode: settings.MaintenanceMode})
}

// Update handles POST /api/admin/settings.
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	claims, ok := gate.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}

	var req dto.SettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.MaintenanceMode == nil {
		return fiber.NewError(http.StatusBadRequest, "maintenanceMode is required")
	}

	if err := h.settings.SetMaintenanceMode(c.Context(), claims.UserID, *req.MaintenanceMode); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.SettingsResponse{MaintenanceMode: *req.MaintenanceMode}})
}
