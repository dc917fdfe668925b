package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/emberworks/studio-portal/internal/api/dto"
	"github.com/emberworks/studio-portal/internal/gate"
	"github.com/emberworks/studio-portal/internal/service"
	apperrors "github.com/emberworks/studio-portal/pkg/util"
)

// DevLogsHandler exposes the editorial dev log surface.
type DevLogsHandler struct {
	devlogs *service.DevLogService
}

// NewDevLogsHandler constructs handler.
func NewDevLogsHandler(devlogs *service.DevLogService) *DevLogsHandler {
	return &DevLogsHandler{devlogs: devlogs}
}

// List handles GET /api/admin/devlogs.
func (h *DevLogsHandler) List(c *fiber.Ctx) error {
	logs, err := h.devlogs.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromDevLogs(logs)})
}

// Get handles GET /api/admin/devlogs/:id.
func (h *DevLogsHandler) Get(c *fiber.Ctx) error {
	log, err := h.devlogs.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromDevLog(log)})
}

// Create handles POST /api/admin/devlogs.
func (h *DevLogsHandler) Create(c *fiber.Ctx) error {
	var req dto.DevLogRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	log, err := h.devlogs.Create(c.Context(), req.Title, req.Content, req.Category)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromDevLog(log)})
}

// Update handles PUT /api/admin/devlogs/:id.
func (h *DevLogsHandler) Update(c *fiber.Ctx) error {
	claims, ok := gate.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}

	var req dto.DevLogRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.devlogs.Update(c.Context(), claims.UserID, c.Params("id"), req.Title, req.Content, req.Category); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"updated": true}})
}

// Archive handles DELETE /api/admin/devlogs/:id.
func (h *DevLogsHandler) Archive(c *fiber.Ctx) error {
	claims, ok := gate.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}

	if err := h.devlogs.Archive(c.Context(), claims.UserID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"archived": true}})
}
