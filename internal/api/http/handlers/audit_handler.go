package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/emberworks/studio-portal/internal/api/dto"
	"github.com/emberworks/studio-portal/internal/audit"
	apperrors "github.com/emberworks/studio-portal/pkg/util"
)

// AuditHandler exposes the read-only audit trail.
type AuditHandler struct {
	recorder *audit.Recorder
}

// NewAuditHandler constructs handler.
func NewAuditHandler(recorder *audit.Recorder) *AuditHandler {
	return &AuditHandler{recorder: recorder}
}

// List handles GET /api/admin/auditlog: the latest 100 entries, newest first.
func (h *AuditHandler) List(c *fiber.Ctx) error {
	entries, err := h.recorder.Latest(c.Context())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.FromAuditEntries(entries)})
}
