package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/emberworks/studio-portal/internal/api/dto"
	"github.com/emberworks/studio-portal/internal/repository"
	apperrors "github.com/emberworks/studio-portal/pkg/util"
)

// RolesHandler exposes role listings for the admin UI.
type RolesHandler struct {
	roles repository.RoleRepository
}

// NewRolesHandler constructs handler.
func NewRolesHandler(roles repository.RoleRepository) *RolesHandler {
	return &RolesHandler{roles: roles}
}

// List handles GET /api/admin/roles. With ?includePermissions=true each
// role carries its expanded permission set.
func (h *RolesHandler) List(c *fiber.Ctx) error {
	if c.Query("includePermissions") == "true" {
		items, err := h.roles.ListWithPermissions(c.Context())
		if err != nil {
			return apperrors.MapError(err)
		}

		out := make([]dto.RoleResponse, 0, len(items))
		for _, item := range items {
			perms := make([]dto.PermissionResponse, 0, len(item.Permissions))
			for _, perm := range item.Permissions {
				perms = append(perms, dto.PermissionResponse{
					ID:          perm.ID,
					Name:        perm.Name,
					Description: perm.Description,
				})
			}
			out = append(out, dto.RoleResponse{
				ID:          item.Role.ID,
				Name:        item.Role.Name,
				Permissions: perms,
			})
		}
		return c.JSON(fiber.Map{"data": out})
	}

	roles, err := h.roles.List(c.Context())
	if err != nil {
		return apperrors.MapError(err)
	}

	out := make([]dto.RoleResponse, 0, len(roles))
	for _, role := range roles {
		out = append(out, dto.RoleResponse{ID: role.ID, Name: role.Name})
	}
	return c.JSON(fiber.Map{"data": out})
}
