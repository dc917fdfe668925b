package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/emberworks/studio-portal/internal/api/dto"
	"github.com/emberworks/studio-portal/internal/domain"
	"github.com/emberworks/studio-portal/internal/gate"
	"github.com/emberworks/studio-portal/internal/service"
	apperrors "github.com/emberworks/studio-portal/pkg/util"
)

// ProjectsHandler exposes the studio project surface.
type ProjectsHandler struct {
	projects *service.ProjectService
}

// NewProjectsHandler constructs handler.
func NewProjectsHandler(projects *service.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{projects: projects}
}

// List handles GET /api/admin/projects.
func (h *ProjectsHandler) List(c *fiber.Ctx) error {
	projects, err := h.projects.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromProjects(projects)})
}

// Get handles GET /api/admin/projects/:id.
func (h *ProjectsHandler) Get(c *fiber.Ctx) error {
	project, err := h.projects.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromProject(project)})
}

// Create handles POST /api/admin/projects.
func (h *ProjectsHandler) Create(c *fiber.Ctx) error {
	var req dto.ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	project, err := h.projects.Create(c.Context(), req.Title, req.Description, domain.ProjectStatus(req.Status))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromProject(project)})
}

// Update handles PUT /api/admin/projects/:id.
func (h *ProjectsHandler) Update(c *fiber.Ctx) error {
	claims, ok := gate.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}

	var req dto.ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.projects.Update(c.Context(), claims.UserID, c.Params("id"), req.Title, req.Description, domain.ProjectStatus(req.Status)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"updated": true}})
}

// Archive handles DELETE /api/admin/projects/:id.
func (h *ProjectsHandler) Archive(c *fiber.Ctx) error {
	claims, ok := gate.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}

	if err := h.projects.Archive(c.Context(), claims.UserID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"archived": true}})
}
