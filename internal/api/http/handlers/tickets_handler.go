package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/emberworks/studio-portal/internal/api/dto"
	"github.com/emberworks/studio-portal/internal/domain"
	"github.com/emberworks/studio-portal/internal/gate"
	"github.com/emberworks/studio-portal/internal/repository"
	"github.com/emberworks/studio-portal/internal/service"
	apperrors "github.com/emberworks/studio-portal/pkg/util"
)

// TicketsHandler exposes the support ticket surface.
type TicketsHandler struct {
	tickets *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(tickets *service.TicketService) *TicketsHandler {
	return &TicketsHandler{tickets: tickets}
}

// List handles GET /api/tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	tickets, err := h.tickets.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTickets(tickets)})
}

// Create handles POST /api/tickets. The requester comes from the verified
// session, never from the body.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	claims, ok := gate.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}

	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	ticket, err := h.tickets.Create(c.Context(), claims.UserID, claims.Role, req.Subject, req.Category, req.Message)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.FromTicket(ticket),
	})
}

// Get handles GET /api/tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	ticket, err := h.tickets.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTicket(ticket)})
}

// Reply handles POST /api/tickets/:id/replies.
func (h *TicketsHandler) Reply(c *fiber.Ctx) error {
	claims, ok := gate.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}

	var req dto.ReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	authorName := req.AuthorName
	if authorName == "" {
		authorName = h.tickets.AuthorName(c.Context(), claims.UserID)
	}

	entry := domain.ConversationEntry{
		AuthorID:       claims.UserID,
		AuthorName:     authorName,
		AuthorRole:     claims.Role,
		Message:        req.Message,
		IsInternalNote: req.IsInternalNote,
	}
	if err := h.tickets.Reply(c.Context(), c.Params("id"), entry); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"replied": true}})
}

// Update handles PUT /api/tickets/:id.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	claims, ok := gate.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}

	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	var upd repository.TicketUpdate
	if req.Status != nil {
		status := domain.TicketStatus(*req.Status)
		upd.Status = &status
	}
	upd.AssignedTo = req.AssignedTo

	if err := h.tickets.Update(c.Context(), claims.UserID, c.Params("id"), upd); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"updated": true}})
}
