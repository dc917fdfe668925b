package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/emberworks/studio-portal/internal/domain"
	"github.com/emberworks/studio-portal/internal/repository"
	apperrors "github.com/emberworks/studio-portal/pkg/util"
)

// TicketService manages support tickets and their conversation threads.
type TicketService struct {
	tickets repository.TicketRepository
	users   repository.UserRepository
	auditor AuditRecorder
}

// NewTicketService builds the service.
func NewTicketService(tickets repository.TicketRepository, users repository.UserRepository, auditor AuditRecorder) *TicketService {
	return &TicketService{tickets: tickets, users: users, auditor: auditor}
}

// AuthorName resolves the display name for a conversation author. A failed
// lookup degrades to the default role name rather than blocking the reply.
func (s *TicketService) AuthorName(ctx context.Context, userID string) string {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.DefaultRoleName
	}
	return user.Email
}

// Create opens a ticket with the submitting message as the first
// conversation entry.
func (s *TicketService) Create(ctx context.Context, userID, authorRole, subject, category, message string) (*domain.Ticket, error) {
	if userID == "" || subject == "" || category == "" || message == "" {
		return nil, apperrors.NewValidationError("subject, category and message are required", nil)
	}
	if authorRole == "" {
		authorRole = domain.DefaultRoleName
	}

	ticket := &domain.Ticket{
		UserID:   userID,
		Subject:  subject,
		Category: category,
		Status:   domain.TicketStatusOpen,
		Conversation: []domain.ConversationEntry{{
			AuthorID:   userID,
			AuthorName: s.AuthorName(ctx, userID),
			AuthorRole: authorRole,
			Message:    message,
			Timestamp:  time.Now().UTC(),
		}},
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// List returns all tickets, most recently updated first.
func (s *TicketService) List(ctx context.Context) ([]domain.Ticket, error) {
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// ListByUser returns the requesting user's tickets.
func (s *TicketService) ListByUser(ctx context.Context, userID string) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// Get fetches a single ticket.
func (s *TicketService) Get(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// Reply appends a conversation entry and bumps the ticket's last-modified
// timestamp in one atomic update. The thread is never trimmed.
func (s *TicketService) Reply(ctx context.Context, id string, entry domain.ConversationEntry) error {
	if entry.AuthorID == "" || entry.Message == "" {
		return apperrors.NewValidationError("author and message are required", nil)
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	err := s.tickets.AppendReply(ctx, id, entry)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}
	if err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// Update changes status and/or assignment. The audit entry is written only
// when the mutation found its target; a no-op update is not a change.
func (s *TicketService) Update(ctx context.Context, actorID, id string, upd repository.TicketUpdate) error {
	if upd.Status == nil && upd.AssignedTo == nil {
		return apperrors.NewValidationError("no update field provided", nil)
	}
	if upd.Status != nil && !domain.ValidTicketStatus(*upd.Status) {
		return apperrors.NewValidationError("unknown ticket status", map[string]any{"status": *upd.Status})
	}

	err := s.tickets.Update(ctx, id, upd)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}
	if err != nil {
		return apperrors.MapError(err)
	}

	details := map[string]any{"ticketId": id}
	if upd.Status != nil {
		details["newStatus"] = string(*upd.Status)
	}
	if upd.AssignedTo != nil {
		details["assignedTo"] = *upd.AssignedTo
	}
	s.auditor.Record(ctx, actorID, domain.AuditChangeTicket, details, id)
	return nil
}
