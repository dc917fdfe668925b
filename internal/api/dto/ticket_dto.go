package dto

import (
	"time"

	"github.com/emberworks/studio-portal/internal/domain"
)

// CreateTicketRequest payload for opening a ticket.
type CreateTicketRequest struct {
	Subject  string `json:"subject"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

// ReplyRequest payload for adding a conversation entry.
type ReplyRequest struct {
	Message        string `json:"message"`
	AuthorName     string `json:"authorName"`
	IsInternalNote bool   `json:"isInternalNote"`
}

// UpdateTicketRequest payload for status or assignment changes.
type UpdateTicketRequest struct {
	Status     *string `json:"status"`
	AssignedTo *string `json:"assignedTo"`
}

// ConversationEntryResponse is one message in the thread.
type ConversationEntryResponse struct {
	AuthorID       string    `json:"authorId"`
	AuthorName     string    `json:"authorName"`
	AuthorRole     string    `json:"authorRole"`
	Message        string    `json:"message"`
	IsInternalNote bool      `json:"isInternalNote"`
	Timestamp      time.Time `json:"timestamp"`
}

// TicketResponse is the full ticket shape.
type TicketResponse struct {
	ID           string                      `json:"id"`
	UserID       string                      `json:"userId"`
	Subject      string                      `json:"subject"`
	Category     string                      `json:"category"`
	Status       string                      `json:"status"`
	AssignedTo   *string                     `json:"assignedTo,omitempty"`
	Conversation []ConversationEntryResponse `json:"conversation"`
	CreatedAt    time.Time                   `json:"createdAt"`
	UpdatedAt    time.Time                   `json:"updatedAt"`
}

// FromTicket converts the domain aggregate.
func FromTicket(ticket *domain.Ticket) TicketResponse {
	conversation := make([]ConversationEntryResponse, 0, len(ticket.Conversation))
	for _, entry := range ticket.Conversation {
		conversation = append(conversation, ConversationEntryResponse{
			AuthorID:       entry.AuthorID,
			AuthorName:     entry.AuthorName,
			AuthorRole:     entry.AuthorRole,
			Message:        entry.Message,
			IsInternalNote: entry.IsInternalNote,
			Timestamp:      entry.Timestamp,
		})
	}
	return TicketResponse{
		ID:           ticket.ID,
		UserID:       ticket.UserID,
		Subject:      ticket.Subject,
		Category:     ticket.Category,
		Status:       string(ticket.Status),
		AssignedTo:   ticket.AssignedTo,
		Conversation: conversation,
		CreatedAt:    ticket.CreatedAt,
		UpdatedAt:    ticket.UpdatedAt,
	}
}

// FromTickets converts a listing.
func FromTickets(tickets []domain.Ticket) []TicketResponse {
	out := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		out = append(out, FromTicket(&tickets[i]))
	}
	return out
}
