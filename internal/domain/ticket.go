package domain

import "time"

// TicketStatus enumerates lifecycle states for support tickets.
type TicketStatus string

const (
	TicketStatusOpen          TicketStatus = "Open"
	TicketStatusInProgress    TicketStatus = "In Progress"
	TicketStatusWaitingOnUser TicketStatus = "Waiting on User"
	TicketStatusResolved      TicketStatus = "Resolved"
	TicketStatusClosed        TicketStatus = "Closed"
)

// ValidTicketStatus reports whether s is a known status value.
func ValidTicketStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusWaitingOnUser,
		TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// ConversationEntry is a single message in a ticket thread. Entries are
// immutable once appended and the thread keeps append order; it is never
// trimmed.
type ConversationEntry struct {
	AuthorID       string    `json:"author_id"`
	AuthorName     string    `json:"author_name"`
	AuthorRole     string    `json:"author_role"`
	Message        string    `json:"message"`
	IsInternalNote bool      `json:"is_internal_note"`
	Timestamp      time.Time `json:"timestamp"`
}

// Ticket is the aggregate for support requests.
type Ticket struct {
	ID           string
	UserID       string
	Subject      string
	Category     string
	Status       TicketStatus
	AssignedTo   *string
	Conversation []ConversationEntry
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
