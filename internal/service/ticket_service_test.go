package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberworks/studio-portal/internal/domain"
	"github.com/emberworks/studio-portal/internal/repository"
)

func TestTicketCreateSeedsConversation(t *testing.T) {
	users := newFakeUserRepo()
	users.add(&domain.User{ID: "user-1", Email: "member@studio.dev"})
	auditor := &recordingAuditor{}
	svc := NewTicketService(newFakeTicketRepo(), users, auditor)

	ticket, err := svc.Create(context.Background(), "user-1", "User", "Crash on save", "Bug", "It crashes every time.")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	require.Len(t, ticket.Conversation, 1)

	first := ticket.Conversation[0]
	assert.Equal(t, "user-1", first.AuthorID)
	assert.Equal(t, "member@studio.dev", first.AuthorName)
	assert.Equal(t, "User", first.AuthorRole)
	assert.Equal(t, "It crashes every time.", first.Message)
	assert.False(t, first.Timestamp.IsZero())
}

func TestTicketCreateValidation(t *testing.T) {
	svc := NewTicketService(newFakeTicketRepo(), newFakeUserRepo(), &recordingAuditor{})

	_, err := svc.Create(context.Background(), "user-1", "User", "", "Bug", "message")
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, err))
}

func TestAuthorNameDegradesOnLookupFailure(t *testing.T) {
	svc := NewTicketService(newFakeTicketRepo(), newFakeUserRepo(), &recordingAuditor{})

	name := svc.AuthorName(context.Background(), "missing-user")
	assert.Equal(t, domain.DefaultRoleName, name)
}

func TestTicketReplyAppends(t *testing.T) {
	repo := newFakeTicketRepo(&domain.Ticket{ID: "t1", UserID: "user-1", Status: domain.TicketStatusOpen})
	svc := NewTicketService(repo, newFakeUserRepo(), &recordingAuditor{})

	err := svc.Reply(context.Background(), "t1", domain.ConversationEntry{
		AuthorID:   "staff-1",
		AuthorName: "staff@studio.dev",
		AuthorRole: "Admin",
		Message:    "Looking into it.",
	})
	require.NoError(t, err)

	require.Len(t, repo.replies["t1"], 1)
	assert.False(t, repo.replies["t1"][0].Timestamp.IsZero())
}

func TestTicketReplyUnknownTicket(t *testing.T) {
	svc := NewTicketService(newFakeTicketRepo(), newFakeUserRepo(), &recordingAuditor{})

	err := svc.Reply(context.Background(), "missing", domain.ConversationEntry{
		AuthorID: "staff-1",
		Message:  "hello",
	})
	assert.Equal(t, "NOT_FOUND", errorCode(t, err))
}

func TestTicketUpdateAuditsAfterSuccess(t *testing.T) {
	repo := newFakeTicketRepo(&domain.Ticket{ID: "t1", UserID: "user-1", Status: domain.TicketStatusOpen})
	auditor := &recordingAuditor{}
	svc := NewTicketService(repo, newFakeUserRepo(), auditor)

	status := domain.TicketStatusResolved
	err := svc.Update(context.Background(), "staff-1", "t1", repository.TicketUpdate{Status: &status})
	require.NoError(t, err)

	require.Len(t, auditor.calls, 1)
	call := auditor.calls[0]
	assert.Equal(t, "staff-1", call.actorID)
	assert.Equal(t, domain.AuditChangeTicket, call.action)
	assert.Equal(t, "t1", call.targetID)
	assert.Equal(t, string(domain.TicketStatusResolved), call.details["newStatus"])
}

func TestTicketUpdateUnknownTicketSkipsAudit(t *testing.T) {
	auditor := &recordingAuditor{}
	svc := NewTicketService(newFakeTicketRepo(), newFakeUserRepo(), auditor)

	status := domain.TicketStatusClosed
	err := svc.Update(context.Background(), "staff-1", "missing", repository.TicketUpdate{Status: &status})
	assert.Equal(t, "NOT_FOUND", errorCode(t, err))
	assert.Empty(t, auditor.calls)
}

func TestTicketUpdateRejectsUnknownStatus(t *testing.T) {
	repo := newFakeTicketRepo(&domain.Ticket{ID: "t1", Status: domain.TicketStatusOpen})
	auditor := &recordingAuditor{}
	svc := NewTicketService(repo, newFakeUserRepo(), auditor)

	bogus := domain.TicketStatus("Sideways")
	err := svc.Update(context.Background(), "staff-1", "t1", repository.TicketUpdate{Status: &bogus})
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, err))
	assert.Empty(t, auditor.calls)
}

func TestTicketUpdateRequiresAField(t *testing.T) {
	svc := NewTicketService(newFakeTicketRepo(), newFakeUserRepo(), &recordingAuditor{})

	err := svc.Update(context.Background(), "staff-1", "t1", repository.TicketUpdate{})
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, err))
}
