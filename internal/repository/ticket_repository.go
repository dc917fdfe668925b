package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emberworks/studio-portal/internal/domain"
)

// TicketUpdate carries the optional fields of a ticket update.
type TicketUpdate struct {
	Status     *domain.TicketStatus
	AssignedTo *string
}

// TicketRepository encapsulates ticket persistence. The conversation is a
// JSONB array mutated only through single-statement appends so the thread
// stays in append order without cross-document coordination.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	List(ctx context.Context) ([]domain.Ticket, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Ticket, error)
	AppendReply(ctx context.Context, id string, entry domain.ConversationEntry) error
	Update(ctx context.Context, id string, upd TicketUpdate) error
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	conversation, err := json.Marshal(ticket.Conversation)
	if err != nil {
		return err
	}

	const query = `
        INSERT INTO tickets (user_id, subject, category, status, assigned_to, conversation)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		ticket.UserID,
		ticket.Subject,
		ticket.Category,
		ticket.Status,
		ticket.AssignedTo,
		conversation,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	const query = `
        SELECT id, user_id, subject, category, status, assigned_to, conversation, created_at, updated_at
        FROM tickets WHERE id=$1`

	var ticket domain.Ticket
	var conversation []byte
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.UserID,
		&ticket.Subject,
		&ticket.Category,
		&ticket.Status,
		&ticket.AssignedTo,
		&conversation,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(conversation, &ticket.Conversation); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	const query = `
        SELECT id, user_id, subject, category, status, assigned_to, conversation, created_at, updated_at
        FROM tickets ORDER BY updated_at DESC`
	return r.list(ctx, query)
}

func (r *ticketRepository) ListByUser(ctx context.Context, userID string) ([]domain.Ticket, error) {
	const query = `
        SELECT id, user_id, subject, category, status, assigned_to, conversation, created_at, updated_at
        FROM tickets WHERE user_id=$1 ORDER BY updated_at DESC`
	return r.list(ctx, query, userID)
}

func (r *ticketRepository) list(ctx context.Context, query string, args ...any) ([]domain.Ticket, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		var conversation []byte
		if err := rows.Scan(
			&ticket.ID,
			&ticket.UserID,
			&ticket.Subject,
			&ticket.Category,
			&ticket.Status,
			&ticket.AssignedTo,
			&conversation,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(conversation, &ticket.Conversation); err != nil {
			return nil, err
		}
		out = append(out, ticket)
	}
	return out, rows.Err()
}

// AppendReply pushes a conversation entry and bumps updated_at in one
// statement. The thread is never trimmed.
func (r *ticketRepository) AppendReply(ctx context.Context, id string, entry domain.ConversationEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	const query = `
        UPDATE tickets
        SET conversation = conversation || $2::jsonb, updated_at = NOW()
        WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id, payload)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) Update(ctx context.Context, id string, upd TicketUpdate) error {
	const query = `
        UPDATE tickets
        SET status = COALESCE($2, status),
            assigned_to = COALESCE($3, assigned_to),
            updated_at = NOW()
        WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id, upd.Status, upd.AssignedTo)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
