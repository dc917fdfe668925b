package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emberworks/studio-portal/internal/domain"
)

// AuditRepository persists audit entries. There is no update or delete:
// entries are immutable once written.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
	Latest(ctx context.Context, limit int) ([]domain.AuditEntry, error)
}

type auditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository returns a Postgres-backed implementation.
func NewAuditRepository(pool *pgxpool.Pool) AuditRepository {
	return &auditRepository{pool: pool}
}

func (r *auditRepository) Insert(ctx context.Context, entry *domain.AuditEntry) error {
	details, err := json.Marshal(entry.Details)
	if err != nil {
		return err
	}

	const query = `
        INSERT INTO audit_log (id, actor_id, action, target_id, details, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = r.pool.Exec(ctx, query,
		entry.ID,
		entry.ActorID,
		entry.Action,
		entry.TargetID,
		details,
		entry.Timestamp,
	)
	return err
}

func (r *auditRepository) Latest(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	const query = `
        SELECT id, actor_id, action, target_id, details, created_at
        FROM audit_log
        ORDER BY created_at DESC, id DESC
        LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.AuditEntry
	for rows.Next() {
		var entry domain.AuditEntry
		var details []byte
		if err := rows.Scan(
			&entry.ID,
			&entry.ActorID,
			&entry.Action,
			&entry.TargetID,
			&details,
			&entry.Timestamp,
		); err != nil {
			return nil, err
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &entry.Details); err != nil {
				return nil, err
			}
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}
