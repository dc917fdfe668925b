package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emberworks/studio-portal/internal/domain"
)

// DevLogRepository encapsulates dev log persistence. Updates fold the prior
// content into the revisions JSONB array and trim it to the newest
// domain.DevLogRevisionCap entries inside a single UPDATE, so the
// push-and-trim is atomic at row granularity.
type DevLogRepository interface {
	Create(ctx context.Context, log *domain.DevLog) error
	GetByID(ctx context.Context, id string) (*domain.DevLog, error)
	ListActive(ctx context.Context) ([]domain.DevLog, error)
	UpdateWithRevision(ctx context.Context, id, title, content, category, actorID string) error
	Archive(ctx context.Context, id string) error
}

type devlogRepository struct {
	pool *pgxpool.Pool
}

// NewDevLogRepository instantiates repository.
func NewDevLogRepository(pool *pgxpool.Pool) DevLogRepository {
	return &devlogRepository{pool: pool}
}

func (r *devlogRepository) Create(ctx context.Context, log *domain.DevLog) error {
	const query = `
        INSERT INTO devlogs (title, content, category, archived, revisions)
        VALUES ($1, $2, $3, FALSE, '[]'::jsonb)
        RETURNING id, created_at, updated_at`

	log.Archived = false
	log.Revisions = []domain.Revision{}
	return r.pool.QueryRow(ctx, query,
		log.Title,
		log.Content,
		log.Category,
	).Scan(&log.ID, &log.CreatedAt, &log.UpdatedAt)
}

func (r *devlogRepository) GetByID(ctx context.Context, id string) (*domain.DevLog, error) {
	const query = `
        SELECT id, title, content, category, archived, revisions, created_at, updated_at
        FROM devlogs WHERE id=$1`

	var log domain.DevLog
	var revisions []byte
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&log.ID,
		&log.Title,
		&log.Content,
		&log.Category,
		&log.Archived,
		&revisions,
		&log.CreatedAt,
		&log.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(revisions, &log.Revisions); err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *devlogRepository) ListActive(ctx context.Context) ([]domain.DevLog, error) {
	const query = `
        SELECT id, title, content, category, archived, revisions, created_at, updated_at
        FROM devlogs WHERE archived = FALSE ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.DevLog
	for rows.Next() {
		var log domain.DevLog
		var revisions []byte
		if err := rows.Scan(
			&log.ID,
			&log.Title,
			&log.Content,
			&log.Category,
			&log.Archived,
			&revisions,
			&log.CreatedAt,
			&log.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(revisions, &log.Revisions); err != nil {
			return nil, err
		}
		out = append(out, log)
	}
	return out, rows.Err()
}

// UpdateWithRevision rewrites the mutable fields and pushes the row's prior
// content into revisions, keeping only the newest entries. Column references
// on the right-hand side read the pre-update values, so the pushed revision
// is the state being replaced.
func (r *devlogRepository) UpdateWithRevision(ctx context.Context, id, title, content, category, actorID string) error {
	const query = `
        UPDATE devlogs
        SET title=$2,
            content=$3,
            category=$4,
            updated_at=NOW(),
            revisions=(
                SELECT COALESCE(jsonb_agg(elem ORDER BY ord), '[]'::jsonb)
                FROM jsonb_array_elements(
                    revisions || jsonb_build_array(jsonb_build_object(
                        'content', content,
                        'updated_at', updated_at,
                        'updated_by', $5::text))
                ) WITH ORDINALITY AS t(elem, ord)
                WHERE ord > jsonb_array_length(revisions) + 1 - $6
            )
        WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id, title, content, category, actorID, domain.DevLogRevisionCap)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Archive soft-deletes the entry; the row and its revisions remain.
func (r *devlogRepository) Archive(ctx context.Context, id string) error {
	const query = `UPDATE devlogs SET archived = TRUE, updated_at = NOW() WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
