package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emberworks/studio-portal/internal/domain"
)

// SuggestionRepository encapsulates suggestion persistence.
type SuggestionRepository interface {
	Create(ctx context.Context, suggestion *domain.Suggestion) error
	List(ctx context.Context) ([]domain.Suggestion, error)
}

type suggestionRepository struct {
	pool *pgxpool.Pool
}

// NewSuggestionRepository instantiates repository.
func NewSuggestionRepository(pool *pgxpool.Pool) SuggestionRepository {
	return &suggestionRepository{pool: pool}
}

func (r *suggestionRepository) Create(ctx context.Context, suggestion *domain.Suggestion) error {
	const query = `
        INSERT INTO suggestions (title, description, author_id, upvotes, status, is_studio_pick)
        VALUES ($1, $2, $3, 0, $4, FALSE)
        RETURNING id, created_at`

	suggestion.Upvotes = 0
	suggestion.IsStudioPick = false
	if suggestion.Status == "" {
		suggestion.Status = domain.SuggestionStatusNew
	}
	return r.pool.QueryRow(ctx, query,
		suggestion.Title,
		suggestion.Description,
		suggestion.AuthorID,
		suggestion.Status,
	).Scan(&suggestion.ID, &suggestion.CreatedAt)
}

func (r *suggestionRepository) List(ctx context.Context) ([]domain.Suggestion, error) {
	const query = `
        SELECT id, title, description, author_id, upvotes, status, is_studio_pick, created_at
        FROM suggestions ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Suggestion
	for rows.Next() {
		var s domain.Suggestion
		if err := rows.Scan(
			&s.ID,
			&s.Title,
			&s.Description,
			&s.AuthorID,
			&s.Upvotes,
			&s.Status,
			&s.IsStudioPick,
			&s.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
