package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/emberworks/studio-portal/internal/domain"
	"github.com/emberworks/studio-portal/internal/repository"
	apperrors "github.com/emberworks/studio-portal/pkg/util"
)

// DevLogService manages editorial entries and their capped revision history.
type DevLogService struct {
	devlogs repository.DevLogRepository
	auditor AuditRecorder
}

// NewDevLogService builds the service.
func NewDevLogService(devlogs repository.DevLogRepository, auditor AuditRecorder) *DevLogService {
	return &DevLogService{devlogs: devlogs, auditor: auditor}
}

// Create publishes a new entry with an empty revision list.
func (s *DevLogService) Create(ctx context.Context, title, content, category string) (*domain.DevLog, error) {
	if title == "" || content == "" || category == "" {
		return nil, apperrors.NewValidationError("title, content and category are required", nil)
	}

	log := &domain.DevLog{Title: title, Content: content, Category: category}
	if err := s.devlogs.Create(ctx, log); err != nil {
		return nil, apperrors.MapError(err)
	}
	return log, nil
}

// List returns non-archived entries, newest first.
func (s *DevLogService) List(ctx context.Context) ([]domain.DevLog, error) {
	logs, err := s.devlogs.ListActive(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return logs, nil
}

// Get fetches a single entry, including its revisions.
func (s *DevLogService) Get(ctx context.Context, id string) (*domain.DevLog, error) {
	log, err := s.devlogs.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("dev log", map[string]any{"id": id})
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return log, nil
}

// Update rewrites the entry and folds the prior content into the revision
// list, trimmed to the newest entries, as one atomic update. The audit
// entry is written only when the mutation found its target.
func (s *DevLogService) Update(ctx context.Context, actorID, id, title, content, category string) error {
	if title == "" || content == "" || category == "" || actorID == "" {
		return apperrors.NewValidationError("title, content, category and actor are required", nil)
	}

	err := s.devlogs.UpdateWithRevision(ctx, id, title, content, category, actorID)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("dev log", map[string]any{"id": id})
	}
	if err != nil {
		return apperrors.MapError(err)
	}

	s.auditor.Record(ctx, actorID, domain.AuditEditDevLog, map[string]any{
		"devLogId": id,
		"newTitle": title,
	}, id)
	return nil
}

// Archive soft-deletes the entry.
func (s *DevLogService) Archive(ctx context.Context, actorID, id string) error {
	if actorID == "" {
		return apperrors.NewValidationError("actor is required", nil)
	}

	err := s.devlogs.Archive(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("dev log", map[string]any{"id": id})
	}
	if err != nil {
		return apperrors.MapError(err)
	}

	s.auditor.Record(ctx, actorID, domain.AuditArchiveDevLog, map[string]any{
		"devLogId": id,
	}, id)
	return nil
}
