package audit

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/emberworks/studio-portal/internal/domain"
	"github.com/emberworks/studio-portal/internal/ids"
	"github.com/emberworks/studio-portal/internal/repository"
)

// LatestLimit caps how many entries the query surface returns. It bounds
// display, not storage; retention is unbounded.
const LatestLimit = 100

// Recorder writes audit entries best-effort. The primary action an entry
// documents has already committed when Record runs; a failed write is
// logged and swallowed, never propagated, never retried.
type Recorder struct {
	repo   repository.AuditRepository
	logger *zap.Logger
}

// NewRecorder builds a recorder.
func NewRecorder(repo repository.AuditRepository, logger *zap.Logger) *Recorder {
	return &Recorder{repo: repo, logger: logger}
}

// Record appends one entry. Identical calls always produce distinct stored
// entries; there is no deduplication.
func (r *Recorder) Record(ctx context.Context, actorID, action string, details map[string]any, targetID ...string) {
	if r == nil || r.repo == nil {
		return
	}
	if details == nil {
		details = map[string]any{}
	}

	entry := &domain.AuditEntry{
		ID:        ids.New(),
		ActorID:   actorID,
		Action:    action,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
	if len(targetID) > 0 && targetID[0] != "" {
		entry.TargetID = &targetID[0]
	}

	if err := r.repo.Insert(ctx, entry); err != nil {
		r.logger.Error("failed to write audit log entry",
			zap.String("action", action),
			zap.String("actor_id", actorID),
			zap.Error(err),
		)
	}
}

// Latest returns the newest entries, newest first, capped at LatestLimit.
func (r *Recorder) Latest(ctx context.Context) ([]domain.AuditEntry, error) {
	return r.repo.Latest(ctx, LatestLimit)
}
