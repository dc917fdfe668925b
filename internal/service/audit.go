package service

import "context"

// AuditRecorder is the best-effort sink services document privileged
// actions to. Implementations never fail the caller.
type AuditRecorder interface {
	Record(ctx context.Context, actorID, action string, details map[string]any, targetID ...string)
}
