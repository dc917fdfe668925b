package domain

import "time"

// AuditEntry records a privileged action. Entries are append-only and
// immutable once written; retention is unbounded.
type AuditEntry struct {
	ID        string
	ActorID   string
	Action    string
	TargetID  *string
	Details   map[string]any
	Timestamp time.Time
}

// Audit action names written by the handlers.
const (
	AuditCreateUser        = "create_user"
	AuditToggleMaintenance = "toggle_maintenance_mode"
	AuditEditDevLog        = "edit_dev_log"
	AuditArchiveDevLog     = "archive_dev_log"
	AuditEditProject       = "edit_project"
	AuditArchiveProject    = "archive_project"
	AuditChangeTicket      = "change_ticket_status"
)
