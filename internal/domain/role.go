package domain

import "time"

// Role is a named, reusable set of permissions shared by many users.
// Editing a role's permission set does not touch already-issued session
// tokens; holders pick up the change on their next login.
type Role struct {
	ID            string
	Name          string
	PermissionIDs []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Permission is an atomic capability checked by exact string match.
type Permission struct {
	ID          string
	Name        string
	Description string
}

// Well-known permission names seeded by the migrations.
const (
	PermManageUsers    = "manage_users"
	PermManageRoles    = "manage_roles"
	PermManageContent  = "manage_content"
	PermManageProjects = "manage_projects"
	PermManageTickets  = "manage_tickets"
	PermManageSettings = "manage_settings"
	PermViewAuditLog   = "view_audit_log"
)
