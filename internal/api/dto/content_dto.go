package dto

import (
	"time"

	"github.com/emberworks/studio-portal/internal/domain"
)

// DevLogRequest payload for creating or updating an editorial entry.
type DevLogRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

// RevisionResponse is one prior version of a dev log's content.
type RevisionResponse struct {
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updatedAt"`
	UpdatedBy string    `json:"updatedBy"`
}

// DevLogResponse is the full editorial entry shape.
type DevLogResponse struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	Content   string             `json:"content"`
	Category  string             `json:"category"`
	Archived  bool               `json:"archived"`
	Revisions []RevisionResponse `json:"revisions"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// FromDevLog converts the domain aggregate.
func FromDevLog(log *domain.DevLog) DevLogResponse {
	revisions := make([]RevisionResponse, 0, len(log.Revisions))
	for _, rev := range log.Revisions {
		revisions = append(revisions, RevisionResponse{
			Content:   rev.Content,
			UpdatedAt: rev.UpdatedAt,
			UpdatedBy: rev.UpdatedBy,
		})
	}
	return DevLogResponse{
		ID:        log.ID,
		Title:     log.Title,
		Content:   log.Content,
		Category:  log.Category,
		Archived:  log.Archived,
		Revisions: revisions,
		CreatedAt: log.CreatedAt,
		UpdatedAt: log.UpdatedAt,
	}
}

// FromDevLogs converts a listing.
func FromDevLogs(logs []domain.DevLog) []DevLogResponse {
	out := make([]DevLogResponse, 0, len(logs))
	for i := range logs {
		out = append(out, FromDevLog(&logs[i]))
	}
	return out
}

// ProjectRequest payload for creating or updating a project.
type ProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// ProjectResponse is the project shape.
type ProjectResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Archived    bool      `json:"archived"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FromProject converts the domain aggregate.
func FromProject(project *domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:          project.ID,
		Title:       project.Title,
		Description: project.Description,
		Status:      string(project.Status),
		Archived:    project.Archived,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

// FromProjects converts a listing.
func FromProjects(projects []domain.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, FromProject(&projects[i]))
	}
	return out
}

// SuggestionRequest payload for submitting a suggestion.
type SuggestionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SuggestionResponse is the suggestion shape.
type SuggestionResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	AuthorID     string    `json:"authorId"`
	Upvotes      int       `json:"upvotes"`
	Status       string    `json:"status"`
	IsStudioPick bool      `json:"isStudioPick"`
	CreatedAt    time.Time `json:"createdAt"`
}

// FromSuggestion converts the domain aggregate.
func FromSuggestion(s *domain.Suggestion) SuggestionResponse {
	return SuggestionResponse{
		ID:           s.ID,
		Title:        s.Title,
		Description:  s.Description,
		AuthorID:     s.AuthorID,
		Upvotes:      s.Upvotes,
		Status:       string(s.Status),
		IsStudioPick: s.IsStudioPick,
		CreatedAt:    s.CreatedAt,
	}
}

// FromSuggestions converts a listing.
func FromSuggestions(suggestions []domain.Suggestion) []SuggestionResponse {
	out := make([]SuggestionResponse, 0, len(suggestions))
	for i := range suggestions {
		out = append(out, FromSuggestion(&suggestions[i]))
	}
	return out
}

// SettingsRequest payload for updating site settings.
type SettingsRequest struct {
	MaintenanceMode *bool `json:"maintenanceMode"`
}

// SettingsResponse is the site settings shape.
type SettingsResponse struct {
	MaintenanceMode bool `json:"maintenanceMode"`
}

// AuditEntryResponse is one audit log entry.
type AuditEntryResponse struct {
	ID        string         `json:"id"`
	ActorID   string         `json:"actorId"`
	Action    string         `json:"action"`
	TargetID  *string        `json:"targetId,omitempty"`
	Details   map[string]any `json:"details"`
	Timestamp time.Time      `json:"timestamp"`
}

// FromAuditEntries converts a listing.
func FromAuditEntries(entries []domain.AuditEntry) []AuditEntryResponse {
	out := make([]AuditEntryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, AuditEntryResponse{
			ID:        entry.ID,
			ActorID:   entry.ActorID,
			Action:    entry.Action,
			TargetID:  entry.TargetID,
			Details:   entry.Details,
			Timestamp: entry.Timestamp,
		})
	}
	return out
}

// RoleResponse is the role listing shape.
type RoleResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Permissions []PermissionResponse `json:"permissions,omitempty"`
}

// PermissionResponse is the permission shape.
type PermissionResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
