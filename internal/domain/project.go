package domain

import "time"

// ProjectStatus enumerates visible states for studio projects.
type ProjectStatus string

const (
	ProjectStatusInDevelopment ProjectStatus = "In Development"
	ProjectStatusLive          ProjectStatus = "Live"
	ProjectStatusOnHold        ProjectStatus = "On Hold"
)

// Project is a studio title tracked in the portal. Deletion is a soft
// archive, never a row removal.
type Project struct {
	ID          string
	Title       string
	Description string
	Status      ProjectStatus
	Archived    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
