package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/emberworks/studio-portal/internal/domain"
	"github.com/emberworks/studio-portal/internal/repository"
	apperrors "github.com/emberworks/studio-portal/pkg/util"
)

// ProjectService manages studio projects.
type ProjectService struct {
	projects repository.ProjectRepository
	auditor  AuditRecorder
}

// NewProjectService builds the service.
func NewProjectService(projects repository.ProjectRepository, auditor AuditRecorder) *ProjectService {
	return &ProjectService{projects: projects, auditor: auditor}
}

// Create registers a new project.
func (s *ProjectService) Create(ctx context.Context, title, description string, status domain.ProjectStatus) (*domain.Project, error) {
	if title == "" || description == "" || status == "" {
		return nil, apperrors.NewValidationError("title, description and status are required", nil)
	}

	project := &domain.Project{Title: title, Description: description, Status: status}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, apperrors.MapError(err)
	}
	return project, nil
}

// List returns non-archived projects, newest first.
func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	projects, err := s.projects.ListActive(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return projects, nil
}

// Get fetches a single project.
func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("project", map[string]any{"id": id})
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return project, nil
}

// Update rewrites the mutable fields and audits the edit.
func (s *ProjectService) Update(ctx context.Context, actorID, id, title, description string, status domain.ProjectStatus) error {
	if title == "" || description == "" || status == "" || actorID == "" {
		return apperrors.NewValidationError("title, description, status and actor are required", nil)
	}

	project := &domain.Project{ID: id, Title: title, Description: description, Status: status}
	err := s.projects.Update(ctx, project)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("project", map[string]any{"id": id})
	}
	if err != nil {
		return apperrors.MapError(err)
	}

	s.auditor.Record(ctx, actorID, domain.AuditEditProject, map[string]any{
		"projectId": id,
		"newTitle":  title,
	}, id)
	return nil
}

// Archive soft-deletes the project.
func (s *ProjectService) Archive(ctx context.Context, actorID, id string) error {
	if actorID == "" {
		return apperrors.NewValidationError("actor is required", nil)
	}

	err := s.projects.Archive(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("project", map[string]any{"id": id})
	}
	if err != nil {
		return apperrors.MapError(err)
	}

	s.auditor.Record(ctx, actorID, domain.AuditArchiveProject, map[string]any{
		"projectId": id,
	}, id)
	return nil
}
