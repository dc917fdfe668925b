package service

import (
	"context"

	"github.com/emberworks/studio-portal/internal/domain"
	"github.com/emberworks/studio-portal/internal/repository"
	apperrors "github.com/emberworks/studio-portal/pkg/util"
)

// SettingsService manages the site settings singleton.
type SettingsService struct {
	settings repository.SettingsRepository
	auditor  AuditRecorder
}

// NewSettingsService builds the service.
func NewSettingsService(settings repository.SettingsRepository, auditor AuditRecorder) *SettingsService {
	return &SettingsService{settings: settings, auditor: auditor}
}

// Get returns the current settings, defaulting when the row is absent.
func (s *SettingsService) Get(ctx context.Context) (domain.SiteSettings, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return domain.SiteSettings{}, apperrors.NewUpstreamUnavailable("site settings store", err)
	}
	return settings, nil
}

// SetMaintenanceMode flips the flag and audits the toggle after the write
// commits.
func (s *SettingsService) SetMaintenanceMode(ctx context.Context, actorID string, enabled bool) error {
	if actorID == "" {
		return apperrors.NewValidationError("actor is required", nil)
	}
	if err := s.settings.SetMaintenanceMode(ctx, enabled); err != nil {
		return apperrors.MapError(err)
	}
	s.auditor.Record(ctx, actorID, domain.AuditToggleMaintenance, map[string]any{
		"enabled": enabled,
	})
	return nil
}
