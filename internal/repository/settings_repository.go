package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emberworks/studio-portal/internal/domain"
)

// SettingsRepository reads and writes the site settings singleton.
type SettingsRepository interface {
	Get(ctx context.Context) (domain.SiteSettings, error)
	SetMaintenanceMode(ctx context.Context, enabled bool) error
}

type settingsRepository struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository returns a Postgres-backed implementation.
func NewSettingsRepository(pool *pgxpool.Pool) SettingsRepository {
	return &settingsRepository{pool: pool}
}

// Get returns the singleton record. An absent row yields the default
// settings (maintenance off), not an error; only a store failure errors.
func (r *settingsRepository) Get(ctx context.Context) (domain.SiteSettings, error) {
	const query = `SELECT id, maintenance_mode FROM site_settings WHERE id=$1`

	var settings domain.SiteSettings
	err := r.pool.QueryRow(ctx, query, domain.SettingsID).Scan(&settings.ID, &settings.MaintenanceMode)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.SiteSettings{ID: domain.SettingsID, MaintenanceMode: false}, nil
	}
	if err != nil {
		return domain.SiteSettings{}, err
	}
	return settings, nil
}

func (r *settingsRepository) SetMaintenanceMode(ctx context.Context, enabled bool) error {
	const query = `
        INSERT INTO site_settings (id, maintenance_mode)
        VALUES ($1, $2)
        ON CONFLICT (id) DO UPDATE SET maintenance_mode = EXCLUDED.maintenance_mode`

	_, err := r.pool.Exec(ctx, query, domain.SettingsID, enabled)
	return err
}
