package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/hrms-service/internal/domain"
)

// OrganizationRepository handles tenants and their display settings.
type OrganizationRepository interface {
	Create(ctx context.Context, org *domain.Organization) error
	GetByID(ctx context.Context, id string) (*domain.Organization, error)
	GetSettings(ctx context.Context, organizationID string) (*domain.OrganizationSettings, error)
	UpsertSettings(ctx context.Context, settings *domain.OrganizationSettings) error
}

type organizationRepository struct {
	pool *pgxpool.Pool
}

// NewOrganizationRepository instantiates the repository.
func NewOrganizationRepository(pool *pgxpool.Pool) OrganizationRepository {
	return &organizationRepository{pool: pool}
}

func (r *organizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	const query = `
        INSERT INTO organizations (name)
        VALUES ($1)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query, org.Name).
		Scan(&org.ID, &org.CreatedAt, &org.UpdatedAt)
}

func (r *organizationRepository) GetByID(ctx context.Context, id string) (*domain.Organization, error) {
	const query = `SELECT id, name, created_at, updated_at FROM organizations WHERE id=$1`

	var org domain.Organization
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&org.ID,
		&org.Name,
		&org.CreatedAt,
		&org.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) GetSettings(ctx context.Context, organizationID string) (*domain.OrganizationSettings, error) {
	const query = `
        SELECT id, organization_id, timezone, currency, updated_at
        FROM organization_settings WHERE organization_id=$1`

	var settings domain.OrganizationSettings
	if err := r.pool.QueryRow(ctx, query, organizationID).Scan(
		&settings.ID,
		&settings.OrganizationID,
		&settings.Timezone,
		&settings.Currency,
		&settings.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *organizationRepository) UpsertSettings(ctx context.Context, settings *domain.OrganizationSettings) error {
	const query = `
        INSERT INTO organization_settings (organization_id, timezone, currency)
        VALUES ($1,$2,$3)
        ON CONFLICT (organization_id)
        DO UPDATE SET timezone=EXCLUDED.timezone, currency=EXCLUDED.currency, updated_at=NOW()
        RETURNING id, updated_at`
	return r.pool.QueryRow(ctx, query,
		settings.OrganizationID,
		settings.Timezone,
		settings.Currency,
	).Scan(&settings.ID, &settings.UpdatedAt)
}
