package postgres

import (
	"context"
	"database/sql"
	"errors"

	"brinquedos-backend/internal/domain"
	"brinquedos-backend/internal/repository"
)

type organizationRepository struct {
	db *sql.DB
}

func NewOrganizationRepository(db *sql.DB) repository.OrganizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	query := `INSERT INTO organizations (name) VALUES ($1) RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query, org.Name).Scan(&org.ID, &org.CreatedOn)
}

func (r *organizationRepository) GetByID(ctx context.Context, id int32) (*domain.Organization, error) {
	org := &domain.Organization{}
	query := `SELECT id, name, created_on FROM organizations WHERE id = $1`
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&org.ID, &org.Name, &org.CreatedOn); err != nil {
		return nil, notFound(err, "organization", id)
	}
	return org, nil
}

func (r *organizationRepository) GetByName(ctx context.Context, name string) (*domain.Organization, error) {
	org := &domain.Organization{}
	query := `SELECT id, name, created_on FROM organizations WHERE name = $1`
	err := r.db.QueryRowContext(ctx, query, name).Scan(&org.ID, &org.Name, &org.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return org, nil
}
