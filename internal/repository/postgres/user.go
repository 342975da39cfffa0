package postgres

import (
	"context"
	"database/sql"
	"errors"

	"brinquedos-backend/internal/domain"
	"brinquedos-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (org_id, username, email, password_hash, is_admin) VALUES ($1, $2, $3, $4, $5) RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query, u.OrgID, u.Username, u.Email, u.PasswordHash, u.IsAdmin).Scan(&u.ID, &u.CreatedOn)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, org_id, username, email, password_hash, is_admin, created_on FROM users WHERE username = $1`
	err := r.db.QueryRowContext(ctx, query, username).Scan(&u.ID, &u.OrgID, &u.Username, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
