package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"brinquedos-backend/internal/domain"
	"brinquedos-backend/internal/logger"
	"brinquedos-backend/internal/repository"

	_ "github.com/lib/pq"
)

//go:embed schema.sql
var schema string

type Store = repository.Store

func NewStore(db *sql.DB) *Store {
	return &Store{
		OrganizationRepository: NewOrganizationRepository(db),
		UserRepository:         NewUserRepository(db),
		CustomerRepository:     NewCustomerRepository(db),
		ItemRepository:         NewItemRepository(db),
		BookingRepository:      NewBookingRepository(db),
		LedgerRepository:       NewLedgerRepository(db),
	}
}

// Migrate creates the tables this service needs when they do not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	logger.DatabaseCall("migrate", "schema.sql")
	_, err := db.ExecContext(ctx, schema)
	logger.DatabaseResult("migrate", 0, err)
	if err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

// notFound converts sql.ErrNoRows into a ReferenceError for entity/id.
func notFound(err error, entity string, id int32) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewReferenceError(entity, id)
	}
	return err
}

// expectOne reports a ReferenceError when a tenant-scoped write matched no row.
func expectOne(res sql.Result, entity string, id int32) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NewReferenceError(entity, id)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
