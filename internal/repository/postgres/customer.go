package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"brinquedos-backend/internal/domain"
	"brinquedos-backend/internal/logger"
	"brinquedos-backend/internal/repository"

	"github.com/lib/pq"
)

type customerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

const customerColumns = `id, org_id, name, document, phone, COALESCE(email, ''),
	COALESCE(cep, ''), COALESCE(street, ''), COALESCE(number, ''), COALESCE(district, ''),
	COALESCE(city, ''), COALESCE(state, ''), COALESCE(country, ''), COALESCE(complement, ''),
	status, COALESCE(notes, ''), created_on, updated_on`

func scanCustomer(row scanner) (*domain.Customer, error) {
	c := &domain.Customer{}
	a := &c.Address
	err := row.Scan(&c.ID, &c.OrgID, &c.Name, &c.Document, &c.Phone, &c.Email,
		&a.CEP, &a.Street, &a.Number, &a.District, &a.City, &a.State, &a.Country, &a.Complement,
		&c.Status, &c.Notes, &c.CreatedOn, &c.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// duplicateDocument maps the (org_id, document) unique violation onto a
// validation error.
func duplicateDocument(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return domain.NewValidationError("document", "already registered")
	}
	return err
}

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query := `INSERT INTO customers (org_id, name, document, phone, email, cep, street, number, district, city, state, country, complement, status, notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
	          RETURNING id, created_on, updated_on`
	a := c.Address
	err := r.db.QueryRowContext(ctx, query, c.OrgID, c.Name, c.Document, c.Phone, nullString(c.Email),
		a.CEP, a.Street, a.Number, a.District, a.City, a.State, a.Country, a.Complement,
		c.Status, c.Notes).Scan(&c.ID, &c.CreatedOn, &c.UpdatedOn)
	return duplicateDocument(err)
}

func (r *customerRepository) GetByID(ctx context.Context, orgID, id int32) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE org_id = $1 AND id = $2`
	c, err := scanCustomer(r.db.QueryRowContext(ctx, query, orgID, id))
	if err != nil {
		return nil, notFound(err, "customer", id)
	}
	return c, nil
}

func (r *customerRepository) Update(ctx context.Context, c *domain.Customer) error {
	query := `UPDATE customers SET name = $1, document = $2, phone = $3, email = $4, cep = $5, street = $6, number = $7,
	          district = $8, city = $9, state = $10, country = $11, complement = $12, status = $13, notes = $14, updated_on = NOW()
	          WHERE org_id = $15 AND id = $16`
	a := c.Address
	res, err := r.db.ExecContext(ctx, query, c.Name, c.Document, c.Phone, nullString(c.Email),
		a.CEP, a.Street, a.Number, a.District, a.City, a.State, a.Country, a.Complement,
		c.Status, c.Notes, c.OrgID, c.ID)
	if err != nil {
		return duplicateDocument(err)
	}
	return expectOne(res, "customer", c.ID)
}

func (r *customerRepository) Delete(ctx context.Context, orgID, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE org_id = $1 AND id = $2`, orgID, id)
	if err != nil {
		return err
	}
	return expectOne(res, "customer", id)
}

func (r *customerRepository) List(ctx context.Context, orgID int32, status domain.CustomerStatus) ([]domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE org_id = $1 AND ($2 = '' OR status = $2) ORDER BY name`
	logger.DatabaseCall("list_customers", query, "org_id", orgID)
	rows, err := r.db.QueryContext(ctx, query, orgID, string(status))
	if err != nil {
		logger.DatabaseResult("list_customers", 0, err)
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, *c)
	}
	logger.DatabaseResult("list_customers", int64(len(customers)), rows.Err())
	return customers, rows.Err()
}
