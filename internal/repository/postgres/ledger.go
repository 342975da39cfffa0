package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"brinquedos-backend/internal/domain"
	"brinquedos-backend/internal/repository"
)

type ledgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

const ledgerColumns = `id, org_id, booking_id, customer_id, item_id, origin, direction, amount, category, payment_state, due_date,
	installment_plan, installment_count, installment_index, description, source_reference_id, created_on, updated_on`

func scanEntry(row scanner) (*domain.LedgerEntry, error) {
	e := &domain.LedgerEntry{}
	var bookingID, customerID, itemID sql.NullInt32
	err := row.Scan(&e.ID, &e.OrgID, &bookingID, &customerID, &itemID, &e.Origin, &e.Direction, &e.Amount, &e.Category,
		&e.PaymentState, &e.DueDate, &e.InstallmentPlan, &e.InstallmentCount, &e.InstallmentIndex, &e.Description,
		&e.SourceReferenceID, &e.CreatedOn, &e.UpdatedOn)
	if err != nil {
		return nil, err
	}
	e.BookingID = intPtr(bookingID)
	e.CustomerID = intPtr(customerID)
	e.ItemID = intPtr(itemID)
	return e, nil
}

func intPtr(n sql.NullInt32) *int32 {
	if !n.Valid {
		return nil
	}
	v := n.Int32
	return &v
}

func nullInt(p *int32) sql.NullInt32 {
	if p == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: *p, Valid: true}
}

func (r *ledgerRepository) Create(ctx context.Context, e *domain.LedgerEntry) error {
	query := `INSERT INTO ledger_entries (org_id, booking_id, customer_id, item_id, origin, direction, amount, category, payment_state, due_date,
	          installment_plan, installment_count, installment_index, description, source_reference_id, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
	          RETURNING id, created_on, updated_on`
	return r.db.QueryRowContext(ctx, query, e.OrgID, nullInt(e.BookingID), nullInt(e.CustomerID), nullInt(e.ItemID), e.Origin,
		e.Direction, e.Amount, e.Category, e.PaymentState, e.DueDate, e.InstallmentPlan, e.InstallmentCount, e.InstallmentIndex,
		e.Description, e.SourceReferenceID).Scan(&e.ID, &e.CreatedOn, &e.UpdatedOn)
}

func (r *ledgerRepository) GetByID(ctx context.Context, orgID, id int32) (*domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE org_id = $1 AND id = $2`
	e, err := scanEntry(r.db.QueryRowContext(ctx, query, orgID, id))
	if err != nil {
		return nil, notFound(err, "ledger entry", id)
	}
	return e, nil
}

func (r *ledgerRepository) Update(ctx context.Context, e *domain.LedgerEntry) error {
	query := `UPDATE ledger_entries SET booking_id = $1, customer_id = $2, item_id = $3, origin = $4, direction = $5, amount = $6,
	          category = $7, payment_state = $8, due_date = $9, installment_plan = $10, installment_count = $11, installment_index = $12,
	          description = $13, source_reference_id = $14, updated_on = NOW()
	          WHERE org_id = $15 AND id = $16`
	res, err := r.db.ExecContext(ctx, query, nullInt(e.BookingID), nullInt(e.CustomerID), nullInt(e.ItemID), e.Origin, e.Direction,
		e.Amount, e.Category, e.PaymentState, e.DueDate, e.InstallmentPlan, e.InstallmentCount, e.InstallmentIndex,
		e.Description, e.SourceReferenceID, e.OrgID, e.ID)
	if err != nil {
		return err
	}
	return expectOne(res, "ledger entry", e.ID)
}

func (r *ledgerRepository) Delete(ctx context.Context, orgID, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM ledger_entries WHERE org_id = $1 AND id = $2`, orgID, id)
	if err != nil {
		return err
	}
	return expectOne(res, "ledger entry", id)
}

func (r *ledgerRepository) ListByBooking(ctx context.Context, orgID, bookingID int32) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries
	          WHERE org_id = $1 AND origin = 'booking' AND booking_id = $2
	          ORDER BY installment_index, id`
	return r.query(ctx, query, orgID, bookingID)
}

func (r *ledgerRepository) ListByItem(ctx context.Context, orgID, itemID int32) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries
	          WHERE org_id = $1 AND origin = 'item_investment' AND item_id = $2
	          ORDER BY installment_count, installment_index, id`
	return r.query(ctx, query, orgID, itemID)
}

func (r *ledgerRepository) List(ctx context.Context, orgID int32, f domain.LedgerFilter) ([]domain.LedgerEntry, error) {
	conds := []string{"org_id = $1"}
	args := []any{orgID}
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.From != nil {
		add("due_date >= $%d", *f.From)
	}
	if f.To != nil {
		add("due_date <= $%d", *f.To)
	}
	if f.Origin != "" {
		add("origin = $%d", f.Origin)
	}
	if f.Direction != "" {
		add("direction = $%d", f.Direction)
	}
	if f.PaymentState != "" {
		add("payment_state = $%d", f.PaymentState)
	}
	if f.BookingID != nil {
		add("booking_id = $%d", *f.BookingID)
	}
	if f.ItemID != nil {
		add("item_id = $%d", *f.ItemID)
	}
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE ` + strings.Join(conds, " AND ") + ` ORDER BY due_date, id`
	return r.query(ctx, query, args...)
}

// Totals sums entries due in [from, to]. Cancelled entries are ignored.
func (r *ledgerRepository) Totals(ctx context.Context, orgID int32, from, to time.Time) (*domain.LedgerTotals, error) {
	query := `SELECT
	            COALESCE(SUM(amount) FILTER (WHERE direction = 'inflow' AND payment_state = 'paid'), 0),
	            COALESCE(SUM(amount) FILTER (WHERE direction = 'outflow' AND payment_state = 'paid'), 0),
	            COALESCE(SUM(amount) FILTER (WHERE direction = 'inflow' AND payment_state IN ('unpaid', 'deposit')), 0),
	            COALESCE(SUM(amount) FILTER (WHERE direction = 'outflow' AND payment_state IN ('planned', 'unpaid')), 0)
	          FROM ledger_entries WHERE org_id = $1 AND due_date BETWEEN $2 AND $3`
	t := &domain.LedgerTotals{}
	err := r.db.QueryRowContext(ctx, query, orgID, from, to).Scan(&t.PaidInflow, &t.PaidOutflow, &t.Receivable, &t.PlannedOutflow)
	if err != nil {
		return nil, fmt.Errorf("failed to sum ledger entries: %w", err)
	}
	return t, nil
}

func (r *ledgerRepository) query(ctx context.Context, query string, args ...any) ([]domain.LedgerEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}
