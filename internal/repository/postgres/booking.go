package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"brinquedos-backend/internal/domain"
	"brinquedos-backend/internal/logger"
	"brinquedos-backend/internal/repository"

	"github.com/lib/pq"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `b.id, b.org_id, b.customer_id,
	COALESCE((SELECT array_agg(bi.item_id ORDER BY bi.item_id) FROM booking_items bi WHERE bi.booking_id = b.id), '{}'),
	b.party_date, COALESCE(b.party_time, ''), COALESCE(b.setup_time, ''), b.teardown_date, COALESCE(b.teardown_time, ''),
	COALESCE(b.installer, ''), b.surcharges, b.discounts, b.entry_amount, b.total_amount, b.remaining_amount,
	b.installment_count, COALESCE(b.payment_method, ''), b.payment_state, b.status, COALESCE(b.description, ''),
	COALESCE(b.cep, ''), COALESCE(b.street, ''), COALESCE(b.number, ''), COALESCE(b.district, ''),
	COALESCE(b.city, ''), COALESCE(b.state, ''), COALESCE(b.country, ''), COALESCE(b.complement, ''),
	b.created_on, b.updated_on`

func scanBooking(row scanner) (*domain.Booking, error) {
	b := &domain.Booking{}
	a := &b.Address
	err := row.Scan(&b.ID, &b.OrgID, &b.CustomerID, pq.Array(&b.ItemIDs),
		&b.PartyDate, &b.PartyTime, &b.SetupTime, &b.TeardownDate, &b.TeardownTime,
		&b.Installer, &b.Surcharges, &b.Discounts, &b.EntryAmount, &b.TotalAmount, &b.RemainingAmount,
		&b.InstallmentCount, &b.PaymentMethod, &b.PaymentState, &b.Status, &b.Description,
		&a.CEP, &a.Street, &a.Number, &a.District, &a.City, &a.State, &a.Country, &a.Complement,
		&b.CreatedOn, &b.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// replaceItems rewrites the booking_items rows of a booking inside tx.
func replaceItems(ctx context.Context, tx *sql.Tx, bookingID int32, itemIDs []int32) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM booking_items WHERE booking_id = $1`, bookingID); err != nil {
		return err
	}
	if len(itemIDs) == 0 {
		return nil
	}
	_, err := tx.ExecContext(ctx, `INSERT INTO booking_items (booking_id, item_id)
	          SELECT $1, unnest($2::int[]) ON CONFLICT DO NOTHING`, bookingID, pq.Array(itemIDs))
	return err
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	b.Recompute()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO bookings (org_id, customer_id, party_date, party_time, setup_time, teardown_date, teardown_time, installer,
	          surcharges, discounts, entry_amount, total_amount, remaining_amount, installment_count, payment_method, payment_state, status,
	          description, cep, street, number, district, city, state, country, complement, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, NOW(), NOW())
	          RETURNING id, created_on, updated_on`
	a := b.Address
	err = tx.QueryRowContext(ctx, query, b.OrgID, b.CustomerID, b.PartyDate, nullString(b.PartyTime), nullString(b.SetupTime),
		b.TeardownDate, nullString(b.TeardownTime), b.Installer, b.Surcharges, b.Discounts, b.EntryAmount, b.TotalAmount,
		b.RemainingAmount, b.InstallmentCount, nullString(string(b.PaymentMethod)), b.PaymentState, b.Status, b.Description,
		a.CEP, a.Street, a.Number, a.District, a.City, a.State, a.Country, a.Complement).
		Scan(&b.ID, &b.CreatedOn, &b.UpdatedOn)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	if err := replaceItems(ctx, tx, b.ID, b.ItemIDs); err != nil {
		return fmt.Errorf("failed to insert booking items: %w", err)
	}
	return tx.Commit()
}

func (r *bookingRepository) GetByID(ctx context.Context, orgID, id int32) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.org_id = $1 AND b.id = $2`
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, orgID, id))
	if err != nil {
		return nil, notFound(err, "booking", id)
	}
	return b, nil
}

func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	b.Recompute()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `UPDATE bookings SET customer_id = $1, party_date = $2, party_time = $3, setup_time = $4, teardown_date = $5, teardown_time = $6,
	          installer = $7, surcharges = $8, discounts = $9, entry_amount = $10, total_amount = $11, remaining_amount = $12,
	          installment_count = $13, payment_method = $14, payment_state = $15, status = $16, description = $17, cep = $18,
	          street = $19, number = $20, district = $21, city = $22, state = $23, country = $24, complement = $25, updated_on = NOW()
	          WHERE org_id = $26 AND id = $27`
	a := b.Address
	res, err := tx.ExecContext(ctx, query, b.CustomerID, b.PartyDate, nullString(b.PartyTime), nullString(b.SetupTime),
		b.TeardownDate, nullString(b.TeardownTime), b.Installer, b.Surcharges, b.Discounts, b.EntryAmount, b.TotalAmount,
		b.RemainingAmount, b.InstallmentCount, nullString(string(b.PaymentMethod)), b.PaymentState, b.Status, b.Description,
		a.CEP, a.Street, a.Number, a.District, a.City, a.State, a.Country, a.Complement, b.OrgID, b.ID)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	if err := expectOne(res, "booking", b.ID); err != nil {
		return err
	}
	if err := replaceItems(ctx, tx, b.ID, b.ItemIDs); err != nil {
		return fmt.Errorf("failed to update booking items: %w", err)
	}
	return tx.Commit()
}

func (r *bookingRepository) UpdatePaymentState(ctx context.Context, orgID, id int32, s domain.BookingPaymentState) error {
	res, err := r.db.ExecContext(ctx, `UPDATE bookings SET payment_state = $1, updated_on = NOW() WHERE org_id = $2 AND id = $3`, s, orgID, id)
	if err != nil {
		return err
	}
	return expectOne(res, "booking", id)
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, orgID, id int32, s domain.BookingStatus) error {
	logger.DatabaseCall("update_booking_status", "UPDATE bookings SET status", "booking_id", id, "status", s)
	res, err := r.db.ExecContext(ctx, `UPDATE bookings SET status = $1, updated_on = NOW() WHERE org_id = $2 AND id = $3`, s, orgID, id)
	if err != nil {
		logger.DatabaseResult("update_booking_status", 0, err)
		return err
	}
	n, _ := res.RowsAffected()
	logger.DatabaseResult("update_booking_status", n, nil)
	return expectOne(res, "booking", id)
}

func (r *bookingRepository) Delete(ctx context.Context, orgID, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE org_id = $1 AND id = $2`, orgID, id)
	if err != nil {
		return err
	}
	return expectOne(res, "booking", id)
}

func (r *bookingRepository) List(ctx context.Context, orgID int32, status domain.BookingStatus) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.org_id = $1 AND ($2 = '' OR b.status = $2) ORDER BY b.party_date, b.id`
	return r.query(ctx, query, orgID, string(status))
}

func (r *bookingRepository) ListByPartyDate(ctx context.Context, orgID int32, day time.Time) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.org_id = $1 AND b.party_date = $2::date ORDER BY b.party_time, b.id`
	return r.query(ctx, query, orgID, day)
}

func (r *bookingRepository) ListByStatusAllOrgs(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.status = $1 ORDER BY b.teardown_date, b.id`
	return r.query(ctx, query, status)
}

func (r *bookingRepository) CountByStatus(ctx context.Context, orgID int32) (map[domain.BookingStatus]int32, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM bookings WHERE org_id = $1 GROUP BY status`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[domain.BookingStatus]int32{}
	for rows.Next() {
		var status domain.BookingStatus
		var n int32
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (r *bookingRepository) CountInRange(ctx context.Context, orgID int32, from, to time.Time) (int32, error) {
	var n int32
	query := `SELECT COUNT(*) FROM bookings WHERE org_id = $1 AND party_date BETWEEN $2 AND $3`
	err := r.db.QueryRowContext(ctx, query, orgID, from, to).Scan(&n)
	return n, err
}

func (r *bookingRepository) CountByCustomer(ctx context.Context, orgID, customerID int32) (int32, error) {
	var n int32
	query := `SELECT COUNT(*) FROM bookings WHERE org_id = $1 AND customer_id = $2`
	err := r.db.QueryRowContext(ctx, query, orgID, customerID).Scan(&n)
	return n, err
}

func (r *bookingRepository) ItemUsage(ctx context.Context, orgID, itemID int32) (int32, error) {
	var n int32
	query := `SELECT COUNT(*) FROM booking_items bi JOIN bookings b ON b.id = bi.booking_id WHERE b.org_id = $1 AND bi.item_id = $2`
	err := r.db.QueryRowContext(ctx, query, orgID, itemID).Scan(&n)
	return n, err
}

func (r *bookingRepository) query(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}
