package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"brinquedos-backend/internal/domain"
	"brinquedos-backend/internal/repository"

	"github.com/lib/pq"
)

type itemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) repository.ItemRepository {
	return &itemRepository{db: db}
}

const itemColumns = `id, org_id, name, daily_rate, total_quantity, available_quantity, status,
	COALESCE(size, ''), COALESCE(voltage, ''), needs_power, inflatable, COALESCE(description, ''),
	acquisition_cost, installment_count, due_date, acquisition_date, created_on, updated_on`

func scanItem(row scanner) (*domain.InventoryItem, error) {
	it := &domain.InventoryItem{}
	var dueDate, acquisitionDate sql.NullTime
	err := row.Scan(&it.ID, &it.OrgID, &it.Name, &it.DailyRate, &it.TotalQuantity, &it.AvailableQuantity, &it.Status,
		&it.Size, &it.Voltage, &it.NeedsPower, &it.Inflatable, &it.Description,
		&it.AcquisitionCost, &it.InstallmentCount, &dueDate, &acquisitionDate, &it.CreatedOn, &it.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if dueDate.Valid {
		it.DueDate = &dueDate.Time
	}
	if acquisitionDate.Valid {
		it.AcquisitionDate = &acquisitionDate.Time
	}
	return it, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func (r *itemRepository) Create(ctx context.Context, it *domain.InventoryItem) error {
	query := `INSERT INTO items (org_id, name, daily_rate, total_quantity, available_quantity, status, size, voltage, needs_power, inflatable, description,
	          acquisition_cost, installment_count, due_date, acquisition_date, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
	          RETURNING id, created_on, updated_on`
	return r.db.QueryRowContext(ctx, query, it.OrgID, it.Name, it.DailyRate, it.TotalQuantity, it.AvailableQuantity, it.Status,
		it.Size, nullString(string(it.Voltage)), it.NeedsPower, it.Inflatable, it.Description,
		it.AcquisitionCost, it.InstallmentCount, nullTime(it.DueDate), nullTime(it.AcquisitionDate)).
		Scan(&it.ID, &it.CreatedOn, &it.UpdatedOn)
}

func (r *itemRepository) GetByID(ctx context.Context, orgID, id int32) (*domain.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE org_id = $1 AND id = $2`
	it, err := scanItem(r.db.QueryRowContext(ctx, query, orgID, id))
	if err != nil {
		return nil, notFound(err, "item", id)
	}
	return it, nil
}

// GetByIDs fails with a ReferenceError naming the first id that does not
// belong to the organization.
func (r *itemRepository) GetByIDs(ctx context.Context, orgID int32, ids []int32) ([]domain.InventoryItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + itemColumns + ` FROM items WHERE org_id = $1 AND id = ANY($2)`
	items, err := r.query(ctx, query, orgID, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	found := make(map[int32]domain.InventoryItem, len(items))
	for _, it := range items {
		found[it.ID] = it
	}
	result := make([]domain.InventoryItem, 0, len(ids))
	for _, id := range ids {
		it, ok := found[id]
		if !ok {
			return nil, domain.NewReferenceError("item", id)
		}
		result = append(result, it)
	}
	return result, nil
}

func (r *itemRepository) Update(ctx context.Context, it *domain.InventoryItem) error {
	query := `UPDATE items SET name = $1, daily_rate = $2, total_quantity = $3, available_quantity = $4, status = $5, size = $6, voltage = $7,
	          needs_power = $8, inflatable = $9, description = $10, acquisition_cost = $11, installment_count = $12, due_date = $13,
	          acquisition_date = $14, updated_on = NOW()
	          WHERE org_id = $15 AND id = $16`
	res, err := r.db.ExecContext(ctx, query, it.Name, it.DailyRate, it.TotalQuantity, it.AvailableQuantity, it.Status, it.Size,
		nullString(string(it.Voltage)), it.NeedsPower, it.Inflatable, it.Description, it.AcquisitionCost, it.InstallmentCount,
		nullTime(it.DueDate), nullTime(it.AcquisitionDate), it.OrgID, it.ID)
	if err != nil {
		return err
	}
	return expectOne(res, "item", it.ID)
}

func (r *itemRepository) Delete(ctx context.Context, orgID, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE org_id = $1 AND id = $2`, orgID, id)
	if err != nil {
		return err
	}
	return expectOne(res, "item", id)
}

func (r *itemRepository) List(ctx context.Context, orgID int32) ([]domain.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE org_id = $1 ORDER BY name`
	return r.query(ctx, query, orgID)
}

func (r *itemRepository) ListAvailable(ctx context.Context, orgID int32, from, to time.Time) ([]domain.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM items i
	          WHERE i.org_id = $1 AND i.status = 'active'
	          AND NOT EXISTS (
	              SELECT 1 FROM booking_items bi JOIN bookings b ON b.id = bi.booking_id
	              WHERE bi.item_id = i.id AND b.status <> 'finalized'
	              AND b.party_date <= $3 AND b.teardown_date >= $2
	          )
	          ORDER BY i.name`
	return r.query(ctx, query, orgID, from, to)
}

func (r *itemRepository) query(ctx context.Context, query string, args ...any) ([]domain.InventoryItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []domain.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}
