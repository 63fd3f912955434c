package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// InventoryRepo handles inventory items.
type InventoryRepo struct {
	db *sql.DB
}

func NewInventoryRepo(db *sql.DB) *InventoryRepo { return &InventoryRepo{db: db} }

func (r *InventoryRepo) Insert(ctx context.Context, i InventoryItem) (InventoryItem, error) {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO inventory(id, name, category, quantity, unit, reorder_level, cost_per_unit_cents, last_restocked_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?);
	`, i.ID, i.Name, i.Category, i.Quantity, i.Unit, i.ReorderLevel, i.CostPerUnitCents, i.LastRestockedAt)
	return i, err
}

func (r *InventoryRepo) Update(ctx context.Context, i InventoryItem) error {
	_, err := r.db.ExecContext(ctx, `
	UPDATE inventory SET name = ?, category = ?, quantity = ?, unit = ?, reorder_level = ?,
	 cost_per_unit_cents = ?, last_restocked_at = ?
	WHERE id = ?`, i.Name, i.Category, i.Quantity, i.Unit, i.ReorderLevel, i.CostPerUnitCents, i.LastRestockedAt, i.ID)
	return err
}

// Restock adds delta to the quantity and stamps the restock time.
func (r *InventoryRepo) Restock(ctx context.Context, id string, delta float64, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
	UPDATE inventory SET quantity = quantity + ?, last_restocked_at = ? WHERE id = ?`, delta, at, id)
	return err
}

func (r *InventoryRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM inventory WHERE id = ?`, id)
	return err
}

func (r *InventoryRepo) Get(ctx context.Context, id string) (*InventoryItem, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, name, category, quantity, unit, reorder_level, cost_per_unit_cents, last_restocked_at
	FROM inventory WHERE id = ?`, id)
	i, err := scanInventoryItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *InventoryRepo) List(ctx context.Context) ([]InventoryItem, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, name, category, quantity, unit, reorder_level, cost_per_unit_cents, last_restocked_at
	FROM inventory ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []InventoryItem
	for rows.Next() {
		i, err := scanInventoryItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

func scanInventoryItem(row scanner) (InventoryItem, error) {
	var i InventoryItem
	err := row.Scan(&i.ID, &i.Name, &i.Category, &i.Quantity, &i.Unit, &i.ReorderLevel, &i.CostPerUnitCents, &i.LastRestockedAt)
	return i, err
}
