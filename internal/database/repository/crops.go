package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// CropRepo handles crops.
type CropRepo struct {
	db *sql.DB
}

func NewCropRepo(db *sql.DB) *CropRepo { return &CropRepo{db: db} }

func (r *CropRepo) Insert(ctx context.Context, c Crop) (Crop, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO crops(id, field_id, name, variety, planted_at, expected_harvest_at, status, created_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP);
	`, c.ID, c.FieldID, c.Name, c.Variety, c.PlantedAt, c.ExpectedHarvestAt, c.Status)
	return c, err
}

func (r *CropRepo) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE crops SET status = ? WHERE id = ?`, status, id)
	return err
}

func (r *CropRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM crops WHERE id = ?`, id)
	return err
}

func (r *CropRepo) Get(ctx context.Context, id string) (*Crop, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, field_id, name, variety, planted_at, expected_harvest_at, status, created_at
	FROM crops WHERE id = ?`, id)
	c, err := scanCrop(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CropRepo) List(ctx context.Context) ([]Crop, error) {
	return r.list(ctx, `
	SELECT id, field_id, name, variety, planted_at, expected_harvest_at, status, created_at
	FROM crops ORDER BY created_at`)
}

func (r *CropRepo) ListByField(ctx context.Context, fieldID string) ([]Crop, error) {
	return r.list(ctx, `
	SELECT id, field_id, name, variety, planted_at, expected_harvest_at, status, created_at
	FROM crops WHERE field_id = ? ORDER BY created_at`, fieldID)
}

func (r *CropRepo) list(ctx context.Context, query string, args ...interface{}) ([]Crop, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Crop
	for rows.Next() {
		c, err := scanCrop(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanCrop(row scanner) (Crop, error) {
	var c Crop
	err := row.Scan(&c.ID, &c.FieldID, &c.Name, &c.Variety, &c.PlantedAt, &c.ExpectedHarvestAt, &c.Status, &c.CreatedAt)
	return c, err
}
