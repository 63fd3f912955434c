package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// FieldRepo handles fields.
type FieldRepo struct {
	db *sql.DB
}

func NewFieldRepo(db *sql.DB) *FieldRepo { return &FieldRepo{db: db} }

// Insert stores a field, assigning an id if the caller left it empty.
func (r *FieldRepo) Insert(ctx context.Context, f Field) (Field, error) {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO fields(id, name, area_acres, soil_type, irrigation, status, notes, created_at, updated_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP);
	`, f.ID, f.Name, f.AreaAcres, f.SoilType, f.Irrigation, f.Status, f.Notes)
	return f, err
}

func (r *FieldRepo) Update(ctx context.Context, f Field) error {
	_, err := r.db.ExecContext(ctx, `
	UPDATE fields SET name = ?, area_acres = ?, soil_type = ?, irrigation = ?, status = ?, notes = ?,
	 updated_at = CURRENT_TIMESTAMP
	WHERE id = ?`, f.Name, f.AreaAcres, f.SoilType, f.Irrigation, f.Status, f.Notes, f.ID)
	return err
}

func (r *FieldRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM fields WHERE id = ?`, id)
	return err
}

// Get returns nil without error when the id is unknown.
func (r *FieldRepo) Get(ctx context.Context, id string) (*Field, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, name, area_acres, soil_type, irrigation, status, notes, created_at, updated_at
	FROM fields WHERE id = ?`, id)
	f, err := scanField(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FieldRepo) List(ctx context.Context) ([]Field, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, name, area_acres, soil_type, irrigation, status, notes, created_at, updated_at
	FROM fields ORDER BY name, created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Field
	for rows.Next() {
		f, err := scanField(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func scanField(row scanner) (Field, error) {
	var f Field
	err := row.Scan(&f.ID, &f.Name, &f.AreaAcres, &f.SoilType, &f.Irrigation, &f.Status, &f.Notes, &f.CreatedAt, &f.UpdatedAt)
	return f, err
}

// scanner lets scan helpers work with both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}
