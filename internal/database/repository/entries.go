package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EntryRepo handles one of the two money tables; expenses and income share a
// schema and differ only by table name.
type EntryRepo struct {
	db    *sql.DB
	table string
}

func NewExpenseRepo(db *sql.DB) *EntryRepo { return &EntryRepo{db: db, table: "expenses"} }
func NewIncomeRepo(db *sql.DB) *EntryRepo  { return &EntryRepo{db: db, table: "income"} }

func (r *EntryRepo) Insert(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, fmt.Sprintf(`
	INSERT INTO %s(id, field_id, title, category, amount_cents, entry_date, description, payment_method, created_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP);
	`, r.table), e.ID, e.FieldID, e.Title, e.Category, e.AmountCents, e.EntryDate.UTC(), e.Description, e.PaymentMethod)
	return e, err
}

func (r *EntryRepo) Update(ctx context.Context, e Entry) error {
	_, err := r.db.ExecContext(ctx, fmt.Sprintf(`
	UPDATE %s SET field_id = ?, title = ?, category = ?, amount_cents = ?, entry_date = ?,
	 description = ?, payment_method = ?
	WHERE id = ?`, r.table), e.FieldID, e.Title, e.Category, e.AmountCents, e.EntryDate.UTC(), e.Description, e.PaymentMethod, e.ID)
	return err
}

func (r *EntryRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, r.table), id)
	return err
}

func (r *EntryRepo) Get(ctx context.Context, id string) (*Entry, error) {
	row := r.db.QueryRowContext(ctx, fmt.Sprintf(`
	SELECT id, field_id, title, category, amount_cents, entry_date, description, payment_method, created_at
	FROM %s WHERE id = ?`, r.table), id)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EntryRepo) List(ctx context.Context) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`
	SELECT id, field_id, title, category, amount_cents, entry_date, description, payment_method, created_at
	FROM %s ORDER BY entry_date DESC, created_at DESC`, r.table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// SumForMonth totals amounts for the calendar month containing month,
// with the month boundaries drawn in month's own location.
func (r *EntryRepo) SumForMonth(ctx context.Context, month time.Time) (int64, error) {
	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	end := start.AddDate(0, 1, 0)
	var total sql.NullInt64
	err := r.db.QueryRowContext(ctx, fmt.Sprintf(`
	SELECT SUM(amount_cents) FROM %s WHERE entry_date >= ? AND entry_date < ?`, r.table),
		start.UTC(), end.UTC()).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total.Int64, nil
}

func scanEntry(row scanner) (Entry, error) {
	var e Entry
	err := row.Scan(&e.ID, &e.FieldID, &e.Title, &e.Category, &e.AmountCents, &e.EntryDate, &e.Description, &e.PaymentMethod, &e.CreatedAt)
	return e, err
}
