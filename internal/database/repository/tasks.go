package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// TaskRepo handles tasks.
type TaskRepo struct {
	db *sql.DB
}

func NewTaskRepo(db *sql.DB) *TaskRepo { return &TaskRepo{db: db} }

func (r *TaskRepo) Insert(ctx context.Context, t Task) (Task, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = TaskPending
	}
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO tasks(id, field_id, title, description, category, priority, status, due_date, completed_at, created_at, updated_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP);
	`, t.ID, t.FieldID, t.Title, t.Description, t.Category, t.Priority, t.Status, t.DueDate, t.CompletedAt)
	return t, err
}

func (r *TaskRepo) Update(ctx context.Context, t Task) error {
	_, err := r.db.ExecContext(ctx, `
	UPDATE tasks SET field_id = ?, title = ?, description = ?, category = ?, priority = ?, status = ?,
	 due_date = ?, completed_at = ?, updated_at = CURRENT_TIMESTAMP
	WHERE id = ?`, t.FieldID, t.Title, t.Description, t.Category, t.Priority, t.Status, t.DueDate, t.CompletedAt, t.ID)
	return err
}

// MarkCompleted sets the terminal status and stamps the completion time.
func (r *TaskRepo) MarkCompleted(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
	UPDATE tasks SET status = ?, completed_at = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		TaskCompleted, at, id)
	return err
}

func (r *TaskRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	return err
}

func (r *TaskRepo) Get(ctx context.Context, id string) (*Task, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, field_id, title, description, category, priority, status, due_date, completed_at, created_at, updated_at
	FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepo) List(ctx context.Context) ([]Task, error) {
	return r.list(ctx, `
	SELECT id, field_id, title, description, category, priority, status, due_date, completed_at, created_at, updated_at
	FROM tasks ORDER BY due_date IS NULL, due_date, created_at`)
}

func (r *TaskRepo) ListByField(ctx context.Context, fieldID string) ([]Task, error) {
	return r.list(ctx, `
	SELECT id, field_id, title, description, category, priority, status, due_date, completed_at, created_at, updated_at
	FROM tasks WHERE field_id = ? ORDER BY due_date IS NULL, due_date, created_at`, fieldID)
}

func (r *TaskRepo) list(ctx context.Context, query string, args ...interface{}) ([]Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanTask(row scanner) (Task, error) {
	var t Task
	err := row.Scan(&t.ID, &t.FieldID, &t.Title, &t.Description, &t.Category, &t.Priority, &t.Status,
		&t.DueDate, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}
