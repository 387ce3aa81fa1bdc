package mariadb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TaskRepository provides MariaDB-backed task storage.
type TaskRepository struct {
	pool *Pool
}

// NewTaskRepository creates a new MariaDB task repository.
func NewTaskRepository(pool *Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

// AddTask inserts one task row with the current UTC timestamp.
func (r *TaskRepository) AddTask(ctx context.Context, text string) error {
	query := `
		INSERT INTO tasks (id, task, created_at)
		VALUES (?, ?, ?)
	`

	_, err := r.pool.Exec(ctx, query, uuid.New().String(), text, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("add task: %w", err)
	}
	return nil
}

// ListTasks returns all task texts in insertion order.
func (r *TaskRepository) ListTasks(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, "SELECT task FROM tasks ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

// DeleteTask deletes every row matching text exactly and reports whether at
// least one row existed. MySQL collations may compare case-insensitively
// depending on the column collation; the shipped schema uses the server
// default, matching the original deployment.
func (r *TaskRepository) DeleteTask(ctx context.Context, text string) (bool, error) {
	result, err := r.pool.Exec(ctx, "DELETE FROM tasks WHERE task = ?", text)
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("getting rows affected: %w", err)
	}
	return count > 0, nil
}

// PurgeOlderThan deletes every task created strictly before cutoff and
// returns the count deleted.
func (r *TaskRepository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.pool.Exec(ctx, "DELETE FROM tasks WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge old tasks: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting rows affected: %w", err)
	}
	return count, nil
}
