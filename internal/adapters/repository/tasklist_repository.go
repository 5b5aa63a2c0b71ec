package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/manageer/core/internal/domain/entities"
	"github.com/manageer/core/internal/ports"
)

// TaskListRepositoryImpl implements the TaskListRepository interface.
// Ownership is part of every WHERE clause, never a separate check.
type TaskListRepositoryImpl struct {
	db *sqlx.DB
}

// NewTaskListRepository creates a new task list repository
func NewTaskListRepository(db *sqlx.DB) ports.TaskListRepository {
	return &TaskListRepositoryImpl{db: db}
}

func (r *TaskListRepositoryImpl) Create(ctx context.Context, list *entities.TaskList) error {
	query := `
		INSERT INTO task_lists (id, name, user_id)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		list.ID, list.Name, list.UserID,
	).Scan(&list.CreatedAt, &list.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create task list: %w", err)
	}

	return nil
}

func (r *TaskListRepositoryImpl) GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*entities.TaskList, error) {
	query := `
		SELECT id, name, user_id, created_at, updated_at
		FROM task_lists
		WHERE id = $1 AND user_id = $2`

	var list entities.TaskList
	err := r.db.GetContext(ctx, &list, query, id, ownerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrTaskListNotFound
		}
		return nil, fmt.Errorf("get task list: %w", err)
	}

	list.Tasks = []*entities.Task{}
	return &list, nil
}

func (r *TaskListRepositoryImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entities.TaskList, error) {
	query := `
		SELECT id, name, user_id, created_at, updated_at
		FROM task_lists
		WHERE user_id = $1
		ORDER BY created_at`

	lists := []*entities.TaskList{}
	err := r.db.SelectContext(ctx, &lists, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list task lists: %w", err)
	}

	// Serialize the derived collection as [] rather than null.
	for _, list := range lists {
		list.Tasks = []*entities.Task{}
	}

	return lists, nil
}

func (r *TaskListRepositoryImpl) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error {
	query := `DELETE FROM task_lists WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete task list: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrTaskListNotFound
	}

	return nil
}
