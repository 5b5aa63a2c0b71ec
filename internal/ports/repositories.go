package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/manageer/core/internal/domain/entities"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
}

// TaskListRepository defines the interface for task list data operations.
// Every lookup is scoped by the owner's id inside the query itself so an
// existing list owned by someone else is indistinguishable from a missing
// one.
type TaskListRepository interface {
	Create(ctx context.Context, list *entities.TaskList) error
	GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*entities.TaskList, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entities.TaskList, error)
	DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error
}

// TaskRepository defines the interface for task data operations.
// A list's task collection is derived by ListByList rather than kept as a
// denormalized array on the list row, so task writes stay single-row.
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*entities.Task, error)
	ListByList(ctx context.Context, ownerID, taskListID uuid.UUID) ([]*entities.Task, error)
	UpdateOwned(ctx context.Context, task *entities.Task) error
	DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, key string) error
}
