package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/manageer/core/internal/domain/entities"
	"github.com/manageer/core/internal/ports"
)

var errCacheMiss = errors.New("cache miss")

// In-memory repository implementations. They back the test suites and
// mirror the ownership-scoping semantics of the Postgres repositories.

// MemoryUserRepository is an in-memory UserRepository
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*entities.User
}

// NewMemoryUserRepository creates an empty in-memory user repository
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[uuid.UUID]*entities.User)}
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return entities.ErrEmailInUse
		}
	}

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	r.users[user.ID] = &stored

	return nil
}

func (r *MemoryUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}

	copied := *user
	return &copied, nil
}

func (r *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}

	return nil, entities.ErrUserNotFound
}

func (r *MemoryUserRepository) Update(ctx context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return entities.ErrUserNotFound
	}

	user.UpdatedAt = time.Now()
	stored := *user
	r.users[user.ID] = &stored

	return nil
}

// MemoryTaskListRepository is an in-memory TaskListRepository
type MemoryTaskListRepository struct {
	mu    sync.RWMutex
	lists map[uuid.UUID]*entities.TaskList
}

// NewMemoryTaskListRepository creates an empty in-memory task list repository
func NewMemoryTaskListRepository() *MemoryTaskListRepository {
	return &MemoryTaskListRepository{lists: make(map[uuid.UUID]*entities.TaskList)}
}

func (r *MemoryTaskListRepository) Create(ctx context.Context, list *entities.TaskList) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	list.CreatedAt = now
	list.UpdatedAt = now

	stored := *list
	stored.Tasks = nil
	r.lists[list.ID] = &stored

	return nil
}

func (r *MemoryTaskListRepository) GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*entities.TaskList, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list, ok := r.lists[id]
	if !ok || list.UserID != ownerID {
		return nil, entities.ErrTaskListNotFound
	}

	copied := *list
	copied.Tasks = []*entities.Task{}
	return &copied, nil
}

func (r *MemoryTaskListRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entities.TaskList, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lists := []*entities.TaskList{}
	for _, l := range r.lists {
		if l.UserID == ownerID {
			copied := *l
			copied.Tasks = []*entities.Task{}
			lists = append(lists, &copied)
		}
	}

	return lists, nil
}

func (r *MemoryTaskListRepository) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, ok := r.lists[id]
	if !ok || list.UserID != ownerID {
		return entities.ErrTaskListNotFound
	}

	delete(r.lists, id)
	return nil
}

// MemoryTaskRepository is an in-memory TaskRepository
type MemoryTaskRepository struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]*entities.Task
}

// NewMemoryTaskRepository creates an empty in-memory task repository
func NewMemoryTaskRepository() *MemoryTaskRepository {
	return &MemoryTaskRepository{tasks: make(map[uuid.UUID]*entities.Task)}
}

func (r *MemoryTaskRepository) Create(ctx context.Context, task *entities.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	stored := *task
	r.tasks[task.ID] = &stored

	return nil
}

func (r *MemoryTaskRepository) GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*entities.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok || task.UserID != ownerID {
		return nil, entities.ErrTaskNotFound
	}

	copied := *task
	return &copied, nil
}

func (r *MemoryTaskRepository) ListByList(ctx context.Context, ownerID, taskListID uuid.UUID) ([]*entities.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := []*entities.Task{}
	for _, t := range r.tasks {
		if t.UserID == ownerID && t.TaskListID == taskListID {
			copied := *t
			tasks = append(tasks, &copied)
		}
	}

	return tasks, nil
}

func (r *MemoryTaskRepository) UpdateOwned(ctx context.Context, task *entities.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.tasks[task.ID]
	if !ok || existing.UserID != task.UserID {
		return entities.ErrTaskNotFound
	}

	task.UpdatedAt = time.Now()
	stored := *task
	r.tasks[task.ID] = &stored

	return nil
}

func (r *MemoryTaskRepository) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok || task.UserID != ownerID {
		return entities.ErrTaskNotFound
	}

	delete(r.tasks, id)
	return nil
}

// MemoryCacheRepository is an in-memory CacheRepository. Expirations are
// checked lazily on read.
type MemoryCacheRepository struct {
	mu      sync.RWMutex
	entries map[string]memoryCacheEntry
}

type memoryCacheEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryCacheRepository creates an empty in-memory cache
func NewMemoryCacheRepository() *MemoryCacheRepository {
	return &MemoryCacheRepository{entries: make(map[string]memoryCacheEntry)}
}

func (r *MemoryCacheRepository) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry := memoryCacheEntry{data: data}
	if expiration > 0 {
		entry.expiresAt = time.Now().Add(expiration)
	}
	r.entries[key] = entry

	return nil
}

func (r *MemoryCacheRepository) Get(ctx context.Context, key string, dest interface{}) error {
	r.mu.RLock()
	entry, ok := r.entries[key]
	r.mu.RUnlock()

	if !ok {
		return errCacheMiss
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		return errCacheMiss
	}

	return json.Unmarshal(entry.data, dest)
}

func (r *MemoryCacheRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, key)
	return nil
}

var _ ports.UserRepository = (*MemoryUserRepository)(nil)
var _ ports.TaskListRepository = (*MemoryTaskListRepository)(nil)
var _ ports.TaskRepository = (*MemoryTaskRepository)(nil)
var _ ports.CacheRepository = (*MemoryCacheRepository)(nil)
