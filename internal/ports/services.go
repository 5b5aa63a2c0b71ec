package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/manageer/core/internal/domain/entities"
)

// AuthService interface for authentication operations
type AuthService interface {
	Signup(ctx context.Context, req SignupRequest) (*entities.User, string, error)
	Signin(ctx context.Context, req SigninRequest) (*entities.User, string, error)
	CurrentUser(ctx context.Context, claims *Claims) (*entities.User, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// TaskListService interface for task list operations
type TaskListService interface {
	CreateTaskList(ctx context.Context, ownerID uuid.UUID, req CreateTaskListRequest) (*entities.TaskList, error)
	ListTaskLists(ctx context.Context, ownerID uuid.UUID) ([]*entities.TaskList, error)
	GetTaskList(ctx context.Context, id, ownerID uuid.UUID) (*entities.TaskList, error)
	DeleteTaskList(ctx context.Context, id, ownerID uuid.UUID) error
}

// TaskService interface for task operations
type TaskService interface {
	CreateTask(ctx context.Context, ownerID uuid.UUID, req CreateTaskRequest) (*entities.Task, error)
	ListTasks(ctx context.Context, ownerID, taskListID uuid.UUID) ([]*entities.Task, error)
	GetTask(ctx context.Context, id, ownerID uuid.UUID) (*entities.Task, error)
	UpdateTask(ctx context.Context, id, ownerID uuid.UUID, req UpdateTaskRequest) (*entities.Task, error)
	DeleteTask(ctx context.Context, id, ownerID uuid.UUID) error
}

// Request/Response Types

type SignupRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4,max=20"`
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Claims is the identity claim bundle carried by the session token.
type Claims struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type CreateTaskListRequest struct {
	Name string `json:"name" validate:"required"`
}

type CreateTaskRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description *string    `json:"description"`
	Status      string     `json:"status" validate:"required,oneof='To Do' 'In Progress' 'Completed'"`
	Priority    string     `json:"priority" validate:"required,oneof='Low' 'Medium' 'High'"`
	DueDate     *time.Time `json:"dueDate"`
	TaskListID  string     `json:"taskListId" validate:"required,uuid"`
}

// UpdateTaskRequest replaces every mutable field of a task.
type UpdateTaskRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description *string    `json:"description"`
	Status      string     `json:"status" validate:"required,oneof='To Do' 'In Progress' 'Completed'"`
	Priority    string     `json:"priority" validate:"required,oneof='Low' 'Medium' 'High'"`
	DueDate     *time.Time `json:"dueDate"`
}
