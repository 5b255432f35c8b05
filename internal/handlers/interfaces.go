package handlers

import (
	"context"

	"github.com/google/uuid"

	"dailyTasks/internal/models/task"
	"dailyTasks/internal/models/user"
)

type UserService interface {
	Register(ctx context.Context, username, email, fullName, mobileNumber, password string) (*user.User, error)
	Authenticate(ctx context.Context, username, password string) (*user.User, error)
}

type TokenIssuer interface {
	Issue(userID uuid.UUID) (string, error)
}

type TaskService interface {
	CreateTask(ctx context.Context, ownerID uuid.UUID, text string, category task.Category, customCategoryName, date string) (*task.Task, error)
	GetTasksForDate(ctx context.Context, ownerID uuid.UUID, date string) ([]*task.Task, error)
	UpdateTask(ctx context.Context, ownerID, taskID uuid.UUID, options ...task.TaskOption) (*task.Task, error)
	DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) error
}
