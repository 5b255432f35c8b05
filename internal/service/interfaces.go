package service

import (
	"context"

	"github.com/google/uuid"

	"dailyTasks/internal/models/task"
	"dailyTasks/internal/models/user"
)

type UserRepository interface {
	Create(context.Context, *user.User) error
	GetByID(context.Context, uuid.UUID) (*user.User, error)
	GetByUsername(context.Context, string) (*user.User, error)
	GetByEmail(context.Context, string) (*user.User, error)
}

type TaskRepository interface {
	Create(context.Context, *task.Task) error
	Update(context.Context, *task.Task) error
	GetByID(context.Context, uuid.UUID) (*task.Task, error)
	GetByOwnerAndDate(context.Context, uuid.UUID, string) ([]*task.Task, error)
	Delete(context.Context, uuid.UUID) error
}
