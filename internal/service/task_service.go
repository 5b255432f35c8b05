package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dailyTasks/internal/logger"
	"dailyTasks/internal/models/task"
	rep "dailyTasks/internal/repository"
)

type TaskService struct {
	repo TaskRepository
}

func NewTaskService(repo TaskRepository) TaskService {
	return TaskService{
		repo: repo,
	}
}

func (s *TaskService) CreateTask(ctx context.Context, ownerID uuid.UUID, text string, category task.Category, customCategoryName, date string) (*task.Task, error) {
	text = strings.TrimSpace(text)
	customCategoryName = strings.TrimSpace(customCategoryName)

	if text == "" {
		return nil, NewValidationError("text", "required")
	}
	if !category.Valid() {
		return nil, NewValidationError("category", "must be one of study, homework, custom")
	}
	if date == "" {
		return nil, NewValidationError("date", "required")
	}
	if category == task.CategoryCustom && customCategoryName == "" {
		return nil, NewValidationError("customCategoryName", "required for custom category")
	}
	if category != task.CategoryCustom {
		// имя кастомной категории живёт только вместе с категорией custom
		customCategoryName = ""
	}

	newTask := &task.Task{
		ID:                 uuid.New(),
		UserID:             ownerID,
		Text:               text,
		Category:           category,
		CustomCategoryName: customCategoryName,
		Completed:          false,
		Date:               date,
		CreatedAt:          time.Now(),
	}

	if err := s.repo.Create(ctx, newTask); err != nil {
		return nil, fmt.Errorf("сохранение задачи: %w", err)
	}

	return newTask, nil
}

func (s *TaskService) GetTasksForDate(ctx context.Context, ownerID uuid.UUID, date string) ([]*task.Task, error) {
	if date == "" {
		return nil, NewValidationError("date", "required")
	}

	tasks, err := s.repo.GetByOwnerAndDate(ctx, ownerID, date)
	if err != nil {
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	return tasks, nil
}

// UpdateTask применяет только переданные опции. Инвариант кастомной
// категории здесь намеренно не перепроверяется — поведение исходной
// системы сохранено.
func (s *TaskService) UpdateTask(ctx context.Context, ownerID, taskID uuid.UUID, options ...task.TaskOption) (*task.Task, error) {
	t, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.String("task_id", taskID.String()))
			return nil, NewNotFound("Task", taskID.String())
		}
		return nil, fmt.Errorf("получение задачи: %w", err)
	}

	if t.UserID != ownerID {
		logger.Warn("Service: Попытка обновить чужую задачу",
			zap.String("task_id", taskID.String()),
			zap.String("caller_id", ownerID.String()))
		return nil, NewForbidden("Not authorized to update this task.")
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(t)
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("обновление задачи: %w", err)
	}
	return t, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) error {
	t, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.String("task_id", taskID.String()))
			return NewNotFound("Task", taskID.String())
		}
		return fmt.Errorf("получение задачи: %w", err)
	}

	if t.UserID != ownerID {
		logger.Warn("Service: Попытка удалить чужую задачу",
			zap.String("task_id", taskID.String()),
			zap.String("caller_id", ownerID.String()))
		return NewForbidden("Not authorized to delete this task.")
	}

	if err := s.repo.Delete(ctx, taskID); err != nil {
		return fmt.Errorf("удаление задачи: %w", err)
	}
	return nil
}
