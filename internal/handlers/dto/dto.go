package dto

import (
	"time"

	"github.com/google/uuid"

	"dailyTasks/internal/models/task"
)

type RegisterRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	FullName     string `json:"fullName"`
	MobileNumber string `json:"mobileNumber"`
	Password     string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message  string    `json:"message"`
	ID       uuid.UUID `json:"_id"`
	Username string    `json:"username"`
	Token    string    `json:"token"`
}

type CreateTaskRequest struct {
	Text               string `json:"text"`
	Category           string `json:"category"`
	CustomCategoryName string `json:"customCategoryName"`
	Date               string `json:"date"`
}

// UpdateTaskRequest — все поля опциональны: меняется только то, что пришло.
type UpdateTaskRequest struct {
	Text               *string `json:"text,omitempty"`
	Category           *string `json:"category,omitempty"`
	CustomCategoryName *string `json:"customCategoryName,omitempty"`
	Completed          *bool   `json:"completed,omitempty"`
	Date               *string `json:"date,omitempty"`
}

type TaskResponse struct {
	ID                 uuid.UUID  `json:"_id"`
	UserID             uuid.UUID  `json:"userId"`
	Text               string     `json:"text"`
	Category           string     `json:"category"`
	CustomCategoryName string     `json:"customCategoryName,omitempty"`
	Completed          bool       `json:"completed"`
	Date               string     `json:"date"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          *time.Time `json:"updatedAt,omitempty"`
}

func FromTask(t *task.Task) TaskResponse {
	return TaskResponse{
		ID:                 t.ID,
		UserID:             t.UserID,
		Text:               t.Text,
		Category:           string(t.Category),
		CustomCategoryName: t.CustomCategoryName,
		Completed:          t.Completed,
		Date:               t.Date,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}

func FromTaskList(tasks []*task.Task) []TaskResponse {
	result := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		result[i] = FromTask(t)
	}
	return result
}
