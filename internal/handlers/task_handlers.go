package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"dailyTasks/internal/handlers/dto"
	"dailyTasks/internal/logger"
	"dailyTasks/internal/middleware"
	"dailyTasks/internal/models/task"
)

type TaskHandler struct {
	tasks TaskService
}

func NewTaskHandler(tasks TaskService) TaskHandler {
	return TaskHandler{
		tasks: tasks,
	}
}

func (h *TaskHandler) PostTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	caller, ok := middleware.GetUser(r.Context())
	if !ok {
		responseWithMessage(w, http.StatusUnauthorized, "Not authorized, no token")
		return
	}

	var request dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: Ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithMessage(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if request.Text == "" || request.Category == "" || request.Date == "" {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("error", "missing_required_fields"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithMessage(w, http.StatusBadRequest, "Please provide task text, category, and date.")
		return
	}
	if request.Category == string(task.CategoryCustom) && request.CustomCategoryName == "" {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "customCategoryName"),
			zap.String("error", "empty_field"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithMessage(w, http.StatusBadRequest, "Custom category name is required for custom tasks.")
		return
	}

	created, err := h.tasks.CreateTask(r.Context(), caller.ID, request.Text, task.Category(request.Category), request.CustomCategoryName, request.Date)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "create_task"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithServerError(w, "Server error while adding task.", err)
		return
	}

	logger.Info("HTTP_OUT: Задача создана",
		zap.String("task_id", created.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated, dto.FromTask(created))
}

func (h *TaskHandler) GetTasksByDate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	caller, ok := middleware.GetUser(r.Context())
	if !ok {
		responseWithMessage(w, http.StatusUnauthorized, "Not authorized, no token")
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("query", "date"),
			zap.String("error", "empty_value"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithMessage(w, http.StatusBadRequest, "Date query parameter is required.")
		return
	}

	tasks, err := h.tasks.GetTasksForDate(r.Context(), caller.ID, date)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "list_tasks"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithServerError(w, "Server error while fetching tasks.", err)
		return
	}

	logger.Info("HTTP_OUT: Задачи получены",
		zap.Int("count", len(tasks)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromTaskList(tasks))
}

func (h *TaskHandler) UpdateTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	caller, ok := middleware.GetUser(r.Context())
	if !ok {
		responseWithMessage(w, http.StatusUnauthorized, "Not authorized, no token")
		return
	}

	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		logger.Warn("HTTP: Не удалось получить id",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithMessage(w, http.StatusNotFound, "Task not found.")
		return
	}

	var request dto.UpdateTaskRequest
	decoder := json.NewDecoder(r.Body)
	defer r.Body.Close()

	if err := decoder.Decode(&request); err != nil {
		logger.Warn("HTTP: Ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithMessage(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	// только присланные поля превращаются в опции
	options := []task.TaskOption{}
	if request.Text != nil {
		options = append(options, task.WithText(*request.Text))
	}
	if request.Category != nil {
		options = append(options, task.WithCategory(task.Category(*request.Category)))
	}
	if request.CustomCategoryName != nil {
		options = append(options, task.WithCustomCategoryName(*request.CustomCategoryName))
	}
	if request.Completed != nil {
		options = append(options, task.WithCompleted(*request.Completed))
	}
	if request.Date != nil {
		options = append(options, task.WithDate(*request.Date))
	}

	updated, err := h.tasks.UpdateTask(r.Context(), caller.ID, taskID, options...)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "update_task"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithServerError(w, "Server error while updating task.", err)
		return
	}

	logger.Info("HTTP_OUT: Задача обновлена",
		zap.String("task_id", updated.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromTask(updated))
}

func (h *TaskHandler) DeleteTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	caller, ok := middleware.GetUser(r.Context())
	if !ok {
		responseWithMessage(w, http.StatusUnauthorized, "Not authorized, no token")
		return
	}

	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		logger.Warn("HTTP: Не удалось получить id",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithMessage(w, http.StatusNotFound, "Task not found.")
		return
	}

	if err := h.tasks.DeleteTask(r.Context(), caller.ID, taskID); err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "delete_task"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithServerError(w, "Server error while deleting task.", err)
		return
	}

	logger.Info("HTTP_OUT: Задача удалена",
		zap.String("task_id", taskID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithMessage(w, http.StatusOK, "Task removed successfully.")
}

func (h *TaskHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP: Health check")
	healthCheck(w)
}
