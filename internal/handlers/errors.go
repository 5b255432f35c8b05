package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"dailyTasks/internal/logger"
	"dailyTasks/internal/service"
)

// handleBusinessError переводит бизнес-ошибку в HTTP-ответ.
// Возвращает false, если ошибка не бизнесовая — тогда её обрабатывает
// вызывающий как 500.
func handleBusinessError(w http.ResponseWriter, err error) bool {
	var businessErr *service.BusinessError
	if !errors.As(err, &businessErr) {
		return false
	}

	statusCode := mapBusinessErrorToHTTP(businessErr.Code)

	logger.Warn("HTTP: Бизнес-ошибка",
		zap.String("error_code", businessErr.Code),
		zap.Int("http_status", statusCode))

	responseWithMessage(w, statusCode, businessErr.Message)
	return true
}

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeForbidden:
		// исходный API отвечает 401 на чужую задачу
		return http.StatusUnauthorized
	case service.CodeValidation, service.CodeConflict, service.CodeInvalidCredentials:
		return http.StatusBadRequest
	default:
		return http.StatusBadRequest
	}
}
