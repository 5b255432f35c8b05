package handlers

import (
	"encoding/json"
	"net/http"
)

func responseWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

// responseWithMessage отдаёт конверт {message} — формат ошибок и
// подтверждений исходного API.
func responseWithMessage(w http.ResponseWriter, code int, message string) {
	responseWithJSON(w, code, map[string]any{"message": message})
}

// responseWithServerError — 500 с текстом нижележащей ошибки в поле error.
func responseWithServerError(w http.ResponseWriter, message string, err error) {
	responseWithJSON(w, http.StatusInternalServerError, map[string]any{
		"message": message,
		"error":   err.Error(),
	})
}

func healthCheck(w http.ResponseWriter) {
	responseWithJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "daily-tasks",
	})
}
