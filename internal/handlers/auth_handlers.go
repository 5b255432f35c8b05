package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"dailyTasks/internal/handlers/dto"
	"dailyTasks/internal/logger"
)

type AuthHandler struct {
	users  UserService
	tokens TokenIssuer
}

func NewAuthHandler(users UserService, tokens TokenIssuer) AuthHandler {
	return AuthHandler{
		users:  users,
		tokens: tokens,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: Ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithMessage(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if request.Username == "" || request.Email == "" || request.FullName == "" || request.Password == "" {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("error", "missing_required_fields"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithMessage(w, http.StatusBadRequest,
			"Please enter all required fields (username, email, full name, password).")
		return
	}

	newUser, err := h.users.Register(r.Context(), request.Username, request.Email, request.FullName, request.MobileNumber, request.Password)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "register"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithServerError(w, "Server error during registration.", err)
		return
	}

	logger.Info("HTTP_OUT: Пользователь зарегистрирован",
		zap.String("user_id", newUser.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithMessage(w, http.StatusCreated, "User registered successfully!")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: Ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithMessage(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	u, err := h.users.Authenticate(r.Context(), request.Username, request.Password)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "login"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithServerError(w, "Server error during login.", err)
		return
	}

	token, err := h.tokens.Issue(u.ID)
	if err != nil {
		logger.Error("HTTP: Ошибка выпуска токена", err,
			zap.String("user_id", u.ID.String()))
		responseWithServerError(w, "Server error during login.", err)
		return
	}

	logger.Info("HTTP_OUT: Успешный вход",
		zap.String("user_id", u.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.LoginResponse{
		Message:  "Logged in successfully",
		ID:       u.ID,
		Username: u.Username,
		Token:    token,
	})
}
