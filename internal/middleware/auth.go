package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dailyTasks/internal/logger"
	"dailyTasks/internal/models/user"
)

const UserKey contextKey = "auth_user"

type TokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

type UserResolver interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// Auth разбирает заголовок Authorization: Bearer <token>, проверяет токен
// и кладёт пользователя в контекст запроса. Вешается только на /api/tasks —
// регистрация и логин остаются открытыми.
func Auth(tokens TokenVerifier, users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				logger.Warn("Auth: Запрос без токена",
					zap.String("path", r.URL.Path),
					zap.String("client_ip", r.RemoteAddr))
				unauthorized(w, "Not authorized, no token")
				return
			}

			tokenString := strings.TrimPrefix(header, "Bearer ")

			userID, err := tokens.Verify(tokenString)
			if err != nil {
				logger.Warn("Auth: Токен не прошёл проверку",
					zap.Error(err),
					zap.String("client_ip", r.RemoteAddr))
				unauthorized(w, "Not authorized, token failed")
				return
			}

			// токен живёт 30 дней: пользователь мог исчезнуть раньше
			u, err := users.GetByID(r.Context(), userID)
			if err != nil {
				logger.Warn("Auth: Пользователь из токена не найден",
					zap.String("user_id", userID.String()),
					zap.String("client_ip", r.RemoteAddr))
				unauthorized(w, "Not authorized, user not found")
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser достаёт аутентифицированного пользователя из контекста.
func GetUser(ctx context.Context) (*user.User, bool) {
	u, ok := ctx.Value(UserKey).(*user.User)
	return u, ok
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]any{"message": message})
}
