package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"dailyTasks/internal/logger"
	"dailyTasks/internal/models/user"
	rep "dailyTasks/internal/repository"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) UserService {
	return UserService{
		repo: repo,
	}
}

// Register создаёт пользователя. Пароль хэшируется здесь, до сохранения —
// репозиторий никогда не видит открытый текст.
func (s *UserService) Register(ctx context.Context, username, email, fullName, mobileNumber, password string) (*user.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	fullName = strings.TrimSpace(fullName)

	if len(username) < 3 {
		return nil, NewValidationError("username", "must be at least 3 characters")
	}
	if !emailRe.MatchString(email) {
		return nil, NewValidationError("email", "invalid format")
	}
	if fullName == "" {
		return nil, NewValidationError("fullName", "required")
	}
	if len(password) < 6 {
		return nil, NewValidationError("password", "must be at least 6 characters")
	}

	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		logger.Info("Service: Повтор имени пользователя", zap.String("username", username))
		return nil, NewConflict("Username already exists.", "username")
	} else if !errors.Is(err, rep.ErrNotFound) {
		return nil, fmt.Errorf("проверка имени пользователя: %w", err)
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		logger.Info("Service: Повтор email", zap.String("email", email))
		return nil, NewConflict("Email already exists.", "email")
	} else if !errors.Is(err, rep.ErrNotFound) {
		return nil, fmt.Errorf("проверка email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("хэширование пароля: %w", err)
	}

	newUser := &user.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		FullName:     fullName,
		MobileNumber: strings.TrimSpace(mobileNumber),
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := s.repo.Create(ctx, newUser); err != nil {
		// гонка между проверкой и вставкой: уникальный индекс держит инвариант
		if errors.Is(err, rep.ErrDuplicate) {
			return nil, NewConflict("Username already exists.", "username")
		}
		return nil, fmt.Errorf("сохранение пользователя: %w", err)
	}

	return newUser, nil
}

// Authenticate проверяет пару имя/пароль. Обе ветки отказа отдают одну и
// ту же ошибку — по ответу нельзя понять, существует ли учётная запись.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*user.User, error) {
	u, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, NewInvalidCredentials()
		}
		return nil, fmt.Errorf("получение пользователя: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, NewInvalidCredentials()
	}

	return u, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, NewNotFound("User", id.String())
		}
		return nil, fmt.Errorf("получение пользователя: %w", err)
	}
	return u, nil
}
