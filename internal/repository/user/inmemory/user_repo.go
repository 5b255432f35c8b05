package inmemory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"dailyTasks/internal/models/user"
	repo "dailyTasks/internal/repository"
)

type UserStorage struct {
	storage    map[uuid.UUID]*user.User
	byUsername map[string]uuid.UUID
	byEmail    map[string]uuid.UUID
	mtx        *sync.RWMutex
}

func NewUserStorage() *UserStorage {
	return &UserStorage{
		storage:    make(map[uuid.UUID]*user.User),
		byUsername: make(map[string]uuid.UUID),
		byEmail:    make(map[string]uuid.UUID),
		mtx:        &sync.RWMutex{},
	}
}

func (s *UserStorage) Create(ctx context.Context, userToCreate *user.User) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.byUsername[userToCreate.Username]; ok {
		return repo.ErrDuplicate
	}
	if _, ok := s.byEmail[userToCreate.Email]; ok {
		return repo.ErrDuplicate
	}

	userToCreate.CreatedAt = time.Now()

	s.storage[userToCreate.ID] = userToCreate
	s.byUsername[userToCreate.Username] = userToCreate.ID
	s.byEmail[userToCreate.Email] = userToCreate.ID
	return nil
}

func (s *UserStorage) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	userToGet, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return userToGet, nil
}

func (s *UserStorage) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	id, ok := s.byUsername[username]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return s.storage[id], nil
}

func (s *UserStorage) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return s.storage[id], nil
}

// Delete нужен только тестам middleware: пользователь исчез, токен остался.
func (s *UserStorage) Delete(ctx context.Context, id uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	userToDelete, ok := s.storage[id]
	if !ok {
		return repo.ErrNotFound
	}
	delete(s.byUsername, userToDelete.Username)
	delete(s.byEmail, userToDelete.Email)
	delete(s.storage, id)
	return nil
}
