package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dailyTasks/internal/handlers"
	"dailyTasks/internal/handlers/dto"
	"dailyTasks/internal/logger"
	"dailyTasks/internal/middleware"
	"dailyTasks/internal/models/task"
	"dailyTasks/internal/models/user"
	"dailyTasks/internal/service"
)

func TestMain(m *testing.M) {
	logger.Init(true)
	os.Exit(m.Run())
}

// MockUserService - мок сервиса пользователей
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, username, email, fullName, mobileNumber, password string) (*user.User, error) {
	args := m.Called(ctx, username, email, fullName, mobileNumber, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, username, password string) (*user.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

var _ handlers.UserService = (*MockUserService)(nil)

// MockTokenIssuer - мок выпуска токенов
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(userID uuid.UUID) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

var _ handlers.TokenIssuer = (*MockTokenIssuer)(nil)

// MockTaskService - мок сервиса задач
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) CreateTask(ctx context.Context, ownerID uuid.UUID, text string, category task.Category, customCategoryName, date string) (*task.Task, error) {
	args := m.Called(ctx, ownerID, text, category, customCategoryName, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskService) GetTasksForDate(ctx context.Context, ownerID uuid.UUID, date string) ([]*task.Task, error) {
	args := m.Called(ctx, ownerID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *MockTaskService) UpdateTask(ctx context.Context, ownerID, taskID uuid.UUID, options ...task.TaskOption) (*task.Task, error) {
	args := m.Called(ctx, ownerID, taskID, options)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskService) DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) error {
	args := m.Called(ctx, ownerID, taskID)
	return args.Error(0)
}

var _ handlers.TaskService = (*MockTaskService)(nil)

// withUser кладёт аутентифицированного пользователя в контекст запроса,
// как это делает middleware.Auth
func withUser(req *http.Request, u *user.User) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.UserKey, u)
	return req.WithContext(ctx)
}

// withURLParam добавляет chi-параметр маршрута
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func testUser() *user.User {
	return &user.User{
		ID:       uuid.New(),
		Username: "alice",
		Email:    "alice@example.com",
		FullName: "Alice Smith",
	}
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    string
		setupMock      func(*MockUserService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "success",
			requestBody: `{"username":"alice","email":"alice@example.com","fullName":"Alice Smith","password":"password123"}`,
			setupMock: func(m *MockUserService) {
				m.On("Register", mock.Anything, "alice", "alice@example.com", "Alice Smith", "", "password123").
					Return(testUser(), nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   "User registered successfully!",
		},
		{
			name:           "error - missing fields",
			requestBody:    `{"username":"alice","password":"password123"}`,
			setupMock:      func(m *MockUserService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Please enter all required fields",
		},
		{
			name:           "error - invalid JSON",
			requestBody:    `{invalid json}`,
			setupMock:      func(m *MockUserService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "error - duplicate username",
			requestBody: `{"username":"alice","email":"alice@example.com","fullName":"Alice Smith","password":"password123"}`,
			setupMock: func(m *MockUserService) {
				m.On("Register", mock.Anything, "alice", "alice@example.com", "Alice Smith", "", "password123").
					Return(nil, service.NewConflict("Username already exists.", "username"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Username already exists.",
		},
		{
			name:        "error - store failure",
			requestBody: `{"username":"alice","email":"alice@example.com","fullName":"Alice Smith","password":"password123"}`,
			setupMock: func(m *MockUserService) {
				m.On("Register", mock.Anything, "alice", "alice@example.com", "Alice Smith", "", "password123").
					Return(nil, errors.New("connection refused"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "Server error during registration.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsers := new(MockUserService)
			mockTokens := new(MockTokenIssuer)
			tt.setupMock(mockUsers)

			handler := handlers.NewAuthHandler(mockUsers, mockTokens)

			req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewBufferString(tt.requestBody))
			w := httptest.NewRecorder()

			handler.Register(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
			}
			mockUsers.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	u := testUser()

	tests := []struct {
		name           string
		requestBody    string
		setupMock      func(*MockUserService, *MockTokenIssuer)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "success",
			requestBody: `{"username":"alice","password":"password123"}`,
			setupMock: func(m *MockUserService, tok *MockTokenIssuer) {
				m.On("Authenticate", mock.Anything, "alice", "password123").Return(u, nil)
				tok.On("Issue", u.ID).Return("signed-token", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "signed-token",
		},
		{
			name:        "error - invalid credentials",
			requestBody: `{"username":"alice","password":"wrong"}`,
			setupMock: func(m *MockUserService, tok *MockTokenIssuer) {
				m.On("Authenticate", mock.Anything, "alice", "wrong").
					Return(nil, service.NewInvalidCredentials())
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid credentials",
		},
		{
			name:        "error - store failure",
			requestBody: `{"username":"alice","password":"password123"}`,
			setupMock: func(m *MockUserService, tok *MockTokenIssuer) {
				m.On("Authenticate", mock.Anything, "alice", "password123").
					Return(nil, errors.New("connection refused"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "Server error during login.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsers := new(MockUserService)
			mockTokens := new(MockTokenIssuer)
			tt.setupMock(mockUsers, mockTokens)

			handler := handlers.NewAuthHandler(mockUsers, mockTokens)

			req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBufferString(tt.requestBody))
			w := httptest.NewRecorder()

			handler.Login(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			if tt.expectedStatus == http.StatusOK {
				var resp dto.LoginResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			}

			mockUsers.AssertExpectations(t)
			mockTokens.AssertExpectations(t)
		})
	}
}

func TestTaskHandler_PostTask(t *testing.T) {
	u := testUser()
	created := &task.Task{
		ID:        uuid.New(),
		UserID:    u.ID,
		Text:      "read chapter 3",
		Category:  task.CategoryStudy,
		Date:      "2025-07-25",
		CreatedAt: time.Now(),
	}

	tests := []struct {
		name           string
		requestBody    string
		authenticated  bool
		setupMock      func(*MockTaskService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:          "success",
			requestBody:   `{"text":"read chapter 3","category":"study","date":"2025-07-25"}`,
			authenticated: true,
			setupMock: func(m *MockTaskService) {
				m.On("CreateTask", mock.Anything, u.ID, "read chapter 3", task.CategoryStudy, "", "2025-07-25").
					Return(created, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   "read chapter 3",
		},
		{
			name:           "error - no identity in context",
			requestBody:    `{"text":"read","category":"study","date":"2025-07-25"}`,
			authenticated:  false,
			setupMock:      func(m *MockTaskService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "error - missing fields",
			requestBody:    `{"text":"read chapter 3"}`,
			authenticated:  true,
			setupMock:      func(m *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Please provide task text, category, and date.",
		},
		{
			name:           "error - custom without name",
			requestBody:    `{"text":"buy milk","category":"custom","date":"2025-07-25"}`,
			authenticated:  true,
			setupMock:      func(m *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Custom category name is required for custom tasks.",
		},
		{
			name:          "error - store failure",
			requestBody:   `{"text":"read chapter 3","category":"study","date":"2025-07-25"}`,
			authenticated: true,
			setupMock: func(m *MockTaskService) {
				m.On("CreateTask", mock.Anything, u.ID, "read chapter 3", task.CategoryStudy, "", "2025-07-25").
					Return(nil, errors.New("connection refused"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "Server error while adding task.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockTasks := new(MockTaskService)
			tt.setupMock(mockTasks)

			handler := handlers.NewTaskHandler(mockTasks)

			req := httptest.NewRequest("POST", "/api/tasks", bytes.NewBufferString(tt.requestBody))
			if tt.authenticated {
				req = withUser(req, u)
			}
			w := httptest.NewRecorder()

			handler.PostTask(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
			}
			mockTasks.AssertExpectations(t)
		})
	}
}

func TestTaskHandler_GetTasksByDate(t *testing.T) {
	u := testUser()

	tests := []struct {
		name           string
		query          string
		setupMock      func(*MockTaskService)
		expectedStatus int
	}{
		{
			name:  "success",
			query: "?date=2025-07-25",
			setupMock: func(m *MockTaskService) {
				m.On("GetTasksForDate", mock.Anything, u.ID, "2025-07-25").
					Return([]*task.Task{
						{ID: uuid.New(), UserID: u.ID, Text: "t1", Category: task.CategoryStudy, Date: "2025-07-25"},
						{ID: uuid.New(), UserID: u.ID, Text: "t2", Category: task.CategoryHomework, Date: "2025-07-25"},
					}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "error - missing date",
			query:          "",
			setupMock:      func(m *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "error - store failure",
			query: "?date=2025-07-25",
			setupMock: func(m *MockTaskService) {
				m.On("GetTasksForDate", mock.Anything, u.ID, "2025-07-25").
					Return(nil, errors.New("connection refused"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockTasks := new(MockTaskService)
			tt.setupMock(mockTasks)

			handler := handlers.NewTaskHandler(mockTasks)

			req := withUser(httptest.NewRequest("GET", "/api/tasks"+tt.query, nil), u)
			w := httptest.NewRecorder()

			handler.GetTasksByDate(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				var resp []dto.TaskResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Len(t, resp, 2)
				assert.Equal(t, "t1", resp[0].Text)
				assert.Equal(t, "t2", resp[1].Text)
			}

			mockTasks.AssertExpectations(t)
		})
	}
}

func TestTaskHandler_UpdateTaskByID(t *testing.T) {
	u := testUser()
	taskID := uuid.New()
	updated := &task.Task{
		ID:        taskID,
		UserID:    u.ID,
		Text:      "updated text",
		Category:  task.CategoryStudy,
		Completed: true,
		Date:      "2025-07-25",
	}

	tests := []struct {
		name           string
		taskID         string
		requestBody    string
		setupMock      func(*MockTaskService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "success",
			taskID:      taskID.String(),
			requestBody: `{"completed":true}`,
			setupMock: func(m *MockTaskService) {
				m.On("UpdateTask", mock.Anything, u.ID, taskID, mock.Anything).
					Return(updated, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "updated text",
		},
		{
			name:           "error - invalid id",
			taskID:         "not-a-uuid",
			requestBody:    `{"completed":true}`,
			setupMock:      func(m *MockTaskService) {},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:        "error - not found",
			taskID:      taskID.String(),
			requestBody: `{"completed":true}`,
			setupMock: func(m *MockTaskService) {
				m.On("UpdateTask", mock.Anything, u.ID, taskID, mock.Anything).
					Return(nil, service.NewNotFound("Task", taskID.String()))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "Task not found.",
		},
		{
			// чужая задача отклоняется с 401, как в исходном API
			name:        "error - not owner",
			taskID:      taskID.String(),
			requestBody: `{"completed":true}`,
			setupMock: func(m *MockTaskService) {
				m.On("UpdateTask", mock.Anything, u.ID, taskID, mock.Anything).
					Return(nil, service.NewForbidden("Not authorized to update this task."))
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Not authorized to update this task.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockTasks := new(MockTaskService)
			tt.setupMock(mockTasks)

			handler := handlers.NewTaskHandler(mockTasks)

			req := httptest.NewRequest("PUT", "/api/tasks/"+tt.taskID, bytes.NewBufferString(tt.requestBody))
			req = withUser(req, u)
			req = withURLParam(req, "id", tt.taskID)
			w := httptest.NewRecorder()

			handler.UpdateTaskByID(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
			}
			mockTasks.AssertExpectations(t)
		})
	}
}

func TestTaskHandler_DeleteTaskByID(t *testing.T) {
	u := testUser()
	taskID := uuid.New()

	tests := []struct {
		name           string
		taskID         string
		setupMock      func(*MockTaskService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "success",
			taskID: taskID.String(),
			setupMock: func(m *MockTaskService) {
				m.On("DeleteTask", mock.Anything, u.ID, taskID).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "Task removed successfully.",
		},
		{
			name:   "error - not found",
			taskID: taskID.String(),
			setupMock: func(m *MockTaskService) {
				m.On("DeleteTask", mock.Anything, u.ID, taskID).
					Return(service.NewNotFound("Task", taskID.String()))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "Task not found.",
		},
		{
			name:   "error - not owner",
			taskID: taskID.String(),
			setupMock: func(m *MockTaskService) {
				m.On("DeleteTask", mock.Anything, u.ID, taskID).
					Return(service.NewForbidden("Not authorized to delete this task."))
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Not authorized to delete this task.",
		},
		{
			name:           "error - invalid id",
			taskID:         "not-a-uuid",
			setupMock:      func(m *MockTaskService) {},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockTasks := new(MockTaskService)
			tt.setupMock(mockTasks)

			handler := handlers.NewTaskHandler(mockTasks)

			req := httptest.NewRequest("DELETE", "/api/tasks/"+tt.taskID, nil)
			req = withUser(req, u)
			req = withURLParam(req, "id", tt.taskID)
			w := httptest.NewRecorder()

			handler.DeleteTaskByID(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
			}
			mockTasks.AssertExpectations(t)
		})
	}
}

func TestTaskHandler_HealthCheck(t *testing.T) {
	handler := handlers.NewTaskHandler(new(MockTaskService))

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	handler.HealthCheck(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "daily-tasks")
}
