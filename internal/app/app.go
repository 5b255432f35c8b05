package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"dailyTasks/internal/auth"
	"dailyTasks/internal/config"
	"dailyTasks/internal/handlers"
	"dailyTasks/internal/logger"
	"dailyTasks/internal/middleware"
	"dailyTasks/internal/repository"
	taskinmemory "dailyTasks/internal/repository/task/inmemory"
	taskpostgres "dailyTasks/internal/repository/task/postgres"
	userinmemory "dailyTasks/internal/repository/user/inmemory"
	userpostgres "dailyTasks/internal/repository/user/postgres"
	"dailyTasks/internal/service"
)

type App struct {
	config    *config.Config
	server    *http.Server
	router    *chi.Mux
	shutdowns []func() // хуки graceful shutdown, выполняются в обратном порядке
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}
	a.shutdowns = append(a.shutdowns, func() {
		logger.Sync()
	})

	userRepo, taskRepo, err := a.initRepositories(ctx)
	if err != nil {
		return err
	}

	userService := service.NewUserService(userRepo)
	taskService := service.NewTaskService(taskRepo)
	tokenService := auth.NewTokenService(a.config.Auth.Secret, a.config.Auth.TokenTTL)

	authHandler := handlers.NewAuthHandler(&userService, tokenService)
	taskHandler := handlers.NewTaskHandler(&taskService)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register) // POST /api/auth/register
			r.Post("/login", authHandler.Login)       // POST /api/auth/login
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Use(middleware.Auth(tokenService, &userService))

			r.Post("/", taskHandler.PostTask)      // POST /api/tasks
			r.Get("/", taskHandler.GetTasksByDate) // GET /api/tasks?date=YYYY-MM-DD

			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", taskHandler.UpdateTaskByID)    // PUT /api/tasks/{id}
				r.Delete("/", taskHandler.DeleteTaskByID) // DELETE /api/tasks/{id}
			})
		})
	})

	r.Get("/health", taskHandler.HealthCheck)

	a.router = r
	a.server = &http.Server{
		Addr:    a.config.GetServerAddr(),
		Handler: r,
	}

	return nil
}

func (a *App) initRepositories(ctx context.Context) (service.UserRepository, service.TaskRepository, error) {
	switch a.config.Repository.Type {
	case "inmemory":
		logger.Info("App: Репозитории в памяти")
		return userinmemory.NewUserStorage(), taskinmemory.NewTaskStorage(), nil

	case "postgres", "":
		if err := repository.RunMigrations(a.config.Database.URL); err != nil {
			return nil, nil, fmt.Errorf("миграции: %w", err)
		}

		poolConfig, err := pgxpool.ParseConfig(a.config.Database.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("разбор строки подключения: %w", err)
		}
		poolConfig.MaxConns = int32(a.config.Database.MaxConnections)
		poolConfig.MinConns = int32(a.config.Database.MinConnections)
		poolConfig.MaxConnIdleTime = a.config.Database.IdleTimeout

		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return nil, nil, fmt.Errorf("создание пула: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			return nil, nil, fmt.Errorf("проверка соединения ping: %w", err)
		}

		a.shutdowns = append(a.shutdowns, func() {
			logger.Info("App: Закрытие пула PostgreSQL")
			pool.Close()
		})

		logger.Info("App: Репозитории PostgreSQL", zap.String("addr", poolConfig.ConnConfig.Host))
		return userpostgres.NewWithPool(pool), taskpostgres.NewWithPool(pool), nil

	default:
		return nil, nil, fmt.Errorf("неизвестный тип репозитория: %s", a.config.Repository.Type)
	}
}

// Run запускает сервер и блокируется до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		logger.Info("App: Сервер запущен", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.runShutdowns()
		return fmt.Errorf("сервер: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("App: Остановка сервера")
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		logger.Error("App: Ошибка остановки сервера", err)
	}

	a.runShutdowns()
	return nil
}

func (a *App) runShutdowns() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
}
