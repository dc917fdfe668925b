package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/emberworks/studio-portal/internal/api/http"
	"github.com/emberworks/studio-portal/internal/api/http/handlers"
	"github.com/emberworks/studio-portal/internal/audit"
	"github.com/emberworks/studio-portal/internal/config"
	"github.com/emberworks/studio-portal/internal/gate"
	"github.com/emberworks/studio-portal/internal/observability"
	"github.com/emberworks/studio-portal/internal/persistence"
	"github.com/emberworks/studio-portal/internal/repository"
	"github.com/emberworks/studio-portal/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)
	permRepo := repository.NewPermissionRepository(pool)
	settingsRepo := repository.NewSettingsRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	devlogRepo := repository.NewDevLogRepository(pool)
	projectRepo := repository.NewProjectRepository(pool)
	suggestionRepo := repository.NewSuggestionRepository(pool)

	recorder := audit.NewRecorder(auditRepo, logger)
	throttle := service.NewLoginThrottle(redis.Handle(), cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow(), logger)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:       userRepo,
		RoleRepo:       roleRepo,
		PermissionRepo: permRepo,
		Throttle:       throttle,
	}, logger)
	userService := service.NewUserService(userRepo, roleRepo, recorder, cfg.Auth.BcryptCost)
	settingsService := service.NewSettingsService(settingsRepo, recorder)
	ticketService := service.NewTicketService(ticketRepo, userRepo, recorder)
	devlogService := service.NewDevLogService(devlogRepo, recorder)
	projectService := service.NewProjectService(projectRepo, recorder)
	suggestionService := service.NewSuggestionService(suggestionRepo)

	metrics := observability.NewMetrics()
	requestGate := gate.New(settingsRepo, authService.TokenManager(), cfg.Auth.CookieName, nil, logger, metrics)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout(), cfg.RateLimit)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Gate:        requestGate,
		Health:      handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:        handlers.NewAuthHandler(authService, cfg.Auth.CookieName, !cfg.App.IsDevelopment()),
		Users:       handlers.NewUsersHandler(userService),
		Roles:       handlers.NewRolesHandler(roleRepo),
		Settings:    handlers.NewSettingsHandler(settingsService),
		Audit:       handlers.NewAuditHandler(recorder),
		DevLogs:     handlers.NewDevLogsHandler(devlogService),
		Projects:    handlers.NewProjectsHandler(projectService),
		Tickets:     handlers.NewTicketsHandler(ticketService),
		Suggestions: handlers.NewSuggestionsHandler(suggestionService),
		Metrics:     metrics,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
