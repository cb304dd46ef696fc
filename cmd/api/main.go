package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/hrms-service/internal/api/http"
	"github.com/spec-kit/hrms-service/internal/api/http/handlers"
	"github.com/spec-kit/hrms-service/internal/assistant"
	"github.com/spec-kit/hrms-service/internal/auth"
	"github.com/spec-kit/hrms-service/internal/config"
	"github.com/spec-kit/hrms-service/internal/events"
	"github.com/spec-kit/hrms-service/internal/observability"
	"github.com/spec-kit/hrms-service/internal/persistence"
	"github.com/spec-kit/hrms-service/internal/repository"
	"github.com/spec-kit/hrms-service/internal/service"
	"github.com/spec-kit/hrms-service/internal/worker"
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
	orgRepo := repository.NewOrganizationRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)
	leaveRepo := repository.NewLeaveRepository(pool)
	trainingRepo := repository.NewTrainingRepository(pool)
	taskRepo := repository.NewTaskRepository(pool)
	payrollRepo := repository.NewPayrollRepository(pool)
	expenseRepo := repository.NewExpenseRepository(pool)
	inventoryRepo := repository.NewInventoryRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:          userRepo,
		OrganizationRepo:  orgRepo,
		PasswordResetRepo: resetRepo,
		Dispatcher:        dispatcher,
	})
	staffService := service.NewStaffService(userRepo)
	roleService := service.NewRoleService(roleRepo)
	attendanceService := service.NewAttendanceService(attendanceRepo, orgRepo)
	leaveService := service.NewLeaveService(leaveRepo, dispatcher)

	resolver := auth.NewPermissionResolver(roleRepo)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	assistantDispatcher := assistant.NewDispatcher(assistant.Stores{
		Users:         userRepo,
		Organizations: orgRepo,
		Attendance:    attendanceRepo,
		Leave:         leaveRepo,
		Training:      trainingRepo,
		Tasks:         taskRepo,
		Payroll:       payrollRepo,
		Expenses:      expenseRepo,
		Inventory:     inventoryRepo,
	}, logger)
	rateLimiter := persistence.NewRateLimiter(redis, cfg.Assistant.RateLimitPerMinute, time.Minute, logger)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Staff:          handlers.NewStaffHandler(staffService),
		Roles:          handlers.NewRolesHandler(roleService),
		Attendance:     handlers.NewAttendanceHandler(attendanceService),
		Leave:          handlers.NewLeaveHandler(leaveService),
		Assistant:      handlers.NewAssistantHandler(assistantDispatcher, rateLimiter),
		AuthMiddleware: authMiddleware,
		Resolver:       resolver,
	})

	go func() {
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
