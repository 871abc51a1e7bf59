package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/realty-service/internal/api/http"
	"github.com/spec-kit/realty-service/internal/api/http/handlers"
	"github.com/spec-kit/realty-service/internal/auth"
	"github.com/spec-kit/realty-service/internal/config"
	"github.com/spec-kit/realty-service/internal/events"
	"github.com/spec-kit/realty-service/internal/mail"
	"github.com/spec-kit/realty-service/internal/observability"
	"github.com/spec-kit/realty-service/internal/persistence"
	"github.com/spec-kit/realty-service/internal/repository"
	"github.com/spec-kit/realty-service/internal/service"
	"github.com/spec-kit/realty-service/internal/worker"
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
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)
	agentRepo := repository.NewAgentRepository(pool)
	companyRepo := repository.NewCompanyRepository(pool)
	residentialRepo := repository.NewResidentialPropertyRepository(pool)
	commercialRepo := repository.NewCommercialPropertyRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	mailer := mail.NewLogMailer(logger, cfg.Mail)
	metrics := observability.NewMetrics()

	roleService := service.NewRoleService(roleRepo, redis.Client, logger)
	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		Roles:      roleService,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	approvalService := service.NewApprovalService(service.ApprovalDependencies{
		AgentRepo:       agentRepo,
		CompanyRepo:     companyRepo,
		ResidentialRepo: residentialRepo,
		CommercialRepo:  commercialRepo,
		Dispatcher:      dispatcher,
	})
	onboardingService := service.NewOnboardingService(service.OnboardingDependencies{
		AgentRepo:       agentRepo,
		CompanyRepo:     companyRepo,
		ResidentialRepo: residentialRepo,
		CommercialRepo:  commercialRepo,
	})
	notificationService := service.NewNotificationService(dispatcher, mailer, userRepo, logger)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Approvals:      handlers.NewApprovalsHandler(approvalService),
		Agents:         handlers.NewAgentsHandler(onboardingService),
		Companies:      handlers.NewCompaniesHandler(onboardingService),
		Properties:     handlers.NewPropertiesHandler(onboardingService),
		AuthMiddleware: authMiddleware,
		Metrics:        metrics,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
	dispatcher.Wait()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
