// @title           Project Ledger API
// @version         1.0
// @description     Projects, transactions, debts and reference data behind a role-aware dashboard.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"projectledger/config"
	_ "projectledger/docs"
	"projectledger/internal/adapters/auth"
	"projectledger/internal/adapters/email"
	"projectledger/internal/adapters/session"
	deliveryhttp "projectledger/internal/delivery/http"
	"projectledger/internal/delivery/http/controllers"
	"projectledger/internal/delivery/http/helpers"
	"projectledger/internal/delivery/http/middleware"
	"projectledger/internal/domain"
	"projectledger/internal/repository/postgres"
	"projectledger/internal/services"

	_ "github.com/lib/pq"
)

func main() {
	logger := config.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := postgres.RunMigrations(cfg.DBUrl); err != nil {
		return err
	}
	logger.Info("Migrations applied")

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return err
	}

	var revoker domain.TokenRevoker
	if cfg.RedisURL != "" {
		client, err := session.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer client.Close()
		revoker = session.NewRedisRevoker(client)
		logger.Info("Token revocation enabled", "store", "redis")
	} else {
		logger.Warn("REDIS_URL not set; logged out tokens stay valid until they expire")
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.AWSRegion,
			AccessKeyID:        cfg.AWSAccessKeyID,
			SecretAccessKey:    cfg.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.EmailInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return err
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	roleRepo := postgres.NewRoleRepository(db)
	projectRepo := postgres.NewProjectRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	debtRepo := postgres.NewDebtRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	companyRepo := postgres.NewCompanyRepository(db)
	positionRepo := postgres.NewPositionRepository(db)
	dashboardRepo := postgres.NewDashboardRepository(db)

	// Services
	tokens := auth.NewJWT(cfg.JWTSecret)
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	timeout := cfg.ServiceTimeout

	authService := services.NewAuthService(userRepo, hasher, tokens, cfg.JWTExpiry, revoker, logger, timeout)
	userService := services.NewUserService(userRepo, roleRepo, hasher, emailService, logger, timeout)
	projectService := services.NewProjectService(projectRepo, timeout)
	transactionService := services.NewTransactionService(transactionRepo, categoryRepo, timeout)
	debtService := services.NewDebtService(debtRepo, timeout)
	categoryService := services.NewCategoryService(categoryRepo, timeout)
	companyService := services.NewCompanyService(companyRepo, timeout)
	positionService := services.NewPositionService(positionRepo, timeout)
	dashboardService := services.NewDashboardService(dashboardRepo, timeout)

	// Controllers
	pager := helpers.NewPager(cfg.DefaultPageSize, cfg.MaxPageSize)
	router := deliveryhttp.NewRouter(deliveryhttp.Controllers{
		Auth:        controllers.NewAuthController(logger, authService),
		User:        controllers.NewUserController(logger, userService, pager),
		Project:     controllers.NewProjectController(logger, projectService, pager),
		Transaction: controllers.NewTransactionController(logger, transactionService, pager),
		Debt:        controllers.NewDebtController(logger, debtService, pager),
		Category:    controllers.NewCategoryController(logger, categoryService, pager),
		Company:     controllers.NewCompanyController(logger, companyService, pager),
		Position:    controllers.NewPositionController(logger, positionService, pager),
		Dashboard:   controllers.NewDashboardController(logger, dashboardService),
	}, middleware.RequireAuth(tokens, revoker, logger))

	var handler http.Handler = router
	handler = middleware.LoggingMiddleware(logger, handler)
	handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)
	handler = middleware.Recover(logger, handler)

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        handler,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}
