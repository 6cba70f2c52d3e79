package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"communicare-backend/internal/config"
	"communicare-backend/internal/domain"
	"communicare-backend/internal/jobs"
	"communicare-backend/internal/logger"
	"communicare-backend/internal/repository/postgres"
	"communicare-backend/internal/scheduler"
	"communicare-backend/internal/security"
	"communicare-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting CommuniCare backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Run migrations
	if err := postgres.Migrate(db); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		log.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Database schema is up to date")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize Services
	accountSvc := service.NewAccountService(store.Accounts())

	// Bootstrap the first admin account when the platform is empty
	if err := ensureAdminAccount(context.Background(), accountSvc, store, tokenManager); err != nil {
		logger.Error("Failed to bootstrap admin account", "error", err)
		log.Fatalf("Failed to bootstrap admin account: %v", err)
	}

	// Initialize Scheduler
	jobRunner := jobs.NewJobRunner(store.Loans(), store.HelpRequests(), store.Accounts(), store.Notifications())
	cronScheduler := scheduler.NewScheduler(jobRunner, cfg.Scheduler)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	logger.Info("CommuniCare backend is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
}

// ensureAdminAccount registers an admin from ADMIN_NAME/ADMIN_EMAIL when no
// admin exists yet, and logs a fresh access token for it.
func ensureAdminAccount(ctx context.Context, accountSvc service.AccountService, store *postgres.Store, tokens security.TokenManager) error {
	admins, err := store.Accounts().ListAdmins(ctx)
	if err != nil {
		return err
	}
	if len(admins) > 0 {
		return nil
	}

	name := os.Getenv("ADMIN_NAME")
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		logger.Warn("No admin account exists and ADMIN_EMAIL is not set, skipping bootstrap")
		return nil
	}
	if name == "" {
		name = "Administrator"
	}

	admin, err := accountSvc.Register(ctx, name, email, domain.RoleAdmin)
	if err != nil {
		return err
	}
	token, err := tokens.GenerateAccessToken(admin.ID, admin.Role)
	if err != nil {
		return err
	}
	logger.Info("Bootstrapped admin account", "user_id", admin.ID, "email", email, "access_token", token)
	return nil
}
