package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "ecodonate-backend/internal/api/http"
	"ecodonate-backend/internal/config"
	"ecodonate-backend/internal/logger"
	"ecodonate-backend/internal/notify"
	"ecodonate-backend/internal/payment"
	"ecodonate-backend/internal/repository"
	"ecodonate-backend/internal/repository/memory"
	"ecodonate-backend/internal/repository/postgres"
	"ecodonate-backend/internal/security"
	"ecodonate-backend/internal/service"
	"ecodonate-backend/internal/storage"

	"github.com/go-redis/redis/v8"
	_ "github.com/lib/pq"
)

// repositories is the subset of a store the services need; both the postgres
// and the in-memory stores provide it
type repositories struct {
	users         repository.UserRepository
	organizations repository.OrganizationRepository
	donations     repository.DonationRepository
	stories       repository.StoryRepository
	beneficiaries repository.BeneficiaryRepository
	inventory     repository.InventoryRepository
}

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	migrate := flag.Bool("migrate", false, "Apply the database schema before serving")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting EcoDonate Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())

	ctx := context.Background()

	// Initialize Database
	var repos repositories
	var health func(ctx context.Context) error
	switch cfg.Database.Driver {
	case "memory":
		logger.Warn("Using in-memory store; data is lost on restart")
		ms := memory.NewStore()
		repos = repositories{
			users:         ms.UserRepository,
			organizations: ms.OrganizationRepository,
			donations:     ms.DonationRepository,
			stories:       ms.StoryRepository,
			beneficiaries: ms.BeneficiaryRepository,
			inventory:     ms.InventoryRepository,
		}
	default:
		logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
		db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		db.SetMaxOpenConns(cfg.Database.MaxOpen)
		db.SetMaxIdleConns(cfg.Database.MaxIdle)
		db.SetConnMaxLifetime(30 * time.Minute)

		// Test database connection
		if err := db.PingContext(ctx); err != nil {
			log.Fatalf("Failed to ping database: %v", err)
		}
		logger.Info("Database connection established")

		if *migrate {
			if err := postgres.Migrate(ctx, db); err != nil {
				log.Fatalf("Failed to migrate database: %v", err)
			}
			logger.Info("Database schema applied")
		}
		ps := postgres.NewStore(db)
		repos = repositories{
			users:         ps.UserRepository,
			organizations: ps.OrganizationRepository,
			donations:     ps.DonationRepository,
			stories:       ps.StoryRepository,
			beneficiaries: ps.BeneficiaryRepository,
			inventory:     ps.InventoryRepository,
		}
		health = ps.DB().PingContext
	}

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.AccessTokenTTL(), cfg.JWT.Issuer)
	revoker := security.NewNoopRevoker()
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		logger.Info("Token revocation enabled", "redis", cfg.Redis.Addr)
		revoker = security.NewRedisRevoker(rdb)
	} else {
		logger.Warn("Redis not configured; logout will not revoke tokens")
	}

	// Initialize Payment processor
	processor := payment.NewStripeClient(cfg.Payment.BaseURL, cfg.Payment.SecretKey, time.Duration(cfg.Payment.TimeoutSeconds)*time.Second)
	verifier := payment.NewWebhookVerifier(cfg.Payment.WebhookSecret, payment.DefaultTolerance)
	if cfg.Payment.WebhookSecret == "" {
		logger.Warn("Payment webhook secret is empty; every webhook will be rejected")
	}

	// Initialize Email
	mailer, err := notify.NewMailer(cfg.Email)
	if err != nil {
		log.Fatalf("Failed to initialize mailer: %v", err)
	}
	notifier := notify.NewNotifier(mailer)
	logger.Info("Email configuration", "provider", cfg.Email.Provider)

	// Initialize Storage Service
	var images storage.Storage
	var uploads *httpapi.UploadHandler
	switch cfg.Storage.Type {
	case "s3":
		logger.Info("Using S3 storage", "bucket", cfg.Storage.Bucket, "region", cfg.Storage.Region)
		s3Storage, err := storage.NewS3Storage(ctx, cfg.Storage.Bucket, cfg.Storage.Region)
		if err != nil {
			log.Fatalf("Failed to initialize S3 storage: %v", err)
		}
		images = s3Storage
	default:
		logger.Info("Using mock storage (local filesystem)", "upload_dir", cfg.Storage.UploadDir)
		mockStorage, err := storage.NewMockStorageService(cfg.GetStorageBaseURL(), cfg.Storage.UploadDir, cfg.GetUploadSigningKey())
		if err != nil {
			log.Fatalf("Failed to initialize mock storage: %v", err)
		}
		images = mockStorage
		uploads = httpapi.NewUploadHandler(mockStorage, cfg.Storage.AllowedTypes, cfg.Storage.MaxFileSize<<20)
	}

	// Initialize Services
	authSvc := service.NewAuthService(repos.users, tokenManager, revoker)
	orgSvc := service.NewOrganizationService(repos.organizations, repos.users, notifier)
	donationSvc := service.NewDonationService(repos.donations, repos.organizations, repos.users, processor, verifier, notifier, cfg.Payment.Currency)
	storySvc := service.NewStoryService(repos.stories, repos.organizations, images, service.ImageUploadConfig{
		AllowedTypes: cfg.Storage.AllowedTypes,
		URLExpiry:    time.Duration(cfg.Storage.URLExpiry) * time.Minute,
	})
	beneficiarySvc := service.NewBeneficiaryService(repos.beneficiaries, repos.inventory, repos.organizations)

	// Initialize HTTP handlers
	router := httpapi.NewRouter(httpapi.Handlers{
		Auth:          httpapi.NewAuthHandler(authSvc),
		Organizations: httpapi.NewOrganizationHandler(orgSvc, donationSvc, storySvc),
		Donations:     httpapi.NewDonationHandler(donationSvc),
		Stories:       httpapi.NewStoryHandler(storySvc),
		Beneficiaries: httpapi.NewBeneficiaryHandler(beneficiarySvc),
		Uploads:       uploads,
		Health:        health,
	}, httpapi.NewAuthMiddleware(tokenManager, revoker), cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	logger.Info("Server stopped")
}
