package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"candidate-voting-backend/config"
	_ "candidate-voting-backend/docs" // Important for Swagger
	v1 "candidate-voting-backend/internal/delivery/http/v1"
	"candidate-voting-backend/internal/repository/postgres"
	"candidate-voting-backend/internal/usecase"
	"candidate-voting-backend/pkg/audit"
	"candidate-voting-backend/pkg/auth"
	"candidate-voting-backend/pkg/database"
	"candidate-voting-backend/pkg/logger"
	"candidate-voting-backend/pkg/storage"
	"candidate-voting-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

// @title           Candidate Voting API
// @version         1.0
// @description     Candidate profiles with anonymous like, dislike and view tracking, managed by a single admin.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting candidate voting backend", "port", cfg.Port, "env", cfg.Environment)

	auditLog := audit.Init("candidate-voting-backend", cfg.Environment)
	defer func() { _ = auditLog.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := postgres.CreateSchema(ctx, dbPool); err != nil {
		logger.Log.Error("Failed to apply schema", "error", err)
		os.Exit(1)
	}

	// 4. Setup Image Storage
	imageStore, err := newImageStore(ctx, cfg)
	if err != nil {
		logger.Log.Error("Failed to set up image storage", "error", err)
		os.Exit(1)
	}

	// 5. Setup Repositories
	accountRepo := postgres.NewAccountRepository(dbPool)
	candidateRepo := postgres.NewCandidateRepository(dbPool)

	// 6. Setup UseCases
	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		logger.Log.Error("Failed to set up token manager", "error", err)
		os.Exit(1)
	}
	validate := validation.New()

	authUC := usecase.NewAuthUsecase(accountRepo, tokens, validate, auditLog)
	candidateUC := usecase.NewCandidateUsecase(candidateRepo, validate, auditLog)
	imageUC := usecase.NewImageUsecase(imageStore)
	exportUC := usecase.NewExportUsecase(candidateRepo)
	healthUC := usecase.NewHealthUsecase(dbPool)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:      authUC,
		CandidateUC: candidateUC,
		ImageUC:     imageUC,
		ExportUC:    exportUC,
		HealthUC:    healthUC,
		Tokens:      tokens,
		Audit:       auditLog,
		Config:      cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

func newImageStore(ctx context.Context, cfg *config.Config) (storage.ImageStore, error) {
	if !cfg.UseS3() {
		logger.Log.Info("Storing candidate images on disk", "dir", cfg.UploadDir)
		return storage.NewDiskStore(cfg.UploadDir, "/uploads")
	}

	s3cfg := storage.S3Config{
		Bucket:          cfg.S3Bucket,
		Region:          cfg.S3Region,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretKey,
		Endpoint:        cfg.S3Endpoint,
		PublicBaseURL:   cfg.S3PublicBaseURL,
		KeyPrefix:       "candidates",
	}
	client, err := storage.NewS3Client(ctx, s3cfg)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("Storing candidate images in S3", "bucket", cfg.S3Bucket)
	return storage.NewS3Store(client, s3cfg), nil
}
