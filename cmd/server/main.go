package main

// @title           E-Vote Service API
// @version         1.0
// @description     A RESTful API service for organization elections
// @host            localhost:8080
// @BasePath        /api/v1
// @schemes         http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"evote-service/configs"
	"evote-service/internal/adapters/database"
	"evote-service/internal/adapters/kafka"
	"evote-service/internal/server"
	"evote-service/internal/server/handlers"
	"evote-service/internal/server/repository"
	"evote-service/internal/server/service"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := configs.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	slog.Info("Starting e-vote server")

	// Initialize MySQL connection
	db, err := database.NewMySQLDB(cfg.Database.User, cfg.Database.Password, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	if err != nil {
		slog.Error("Failed to connect to MySQL", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Candidate photos are optional; without MinIO the service runs and
	// image uploads surface as warnings.
	var images database.ImageStore
	if cfg.MinIO.Endpoint != "" {
		minioClient, err := database.NewMinIOClient(cfg.MinIO.Endpoint, cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, cfg.MinIO.Bucket, cfg.MinIO.UseSSL)
		if err != nil {
			slog.Error("Failed to connect to MinIO", "error", err)
			os.Exit(1)
		}
		images = minioClient
	}

	// Audit events stream to Kafka when brokers are configured
	var publisher kafka.Publisher = kafka.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := kafka.InitKafkaProducer(cfg.Kafka.Brokers)
		if err != nil {
			slog.Error("Failed to connect to Kafka", "error", err)
			os.Exit(1)
		}
		publisher = kafka.NewKafkaPublisher(producer, cfg.Kafka.Topic)
	}
	defer publisher.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	organizationRepo := repository.NewOrganizationRepository(db)
	electionRepo := repository.NewElectionRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	positionRepo := repository.NewPositionRepository(db)
	candidateRepo := repository.NewCandidateRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	tokenRepo := repository.NewVoterTokenRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Services
	auditService := service.NewAuditService(auditRepo, publisher)
	authz := service.NewAuthorizer(roleRepo)
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expire)
	electionService := service.NewElectionService(electionRepo, organizationRepo, roleRepo, notificationRepo, auditService)
	roleService := service.NewRoleService(roleRepo, electionRepo, auditService)
	positionService := service.NewPositionService(positionRepo, electionRepo, authz)
	candidateService := service.NewCandidateService(candidateRepo, positionRepo, images, authz)
	tokenService := service.NewVoterTokenService(tokenRepo, electionRepo, auditService, authz)
	voteService := service.NewVoteService(voteRepo, electionRepo, roleRepo, positionRepo, candidateRepo, auditService)
	resultsService := service.NewResultsService(voteRepo, electionRepo, roleRepo, positionRepo, candidateRepo, auditService)
	notificationService := service.NewNotificationService(notificationRepo)

	// Router
	router := gin.Default()
	server.SetupRoutes(router, server.Handlers{
		Auth:         handlers.NewAuthHandler(authService, tokenService),
		Election:     handlers.NewElectionHandler(electionService, roleService),
		Role:         handlers.NewRoleHandler(roleService),
		Position:     handlers.NewPositionHandler(positionService),
		Candidate:    handlers.NewCandidateHandler(candidateService),
		VoterToken:   handlers.NewVoterTokenHandler(tokenService),
		Vote:         handlers.NewVoteHandler(voteService),
		Results:      handlers.NewResultsHandler(resultsService, auditService, authz),
		Notification: handlers.NewNotificationHandler(notificationService),
	}, cfg.JWT.Secret)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	slog.Info("Server stopped")
}
