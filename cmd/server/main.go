package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"dealerpulse/internal/cache"
	"dealerpulse/internal/catalog"
	"dealerpulse/internal/config"
	"dealerpulse/internal/repository"
	"dealerpulse/internal/service"
	"dealerpulse/internal/transport/rest"
	"dealerpulse/internal/transport/ws"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	cfg := config.Load()
	engineCfg := config.EngineConfigFromEnv()
	log.Printf("Engine config: autoActions=%t weak<=%d critical<=%d maxActions=%d",
		engineCfg.EnableAutoActions, engineCfg.WeakScoreThreshold,
		engineCfg.CriticalScoreThreshold, engineCfg.MaxActions)

	ctx := context.Background()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Static catalog
	cat := catalog.NewDefault()
	if err := cat.Validate(); err != nil {
		log.Fatal("Invalid catalog:", err)
	}

	// Initialize repositories
	assessmentRepo := repository.NewAssessmentRepo(db)
	actionRepo := repository.NewActionRepo(db)
	if err := actionRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal("Failed to create action indexes:", err)
	}

	// Initialize caches
	generationLock := cache.NewGenerationLock(rdb)
	scorecardCache := cache.NewScorecardCache(rdb)

	// Initialize WebSocket hub
	wsHub := ws.NewHub()

	// Initialize services
	scoringSvc := service.NewScoringService(cat.CategoryWeights())
	signalSvc := service.NewSignalService(cat)
	actionSvc := service.NewActionService(cat)
	generationSvc := service.NewGenerationService(actionRepo, generationLock, scorecardCache, signalSvc, actionSvc, cat, engineCfg)
	assessmentSvc := service.NewAssessmentService(assessmentRepo, scoringSvc, generationSvc)
	reportSvc := service.NewReportService(assessmentRepo, actionRepo, scorecardCache)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	generationSvc.SetBroadcaster(wsHub)
	assessmentSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AssessmentService: assessmentSvc,
		ReportService:     reportSvc,
		ActionRepo:        actionRepo,
		WSHub:             wsHub,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/assessments")
		log.Println("  GET  /v1/assessments/{id}")
		log.Println("  GET  /v1/assessments/{id}/scorecard")
		log.Println("  GET  /v1/assessments/{id}/scorecard/export")
		log.Println("  GET  /v1/assessments/{id}/actions")
		log.Println("  POST /v1/assessments/{id}/actions/generate")
		log.Println("  GET  /v1/organizations/{orgId}/assessments")
		log.Println("  WS   /v1/ws/orgs/{orgId}/dashboard")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
