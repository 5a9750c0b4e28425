package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studyaid-backend/internal/config"
	"studyaid-backend/internal/database"
	"studyaid-backend/internal/handlers"
	"studyaid-backend/internal/models"
	"studyaid-backend/internal/repository"
	"studyaid-backend/internal/router"
	"studyaid-backend/internal/services"
	"studyaid-backend/internal/websocket"
)

func main() {
	log.Println("🚀 Starting StudyAid Backend...")
	ctx := context.Background()

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Optional PostgreSQL run log ────
	var runRepo *repository.GenerationRunRepo
	var runs services.RunRecorder
	if cfg.DatabaseURL != "" {
		pool, err := database.NewPostgresPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("✗ PostgreSQL connection failed: %v", err)
		}
		defer pool.Close()
		log.Println("✓ PostgreSQL connected")

		if err := database.RunMigrations(ctx, pool, cfg.MigrationsDir); err != nil {
			log.Fatalf("✗ Database migration failed: %v", err)
		}
		log.Println("✓ Database migrations applied")

		runRepo = repository.NewGenerationRunRepo(pool)
		runs = runRepo
	} else {
		log.Println("– DATABASE_URL not set, run log disabled")
	}

	// ──── Step 3: Optional Redis for progress fan-out ────
	var redisClients *database.RedisClients
	if cfg.RedisURL != "" {
		var err error
		redisClients, err = database.NewRedisClients(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("✗ Redis connection failed: %v", err)
		}
		defer redisClients.Close()
		log.Println("✓ Redis connected")
	}

	// ──── Step 4: WebSocket Hub and progress publisher ────
	var wsHub *websocket.Hub
	var publisher services.ProgressPublisher
	if redisClients != nil {
		wsHub = websocket.NewHub(redisClients.Subscriber)
		publisher = services.NewRedisProgressPublisher(redisClients.Publisher)
	} else {
		wsHub = websocket.NewHub(nil)
		publisher = wsHub
	}
	log.Println("✓ WebSocket hub started")

	// ──── Step 5: Generation backend ────
	backend, err := services.NewBackend(ctx, cfg.BackendOptions())
	if err != nil {
		log.Fatalf("✗ Backend initialization failed: %v", err)
	}
	defer backend.Close()

	state := backend.Prober.Probe(ctx)
	log.Printf("✓ %s backend initialized (readiness: %s)", backend.Dispatcher.Name(), state.Readiness())
	if state.Readiness() == models.ReadinessCritical {
		log.Printf("⚠️  %s", state.Message())
	}

	generationService := services.NewGenerationService(
		backend.Dispatcher,
		services.NewFileExtractService(),
		publisher,
		runs,
	)

	// ──── Initialize Handlers ────
	generationHandler := handlers.NewGenerationHandler(generationService, cfg.MaxUploadBytes())
	capabilityHandler := handlers.NewCapabilityHandler(backend.Prober)
	runHandler := handlers.NewRunHandler(runRepo)

	// ──── Step 6: Start HTTP Server ────
	r := router.New(
		generationHandler,
		capabilityHandler,
		runHandler,
		wsHub,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ StudyAid Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/api/v1/ws?session=<uuid>", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
