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

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/hireloop/jobagent/api"
	"github.com/hireloop/jobagent/config"
	"github.com/hireloop/jobagent/llm"
	"github.com/hireloop/jobagent/store"
	"github.com/hireloop/jobagent/submit"
	"github.com/hireloop/jobagent/workflow"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log.Printf("Starting job-post agent...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Store backend: %s", cfg.StoreBackend)
	log.Printf("LLM URL: %s", cfg.LLMURL)

	// Initialize backing medium
	medium, err := newMedium(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize backing medium: %v", err)
	}

	// Initialize session store
	sessionStore := store.New(medium, cfg.IdleTimeout)
	defer sessionStore.Close()

	// Initialize collaborators
	languageModel := llm.New(cfg.LLMURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTimeout)
	submitter := submit.NewClient(cfg.SubmitURL, cfg.SubmitTimeout)

	// Initialize workflow service
	wf := workflow.New(sessionStore, languageModel, submitter, cfg)

	// Start background expiry sweeper
	sweeperCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	go sessionStore.RunExpirySweeper(sweeperCtx, cfg.SweepInterval)

	// Initialize handlers
	h := api.NewHandler(wf, sessionStore)

	// Create Echo server
	server := echo.New()
	server.HideBanner = true

	// Middleware
	server.Use(middleware.Logger())
	server.Use(middleware.Recover())
	server.Use(middleware.CORS())

	// Register routes
	h.RegisterRoutes(server)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("API started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down job-post agent...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("Job-post agent stopped")
}

// newMedium selects the backing medium from configuration.
func newMedium(cfg *config.Config) (store.Medium, error) {
	switch cfg.StoreBackend {
	case config.BackendSQLite:
		return store.NewSQLiteMedium(cfg.DatabaseURL)
	case config.BackendFile:
		return store.NewFileMedium(cfg.SessionDir)
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return store.NewRedisMedium(client, cfg.IdleTimeout), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
