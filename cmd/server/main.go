package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alimgiray/gitmentor/internal/handlers"
	"github.com/alimgiray/gitmentor/internal/repositories"
	"github.com/alimgiray/gitmentor/internal/services"
	"github.com/alimgiray/gitmentor/pkg/config"
	"github.com/alimgiray/gitmentor/pkg/database"
	"github.com/alimgiray/gitmentor/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		logger.Get().Fatalf("Failed to load config: %v", err)
	}
	cfg := config.AppConfig

	logger.Init(cfg.Log.Level, os.Stdout)
	log := logger.Get()
	gin.SetMode(cfg.Server.Mode)

	// Initialize database
	if err := database.Init(cfg.Database.Path, cfg.Database.MigrationsDir); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Initialize dependencies
	userRepo := repositories.NewUserRepository(database.DB)
	userService := services.NewUserService(userRepo)

	githubClient, err := services.NewGitHubClient(cfg.GitHub.APIURL)
	if err != nil {
		log.Fatalf("Failed to create GitHub client: %v", err)
	}
	githubService := services.NewGitHubService(githubClient)

	inferenceClient, err := services.NewOpenAIInferenceClient(services.InferenceConfig{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
	})
	if err != nil {
		log.Fatalf("Failed to create inference client: %v", err)
	}

	cache := services.NewMemoryInferenceCache(time.Duration(cfg.Cache.TTLMinutes)*time.Minute, nil)
	collector := services.NewProfileCollector(githubClient, nil)
	actionService := services.NewActionService(collector, inferenceClient, cache)
	profileService := services.NewProfileService(collector, services.NewMemoryProfileStore())

	// Initialize router
	router := gin.Default()
	handlers.SetupRoutes(router, &handlers.Handlers{
		Home:     handlers.NewHomeHandler(),
		Auth:     handlers.NewAuthHandler(userService, githubService),
		Action:   handlers.NewActionHandler(actionService),
		Profile:  handlers.NewProfileHandler(profileService, services.NewProfileExportService()),
		NotFound: handlers.NewNotFoundHandler(),
	}, userService)

	// Setup server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Infof("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infof("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Warnf("Server shutdown: %v", err)
	}
	log.Infof("Server stopped")
}
