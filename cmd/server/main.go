// @title           Lumina Studio Backend API
// @version         1.0.0
// @description     Backend API for the Lumina interior redesign studio. Orchestrates Gemini-driven layout generation, per-variant shopping and budget enrichment, depth maps, measurements, and durable project snapshots.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"log"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"lumina-backend/docs"
	"lumina-backend/internal/config"
	"lumina-backend/internal/database"
	"lumina-backend/internal/gemini"
	"lumina-backend/internal/handlers"
	"lumina-backend/internal/middleware"
	"lumina-backend/internal/session"
	"lumina-backend/internal/store"
	"lumina-backend/internal/supabase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Update Swagger docs with dynamic base URL
	if cfg.BaseURL != "" {
		baseURL, err := url.Parse(cfg.BaseURL)
		if err == nil {
			docs.SwaggerInfo.Host = baseURL.Host
			if baseURL.Scheme == "https" {
				docs.SwaggerInfo.Schemes = []string{"https", "http"}
			} else {
				docs.SwaggerInfo.Schemes = []string{"http", "https"}
			}
		}
	}

	// Initialize the Gemini client
	geminiClient, err := gemini.NewClient(context.Background(), cfg.GeminiAPIKey, gemini.Options{
		TextModel:  cfg.GeminiTextModel,
		ImageModel: cfg.GeminiImageModel,
		MaxRetries: cfg.GeminiMaxRetries,
	})
	if err != nil {
		log.Fatalf("Failed to initialize Gemini client: %v", err)
	}

	// Choose the repository: Postgres when configured, in-memory otherwise.
	var repo store.Repository
	if cfg.DatabaseURL != "" {
		migrator, err := database.NewMigrator(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize migrator: %v", err)
		}
		if err := migrator.Run(); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		migrator.Close()

		pg, err := store.NewPostgresRepository(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer pg.Close()
		repo = pg
	} else {
		log.Println("Warning: DATABASE_URL not set, using in-memory storage. State is lost on restart.")
		repo = store.NewMemoryRepository()
	}

	// Session manager with optional Supabase integrations
	sessions := session.NewManager(repo, geminiClient)
	if cfg.SupabaseEnabled() {
		supabaseClient, err := supabase.NewClient(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize Supabase client: %v", err)
		}
		sessions.WithEvents(supabase.NewRealtimeClient(supabaseClient.Supabase))

		storageKey := cfg.SupabaseServiceRoleKey
		if storageKey == "" {
			storageKey = cfg.SupabasePublishableKey
		}
		assets, err := supabase.NewAssetStorage(cfg.SupabaseURL, storageKey, cfg.SupabaseStorageBucket)
		if err != nil {
			log.Fatalf("Failed to initialize asset storage: %v", err)
		}
		sessions.WithAssets(assets)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(repo, cfg)
	sessionHandler := handlers.NewSessionHandler(sessions)
	projectsHandler := handlers.NewProjectsHandler(repo, sessions)
	profileHandler := handlers.NewProfileHandler(repo, sessions)

	// Setup router
	router := gin.Default()

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check (no auth)
	router.GET("/health", handlers.HealthHandler)

	// Auth routes (no auth)
	router.POST("/auth/register", authHandler.Register)
	router.POST("/auth/login", authHandler.Login)

	// API routes
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))

	// Session routes
	api.GET("/session", sessionHandler.GetSession)
	api.POST("/session/source", sessionHandler.SetSource)
	api.PUT("/session/settings", sessionHandler.UpdateSettings)
	api.POST("/session/mask", sessionHandler.SetMask)
	api.POST("/session/generate", sessionHandler.Generate)
	api.POST("/session/layouts/:index/select", sessionHandler.SelectLayout)
	api.POST("/session/suggestions", sessionHandler.Suggestions)
	api.POST("/session/suggestions/:suggestion_id/apply", sessionHandler.ApplySuggestion)
	api.POST("/session/results/:result_id/depth", sessionHandler.GenerateDepth)
	api.POST("/session/measurements", sessionHandler.AddMeasurement)
	api.POST("/session/chain", sessionHandler.ChainDesign)
	api.POST("/session/restore/:result_id", sessionHandler.Restore)
	api.POST("/auth/logout", sessionHandler.Logout)

	// History
	api.GET("/history", sessionHandler.GetHistory)

	// Projects
	api.GET("/projects", projectsHandler.ListProjects)
	api.POST("/projects", projectsHandler.SaveProject)

	// Profile and presets
	api.GET("/profile", profileHandler.GetProfile)
	api.PUT("/profile", profileHandler.UpdateProfile)
	api.DELETE("/profile", profileHandler.DeleteProfile)
	api.POST("/profile/presets", profileHandler.SavePreset)
	api.POST("/profile/presets/:preset_id/apply", profileHandler.ApplyPreset)

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
