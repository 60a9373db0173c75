package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/careercompass/backend/auth"
	"github.com/careercompass/backend/config"
	_ "github.com/careercompass/backend/docs"
	"github.com/careercompass/backend/gemini"
	"github.com/careercompass/backend/handlers"
	"github.com/careercompass/backend/jobsearch"
	"github.com/careercompass/backend/storage"
)

// @title CareerCompass API
// @version 1.0
// @description AI-powered career advice backend with resume analysis, role recommendations, interview prep, and live job matching.

// @contact.name API Support

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load .env file if present (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// Select the profile/user store backend
	var store storage.Store
	switch cfg.StorageBackend {
	case "firestore":
		log.Println("Initializing Firestore store...")
		firestoreStore, err := storage.NewFirestoreStore(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to initialize Firestore store: %v", err)
		}
		defer firestoreStore.Close()
		store = firestoreStore
		log.Println("Firestore store initialized successfully")
	default:
		log.Println("Using in-memory store")
		store = storage.NewMemoryStore()
	}

	// Resume archiving is optional; without a bucket uploads still work,
	// only the original file is not kept.
	var archiver handlers.ResumeArchiver
	if cfg.ResumeBucketName != "" {
		log.Println("Initializing Cloud Storage resume archive...")
		archive, err := storage.NewResumeArchive(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to initialize resume archive: %v", err)
		}
		defer archive.Close()
		archiver = archive
		log.Println("Resume archive initialized successfully")
	}

	log.Println("Initializing Gemini client...")
	geminiClient, err := gemini.NewClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Gemini client: %v", err)
	}
	defer geminiClient.Close()
	log.Println("Gemini client initialized successfully")

	jobClient := jobsearch.NewClient(cfg)
	jwtService := auth.NewJWTService(cfg)

	// Create handlers
	profileHandler := handlers.NewProfileHandler(store, geminiClient, archiver, cfg)
	insightsHandler := handlers.NewInsightsHandler(store, geminiClient)
	jobsHandler := handlers.NewJobsHandler(store, jobClient)
	sessionHandler := handlers.NewSessionHandler(jwtService)
	authHandler := handlers.NewAuthHandler(store, jwtService)

	// Create Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	// Configure CORS for the web frontend
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", handlers.HealthCheck)

	api := router.Group("/api")
	api.Use(auth.OptionalAuthMiddleware(jwtService))
	{
		api.POST("/init-session", sessionHandler.InitSession)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		api.POST("/career-profile", profileHandler.UploadProfile)
		api.GET("/career-profile/:userId", profileHandler.GetProfile)

		api.GET("/career-recommendations/:userId", insightsHandler.Recommendations)
		api.GET("/interview-prep/:userId", insightsHandler.InterviewPrep)
		api.GET("/resume-feedback/:userId", insightsHandler.ResumeFeedback)
		api.GET("/linkedin-events/:userId", insightsHandler.LinkedInEvents)
		api.GET("/portfolio-suggestions/:userId", insightsHandler.PortfolioSuggestions)

		api.GET("/job-postings/:userId", jobsHandler.JobPostings)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
