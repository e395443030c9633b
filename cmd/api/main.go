package main

import (
	"fmt"
	"net/http"
	"os"

	"secmaster/internal/config"
	"secmaster/internal/database"
	"secmaster/internal/figi"
	"secmaster/internal/handlers"
	"secmaster/internal/logger"
	"secmaster/internal/middleware"
	"secmaster/internal/services"
	"secmaster/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "secmaster/internal/docs" // Import swagger docs
)

// @title           Security Master API
// @version         1.0
// @description     Golden record service for security reference data: canonical identity, business-rule validation, append-only history with lineage, and data quality reporting.

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	goldenRecordService := services.NewGoldenRecordService(db)
	figiClient := figi.NewClientWithBaseURL(
		&http.Client{Timeout: appConfig.LookupTimeout},
		appConfig.OpenFIGIBaseURL,
		appConfig.OpenFIGIAPIKey,
	)
	lookupService := services.NewLookupService(figiClient)

	// Initialize handlers
	goldenRecordHandler := handlers.NewGoldenRecordHandler(goldenRecordService)
	lookupHandler := handlers.NewLookupHandler(lookupService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Actor, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")
	v1.Use(middleware.Actor())

	// Security registry routes
	securities := v1.Group("/securities")
	securities.POST("", goldenRecordHandler.CreateSecurity)
	securities.GET("", goldenRecordHandler.ListSecurities)
	securities.GET("/by-isin", goldenRecordHandler.FindByISIN)
	securities.GET("/:gsid", goldenRecordHandler.GetSecurity)
	securities.PUT("/:gsid", goldenRecordHandler.UpdateSecurity)
	securities.GET("/:gsid/lineage", goldenRecordHandler.GetLineage)

	// Audit and quality routes
	v1.GET("/history", goldenRecordHandler.ListHistory)
	v1.GET("/quality", goldenRecordHandler.GetQuality)

	// External identifier lookup
	v1.GET("/lookup/:identifier", lookupHandler.LookupIdentifier)

	log.Infof("Starting Security Master backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
