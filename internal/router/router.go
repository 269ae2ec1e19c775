package router

import (
	"log"

	"github.com/freetly/backend/internal/handlers"
	"github.com/freetly/backend/internal/middleware"
	"github.com/freetly/backend/internal/models"
	"github.com/freetly/backend/internal/repositories"
	"github.com/freetly/backend/internal/services"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(middleware.PrometheusMiddleware())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, jwtSecret string) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Reaction{},
		&models.Tag{},
		&models.Expansion{},
		&models.ExpansionView{},
		&models.Preference{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check and metrics - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	freetRepo := repositories.NewMongoFreetRepository(mgClient.Database("freetly"))
	reactionRepo := repositories.NewPostgresReactionRepository(pgdb)
	tagRepo := repositories.NewPostgresTagRepository(pgdb)
	expansionRepo := repositories.NewPostgresExpansionRepository(pgdb)
	preferenceRepo := repositories.NewPostgresPreferenceRepository(pgdb)

	// --- Services ---
	cascade := services.NewCascadeService(reactionRepo, tagRepo, expansionRepo, preferenceRepo, freetRepo, userRepo)
	curator := services.NewFeedCurator(preferenceRepo, tagRepo, freetRepo)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, jwtSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(jwtSecret))

	userHandler := handlers.NewUserHandler(userRepo, cascade)
	userHandler.RegisterProfileRoutes(api)

	freetHandler := handlers.NewFreetHandler(freetRepo, userRepo, cascade)
	freetHandler.RegisterFreetRoutes(api)

	reactionHandler := handlers.NewReactionHandler(reactionRepo, freetRepo, userRepo)
	reactionHandler.RegisterReactionRoutes(api)

	tagHandler := handlers.NewTagHandler(tagRepo, freetRepo, userRepo)
	tagHandler.RegisterTagRoutes(api)

	expansionHandler := handlers.NewExpansionHandler(expansionRepo, freetRepo, userRepo)
	expansionHandler.RegisterExpansionRoutes(api)

	preferenceHandler := handlers.NewPreferenceHandler(preferenceRepo)
	preferenceHandler.RegisterPreferenceRoutes(api)

	feedHandler := handlers.NewFeedHandler(curator, userRepo)
	feedHandler.RegisterFeedRoutes(api)

	log.Println("API routes configured.")
}
