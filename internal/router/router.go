package router

import (
	"log"

	"github.com/anonto42/travel-plans/backend/internal/handlers"
	"github.com/anonto42/travel-plans/backend/internal/middleware"
	"github.com/anonto42/travel-plans/backend/internal/repositories"
	"github.com/anonto42/travel-plans/backend/internal/session"
	"github.com/anonto42/travel-plans/backend/internal/storage"
	"github.com/anonto42/travel-plans/backend/validators"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB, sessions session.Provider, store storage.Store) {
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.HTTPErrorHandler

	// Health check - always accessible
	healthHandler := handlers.NewHealthHandler(db)
	e.GET("/health", healthHandler.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	planRepo := repositories.NewPostgresPlanRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	bookmarkRepo := repositories.NewPostgresBookmarkRepository(db)

	// Sessions are optional at the group level; handlers that need one reject with 401.
	api := e.Group("/api")
	api.Use(middleware.LoadSession(sessions))

	// Plan routes
	planHandler := handlers.NewPlanHandler(planRepo, likeRepo, bookmarkRepo, userRepo)
	planHandler.RegisterPlanRoutes(api)
	log.Println("Plan routes configured.")

	// Like routes
	likeHandler := handlers.NewLikeHandler(likeRepo, planRepo)
	likeHandler.RegisterLikeRoutes(api)
	log.Println("Like routes configured.")

	// Bookmark routes
	bookmarkHandler := handlers.NewBookmarkHandler(bookmarkRepo, planRepo)
	bookmarkHandler.RegisterBookmarkRoutes(api)
	log.Println("Bookmark routes configured.")

	// Current user routes
	meHandler := handlers.NewMeHandler(planRepo)
	meHandler.RegisterMeRoutes(api)
	log.Println("Me routes configured.")

	// Upload routes
	uploadHandler := handlers.NewUploadHandler(store)
	uploadHandler.RegisterUploadRoutes(api)
	if uploadHandler.RegisterThumbnailRoutes(e) {
		log.Println("Thumbnail serving routes configured.")
	}
	log.Println("Upload routes configured.")

	log.Println("All routes configured.")
}
