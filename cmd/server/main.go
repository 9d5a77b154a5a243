package main

import (
	"context"
	"log"

	"github.com/anonto42/travel-plans/backend/internal/repositories"
	"github.com/anonto42/travel-plans/backend/internal/router"
	"github.com/anonto42/travel-plans/backend/internal/session"
	"github.com/anonto42/travel-plans/backend/internal/storage"
	"github.com/anonto42/travel-plans/backend/pkg/config"
	"github.com/anonto42/travel-plans/backend/pkg/firebase"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	if err := repositories.AutoMigrate(db.SQL); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("Auto-migrations completed for all models.")

	ctx := context.Background()
	var firebaseApp *firebase.App
	if cfg.NeedsFirebase() {
		firebaseApp, err = firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
	}

	// Identity
	var sessions session.Provider
	switch cfg.AuthProvider {
	case config.AuthFirebase:
		sessions = session.NewFirebaseProvider(firebaseApp.AuthClient)
	default:
		sessions = session.NewJWTProvider(cfg.JWTSecret)
	}
	log.Printf("Using %s sessions.", cfg.AuthProvider)

	// Thumbnail storage
	var store storage.Store
	switch cfg.StorageDriver {
	case config.StorageFirebase:
		bucket, err := firebaseApp.Bucket(ctx, cfg.ThumbnailBucket)
		if err != nil {
			log.Fatalf("Failed to open thumbnail bucket: %v", err)
		}
		store = storage.NewBucketStore(bucket, cfg.ThumbnailBucket)
	default:
		store, err = storage.NewGridFSStore(db.Mongo.Database(cfg.MongoDatabase), cfg.ThumbnailBucket, cfg.PublicBaseURL)
		if err != nil {
			log.Fatalf("Failed to open GridFS bucket: %v", err)
		}
	}
	log.Printf("Using %s thumbnail storage.", cfg.StorageDriver)

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	config.SetupMiddleware(e, cfg)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.SQL, sessions, store)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
