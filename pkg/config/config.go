package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	AuthJWT      = "jwt"
	AuthFirebase = "firebase"

	StorageGridFS   = "gridfs"
	StorageFirebase = "firebase"
)

type Config struct {
	Port                    string
	Env                     string
	LogLevel                string
	DatabaseDriver          string
	DatabaseURL             string
	AuthProvider            string
	JWTSecret               string
	FirebaseCredentialsPath string
	StorageDriver           string
	MongoURI                string
	MongoDatabase           string
	ThumbnailBucket         string
	PublicBaseURL           string
}

// Load reads .env when present, then the environment
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	cfg := &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		DatabaseDriver:          getEnv("DATABASE_DRIVER", DriverPostgres),
		DatabaseURL:             getEnv("DATABASE_URL", ""),
		AuthProvider:            getEnv("AUTH_PROVIDER", AuthJWT),
		JWTSecret:               getEnv("JWT_SECRET", ""),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", "./firebase_credentials.json"),
		StorageDriver:           getEnv("STORAGE_DRIVER", StorageGridFS),
		MongoURI:                getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:           getEnv("MONGO_DATABASE", "travelplans"),
		ThumbnailBucket:         getEnv("THUMBNAIL_BUCKET", "plan-thumbnails"),
		PublicBaseURL:           getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
	}
	if cfg.DatabaseDriver == DriverSQLite && cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "plans.db"
	}
	return cfg
}

// Validate reports settings that cannot work together
func (c *Config) Validate() error {
	var errs []error

	switch c.DatabaseDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL must be set for the postgres driver"))
		}
	case DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("unknown DATABASE_DRIVER %q", c.DatabaseDriver))
	}

	switch c.AuthProvider {
	case AuthJWT:
		if c.JWTSecret == "" {
			errs = append(errs, errors.New("JWT_SECRET must be set for the jwt auth provider"))
		}
	case AuthFirebase:
	default:
		errs = append(errs, fmt.Errorf("unknown AUTH_PROVIDER %q", c.AuthProvider))
	}

	switch c.StorageDriver {
	case StorageGridFS:
		if c.MongoURI == "" {
			errs = append(errs, errors.New("MONGO_URI must be set for the gridfs storage driver"))
		}
	case StorageFirebase:
		if c.ThumbnailBucket == "" {
			errs = append(errs, errors.New("THUMBNAIL_BUCKET must be set for the firebase storage driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver))
	}

	return errors.Join(errs...)
}

// NeedsFirebase reports whether any component talks to Firebase
func (c *Config) NeedsFirebase() bool {
	return c.AuthProvider == AuthFirebase || c.StorageDriver == StorageFirebase
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
