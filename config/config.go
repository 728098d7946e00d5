package config

import (
	"log"
	"os"

	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"
)

// JWT_KEY holds the HMAC signing key so controllers/middleware can reach it.
var JWT_KEY []byte

// JWTClaims is the payload stored inside an access token.
type JWTClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// AppConfig holds environment driven configuration values.
type AppConfig struct {
	AppPort     string
	DatabaseURL string
	GinMode     string
	FaceMetric  string // "cosine" or "euclidean"
	LogLevel    string
	LogPath     string
}

var cfg AppConfig
var loaded bool

// Load reads configuration from .env (local development) or the process
// environment (production). Must be called once during boot; it fatals when
// secrets are missing so the service never starts half-configured.
func Load() AppConfig {
	if loaded {
		return cfg
	}

	// .env is only present locally. In production the platform injects the
	// variables directly, so a missing file is not an error.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	key := os.Getenv("JWT_KEY")
	if key == "" {
		log.Fatal("FATAL: JWT_KEY is not set")
	}
	JWT_KEY = []byte(key)

	cfg = AppConfig{
		AppPort:     getEnv("APP_PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		GinMode:     getEnv("GIN_MODE", "release"),
		FaceMetric:  getEnv("FACE_METRIC", "cosine"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogPath:     getEnv("LOG_PATH", ""),
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("FATAL: DATABASE_URL is not set")
	}

	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
