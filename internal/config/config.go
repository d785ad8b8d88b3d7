package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the service.
// The values are loaded from environment variables.
type AppConfig struct {
	Port               string
	DatabasePath       string
	LogLevel           string
	MaxUploadSizeBytes int64

	// External extraction tool settings
	PdftotextPath  string
	ExtractTimeout time.Duration
}

// Cfg is the global configuration instance, populated by LoadConfig.
var Cfg *AppConfig

// LoadConfig loads configuration from environment variables or a .env file.
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		if os.IsNotExist(err) {
			log.Println("Info: no .env file found, relying on OS environment variables.")
		} else {
			log.Printf("Warning: error loading .env file: %v. Relying on OS environment variables.", err)
		}
	}

	Cfg = &AppConfig{
		Port:               getEnv("PORT", "8080"),
		DatabasePath:       getEnv("DATABASE_PATH", "statements.db"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		MaxUploadSizeBytes: getEnvInt64("MAX_UPLOAD_SIZE_BYTES", 32<<20),
		PdftotextPath:      getEnv("PDFTOTEXT_PATH", "pdftotext"),
		ExtractTimeout:     getEnvDuration("EXTRACT_TIMEOUT", 30*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("Warning: invalid value %q for %s, using default %d", v, key, fallback)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Warning: invalid value %q for %s, using default %s", v, key, fallback)
		return fallback
	}
	return d
}
