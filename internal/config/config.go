package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DatabaseConfig holds PostgreSQL settings for the classification audit log.
// Auditing is disabled when Host is empty.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// Enabled reports whether an audit database was configured.
func (c DatabaseConfig) Enabled() bool {
	return c.Host != ""
}

// InferenceConfig holds settings for the remote inference provider.
type InferenceConfig struct {
	Token             string
	ZeroShotURL       string
	GenerationURL     string
	ZeroShotTimeout   time.Duration
	GenerationTimeout time.Duration
}

// AppConfig is the centralized configuration struct for the application.
// It is populated once from environment variables and passed explicitly to components.
type AppConfig struct {
	Port           string
	MaxUploadBytes int
	AllowedOrigins string
	Location       *time.Location
	Inference      InferenceConfig
	Database       DatabaseConfig
}

const (
	defaultZeroShotURL   = "https://api-inference.huggingface.co/models/MoritzLaurer/DeBERTa-v3-base-mnli-fever-anli"
	defaultGenerationURL = "https://api-inference.huggingface.co/models/google/flan-t5-large"
)

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		Port:           getEnv("PORT", "5000"),
		MaxUploadBytes: getEnvInt("MAX_UPLOAD_BYTES", 10<<20),
		AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		Location:       getEnvLocation("LOG_TIMEZONE", time.UTC),
		Inference: InferenceConfig{
			Token:             strings.TrimSpace(getEnv("HF_API_TOKEN", "")),
			ZeroShotURL:       getEnv("HF_ZERO_SHOT_URL", defaultZeroShotURL),
			GenerationURL:     getEnv("HF_GENERATION_URL", defaultGenerationURL),
			ZeroShotTimeout:   time.Duration(getEnvInt("HF_ZERO_SHOT_TIMEOUT_SEC", 30)) * time.Second,
			GenerationTimeout: time.Duration(getEnvInt("HF_GENERATION_TIMEOUT_SEC", 30)) * time.Second,
		},
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil && i > 0 {
			return i
		}
	}
	return def
}

func getEnvLocation(key string, def *time.Location) *time.Location {
	if v := os.Getenv(key); v != "" {
		loc, err := time.LoadLocation(v)
		if err == nil {
			return loc
		}
	}
	return def
}
