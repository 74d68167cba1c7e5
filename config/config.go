package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string
	LogLevel    string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// LLM provider configuration
	LLMProvider   string
	LLMModel      string
	LLMAPIKey     string
	LLMBaseURL    string
	LLMTimeout    time.Duration
	LLMMaxRetries uint

	RateLimitPerHour int
	MealDBURL        string

	// Reply archive
	S3BucketName string
	AWSRegion    string
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	// A local .env only matters outside CI and production.
	if env == Development || env == Test {
		_ = godotenv.Load()
	}

	cfg, err := load(source{env: env})
	if err != nil {
		return nil, fmt.Errorf("failed to load %s configuration: %w", env, err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func load(src source) (*Config, error) {
	cfg := &Config{
		Environment: src.env,
		ServerPort:  src.get("SERVER_PORT", "8080"),
		ServerHost:  src.get("SERVER_HOST", "0.0.0.0"),
		LogLevel:    src.get("LOG_LEVEL", "info"),

		DBDriver:   strings.ToLower(src.get("DB_DRIVER", "postgres")),
		DBHost:     src.get("DB_HOST", "localhost"),
		DBPort:     src.get("DB_PORT", "5432"),
		DBUser:     src.secret("DB_USER", "db_user"),
		DBPassword: src.secret("DB_PASSWORD", "db_password"),
		DBName:     src.get("DB_NAME", "sousie"),
		DBSSLMode:  src.get("DB_SSL_MODE", "disable"),
		SQLitePath: src.get("SQLITE_PATH", "sousie.db"),

		RedisHost:     src.get("REDIS_HOST", "localhost"),
		RedisPort:     src.get("REDIS_PORT", "6379"),
		RedisPassword: src.secret("REDIS_PASSWORD", "redis_password"),
		RedisURL:      src.secret("REDIS_URL", "redis_url"),

		JWTSecret: src.secret("JWT_SECRET", "jwt_secret"),

		LLMProvider: strings.ToLower(src.get("LLM_PROVIDER", "groq")),
		LLMModel:    src.get("LLM_MODEL", ""),
		LLMAPIKey:   src.secret("LLM_API_KEY", "llm_api_key"),
		LLMBaseURL:  src.get("LLM_BASE_URL", ""),

		MealDBURL:    src.get("MEALDB_URL", "https://www.themealdb.com/api/json/v1/1"),
		S3BucketName: src.get("S3_BUCKET_NAME", ""),
		AWSRegion:    src.get("AWS_REGION", ""),
	}

	for _, origin := range strings.Split(src.get("CORS_ORIGINS", "http://localhost:5173"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}

	var err error
	if cfg.RedisDB, err = strconv.Atoi(src.get("REDIS_DB", "0")); err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	if cfg.LLMTimeout, err = time.ParseDuration(src.get("LLM_TIMEOUT", "60s")); err != nil {
		return nil, fmt.Errorf("invalid LLM_TIMEOUT: %w", err)
	}
	retries, err := strconv.ParseUint(src.get("LLM_MAX_RETRIES", "3"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid LLM_MAX_RETRIES: %w", err)
	}
	cfg.LLMMaxRetries = uint(retries)
	if cfg.RateLimitPerHour, err = strconv.Atoi(src.get("RATE_LIMIT_PER_HOUR", "30")); err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_PER_HOUR: %w", err)
	}

	return cfg, nil
}

// DSN returns the lib/pq connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// RedisAddr returns host:port for the Redis server
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// source resolves values for one environment. CI reads only environment
// variables; every other environment prefers Docker secrets for sensitive
// values.
type source struct {
	env Environment
}

func (s source) get(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func (s source) secret(key, name string) string {
	if s.env != CI {
		if v := readSecret(name); v != "" {
			return v
		}
	}
	return s.get(key, "")
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
