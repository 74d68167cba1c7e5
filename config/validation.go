package config

import (
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors collects every problem found in one pass
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "\n")
}

var (
	llmProviders = map[string]bool{"groq": true, "openai": true, "deepseek": true, "gemini": true}
	dbDrivers    = map[string]bool{"postgres": true, "sqlite": true}
)

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors
	require := func(field, value, msg string) {
		if value == "" {
			errs = append(errs, ValidationError{Field: field, Message: msg})
		}
	}

	require("JWT_SECRET", cfg.JWTSecret, "jwt_secret is required")
	require("LLM_API_KEY", cfg.LLMAPIKey, "llm_api_key is required")

	if !llmProviders[cfg.LLMProvider] {
		errs = append(errs, ValidationError{Field: "LLM_PROVIDER", Message: "must be one of groq, openai, deepseek, gemini"})
	}
	if !dbDrivers[cfg.DBDriver] {
		errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: "must be postgres or sqlite"})
	}

	if cfg.DBDriver == "postgres" {
		require("DB_HOST", cfg.DBHost, "required for postgres")
		require("DB_NAME", cfg.DBName, "required for postgres")
		require("DB_USER", cfg.DBUser, "db_user is required for postgres")
		require("DB_PASSWORD", cfg.DBPassword, "db_password is required for postgres")
	}

	if cfg.Environment.Deployed() {
		if cfg.DBDriver == "sqlite" {
			errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: "sqlite is only allowed in development and test"})
		}
		if cfg.RedisURL == "" {
			require("REDIS_PASSWORD", cfg.RedisPassword, "redis_password is required")
		}
	}

	if cfg.RateLimitPerHour <= 0 {
		errs = append(errs, ValidationError{Field: "RATE_LIMIT_PER_HOUR", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
