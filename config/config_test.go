package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestEnv(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("CI", "")
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("DB_NAME", "sousie")
	t.Setenv("DB_SSL_MODE", "disable")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("LLM_API_KEY", "test-key")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
}

func TestLoadConfig(t *testing.T) {
	t.Run("should read environment variables", func(t *testing.T) {
		setTestEnv(t)
		t.Setenv("LLM_PROVIDER", "Gemini")
		t.Setenv("LLM_TIMEOUT", "15s")
		t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, Test, cfg.Environment)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "postgres", cfg.DBUser)
		assert.Equal(t, "sousie", cfg.DBName)
		assert.Equal(t, "test-secret", cfg.JWTSecret)
		assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
		assert.Equal(t, "gemini", cfg.LLMProvider)
		assert.Equal(t, 15*time.Second, cfg.LLMTimeout)
		assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	})

	t.Run("should apply defaults", func(t *testing.T) {
		setTestEnv(t)

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.ServerPort)
		assert.Equal(t, "postgres", cfg.DBDriver)
		assert.Equal(t, "groq", cfg.LLMProvider)
		assert.Equal(t, 60*time.Second, cfg.LLMTimeout)
		assert.Equal(t, uint(3), cfg.LLMMaxRetries)
		assert.Equal(t, 30, cfg.RateLimitPerHour)
		assert.Equal(t, "https://www.themealdb.com/api/json/v1/1", cfg.MealDBURL)
	})

	t.Run("should prefer docker secrets outside CI", func(t *testing.T) {
		setTestEnv(t)
		dir := os.Getenv("SECRETS_DIR")
		require.NoError(t, os.WriteFile(filepath.Join(dir, "llm_api_key"), []byte("from-secret\n"), 0o600))

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "from-secret", cfg.LLMAPIKey)
	})

	t.Run("should ignore docker secrets in CI", func(t *testing.T) {
		setTestEnv(t)
		t.Setenv("CI", "true")
		t.Setenv("REDIS_PASSWORD", "ci-redis")
		dir := os.Getenv("SECRETS_DIR")
		require.NoError(t, os.WriteFile(filepath.Join(dir, "llm_api_key"), []byte("from-secret"), 0o600))

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, CI, cfg.Environment)
		assert.Equal(t, "test-key", cfg.LLMAPIKey)
	})

	t.Run("should reject malformed durations", func(t *testing.T) {
		setTestEnv(t)
		t.Setenv("LLM_TIMEOUT", "soon")

		_, err := LoadConfig()
		assert.Error(t, err)
	})
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Environment:      Development,
			DBDriver:         "sqlite",
			JWTSecret:        "s",
			LLMAPIKey:        "k",
			LLMProvider:      "groq",
			RateLimitPerHour: 10,
		}
	}

	t.Run("should accept a sqlite development config", func(t *testing.T) {
		assert.NoError(t, ValidateConfig(valid()))
	})

	t.Run("should report every missing value", func(t *testing.T) {
		cfg := valid()
		cfg.JWTSecret = ""
		cfg.LLMAPIKey = ""
		cfg.LLMProvider = "llamafarm"

		err := ValidateConfig(cfg)
		var verrs ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Len(t, verrs, 3)
	})

	t.Run("should require postgres credentials", func(t *testing.T) {
		cfg := valid()
		cfg.DBDriver = "postgres"

		err := ValidateConfig(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DB_PASSWORD")
	})

	t.Run("should refuse sqlite in production", func(t *testing.T) {
		cfg := valid()
		cfg.Environment = Production
		cfg.RedisURL = "redis://cache:6379"

		err := ValidateConfig(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sqlite")
	})
}

func TestEnvironment(t *testing.T) {
	t.Run("should detect CI before ENV", func(t *testing.T) {
		t.Setenv("CI", "true")
		t.Setenv("ENV", "production")
		assert.Equal(t, CI, GetEnvironment())
	})

	t.Run("should parse ENV values", func(t *testing.T) {
		tests := map[string]Environment{
			"production":  Production,
			" Test ":      Test,
			"development": Development,
			"":            Development,
			"staging":     Development,
		}
		for in, want := range tests {
			assert.Equal(t, want, ParseEnvironment(in), in)
		}
	})

	t.Run("should mark deployed environments", func(t *testing.T) {
		assert.True(t, Production.Deployed())
		assert.True(t, CI.Deployed())
		assert.False(t, Development.Deployed())
		assert.False(t, Test.Deployed())
	})
}
