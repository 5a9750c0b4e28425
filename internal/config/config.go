package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"studyaid-backend/internal/services"
)

type Config struct {
	// Server
	Port        string
	Env         string
	MaxUploadMB int

	// Backend selection: "server" or "device"
	Backend string

	// Gemini AI
	GeminiAPIKey string
	GeminiModel  string

	// Ollama (unified on-device namespace)
	OllamaHost            string
	OllamaSummarizerModel string
	OllamaLanguageModel   string

	// OpenAI-compatible local server (legacy standalone objects)
	LegacyBaseURL         string
	LegacyAPIKey          string
	LegacySummarizerModel string
	LegacyLanguageModel   string

	// Optional infrastructure
	DatabaseURL   string
	RedisURL      string
	MigrationsDir string

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:                  getEnvOrDefault("PORT", "8080"),
		Env:                   getEnvOrDefault("ENV", "development"),
		MaxUploadMB:           getEnvAsIntOrDefault("MAX_UPLOAD_MB", 25),
		Backend:               strings.ToLower(getEnvOrDefault("BACKEND", services.BackendModeServer)),
		GeminiAPIKey:          os.Getenv("GEMINI_API_KEY"),
		GeminiModel:           getEnvOrDefault("GEMINI_MODEL", services.DefaultGeminiModel),
		OllamaHost:            getEnvOrDefault("OLLAMA_HOST", services.DefaultOllamaHost),
		OllamaSummarizerModel: getEnvOrDefault("OLLAMA_SUMMARIZER_MODEL", ""),
		OllamaLanguageModel:   getEnvOrDefault("OLLAMA_LANGUAGE_MODEL", ""),
		LegacyBaseURL:         getEnvOrDefault("LEGACY_OPENAI_BASE_URL", ""),
		LegacyAPIKey:          getEnvOrDefault("LEGACY_OPENAI_API_KEY", "local"),
		LegacySummarizerModel: getEnvOrDefault("LEGACY_SUMMARIZER_MODEL", ""),
		LegacyLanguageModel:   getEnvOrDefault("LEGACY_LANGUAGE_MODEL", ""),
		DatabaseURL:           getEnvOrDefault("DATABASE_URL", ""),
		RedisURL:              getEnvOrDefault("REDIS_URL", ""),
		MigrationsDir:         getEnvOrDefault("MIGRATIONS_DIR", "migrations"),
		FrontendURL:           getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
	}

	return cfg
}

// BackendOptions maps the configuration onto the generation backend.
func (c *Config) BackendOptions() services.BackendOptions {
	return services.BackendOptions{
		Mode:                  c.Backend,
		GeminiAPIKey:          c.GeminiAPIKey,
		GeminiModel:           c.GeminiModel,
		OllamaHost:            c.OllamaHost,
		OllamaSummarizerModel: c.OllamaSummarizerModel,
		OllamaLanguageModel:   c.OllamaLanguageModel,
		LegacyBaseURL:         c.LegacyBaseURL,
		LegacyAPIKey:          c.LegacyAPIKey,
		LegacySummarizerModel: c.LegacySummarizerModel,
		LegacyLanguageModel:   c.LegacyLanguageModel,
	}
}

// MaxUploadBytes bounds a generate request body. Base64 inflates payloads by
// a third, so the limit leaves room for that.
func (c *Config) MaxUploadBytes() int64 {
	mb := c.MaxUploadMB
	if mb <= 0 {
		mb = 25
	}
	return int64(mb) * 1024 * 1024 * 4 / 3
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
