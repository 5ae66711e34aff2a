package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port       string
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	JWTSecret  string

	AIGatewayURL string
	AIGatewayKey string
	AIModel      string

	RateLimitPerWindow int
	RateLimitWindow    time.Duration
	RateLimitSweepAt   int

	// ContextCacheTTL of 0 means the scheme context is rebuilt on every
	// chat turn (the default behavior).
	ContextCacheTTL time.Duration
}

// fileOverlay is the optional YAML config file (JANSAATHI_CONFIG). Env
// vars still win over file values.
type fileOverlay struct {
	Port      string `yaml:"port"`
	AIGateway struct {
		URL   string `yaml:"url"`
		Model string `yaml:"model"`
	} `yaml:"ai_gateway"`
	RateLimit struct {
		PerWindow     int `yaml:"per_window"`
		WindowSeconds int `yaml:"window_seconds"`
		SweepAt       int `yaml:"sweep_at"`
	} `yaml:"rate_limit"`
	ContextCacheTTLSeconds int `yaml:"context_cache_ttl_seconds"`
}

func LoadConfig() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port:               "8000",
		AIGatewayURL:       "https://ai.gateway.lovable.dev/v1/chat/completions",
		AIModel:            "google/gemini-2.5-flash",
		RateLimitPerWindow: 15,
		RateLimitWindow:    60 * time.Second,
		RateLimitSweepAt:   1000,
	}

	if path := os.Getenv("JANSAATHI_CONFIG"); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			var f fileOverlay
			if err := yaml.Unmarshal(data, &f); err == nil {
				if f.Port != "" {
					cfg.Port = f.Port
				}
				if f.AIGateway.URL != "" {
					cfg.AIGatewayURL = f.AIGateway.URL
				}
				if f.AIGateway.Model != "" {
					cfg.AIModel = f.AIGateway.Model
				}
				if f.RateLimit.PerWindow > 0 {
					cfg.RateLimitPerWindow = f.RateLimit.PerWindow
				}
				if f.RateLimit.WindowSeconds > 0 {
					cfg.RateLimitWindow = time.Duration(f.RateLimit.WindowSeconds) * time.Second
				}
				if f.RateLimit.SweepAt > 0 {
					cfg.RateLimitSweepAt = f.RateLimit.SweepAt
				}
				if f.ContextCacheTTLSeconds > 0 {
					cfg.ContextCacheTTL = time.Duration(f.ContextCacheTTLSeconds) * time.Second
				}
			}
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.DBUser = getEnv("DB_USER", "")
	cfg.DBPassword = getEnv("DB_PASSWORD", "")
	cfg.DBHost = getEnv("DB_HOST", "")
	cfg.DBPort = getEnv("DB_PORT", "")
	cfg.DBName = getEnv("DB_NAME", "")
	cfg.JWTSecret = getEnv("JWT_SECRET", "")
	cfg.AIGatewayURL = getEnv("AI_GATEWAY_URL", cfg.AIGatewayURL)
	cfg.AIGatewayKey = getEnv("AI_GATEWAY_KEY", "")
	cfg.AIModel = getEnv("AI_MODEL", cfg.AIModel)
	cfg.RateLimitPerWindow = getEnvInt("RATE_LIMIT_PER_WINDOW", cfg.RateLimitPerWindow)
	cfg.RateLimitSweepAt = getEnvInt("RATE_LIMIT_SWEEP_AT", cfg.RateLimitSweepAt)
	if s := getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 0); s > 0 {
		cfg.RateLimitWindow = time.Duration(s) * time.Second
	}
	if s := getEnvInt("CONTEXT_CACHE_TTL_SECONDS", 0); s > 0 {
		cfg.ContextCacheTTL = time.Duration(s) * time.Second
	}

	return cfg
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
