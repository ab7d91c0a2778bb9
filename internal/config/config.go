// README: Config loader with env defaults for HTTP, Redis, sessions, and AI settings.
package config

import (
	"os"
	"strconv"
)

type AIConfig struct {
	Provider    string
	Model       string
	Temperature float64
	MaxTokens   int
	GeminiKey   string
	OpenAIKey   string
}

type Config struct {
	HTTP struct {
		Addr string
	}
	Redis struct {
		Addr string
	}
	Session struct {
		TTLMinutes int
	}
	AI AIConfig
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("TRIPWISE_HTTP_ADDR", ":8080")
	cfg.Redis.Addr = envOrDefault("TRIPWISE_REDIS_ADDR", "")
	cfg.Session.TTLMinutes = envOrDefaultInt("TRIPWISE_SESSION_TTL_MIN", 120)
	cfg.AI.Provider = envOrDefault("TRIPWISE_AI_PROVIDER", "gemini")
	cfg.AI.Model = envOrDefault("TRIPWISE_AI_MODEL", defaultModelFor(cfg.AI.Provider))
	cfg.AI.Temperature = envOrDefaultFloat("TRIPWISE_AI_TEMPERATURE", 0.7)
	cfg.AI.MaxTokens = envOrDefaultInt("TRIPWISE_AI_MAX_TOKENS", 4000)
	cfg.AI.GeminiKey = os.Getenv("GEMINI_API_KEY")
	cfg.AI.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	return cfg, nil
}

func defaultModelFor(provider string) string {
	if provider == "openai" {
		return "gpt-4o-mini"
	}
	return "gemini-2.0-flash"
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}
