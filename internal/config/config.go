// Package config loads environment-driven configuration for the assistant
// service.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds every recognized environment option.
type Config struct {
	Port           string
	ProjectID      string
	UseMemoryStore bool
	SkipAuth       bool
	DebugLogging   bool

	PreferredProvider string
	GeminiAPIKey      string
	OpenAIAPIKey      string
	GeminiModel       string
	OpenAIModel       string

	MaxPromptChars     int
	FreeDailyLimit     int
	ProviderMaxRetries int
	ProviderTimeout    time.Duration

	DefaultCurrency   string
	RecurringDetector bool
}

// Load reads configuration from the environment. Every option has a default;
// only provider credentials are genuinely optional.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8111")
	v.SetDefault("GOOGLE_CLOUD_PROJECT", "")
	v.SetDefault("USE_MEMORY_STORE", false)
	v.SetDefault("SKIP_AUTH", false)
	v.SetDefault("DEBUG_LOGGING", false)

	v.SetDefault("PREFERRED_PROVIDER", "")
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")

	v.SetDefault("MAX_PROMPT_CHARS", 12000)
	v.SetDefault("FREE_DAILY_LIMIT", 20)
	v.SetDefault("PROVIDER_MAX_RETRIES", 2)
	v.SetDefault("PROVIDER_TIMEOUT", "60s")

	v.SetDefault("DEFAULT_CURRENCY", "USD")
	v.SetDefault("RECURRING_DETECTOR", true)

	cfg := &Config{
		Port:           v.GetString("PORT"),
		ProjectID:      v.GetString("GOOGLE_CLOUD_PROJECT"),
		UseMemoryStore: v.GetBool("USE_MEMORY_STORE"),
		SkipAuth:       v.GetBool("SKIP_AUTH"),
		DebugLogging:   v.GetBool("DEBUG_LOGGING"),

		PreferredProvider: v.GetString("PREFERRED_PROVIDER"),
		GeminiAPIKey:      v.GetString("GEMINI_API_KEY"),
		OpenAIAPIKey:      v.GetString("OPENAI_API_KEY"),
		GeminiModel:       v.GetString("GEMINI_MODEL"),
		OpenAIModel:       v.GetString("OPENAI_MODEL"),

		MaxPromptChars:     v.GetInt("MAX_PROMPT_CHARS"),
		FreeDailyLimit:     v.GetInt("FREE_DAILY_LIMIT"),
		ProviderMaxRetries: v.GetInt("PROVIDER_MAX_RETRIES"),
		ProviderTimeout:    v.GetDuration("PROVIDER_TIMEOUT"),

		DefaultCurrency:   v.GetString("DEFAULT_CURRENCY"),
		RecurringDetector: v.GetBool("RECURRING_DETECTOR"),
	}

	if cfg.MaxPromptChars <= 0 {
		return nil, fmt.Errorf("MAX_PROMPT_CHARS must be positive, got %d", cfg.MaxPromptChars)
	}
	if cfg.FreeDailyLimit < 0 {
		return nil, fmt.Errorf("FREE_DAILY_LIMIT must not be negative, got %d", cfg.FreeDailyLimit)
	}
	if cfg.ProviderTimeout <= 0 {
		return nil, fmt.Errorf("PROVIDER_TIMEOUT must be positive, got %s", cfg.ProviderTimeout)
	}

	return cfg, nil
}
