package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	AI      AIConfig
	Extract ExtractConfig
	Log     LogConfig
}

// AIConfig holds settings for the LLM field-extraction provider.
type AIConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// Timeout returns the AI call timeout as a duration.
func (a *AIConfig) Timeout() time.Duration {
	if a.TimeoutSecs <= 0 {
		return 120 * time.Second
	}
	return time.Duration(a.TimeoutSecs) * time.Second
}

// ExtractConfig holds extraction pipeline settings.
type ExtractConfig struct {
	UseAI       bool `mapstructure:"use_ai"`
	Concurrency int  `mapstructure:"concurrency"`
	TimeoutSecs int  `mapstructure:"timeout_secs"`
}

// Timeout returns the per-document pipeline timeout as a duration.
func (e *ExtractConfig) Timeout() time.Duration {
	if e.TimeoutSecs <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(e.TimeoutSecs) * time.Second
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the TELEXTRACT_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TELEXTRACT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AI defaults
	v.SetDefault("ai.provider", "openai")
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.default_model", "gpt-4o")
	v.SetDefault("ai.timeout_secs", 120)

	// Extraction defaults
	v.SetDefault("extract.use_ai", true)
	v.SetDefault("extract.concurrency", 5)
	v.SetDefault("extract.timeout_secs", 300)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"ai.provider":          "TELEXTRACT_AI_PROVIDER",
		"ai.api_key":           "TELEXTRACT_AI_API_KEY",
		"ai.default_model":     "TELEXTRACT_AI_DEFAULT_MODEL",
		"ai.timeout_secs":      "TELEXTRACT_AI_TIMEOUT_SECS",
		"extract.use_ai":       "TELEXTRACT_EXTRACT_USE_AI",
		"extract.concurrency":  "TELEXTRACT_EXTRACT_CONCURRENCY",
		"extract.timeout_secs": "TELEXTRACT_EXTRACT_TIMEOUT_SECS",
		"log.level":            "TELEXTRACT_LOG_LEVEL",
		"log.format":           "TELEXTRACT_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}
	cfg.AI = AIConfig{
		Provider:     v.GetString("ai.provider"),
		APIKey:       v.GetString("ai.api_key"),
		DefaultModel: v.GetString("ai.default_model"),
		TimeoutSecs:  v.GetInt("ai.timeout_secs"),
	}
	cfg.Extract = ExtractConfig{
		UseAI:       v.GetBool("extract.use_ai"),
		Concurrency: v.GetInt("extract.concurrency"),
		TimeoutSecs: v.GetInt("extract.timeout_secs"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	return cfg, nil
}
