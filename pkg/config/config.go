package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Port               string        `yaml:"port"`
	Origin             string        `yaml:"origin"`
	Environment        string        `yaml:"environment"`
	GeolocationTimeout time.Duration `yaml:"geolocation_timeout"`
	LLM                LLMConfig     `yaml:"llm"`
}

// LLMConfig selects the generative-AI provider and its credentials
type LLMConfig struct {
	Provider        string        `yaml:"provider"`
	Model           string        `yaml:"model"`
	GeminiAPIKey    string        `yaml:"gemini_api_key"`
	OpenAIAPIKey    string        `yaml:"openai_api_key"`
	AnthropicAPIKey string        `yaml:"anthropic_api_key"`
	Temperature     float32       `yaml:"temperature"`
	Timeout         time.Duration `yaml:"timeout"`
}

// APIKey returns the key configured for the selected provider.
func (c LLMConfig) APIKey() string {
	switch c.Provider {
	case "openai":
		return c.OpenAIAPIKey
	case "claude":
		return c.AnthropicAPIKey
	default:
		return c.GeminiAPIKey
	}
}

func defaults() *Config {
	return &Config{
		Port:               "8080",
		Origin:             "*",
		Environment:        "development",
		GeolocationTimeout: 10 * time.Second,
		LLM: LLMConfig{
			Provider:    "gemini",
			Temperature: 0.5,
			Timeout:     60 * time.Second,
		},
	}
}

// LoadConfig builds the configuration from defaults, an optional YAML file
// and the environment, in increasing order of precedence. A .env file in the
// working directory is loaded first when present.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Origin = getEnv("ORIGIN", cfg.Origin)
	cfg.Environment = getEnv("APP_ENV", cfg.Environment)

	cfg.LLM.Provider = getEnv("LLM_PROVIDER", cfg.LLM.Provider)
	cfg.LLM.Model = getEnv("LLM_MODEL", cfg.LLM.Model)
	// API_KEY is the variable name the hosted form app was deployed with.
	cfg.LLM.GeminiAPIKey = getEnv("GEMINI_API_KEY", getEnv("API_KEY", cfg.LLM.GeminiAPIKey))
	cfg.LLM.OpenAIAPIKey = getEnv("OPENAI_API_KEY", cfg.LLM.OpenAIAPIKey)
	cfg.LLM.AnthropicAPIKey = getEnv("ANTHROPIC_API_KEY", cfg.LLM.AnthropicAPIKey)

	if v, ok := os.LookupEnv("LLM_TEMPERATURE"); ok {
		t, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid LLM_TEMPERATURE: %w", err)
		}
		cfg.LLM.Temperature = float32(t)
	}

	var err error
	if cfg.LLM.Timeout, err = getDuration("LLM_TIMEOUT", cfg.LLM.Timeout); err != nil {
		return nil, err
	}
	if cfg.GeolocationTimeout, err = getDuration("GEOLOCATION_TIMEOUT", cfg.GeolocationTimeout); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
