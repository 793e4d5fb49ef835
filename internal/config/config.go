package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process configuration, read once at startup.
type Config struct {
	Port string

	APIKey     string
	Model      string
	BaseURL    string
	ImageModel string

	UpstreamTimeout time.Duration
	StreamTimeout   time.Duration
	ImageTimeout    time.Duration

	ReliabilityExponent float64

	RulesFile   string
	DatabaseURL string
	LogLevel    string
}

const (
	DefaultPort       = "8080"
	DefaultModel      = "gpt-4o-mini"
	DefaultImageModel = "dall-e-3"
)

// Load reads the optional env file (".env" when envFile is empty) and then
// the environment. A missing OPENAI_API_KEY is not an error here: the client
// constructor returns ai.ErrMissingAPIKey and the chat endpoint reports it
// per request.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg := Config{
		Port:        getenv("PORT", DefaultPort),
		APIKey:      strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		Model:       getenv("OPENAI_MODEL", DefaultModel),
		BaseURL:     strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),
		ImageModel:  getenv("OPENAI_IMAGE_MODEL", DefaultImageModel),
		RulesFile:   strings.TrimSpace(os.Getenv("RULES_FILE")),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		LogLevel:    getenv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.UpstreamTimeout, err = durationEnv("UPSTREAM_TIMEOUT", 30*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.StreamTimeout, err = durationEnv("STREAM_TIMEOUT", 120*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.ImageTimeout, err = durationEnv("IMAGE_TIMEOUT", 60*time.Second); err != nil {
		return Config{}, err
	}

	cfg.ReliabilityExponent = 2
	if raw := strings.TrimSpace(os.Getenv("RELIABILITY_EXPONENT")); raw != "" {
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("RELIABILITY_EXPONENT must be a positive number, got %q", raw)
		}
		cfg.ReliabilityExponent = n
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, raw)
	}
	return d, nil
}
