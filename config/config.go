package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Environment string
	ExportDir   string
	SeedDemo    bool

	// Email settings for cancellation notices.
	EmailProvider  string // "ses" or "noop"
	EmailFrom      string
	EmailFromName  string
	SESRegion      string
	SESAccessKeyID string
	SESSecretKey   string
	SESSkipVerify  bool
}

// Load reads configuration from environment variables, attempting a .env
// file first outside production. Missing values fall back to defaults that
// keep the application runnable with no setup at all.
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:    env,
		ExportDir:      os.Getenv("EXPORT_DIR"),
		SeedDemo:       boolEnv("SEED_DEMO_DATA", true),
		EmailProvider:  os.Getenv("EMAIL_PROVIDER"),
		EmailFrom:      os.Getenv("EMAIL_FROM_ADDRESS"),
		EmailFromName:  os.Getenv("EMAIL_FROM_NAME"),
		SESRegion:      os.Getenv("SES_REGION"),
		SESAccessKeyID: os.Getenv("SES_ACCESS_KEY_ID"),
		SESSecretKey:   os.Getenv("SES_SECRET_ACCESS_KEY"),
		SESSkipVerify:  boolEnv("SES_INSECURE_SKIP_VERIFY", false),
	}

	if cfg.ExportDir == "" {
		cfg.ExportDir = "."
	}
	if cfg.EmailProvider == "" {
		cfg.EmailProvider = "noop"
	}
	if cfg.EmailFromName == "" {
		cfg.EmailFromName = "Campus Events"
	}

	return cfg, nil
}

func boolEnv(key string, fallback bool) bool {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		log.Printf("Warning: invalid boolean for %s: %q", key, s)
		return fallback
	}
	return v
}
