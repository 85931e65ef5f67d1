// Package config loads the service configuration from the environment, an
// optional .env file and an optional TOML constants file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"bizplan-engine/internal/forecast"
)

const (
	SourceDefaults = "defaults"
	SourceFile     = "file"
)

// Config is the resolved service configuration.
type Config struct {
	Port            string
	LogLevel        string
	LogFormat       string // json or console
	ConstantsFile   string
	RegistryURL     string
	PrefetchTenants []string // tenants whose constants are fetched at startup
	Constants       forecast.Constants
	ConstantsSource string
}

// Load reads .env (if present) and the environment, then overlays the constants
// file named by CONSTANTS_FILE on the default constants.
func Load() (*Config, error) {
	// a missing .env is normal outside development
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getenv("PORT", "8080"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		LogFormat:       getenv("LOG_FORMAT", "json"),
		ConstantsFile:   os.Getenv("CONSTANTS_FILE"),
		RegistryURL:     strings.TrimRight(os.Getenv("CONSTANTS_REGISTRY_URL"), "/"),
		PrefetchTenants: splitList(os.Getenv("CONSTANTS_PREFETCH_TENANTS")),
		Constants:       forecast.DefaultConstants(),
		ConstantsSource: SourceDefaults,
	}

	if cfg.ConstantsFile != "" {
		c, err := LoadConstants(cfg.ConstantsFile)
		if err != nil {
			return nil, err
		}
		cfg.Constants = c
		cfg.ConstantsSource = SourceFile
	}
	return cfg, nil
}

// LoadConstants reads a TOML constants file. Keys absent from the file keep
// their default value.
func LoadConstants(path string) (forecast.Constants, error) {
	c := forecast.DefaultConstants()

	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read constants file: %w", err)
	}
	if err := toml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parse constants file %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("constants file %s: %w", path, err)
	}
	return c, nil
}

// SetupLogger configures the global zerolog logger.
func SetupLogger(level, format string) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return nil
}

// splitList parses a comma-separated list, dropping blank entries.
func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
