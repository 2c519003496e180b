package runtimeconfig

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables understood by ApplyEnv.
const (
	EnvPort        = "PORT"
	EnvAnalyticsID = "ANALYTICS_ID"
	EnvBasePath    = "HUB_BASE_PATH"
	EnvArticlesDir = "HUB_ARTICLES_DIR"
	EnvConfigDir   = "HUB_CONFIG_DIR"
	EnvLogLevel    = "HUB_LOG_LEVEL"
	EnvLogFormat   = "HUB_LOG_FORMAT"
	EnvLogProvider = "HUB_LOG_PROVIDER"
	EnvDevMode     = "HUB_DEV"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// LoadDotEnv loads the given .env files into the process environment. Missing
// files are ignored; variables already set win over file values.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("hub config: load %s: %w", file, err)
		}
	}
	return nil
}

// ApplyEnv overlays environment values on cfg. A nil lookup uses os.LookupEnv.
func ApplyEnv(cfg Config, lookup LookupFunc) (Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	if value, ok := nonEmpty(lookup, EnvPort); ok {
		port, err := strconv.Atoi(value)
		if err != nil {
			return cfg, fmt.Errorf("%w: %q", ErrServerPortInvalid, value)
		}
		cfg.Server.Port = port
	}
	if value, ok := lookup(EnvAnalyticsID); ok {
		cfg.Site.AnalyticsID = strings.TrimSpace(value)
	}
	if value, ok := nonEmpty(lookup, EnvBasePath); ok {
		cfg.Library.BasePath = value
	}
	if value, ok := nonEmpty(lookup, EnvArticlesDir); ok {
		cfg.Library.ArticlesDir = value
	}
	if value, ok := nonEmpty(lookup, EnvConfigDir); ok {
		cfg.Site.ConfigDir = value
	}
	if value, ok := nonEmpty(lookup, EnvLogLevel); ok {
		cfg.Logging.Level = value
	}
	if value, ok := nonEmpty(lookup, EnvLogFormat); ok {
		cfg.Logging.Format = value
	}
	if value, ok := nonEmpty(lookup, EnvLogProvider); ok {
		cfg.Logging.Provider = value
	}
	if value, ok := nonEmpty(lookup, EnvDevMode); ok {
		dev, err := strconv.ParseBool(value)
		if err != nil {
			return cfg, fmt.Errorf("hub config: %s: %w", EnvDevMode, err)
		}
		cfg.Server.DevMode = dev
	}
	return cfg, nil
}

func nonEmpty(lookup LookupFunc, key string) (string, bool) {
	value, ok := lookup(key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}
