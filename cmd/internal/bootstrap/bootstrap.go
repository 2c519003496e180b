package bootstrap

import (
	"strings"

	hub "github.com/bobbyhiddn/Veinity.Hub"
	"github.com/bobbyhiddn/Veinity.Hub/internal/di"
	"github.com/bobbyhiddn/Veinity.Hub/pkg/interfaces"
)

// Options captures the command line overrides shared by the hub binaries.
type Options struct {
	EnvFiles       []string
	BasePath       string
	ArticlesDir    string
	Port           int
	LogLevel       string
	LoggerProvider interfaces.LoggerProvider
}

// BuildModule loads the environment, applies opts on top and constructs the
// hub module.
func BuildModule(opts Options) (*hub.Module, error) {
	cfg, err := hub.LoadConfig(opts.EnvFiles...)
	if err != nil {
		return nil, err
	}
	if trimmed := strings.TrimSpace(opts.BasePath); trimmed != "" {
		cfg.Library.BasePath = trimmed
	}
	if trimmed := strings.TrimSpace(opts.ArticlesDir); trimmed != "" {
		cfg.Library.ArticlesDir = trimmed
	}
	if opts.Port > 0 {
		cfg.Server.Port = opts.Port
	}
	if trimmed := strings.TrimSpace(opts.LogLevel); trimmed != "" {
		cfg.Logging.Level = trimmed
	}

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}
	return hub.New(cfg, diOpts...)
}

// SplitList splits a comma separated flag value, dropping blanks.
func SplitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
