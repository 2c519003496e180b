package hub

import "github.com/bobbyhiddn/Veinity.Hub/internal/runtimeconfig"

var (
	ErrArticlesDirRequired      = runtimeconfig.ErrArticlesDirRequired
	ErrArticlePatternInvalid    = runtimeconfig.ErrArticlePatternInvalid
	ErrServerPortInvalid        = runtimeconfig.ErrServerPortInvalid
	ErrListingLimitInvalid      = runtimeconfig.ErrListingLimitInvalid
	ErrPreviewCacheSizeInvalid  = runtimeconfig.ErrPreviewCacheSizeInvalid
	ErrMarkdownExtensionUnknown = runtimeconfig.ErrMarkdownExtensionUnknown
	ErrLoggingProviderRequired  = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	LibraryConfig  = runtimeconfig.LibraryConfig
	SiteConfig     = runtimeconfig.SiteConfig
	ServerConfig   = runtimeconfig.ServerConfig
	ListingConfig  = runtimeconfig.ListingConfig
	PreviewConfig  = runtimeconfig.PreviewConfig
	MarkdownConfig = runtimeconfig.MarkdownConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig returns DefaultConfig with .env files and the process
// environment applied on top, validated.
func LoadConfig(envFiles ...string) (Config, error) {
	if err := runtimeconfig.LoadDotEnv(envFiles...); err != nil {
		return Config{}, err
	}
	cfg, err := runtimeconfig.ApplyEnv(DefaultConfig(), nil)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
