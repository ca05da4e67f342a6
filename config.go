package blog

import "github.com/goliatone/go-blog/internal/runtimeconfig"

type (
	Config         = runtimeconfig.Config
	ContentConfig  = runtimeconfig.ContentConfig
	CacheConfig    = runtimeconfig.CacheConfig
	MarkdownConfig = runtimeconfig.MarkdownConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
	ServerConfig   = runtimeconfig.ServerConfig
	MetricsConfig  = runtimeconfig.MetricsConfig
)

// DefaultConfig returns the settings used when nothing is overridden.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
