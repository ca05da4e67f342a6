package runtimeconfig

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-blog/internal/markdown"
)

// Config aggregates the settings of the blog runtime. Zero values are not
// usable; start from DefaultConfig.
type Config struct {
	Content  ContentConfig
	Cache    CacheConfig
	Markdown MarkdownConfig
	Logging  LoggingConfig
	Server   ServerConfig
	Metrics  MetricsConfig
}

// ContentConfig controls how Markdown files are discovered and normalized.
type ContentConfig struct {
	// Root is the directory holding one sub-directory per category.
	Root      string
	Extension string
	// Workers bounds concurrent file builds. Zero means unbounded.
	Workers        int
	ExcerptLength  int
	WordsPerMinute int
	IncludeHidden  bool
}

// CacheConfig controls the corpus cache.
type CacheConfig struct {
	TTL time.Duration
	// SingleFlight collapses concurrent rebuilds of the same slot into one
	// loader call. Off by default; concurrent misses then rebuild in parallel.
	SingleFlight bool
}

// MarkdownConfig configures HTML rendering of post bodies.
type MarkdownConfig struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}

// LoggingConfig selects and tunes the logger provider.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// ServerConfig configures the JSON API.
type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// MetricsConfig toggles the Prometheus recorder.
type MetricsConfig struct {
	Enabled   bool
	Namespace string
}

// DefaultConfig returns the settings used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Content: ContentConfig{
			Root:           "content",
			Extension:      ".md",
			ExcerptLength:  200,
			WordsPerMinute: 200,
		},
		Cache: CacheConfig{
			TTL: 2 * time.Minute,
		},
		Markdown: MarkdownConfig{
			Extensions: []string{"gfm", "linkify", "tasklist"},
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 5 * time.Second,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "blog",
		},
	}
}

var (
	providers = []any{"console", "gologger"}
	levels    = []any{"trace", "debug", "info", "warn", "warning", "error", "fatal"}
	formats   = []any{"json", "console", "pretty"}
)

// Validate reports every invalid field at once as a go-errors validation error.
func (cfg Config) Validate() error {
	content := cfg.Content
	cache := cfg.Cache
	md := cfg.Markdown
	logging := cfg.Logging
	server := cfg.Server

	if err := goerrors.ValidateWithOzzo(func() error {
		return validation.Errors{
			"content": validation.ValidateStruct(&content,
				validation.Field(&content.Root, validation.Required),
				validation.Field(&content.Extension, validation.Required, validation.By(leadingDot)),
				validation.Field(&content.Workers, validation.Min(0)),
				validation.Field(&content.ExcerptLength, validation.Required, validation.Min(1)),
				validation.Field(&content.WordsPerMinute, validation.Required, validation.Min(1)),
			),
			"cache": validation.ValidateStruct(&cache,
				validation.Field(&cache.TTL, validation.Required, validation.Min(time.Duration(1))),
			),
			"markdown": validation.ValidateStruct(&md,
				validation.Field(&md.Extensions, validation.Each(validation.By(knownExtension))),
			),
			"logging": validation.ValidateStruct(&logging,
				validation.Field(&logging.Provider, validation.Required, validation.By(lowerIn(providers...))),
				validation.Field(&logging.Level, validation.By(lowerIn(levels...))),
				validation.Field(&logging.Format, validation.By(lowerIn(formats...))),
			),
			"server": validation.ValidateStruct(&server,
				validation.Field(&server.ShutdownTimeout, validation.Min(time.Duration(0))),
			),
		}.Filter()
	}, "invalid blog configuration"); err != nil {
		return err
	}
	return nil
}

func leadingDot(value any) error {
	ext, _ := value.(string)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		return validation.NewError("validation_extension_dot", "must start with a dot")
	}
	return nil
}

func knownExtension(value any) error {
	name, _ := value.(string)
	if !markdown.KnownExtension(name) {
		return validation.NewError("validation_markdown_extension", "unknown markdown extension")
	}
	return nil
}

func lowerIn(allowed ...any) validation.RuleFunc {
	rule := validation.In(allowed...)
	return func(value any) error {
		s, _ := value.(string)
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			return nil
		}
		return rule.Validate(s)
	}
}
