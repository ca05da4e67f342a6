package di

import (
	"context"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-blog/internal/cache"
	"github.com/goliatone/go-blog/internal/categories"
	"github.com/goliatone/go-blog/internal/content"
	bloghttp "github.com/goliatone/go-blog/internal/http"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/logging/console"
	"github.com/goliatone/go-blog/internal/logging/gologger"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/metrics"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Container wires the content pipeline, cache and query service from one
// Config. Everything it builds is safe for concurrent use.
type Container struct {
	Config runtimeconfig.Config

	fsys           fs.FS
	clock          func() time.Time
	loggerProvider interfaces.LoggerProvider
	registry       *categories.Registry
	renderer       interfaces.MarkdownRenderer
	metrics        *metrics.Collector

	scanner *content.Scanner
	builder *content.Builder
	loader  *content.Loader
	cache   *cache.Cache
	posts   posts.Service
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithFS reads content from fsys instead of Config.Content.Root on disk.
func WithFS(fsys fs.FS) Option {
	return func(c *Container) {
		if fsys != nil {
			c.fsys = fsys
		}
	}
}

// WithLoggerProvider overrides the provider selected by Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithRegistry replaces the built-in category table.
func WithRegistry(registry *categories.Registry) Option {
	return func(c *Container) {
		if registry != nil {
			c.registry = registry
		}
	}
}

// WithRenderer overrides the goldmark renderer.
func WithRenderer(renderer interfaces.MarkdownRenderer) Option {
	return func(c *Container) {
		if renderer != nil {
			c.renderer = renderer
		}
	}
}

// WithMetrics supplies the collector instead of building one from
// Config.Metrics.
func WithMetrics(collector *metrics.Collector) Option {
	return func(c *Container) {
		c.metrics = collector
	}
}

// WithClock sets the time source for the builder and cache.
func WithClock(clock func() time.Time) Option {
	return func(c *Container) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// NewContainer validates cfg and builds the service graph.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config:   cfg,
		clock:    time.Now,
		registry: categories.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.loggerProvider == nil {
		provider, err := newLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		c.loggerProvider = provider
	}
	if c.fsys == nil {
		c.fsys = os.DirFS(cfg.Content.Root)
	}
	if c.renderer == nil {
		c.renderer = markdown.NewRenderer(interfaces.RenderOptions{
			Extensions: cfg.Markdown.Extensions,
			HardWraps:  cfg.Markdown.HardWraps,
			SafeMode:   cfg.Markdown.SafeMode,
		})
	}
	if c.metrics == nil && cfg.Metrics.Enabled {
		c.metrics = metrics.NewCollector(cfg.Metrics.Namespace)
	}

	contentLogger := logging.ContentLogger(c.loggerProvider)
	c.scanner = content.NewScanner(c.fsys,
		content.WithExtension(cfg.Content.Extension),
		content.WithHidden(cfg.Content.IncludeHidden),
		content.WithScannerLogger(contentLogger),
	)
	c.builder = content.NewBuilder(c.fsys,
		content.WithRegistry(c.registry),
		content.WithBuilderLogger(contentLogger),
		content.WithBuilderClock(c.clock),
		content.WithExcerptLength(cfg.Content.ExcerptLength),
		content.WithWordsPerMinute(cfg.Content.WordsPerMinute),
	)
	c.loader = content.NewLoader(c.scanner, c.builder,
		content.WithWorkers(cfg.Content.Workers),
		content.WithLoaderLogger(contentLogger),
	)

	var recorder cache.Recorder
	if c.metrics != nil {
		recorder = c.metrics
	}
	c.cache = cache.New(cache.Options{
		TTL:          cfg.Cache.TTL,
		Load:         c.loadCorpus,
		Default:      c.loader.Fallback,
		Registry:     c.registry,
		Logger:       logging.CacheLogger(c.loggerProvider),
		Recorder:     recorder,
		Clock:        c.clock,
		SingleFlight: cfg.Cache.SingleFlight,
	})
	c.posts = posts.NewService(c.cache,
		posts.WithRenderer(c.renderer),
		posts.WithLogger(logging.QueryLogger(c.loggerProvider)),
	)

	logging.ModuleLogger(c.loggerProvider, logging.RootModule).Debug("blog.configured",
		"content_root", cfg.Content.Root,
		"cache_ttl", c.cache.TTL(),
		"single_flight", cfg.Cache.SingleFlight,
		"metrics", c.metrics != nil,
	)
	return c, nil
}

func (c *Container) loadCorpus(ctx context.Context) ([]*interfaces.Post, error) {
	result, err := c.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	if c.metrics != nil {
		c.metrics.ObserveCorpus(result.Report)
	}
	return result.Posts, nil
}

func newLoggerProvider(cfg runtimeconfig.LoggingConfig) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gologger":
		return gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
	default:
		level, _ := console.ParseLevel(cfg.Level)
		return console.NewProvider(console.Options{Level: level}), nil
	}
}

// Posts returns the query service.
func (c *Container) Posts() posts.Service {
	return c.posts
}

// Cache returns the corpus cache.
func (c *Container) Cache() *cache.Cache {
	return c.cache
}

// Loader returns the corpus loader, bypassing the cache.
func (c *Container) Loader() *content.Loader {
	return c.loader
}

// Scanner returns the content file scanner.
func (c *Container) Scanner() *content.Scanner {
	return c.scanner
}

// Registry returns the category registry.
func (c *Container) Registry() *categories.Registry {
	return c.registry
}

// Renderer returns the Markdown renderer.
func (c *Container) Renderer() interfaces.MarkdownRenderer {
	return c.renderer
}

// Metrics returns the collector, or nil when metrics are disabled.
func (c *Container) Metrics() *metrics.Collector {
	return c.metrics
}

// LoggerProvider returns the active logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Validator builds a front-matter validator over the content filesystem.
func (c *Container) Validator() (*content.Validator, error) {
	return content.NewValidator(c.fsys, c.scanner)
}

// API builds the JSON API.
func (c *Container) API(opts ...bloghttp.Option) *bloghttp.API {
	base := []bloghttp.Option{bloghttp.WithLogger(logging.HTTPLogger(c.loggerProvider))}
	if c.metrics != nil {
		base = append(base, bloghttp.WithMetrics(c.metrics))
	}
	return bloghttp.NewAPI(c.posts, append(base, opts...)...)
}
