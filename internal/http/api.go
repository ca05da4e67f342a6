package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/metrics"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// API serves the blog read endpoints.
type API struct {
	basePath       string
	posts          posts.Service
	logger         interfaces.Logger
	metrics        *metrics.Collector
	allowedOrigins []string
}

// Option mutates the API configuration.
type Option func(*API)

// NewAPI constructs an API over service.
func NewAPI(service posts.Service, opts ...Option) *API {
	api := &API{
		posts:          service,
		logger:         logging.NoOp(),
		allowedOrigins: []string{"*"},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath mounts every route under path.
func WithBasePath(path string) Option {
	return func(api *API) {
		api.basePath = "/" + strings.Trim(strings.TrimSpace(path), "/")
		if api.basePath == "/" {
			api.basePath = ""
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(api *API) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// WithMetrics records request metrics and serves /metrics.
func WithMetrics(collector *metrics.Collector) Option {
	return func(api *API) {
		api.metrics = collector
	}
}

// WithAllowedOrigins sets the CORS origins. Defaults to any origin.
func WithAllowedOrigins(origins ...string) Option {
	return func(api *API) {
		if len(origins) > 0 {
			api.allowedOrigins = origins
		}
	}
}

// Routes builds the router.
func (api *API) Routes() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(api.observe)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: api.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	mount := func(r chi.Router) {
		r.Route("/posts", func(r chi.Router) {
			r.Get("/", api.listPosts)
			r.Get("/{slug}", api.getPost)
			r.Get("/{slug}/html", api.renderPost)
			r.Get("/{slug}/related", api.relatedPosts)
		})
		r.Get("/categories", api.listCategories)
		r.Get("/categories/{slug}/posts", api.categoryPosts)
		r.Get("/tags", api.listTags)
		r.Get("/tags/{slug}/posts", api.tagPosts)
		r.Get("/stats", api.stats)
		r.Get("/archive", api.archive)
		r.Get("/cache", api.cacheStatus)
		r.Delete("/cache", api.clearCache)
		if api.metrics != nil {
			r.Method(http.MethodGet, "/metrics", api.metrics.Handler())
		}
	}

	if api.basePath == "" {
		mount(router)
	} else {
		router.Route(api.basePath, mount)
	}
	return router
}
