package logging

import (
	"context"
	"maps"
	"strings"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Module names handed to the LoggerProvider.
const (
	RootModule    = "blog"
	ContentModule = "blog.content"
	CacheModule   = "blog.cache"
	QueryModule   = "blog.query"
	HTTPModule    = "blog.http"
)

const (
	fieldModule   = "module"
	fieldPostPath = "post_path"
	fieldPostSlug = "post_slug"
)

// ModuleLogger resolves the logger for module from provider and tags it with
// the module name. A nil provider yields a logger that discards everything.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	module = strings.TrimSpace(module)
	if module == "" {
		module = RootModule
	}

	var logger interfaces.Logger
	if provider != nil {
		logger = provider.GetLogger(module)
	}
	if logger == nil {
		return NoOp()
	}
	return WithFields(logger, map[string]any{fieldModule: module})
}

// ContentLogger is used by the scanner, builder and corpus loader.
func ContentLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, ContentModule)
}

// CacheLogger is used by the corpus cache.
func CacheLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, CacheModule)
}

// QueryLogger is used by the post query service.
func QueryLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, QueryModule)
}

// HTTPLogger is used by the JSON API handlers.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, HTTPModule)
}

// WithFields attaches fields when logger implements interfaces.FieldsLogger
// and returns it unchanged otherwise.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	fl, ok := logger.(interfaces.FieldsLogger)
	if !ok {
		return logger
	}
	return fl.WithFields(maps.Clone(fields))
}

// WithPostContext tags entries with the file path and slug of the post being
// processed. Blank values are skipped.
func WithPostContext(logger interfaces.Logger, path, slug string) interfaces.Logger {
	fields := map[string]any{}
	if path = strings.TrimSpace(path); path != "" {
		fields[fieldPostPath] = path
	}
	if slug = strings.TrimSpace(slug); slug != "" {
		fields[fieldPostSlug] = slug
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return discard{}
}

type discard struct{}

var (
	_ interfaces.Logger       = discard{}
	_ interfaces.FieldsLogger = discard{}
)

func (discard) Trace(string, ...any) {}
func (discard) Debug(string, ...any) {}
func (discard) Info(string, ...any)  {}
func (discard) Warn(string, ...any)  {}
func (discard) Error(string, ...any) {}
func (discard) Fatal(string, ...any) {}

func (d discard) WithFields(map[string]any) interfaces.Logger   { return d }
func (d discard) WithContext(context.Context) interfaces.Logger { return d }
