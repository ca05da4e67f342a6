// Package blog loads a directory of Markdown posts into a cached, queryable
// corpus of posts, categories and tags.
package blog

import (
	"context"
	"net/http"

	"github.com/goliatone/go-blog/internal/categories"
	"github.com/goliatone/go-blog/internal/di"
	bloghttp "github.com/goliatone/go-blog/internal/http"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// PostService exports the query service contract.
type PostService = posts.Service

// CategoryEntry exports the static category configuration.
type CategoryEntry = categories.Entry

type (
	Post           = interfaces.Post
	Category       = interfaces.Category
	CategoryRef    = interfaces.CategoryRef
	Tag            = interfaces.Tag
	PostFilter     = interfaces.PostFilter
	PaginatedPosts = interfaces.PaginatedPosts
	RelatedPost    = interfaces.RelatedPost
	BlogStats      = interfaces.BlogStats
	RenderedPost   = interfaces.RenderedPost
	TocItem        = interfaces.TocItem
	CacheStatus    = interfaces.CacheStatus
)

// Module is the top level blog runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a module from cfg and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Posts returns the query service.
func (m *Module) Posts() PostService {
	return m.container.Posts()
}

// Handler returns the JSON API router.
func (m *Module) Handler(opts ...bloghttp.Option) http.Handler {
	return m.container.API(opts...).Routes()
}

// AllPosts returns every post, newest first. forceRefresh bypasses the
// cache freshness check.
func (m *Module) AllPosts(ctx context.Context, forceRefresh bool) []*Post {
	return m.Posts().AllPosts(ctx, forceRefresh)
}

// PostBySlug returns nil and no error when no post has slug.
func (m *Module) PostBySlug(ctx context.Context, slug string) (*Post, error) {
	return m.Posts().PostBySlug(ctx, slug)
}

func (m *Module) PostsByCategory(ctx context.Context, categorySlug string) ([]*Post, error) {
	return m.Posts().PostsByCategory(ctx, categorySlug)
}

func (m *Module) PostsByTag(ctx context.Context, tagSlug string) ([]*Post, error) {
	return m.Posts().PostsByTag(ctx, tagSlug)
}

func (m *Module) Categories(ctx context.Context) []Category {
	return m.Posts().Categories(ctx)
}

func (m *Module) Tags(ctx context.Context) []Tag {
	return m.Posts().Tags(ctx)
}

// ClearCache drops every cached view.
func (m *Module) ClearCache() {
	m.Posts().ClearCache()
}

// CacheStatus reports the age and size of each cached view.
func (m *Module) CacheStatus() CacheStatus {
	return m.Posts().CacheStatus()
}
