// Package posts is the read API over the cached corpus. Every post handed
// out is a copy; callers may modify results without touching the cache.
package posts

import (
	"context"
	"sort"
	"time"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/taxonomy"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// DefaultRelatedLimit applies when Related is called with a limit of zero
// or less.
const DefaultRelatedLimit = 3

// Store is the cache surface the service reads from. *cache.Cache
// satisfies it.
type Store interface {
	Posts(ctx context.Context, force bool) []*interfaces.Post
	Categories(ctx context.Context) []interfaces.Category
	Tags(ctx context.Context) []interfaces.Tag
	Invalidate()
	Status() interfaces.CacheStatus
}

// Service answers post, category and tag queries.
type Service interface {
	AllPosts(ctx context.Context, forceRefresh bool) []*interfaces.Post
	PostBySlug(ctx context.Context, slug string) (*interfaces.Post, error)
	PostsByCategory(ctx context.Context, categorySlug string) ([]*interfaces.Post, error)
	PostsByTag(ctx context.Context, tagSlug string) ([]*interfaces.Post, error)
	Categories(ctx context.Context) []interfaces.Category
	Tags(ctx context.Context) []interfaces.Tag
	CategoryBySlug(ctx context.Context, slug string) (*interfaces.Category, error)
	TagBySlug(ctx context.Context, slug string) (*interfaces.Tag, error)
	List(ctx context.Context, filter interfaces.PostFilter) (interfaces.PaginatedPosts, error)
	Related(ctx context.Context, slug string, limit int) ([]interfaces.RelatedPost, error)
	Recent(ctx context.Context, limit int) []*interfaces.Post
	Featured(ctx context.Context) []*interfaces.Post
	Archive(ctx context.Context) []interfaces.ArchiveYear
	Stats(ctx context.Context) interfaces.BlogStats
	Render(ctx context.Context, slug string) (*interfaces.RenderedPost, error)
	ClearCache()
	CacheStatus() interfaces.CacheStatus
}

// ServiceOption configures the service.
type ServiceOption func(*service)

// WithRenderer sets the Markdown renderer used by Render.
func WithRenderer(renderer interfaces.MarkdownRenderer) ServiceOption {
	return func(s *service) {
		if renderer != nil {
			s.renderer = renderer
		}
	}
}

// WithLogger sets the query logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	store    Store
	renderer interfaces.MarkdownRenderer
	logger   interfaces.Logger
}

// NewService returns a Service reading from store.
func NewService(store Store, opts ...ServiceOption) Service {
	s := &service{
		store:    store,
		renderer: markdown.NewRenderer(interfaces.RenderOptions{}),
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) AllPosts(ctx context.Context, forceRefresh bool) []*interfaces.Post {
	return clonePosts(s.store.Posts(ctx, forceRefresh))
}

// PostBySlug returns nil and no error when no post has slug.
func (s *service) PostBySlug(ctx context.Context, slug string) (*interfaces.Post, error) {
	post := s.find(ctx, slug)
	if post == nil {
		s.logger.WithContext(ctx).Debug("posts.not_found", "slug", slug)
		return nil, nil
	}
	return post.Clone(), nil
}

// PostsByCategory returns an empty slice when the category is unknown.
func (s *service) PostsByCategory(ctx context.Context, categorySlug string) ([]*interfaces.Post, error) {
	if _, ok := taxonomy.FindCategory(s.store.Categories(ctx), categorySlug); !ok {
		return []*interfaces.Post{}, nil
	}
	return s.filter(ctx, func(p *interfaces.Post) bool {
		return p.Category.Slug == categorySlug
	}), nil
}

// PostsByTag returns an empty slice when no tag has tagSlug.
func (s *service) PostsByTag(ctx context.Context, tagSlug string) ([]*interfaces.Post, error) {
	tag, ok := taxonomy.FindTag(s.store.Tags(ctx), tagSlug)
	if !ok {
		return []*interfaces.Post{}, nil
	}
	return s.filter(ctx, func(p *interfaces.Post) bool {
		return p.HasTag(tag.Name)
	}), nil
}

func (s *service) Categories(ctx context.Context) []interfaces.Category {
	return append([]interfaces.Category{}, s.store.Categories(ctx)...)
}

func (s *service) Tags(ctx context.Context) []interfaces.Tag {
	return append([]interfaces.Tag{}, s.store.Tags(ctx)...)
}

func (s *service) CategoryBySlug(ctx context.Context, slug string) (*interfaces.Category, error) {
	category, ok := taxonomy.FindCategory(s.store.Categories(ctx), slug)
	if !ok {
		return nil, nil
	}
	return &category, nil
}

func (s *service) TagBySlug(ctx context.Context, slug string) (*interfaces.Tag, error) {
	tag, ok := taxonomy.FindTag(s.store.Tags(ctx), slug)
	if !ok {
		return nil, nil
	}
	return &tag, nil
}

// Related ranks other posts by shared tags, two points each, plus one point
// for sharing the category. Posts scoring zero are left out.
func (s *service) Related(ctx context.Context, slug string, limit int) ([]interfaces.RelatedPost, error) {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	all := s.store.Posts(ctx, false)
	target := findIn(all, slug)
	if target == nil {
		return []interfaces.RelatedPost{}, nil
	}

	var related []interfaces.RelatedPost
	for _, post := range all {
		if post.ID == target.ID {
			continue
		}
		score := 0
		for _, tag := range post.Tags {
			if target.HasTag(tag) {
				score += 2
			}
		}
		if post.Category.Slug == target.Category.Slug {
			score++
		}
		if score == 0 {
			continue
		}
		related = append(related, interfaces.RelatedPost{
			Slug:        post.Slug,
			Title:       post.Title,
			Excerpt:     post.Excerpt,
			Category:    post.Category,
			PublishedAt: post.PublishedAt,
			Score:       score,
		})
	}
	// The corpus is already newest first, so a stable sort keeps recency as
	// the tie breaker.
	sort.SliceStable(related, func(i, j int) bool { return related[i].Score > related[j].Score })
	if len(related) > limit {
		related = related[:limit]
	}
	if related == nil {
		related = []interfaces.RelatedPost{}
	}
	return related, nil
}

func (s *service) Recent(ctx context.Context, limit int) []*interfaces.Post {
	all := s.store.Posts(ctx, false)
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return clonePosts(all)
}

func (s *service) Featured(ctx context.Context) []*interfaces.Post {
	return s.filter(ctx, func(p *interfaces.Post) bool { return p.Featured })
}

// Archive groups posts by publication year, newest year first.
func (s *service) Archive(ctx context.Context) []interfaces.ArchiveYear {
	var out []interfaces.ArchiveYear
	index := map[int]int{}
	for _, post := range s.store.Posts(ctx, false) {
		year := post.PublishedAt.Year()
		i, ok := index[year]
		if !ok {
			i = len(out)
			index[year] = i
			out = append(out, interfaces.ArchiveYear{Year: year})
		}
		out[i].Posts = append(out[i].Posts, post.Clone())
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Year > out[j].Year })
	if out == nil {
		out = []interfaces.ArchiveYear{}
	}
	return out
}

// Stats summarizes the corpus. LastUpdated is the newest UpdatedAt.
func (s *service) Stats(ctx context.Context) interfaces.BlogStats {
	all := s.store.Posts(ctx, false)
	categories := s.store.Categories(ctx)
	tags := s.store.Tags(ctx)

	stats := interfaces.BlogStats{
		TotalPosts:      len(all),
		TotalCategories: len(categories),
		TotalTags:       len(tags),
		PostsByCategory: make(map[string]int, len(categories)),
		PostsByTag:      make(map[string]int, len(tags)),
		PostsByStatus:   map[string]int{},
	}
	var latest time.Time
	for _, post := range all {
		stats.TotalWords += post.WordCount
		stats.PostsByStatus[string(post.Status)]++
		if post.UpdatedAt.After(latest) {
			latest = post.UpdatedAt
		}
	}
	for _, category := range categories {
		stats.PostsByCategory[category.Slug] = category.PostCount
	}
	for _, tag := range tags {
		stats.PostsByTag[tag.Name] = tag.PostCount
	}
	stats.LastUpdated = latest
	return stats
}

// Render returns nil and no error when no post has slug.
func (s *service) Render(ctx context.Context, slug string) (*interfaces.RenderedPost, error) {
	post := s.find(ctx, slug)
	if post == nil {
		return nil, nil
	}
	html, err := s.renderer.Render([]byte(post.Content))
	if err != nil {
		s.logger.WithContext(ctx).Error("posts.render_failed", "slug", slug, "error", err)
		return nil, renderError(slug, err)
	}
	return &interfaces.RenderedPost{
		Post: post.Clone(),
		HTML: string(html),
		TOC:  markdown.TableOfContents([]byte(post.Content)),
	}, nil
}

func (s *service) ClearCache() {
	s.store.Invalidate()
}

func (s *service) CacheStatus() interfaces.CacheStatus {
	return s.store.Status()
}

func (s *service) find(ctx context.Context, slug string) *interfaces.Post {
	return findIn(s.store.Posts(ctx, false), slug)
}

func (s *service) filter(ctx context.Context, keep func(*interfaces.Post) bool) []*interfaces.Post {
	out := []*interfaces.Post{}
	for _, post := range s.store.Posts(ctx, false) {
		if keep(post) {
			out = append(out, post.Clone())
		}
	}
	return out
}

func findIn(all []*interfaces.Post, slug string) *interfaces.Post {
	for _, post := range all {
		if post.Slug == slug {
			return post
		}
	}
	return nil
}

func clonePosts(in []*interfaces.Post) []*interfaces.Post {
	out := make([]*interfaces.Post, len(in))
	for i, post := range in {
		out[i] = post.Clone()
	}
	return out
}
