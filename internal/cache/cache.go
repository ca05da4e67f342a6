// Package cache memoizes the post corpus and the category and tag listings
// derived from it.
//
// Each of the three views has its own timestamp and shares one TTL. A view
// is fresh while now - storedAt < TTL. Rebuilds are not serialized unless
// single flight is enabled: concurrent misses each run the loader and the
// last one to finish wins. Category and tag views are derived from whatever
// posts value is current when they expire, so they can trail the posts view
// by one refresh.
package cache

import (
	"context"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"golang.org/x/sync/singleflight"

	"github.com/goliatone/go-blog/internal/categories"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/taxonomy"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Slot names, as reported by Status and passed to the Recorder.
const (
	SlotPosts      = "posts"
	SlotCategories = "categories"
	SlotTags       = "tags"
)

// DefaultTTL applies when Options.TTL is not positive.
const DefaultTTL = 2 * time.Minute

// LoadFunc produces a posts value.
type LoadFunc func(ctx context.Context) ([]*interfaces.Post, error)

// Options configures New. Load is required.
type Options struct {
	TTL time.Duration
	// Load rebuilds the corpus on expiry.
	Load LoadFunc
	// Default produces the corpus served when Load fails and nothing was
	// cached before. Its result is never stored.
	Default      LoadFunc
	Registry     *categories.Registry
	Logger       interfaces.Logger
	Recorder     Recorder
	Clock        func() time.Time
	SingleFlight bool
}

// Cache holds the posts, categories and tags views. Values handed out are
// shared with the cache and must be treated as read-only.
type Cache struct {
	ttl        time.Duration
	load       LoadFunc
	fallback   LoadFunc
	registry   *categories.Registry
	logger     interfaces.Logger
	recorder   Recorder
	now        func() time.Time
	group      *singleflight.Group
	posts      *slot[[]*interfaces.Post]
	categories *slot[[]interfaces.Category]
	tags       *slot[[]interfaces.Tag]
}

// New builds a Cache.
func New(opts Options) *Cache {
	c := &Cache{
		ttl:        opts.TTL,
		load:       opts.Load,
		fallback:   opts.Default,
		registry:   opts.Registry,
		logger:     opts.Logger,
		recorder:   opts.Recorder,
		now:        opts.Clock,
		posts:      newSlot(SlotPosts, func(v []*interfaces.Post) int { return len(v) }),
		categories: newSlot(SlotCategories, func(v []interfaces.Category) int { return len(v) }),
		tags:       newSlot(SlotTags, func(v []interfaces.Tag) int { return len(v) }),
	}
	if c.ttl <= 0 {
		c.ttl = DefaultTTL
	}
	if c.registry == nil {
		c.registry = categories.Default()
	}
	if c.logger == nil {
		c.logger = logging.NoOp()
	}
	if c.recorder == nil {
		c.recorder = nopRecorder{}
	}
	if c.now == nil {
		c.now = time.Now
	}
	if opts.SingleFlight {
		c.group = &singleflight.Group{}
	}
	return c
}

// TTL returns the freshness window.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Posts returns the cached corpus, rebuilding it when stale or when force is
// set. When the rebuild fails the previous value is served, and without one
// the default corpus.
func (c *Cache) Posts(ctx context.Context, force bool) []*interfaces.Post {
	posts, _ := c.currentPosts(ctx, force)
	return posts
}

// Categories returns the category listing with post counts.
func (c *Cache) Categories(ctx context.Context) []interfaces.Category {
	if value, ok := c.categories.fresh(c.now(), c.ttl); ok {
		c.recorder.Hit(SlotCategories)
		return value
	}
	c.recorder.Miss(SlotCategories)
	posts, cacheable := c.currentPosts(ctx, false)
	value := taxonomy.Categories(c.registry, posts)
	if cacheable {
		c.categories.store(value, c.now())
	}
	return value
}

// Tags returns the tag listing with post counts.
func (c *Cache) Tags(ctx context.Context) []interfaces.Tag {
	if value, ok := c.tags.fresh(c.now(), c.ttl); ok {
		c.recorder.Hit(SlotTags)
		return value
	}
	c.recorder.Miss(SlotTags)
	posts, cacheable := c.currentPosts(ctx, false)
	value := taxonomy.Tags(posts)
	if cacheable {
		c.tags.store(value, c.now())
	}
	return value
}

// Invalidate drops all three views. The next read of each rebuilds it.
func (c *Cache) Invalidate() {
	c.posts.clear()
	c.categories.clear()
	c.tags.clear()
	c.logger.Debug("cache.invalidated")
}

// Status reports the state of each view.
func (c *Cache) Status() interfaces.CacheStatus {
	now := c.now()
	return interfaces.CacheStatus{
		TTL: c.ttl,
		Slots: []interfaces.SlotStatus{
			c.posts.status(now, c.ttl),
			c.categories.status(now, c.ttl),
			c.tags.status(now, c.ttl),
		},
	}
}

// currentPosts reports whether the returned value came from the posts slot
// or a successful rebuild, as opposed to the uncached default corpus.
func (c *Cache) currentPosts(ctx context.Context, force bool) ([]*interfaces.Post, bool) {
	logger := c.logger.WithContext(ctx)
	if !force {
		if value, ok := c.posts.fresh(c.now(), c.ttl); ok {
			c.recorder.Hit(SlotPosts)
			return value, true
		}
	}
	c.recorder.Miss(SlotPosts)

	value, err := c.rebuild(ctx)
	if err == nil {
		c.posts.store(value, c.now())
		return value, true
	}

	if stale, ok := c.posts.stale(); ok {
		c.recorder.Stale(SlotPosts)
		logger.Warn("cache.serving_stale", "slot", SlotPosts, "error", err)
		return stale, true
	}

	c.recorder.Default(SlotPosts)
	logger.Error("cache.serving_default", "slot", SlotPosts, "error", err)
	return c.defaultPosts(ctx), false
}

// rebuild runs the loader detached from ctx cancellation. A caller going
// away does not abort a rebuild that other readers, or single-flight waiters,
// will use.
func (c *Cache) rebuild(ctx context.Context) ([]*interfaces.Post, error) {
	ctx = context.WithoutCancel(ctx)
	run := func() (value []*interfaces.Post, err error) {
		started := c.now()
		defer func() {
			if r := recover(); r != nil {
				err = goerrors.New(fmt.Sprintf("corpus loader panicked: %v", r), goerrors.CategoryInternal).
					WithTextCode("CORPUS_LOADER_PANIC")
			}
			c.recorder.Rebuild(SlotPosts, c.now().Sub(started), err)
		}()
		return c.load(ctx)
	}
	if c.group == nil {
		return run()
	}
	v, err, _ := c.group.Do(SlotPosts, func() (any, error) {
		return run()
	})
	posts, _ := v.([]*interfaces.Post)
	return posts, err
}

func (c *Cache) defaultPosts(ctx context.Context) []*interfaces.Post {
	if c.fallback == nil {
		return []*interfaces.Post{}
	}
	posts, err := c.fallback(ctx)
	if err != nil {
		c.logger.WithContext(ctx).Error("cache.default_failed", "error", err)
		return []*interfaces.Post{}
	}
	return posts
}
