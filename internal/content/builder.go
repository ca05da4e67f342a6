package content

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cast"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/goliatone/go-blog/internal/categories"
	"github.com/goliatone/go-blog/internal/identity"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/slugs"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Builder turns one content file into a normalized post.
//
// Every field is taken from front matter when present, then from a value
// computed from the file, then from the fallback template. The category is
// always derived from the parent directory; a front matter category is kept
// on the post for reference but never used for classification.
type Builder struct {
	fsys          fs.FS
	registry      *categories.Registry
	logger        interfaces.Logger
	now           func() time.Time
	excerptLength int
	wpm           int
	title         cases.Caser
	template      FrontMatter
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithRegistry replaces the default category registry.
func WithRegistry(registry *categories.Registry) BuilderOption {
	return func(b *Builder) {
		if registry != nil {
			b.registry = registry
		}
	}
}

// WithBuilderLogger sets the logger used for per-file warnings.
func WithBuilderLogger(logger interfaces.Logger) BuilderOption {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithBuilderClock overrides the clock used for missing dates.
func WithBuilderClock(now func() time.Time) BuilderOption {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// WithExcerptLength sets the excerpt size in characters.
func WithExcerptLength(n int) BuilderOption {
	return func(b *Builder) {
		if n > 0 {
			b.excerptLength = n
		}
	}
}

// WithWordsPerMinute sets the reading speed used for ReadingTime.
func WithWordsPerMinute(n int) BuilderOption {
	return func(b *Builder) {
		if n > 0 {
			b.wpm = n
		}
	}
}

// NewBuilder reads files from fsys.
func NewBuilder(fsys fs.FS, opts ...BuilderOption) *Builder {
	b := &Builder{
		fsys:          fsys,
		registry:      categories.Default(),
		logger:        logging.NoOp(),
		now:           time.Now,
		excerptLength: 200,
		wpm:           200,
		title:         cases.Title(language.Und),
	}
	for _, opt := range opts {
		opt(b)
	}
	if tmpl, err := templateFrontMatter(); err == nil {
		b.template = tmpl
	}
	return b
}

// Build reads and normalizes the file at the root-relative slash path p.
func (b *Builder) Build(ctx context.Context, p string) (*interfaces.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	source, err := fs.ReadFile(b.fsys, p)
	if err != nil {
		return nil, readError(p, err)
	}
	var modTime time.Time
	if info, err := fs.Stat(b.fsys, p); err == nil {
		modTime = info.ModTime()
	}
	return b.BuildSource(ctx, p, source, modTime)
}

// BuildSource normalizes source as if it had been read from p.
func (b *Builder) BuildSource(ctx context.Context, p string, source []byte, modTime time.Time) (*interfaces.Post, error) {
	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, parseError(p, err)
	}

	readAt := b.now()
	logger := logging.WithPostContext(b.logger, p, meta.Slug).WithContext(ctx)
	content := string(body)

	post := &interfaces.Post{
		FilePath:         p,
		Content:          content,
		DeclaredCategory: strings.TrimSpace(meta.Category),
		Author:           firstNonEmpty(meta.Author, interfaces.DefaultAuthor),
		CoverImage:       strings.TrimSpace(meta.CoverImage),
		Checksum:         checksum(source),
		UpdatedAt:        modTime,
	}
	if post.UpdatedAt.IsZero() {
		post.UpdatedAt = readAt
	}

	post.Slug = firstNonEmpty(meta.Slug, fileStem(p))
	if declared := strings.TrimSpace(meta.Slug); declared != "" && !slugs.Valid(declared) {
		logger.Warn("content.slug_not_url_safe", "slug", declared)
	}
	post.ID = firstNonEmpty(meta.ID, identity.PostID(p))
	post.Title = firstNonEmpty(meta.Title, b.titleFromStem(fileStem(p)), b.template.Title)
	post.Category = b.category(p, post.DeclaredCategory, logger)
	post.Tags = b.tags(meta.Tags, logger)
	post.Date, post.PublishedAt = b.dates(meta, readAt, logger)
	post.Status = b.status(meta.Status, logger)
	post.Featured = b.featured(meta.Featured, logger)
	post.Excerpt = firstNonEmpty(meta.Excerpt, Excerpt(content, b.excerptLength))
	post.WordCount = b.count("wordCount", meta.WordCount, WordCount(content), logger)
	post.ReadingTime = b.count("readingTime", meta.ReadingTime, ReadingTime(post.WordCount, b.wpm), logger)
	if meta.Views != nil {
		if views, err := cast.ToIntE(meta.Views); err == nil && views >= 0 {
			post.Views = &views
		} else {
			logger.Warn("content.invalid_field", "field", "views", "value", meta.Views)
		}
	}
	return post, nil
}

func (b *Builder) category(p, declared string, logger interfaces.Logger) interfaces.CategoryRef {
	dir := parentDir(p)
	if dir == "" {
		dir = b.template.Category
	}
	entry, registered := b.registry.Resolve(dir)
	if !registered {
		logger.Debug("content.category_synthesized", "dir", dir, "slug", entry.Slug)
	}
	if declared != "" && declared != dir && declared != entry.Slug && declared != entry.Name {
		logger.Debug("content.category_ignored", "declared", declared, "resolved", entry.Slug)
	}
	return interfaces.CategoryRef{Name: entry.Name, Slug: entry.Slug, Icon: entry.Icon, Color: entry.Color}
}

// tags accepts a list of strings or of {name: ...} records. Anything else is
// stringified and logged.
func (b *Builder) tags(raw any, logger interfaces.Logger) []string {
	out := []string{}
	add := func(v any) {
		if name := strings.TrimSpace(fmt.Sprint(v)); name != "" {
			out = append(out, name)
		}
	}
	switch value := raw.(type) {
	case nil:
	case []any:
		for _, item := range value {
			switch tag := item.(type) {
			case string:
				add(tag)
			case map[string]any:
				if name, ok := tag["name"]; ok && name != nil {
					add(name)
					continue
				}
				logger.Warn("content.tag_coerced", "value", tag)
				add(tag)
			default:
				logger.Warn("content.tag_coerced", "value", tag)
				add(tag)
			}
		}
	default:
		logger.Warn("content.tags_coerced", "value", value)
		add(value)
	}
	return out
}

// dates resolves Date and PublishedAt. publishedAt wins for PublishedAt and
// date wins for Date; each falls back to the other, then to readAt.
func (b *Builder) dates(meta FrontMatter, readAt time.Time, logger interfaces.Logger) (time.Time, time.Time) {
	date, dateOK := parseDate("date", meta.Date, logger)
	published, publishedOK := parseDate("publishedAt", meta.PublishedAt, logger)
	switch {
	case dateOK && publishedOK:
		return date, published
	case dateOK:
		return date, date
	case publishedOK:
		return published, published
	default:
		return readAt, readAt
	}
}

func parseDate(field, value string, logger interfaces.Logger) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	parsed, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		logger.Warn("content.invalid_date", "field", field, "value", value, "error", err)
		return time.Time{}, false
	}
	return parsed, true
}

func (b *Builder) status(value string, logger interfaces.Logger) interfaces.PostStatus {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return interfaces.PostStatusPublished
	}
	status := interfaces.PostStatus(value)
	if !status.Valid() {
		logger.Warn("content.invalid_status", "value", value)
		return interfaces.PostStatusPublished
	}
	return status
}

func (b *Builder) featured(value any, logger interfaces.Logger) bool {
	if value == nil {
		return false
	}
	featured, err := cast.ToBoolE(value)
	if err != nil {
		logger.Warn("content.invalid_field", "field", "featured", "value", value)
		return false
	}
	return featured
}

func (b *Builder) count(field string, value any, computed int, logger interfaces.Logger) int {
	if value == nil {
		return computed
	}
	n, err := cast.ToIntE(value)
	if err != nil || n < 0 {
		logger.Warn("content.invalid_field", "field", field, "value", value)
		return computed
	}
	return n
}

func (b *Builder) titleFromStem(stem string) string {
	words := strings.Fields(strings.NewReplacer("-", " ", "_", " ").Replace(stem))
	return b.title.String(strings.Join(words, " "))
}

func parentDir(p string) string {
	dir := path.Dir(p)
	if dir == "." || dir == "/" {
		return ""
	}
	return path.Base(dir)
}

func fileStem(p string) string {
	base := path.Base(p)
	return strings.TrimSuffix(base, path.Ext(base))
}

func checksum(source []byte) string {
	sum := sha256.Sum256(source)
	return hex.EncodeToString(sum[:])
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
