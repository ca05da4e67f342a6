package content

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Report summarizes one corpus build.
type Report struct {
	Scanned    int           `json:"scanned"`
	Built      int           `json:"built"`
	Failed     int           `json:"failed"`
	Duplicates int           `json:"duplicates"`
	Fallback   bool          `json:"fallback"`
	Duration   time.Duration `json:"duration"`
}

// Result is the outcome of Loader.Load.
type Result struct {
	Posts  []*interfaces.Post
	Report Report
}

// Loader builds the whole corpus: scan, build every file concurrently,
// drop duplicate ids and sort newest first.
type Loader struct {
	scanner *Scanner
	builder *Builder
	logger  interfaces.Logger
	workers int
	now     func() time.Time
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithWorkers bounds the number of files built at once. Zero or less means
// one goroutine per file.
func WithWorkers(n int) LoaderOption {
	return func(l *Loader) {
		l.workers = n
	}
}

// WithLoaderLogger sets the logger used for per-file warnings.
func WithLoaderLogger(logger interfaces.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader combines scanner and builder.
func NewLoader(scanner *Scanner, builder *Builder, opts ...LoaderOption) *Loader {
	l := &Loader{
		scanner: scanner,
		builder: builder,
		logger:  logging.NoOp(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type buildOutcome struct {
	post *interfaces.Post
	err  error
}

// Load returns the deduplicated corpus sorted by PublishedAt, newest first,
// with scan order breaking ties. Per-file failures are logged and skipped.
// When nothing usable is found the corpus is the fallback template post.
// Errors are a context that ended before the corpus was complete, or a
// failure to build that fallback.
func (l *Loader) Load(ctx context.Context) (Result, error) {
	started := l.now()
	logger := l.logger.WithContext(ctx)

	paths := l.scanner.Scan(ctx)
	report := Report{Scanned: len(paths)}

	outcomes := l.buildAll(ctx, paths)
	if err := ctx.Err(); err != nil {
		// a cut short scan or build is not an empty corpus
		return Result{}, err
	}

	seen := make(map[string]string, len(outcomes))
	posts := make([]*interfaces.Post, 0, len(outcomes))
	for i, outcome := range outcomes {
		if outcome.err != nil {
			report.Failed++
			logger.Warn("content.build_failed", "path", paths[i], "error", outcome.err)
			continue
		}
		if first, dup := seen[outcome.post.ID]; dup {
			report.Duplicates++
			logger.Warn("content.duplicate_id", "id", outcome.post.ID, "path", paths[i], "kept", first)
			continue
		}
		seen[outcome.post.ID] = paths[i]
		posts = append(posts, outcome.post)
	}
	report.Built = len(posts)

	if len(posts) == 0 {
		fallback, err := l.builder.Fallback(ctx)
		if err != nil {
			return Result{}, err
		}
		logger.Warn("content.corpus_fallback", "scanned", report.Scanned, "failed", report.Failed)
		posts = append(posts, fallback)
		report.Fallback = true
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PublishedAt.After(posts[j].PublishedAt)
	})

	report.Duration = l.now().Sub(started)
	logger.Debug("content.corpus_loaded",
		"posts", len(posts),
		"scanned", report.Scanned,
		"failed", report.Failed,
		"duplicates", report.Duplicates,
	)
	return Result{Posts: posts, Report: report}, nil
}

// Fallback exposes the template post for callers that need a default corpus.
func (l *Loader) Fallback(ctx context.Context) ([]*interfaces.Post, error) {
	post, err := l.builder.Fallback(ctx)
	if err != nil {
		return nil, err
	}
	return []*interfaces.Post{post}, nil
}

// buildAll builds every path in its own goroutine and waits for all of them.
// Results keep the index of their path, so scan order survives the fan-out.
func (l *Loader) buildAll(ctx context.Context, paths []string) []buildOutcome {
	outcomes := make([]buildOutcome, len(paths))
	var g errgroup.Group
	if l.workers > 0 {
		g.SetLimit(l.workers)
	}
	for i, p := range paths {
		g.Go(func() error {
			post, err := l.builder.Build(ctx, p)
			outcomes[i] = buildOutcome{post: post, err: err}
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}
