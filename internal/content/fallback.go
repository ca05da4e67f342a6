package content

import (
	"context"
	_ "embed"
	"sync"
	"time"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// FallbackSlug is the slug of the built-in post served when no content can be
// loaded from disk.
const FallbackSlug = "markdown-template"

const fallbackPath = "markdown-template.md"

//go:embed template/markdown-template.md
var fallbackSource []byte

var fallbackDate = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

var templateFrontMatter = sync.OnceValues(func() (FrontMatter, error) {
	meta, _, err := ParseFrontMatter(fallbackSource)
	return meta, err
})

// Fallback builds the built-in template post with b. A failure here means
// the embedded template is broken and is reported as an internal error.
func (b *Builder) Fallback(ctx context.Context) (*interfaces.Post, error) {
	if _, err := templateFrontMatter(); err != nil {
		return nil, fallbackError(err)
	}
	post, err := b.BuildSource(ctx, fallbackPath, fallbackSource, fallbackDate)
	if err != nil {
		return nil, fallbackError(err)
	}
	return post, nil
}
