package markdown

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Renderer implements interfaces.MarkdownRenderer on top of goldmark.
// Engines are built once per distinct option set and reused; a Renderer is
// safe for concurrent use.
type Renderer struct {
	defaults interfaces.RenderOptions
	engines  sync.Map // engineKey -> goldmark.Markdown
}

var _ interfaces.MarkdownRenderer = (*Renderer)(nil)

// NewRenderer returns a renderer that uses defaults unless a call overrides
// them. An empty extension list enables GFM, linkify and task lists.
func NewRenderer(defaults interfaces.RenderOptions) *Renderer {
	return &Renderer{defaults: defaults}
}

// Render converts markdown to HTML with the default options.
func (r *Renderer) Render(markdown []byte) ([]byte, error) {
	return r.RenderWithOptions(markdown, r.defaults)
}

// RenderWithOptions converts markdown to HTML. Heading ids follow Anchor so
// links from TableOfContents resolve.
func (r *Renderer) RenderWithOptions(markdown []byte, opts interfaces.RenderOptions) ([]byte, error) {
	pctx := parser.NewContext(parser.WithIDs(newAnchorIDs()))
	var out bytes.Buffer
	if err := r.engine(opts).Convert(markdown, &out, parser.WithContext(pctx)); err != nil {
		return nil, fmt.Errorf("markdown render: %w", err)
	}
	return out.Bytes(), nil
}

type engineKey struct {
	extensions string
	hardWraps  bool
	safeMode   bool
}

func (r *Renderer) engine(opts interfaces.RenderOptions) goldmark.Markdown {
	names := resolveExtensions(opts.Extensions)
	key := engineKey{
		extensions: strings.Join(names, ","),
		hardWraps:  opts.HardWraps,
		safeMode:   opts.SafeMode,
	}
	if cached, ok := r.engines.Load(key); ok {
		return cached.(goldmark.Markdown)
	}
	engine, _ := r.engines.LoadOrStore(key, buildEngine(names, opts))
	return engine.(goldmark.Markdown)
}

func buildEngine(names []string, opts interfaces.RenderOptions) goldmark.Markdown {
	var htmlOpts []renderer.Option
	if opts.HardWraps {
		htmlOpts = append(htmlOpts, html.WithHardWraps())
	}
	if !opts.SafeMode {
		htmlOpts = append(htmlOpts, html.WithUnsafe())
	}

	exts := make([]goldmark.Extender, 0, len(names))
	for _, name := range names {
		exts = append(exts, extenders[name])
	}

	return goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(htmlOpts...),
	)
}
