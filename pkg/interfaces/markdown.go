package interfaces

// MarkdownRenderer turns a post body into HTML.
type MarkdownRenderer interface {
	Render(markdown []byte) ([]byte, error)
	RenderWithOptions(markdown []byte, opts RenderOptions) ([]byte, error)
}

// RenderOptions toggles goldmark extensions and HTML output behaviour.
type RenderOptions struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}

// TocItem is one heading in a post's table of contents. Children hold the
// headings nested beneath it.
type TocItem struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Level    int       `json:"level"`
	Children []TocItem `json:"children,omitempty"`
}

// RenderedPost pairs a post with its HTML body and outline.
type RenderedPost struct {
	Post *Post     `json:"post"`
	HTML string    `json:"html"`
	TOC  []TocItem `json:"toc"`
}
