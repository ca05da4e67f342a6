package content

import (
	goerrors "github.com/goliatone/go-errors"
)

// Error categories for per-file failures. Both are absorbed by the Loader and
// only surface to callers of Builder.Build.
var (
	CategoryRead        = goerrors.CategoryOperation.Extend("read")
	CategoryFrontMatter = goerrors.CategoryBadInput.Extend("frontmatter")
	CategoryFallback    = goerrors.CategoryInternal.Extend("fallback")
)

const (
	TextCodeReadFailed     = "CONTENT_READ_FAILED"
	TextCodeParseFailed    = "FRONTMATTER_PARSE_FAILED"
	TextCodeFallbackFailed = "FALLBACK_TEMPLATE_INVALID"
)

func readError(path string, err error) error {
	return goerrors.Wrap(err, CategoryRead, "read content file").
		WithTextCode(TextCodeReadFailed).
		WithMetadata(map[string]any{"path": path})
}

func parseError(path string, err error) error {
	return goerrors.Wrap(err, CategoryFrontMatter, "parse front matter").
		WithTextCode(TextCodeParseFailed).
		WithMetadata(map[string]any{"path": path})
}

func fallbackError(err error) error {
	return goerrors.Wrap(err, CategoryFallback, "build fallback template post").
		WithTextCode(TextCodeFallbackFailed).
		WithSeverity(goerrors.SeverityCritical)
}

// IsReadError reports whether err came from reading a content file.
func IsReadError(err error) bool {
	return goerrors.HasCategory(err, CategoryRead)
}

// IsParseError reports whether err came from malformed front matter.
func IsParseError(err error) bool {
	return goerrors.HasCategory(err, CategoryFrontMatter)
}
