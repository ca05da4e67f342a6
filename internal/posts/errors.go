package posts

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	TextCodeInvalidFilter = "POST_FILTER_INVALID"
	TextCodeRenderFailed  = "POST_RENDER_FAILED"
)

// CategoryRender marks Markdown rendering failures.
var CategoryRender = goerrors.CategoryInternal.Extend("render")

func renderError(slug string, err error) error {
	return goerrors.Wrap(err, CategoryRender, "render post").
		WithTextCode(TextCodeRenderFailed).
		WithMetadata(map[string]any{"slug": slug})
}
