// Package markdown renders post bodies to HTML with goldmark and extracts
// their table of contents. Heading ids in the HTML and TOC entries share the
// Anchor rule.
package markdown
