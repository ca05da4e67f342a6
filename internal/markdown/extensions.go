package markdown

import (
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// defaultExtensions apply when RenderOptions.Extensions is empty.
var defaultExtensions = []string{"gfm", "linkify", "tasklist"}

// extensionAliases maps accepted config names to a canonical name.
var extensionAliases = map[string]string{
	"gfm":           "gfm",
	"table":         "table",
	"tables":        "table",
	"strikethrough": "strikethrough",
	"linkify":       "linkify",
	"autolink":      "linkify",
	"tasklist":      "tasklist",
	"definition":    "definition",
	"footnote":      "footnote",
}

var extenders = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

// KnownExtension reports whether name maps to a goldmark extension.
func KnownExtension(name string) bool {
	_, ok := canonicalExtension(name)
	return ok
}

func canonicalExtension(name string) (string, bool) {
	canonical, ok := extensionAliases[strings.ToLower(strings.TrimSpace(name))]
	return canonical, ok
}

// resolveExtensions returns the sorted canonical names for names, dropping
// unknown entries and duplicates.
func resolveExtensions(names []string) []string {
	if len(names) == 0 {
		names = defaultExtensions
	}
	resolved := make([]string, 0, len(names))
	for _, name := range names {
		if canonical, ok := canonicalExtension(name); ok && !slices.Contains(resolved, canonical) {
			resolved = append(resolved, canonical)
		}
	}
	slices.Sort(resolved)
	return resolved
}
