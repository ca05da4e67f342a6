package markdown

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

var anchorSeparators = regexp.MustCompile(`[^\w\x{4e00}-\x{9fa5}]+`)

// Anchor derives the fragment id for a heading title. The title is
// lowercased and every run of characters outside [A-Za-z0-9_] and the CJK
// unified ideographs becomes a single hyphen; edge hyphens are trimmed.
func Anchor(title string) string {
	return strings.Trim(anchorSeparators.ReplaceAllString(strings.ToLower(title), "-"), "-")
}

var tocParser = goldmark.New(goldmark.WithExtensions(extension.GFM)).Parser()

// TableOfContents returns the headings of markdown nested by level. A heading
// becomes a child of the closest preceding heading with a smaller level.
// Headings inside code blocks are not included.
func TableOfContents(markdown []byte) []interfaces.TocItem {
	doc := tocParser.Parse(text.NewReader(markdown))
	ids := newAnchorIDs()

	var headings []interfaces.TocItem
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		title := strings.TrimSpace(string(heading.Text(markdown)))
		headings = append(headings, interfaces.TocItem{
			ID:    string(ids.Generate([]byte(title), ast.KindHeading)),
			Title: title,
			Level: heading.Level,
		})
		return ast.WalkSkipChildren, nil
	})
	return nest(headings)
}

func nest(headings []interfaces.TocItem) []interfaces.TocItem {
	var (
		roots []interfaces.TocItem
		// path indexes into roots, then into each nested Children slice.
		path   []int
		levels []int
	)
	for _, item := range headings {
		for len(levels) > 0 && levels[len(levels)-1] >= item.Level {
			levels = levels[:len(levels)-1]
			path = path[:len(path)-1]
		}
		siblings := &roots
		for _, idx := range path {
			siblings = &(*siblings)[idx].Children
		}
		*siblings = append(*siblings, item)
		path = append(path, len(*siblings)-1)
		levels = append(levels, item.Level)
	}
	return roots
}

// anchorIDs implements parser.IDs with the Anchor rule. Repeated anchors get
// a numeric suffix.
type anchorIDs struct {
	used map[string]int
}

func newAnchorIDs() *anchorIDs {
	return &anchorIDs{used: map[string]int{}}
}

func (a *anchorIDs) Generate(value []byte, _ ast.NodeKind) []byte {
	id := Anchor(string(value))
	if id == "" {
		id = "heading"
	}
	n, seen := a.used[id]
	a.used[id] = n + 1
	if seen {
		id = id + "-" + strconv.Itoa(n)
	}
	return []byte(id)
}

func (a *anchorIDs) Put(value []byte) {
	a.used[string(value)]++
}
