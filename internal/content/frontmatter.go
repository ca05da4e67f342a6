package content

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// FrontMatter is the metadata block of a content file. Dates stay strings so
// any layout can be parsed later; loosely typed keys are coerced by the
// Builder, which logs values it cannot use.
type FrontMatter struct {
	ID          string         `yaml:"id" json:"id,omitempty"`
	Slug        string         `yaml:"slug" json:"slug,omitempty"`
	Title       string         `yaml:"title" json:"title,omitempty"`
	Excerpt     string         `yaml:"excerpt" json:"excerpt,omitempty"`
	Date        string         `yaml:"date" json:"date,omitempty"`
	PublishedAt string         `yaml:"publishedAt" json:"publishedAt,omitempty"`
	Category    string         `yaml:"category" json:"category,omitempty"`
	Tags        any            `yaml:"tags" json:"tags,omitempty"`
	Author      string         `yaml:"author" json:"author,omitempty"`
	Status      string         `yaml:"status" json:"status,omitempty"`
	Featured    any            `yaml:"featured" json:"featured,omitempty"`
	CoverImage  string         `yaml:"coverImage" json:"coverImage,omitempty"`
	WordCount   any            `yaml:"wordCount" json:"wordCount,omitempty"`
	ReadingTime any            `yaml:"readingTime" json:"readingTime,omitempty"`
	Views       any            `yaml:"views" json:"views,omitempty"`
	Custom      map[string]any `yaml:",inline" json:"custom,omitempty"`
}

var (
	errUnterminated = errors.New("front matter block is not terminated")
	utf8BOM         = []byte("\ufeff")
)

// yamlFormats decode with yaml.v3 instead of the library default yaml.v2 so
// nested maps come back as map[string]any.
var yamlFormats = []*frontmatter.Format{
	frontmatter.NewFormat("---", "---", yaml.Unmarshal),
	frontmatter.NewFormat("---yaml", "---", yaml.Unmarshal),
}

// ParseFrontMatter splits source into metadata and body. A file that does
// not open with a delimiter line has no metadata and is all body. An opening
// delimiter without a closing one, or YAML that does not decode, is an error.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	source = bytes.TrimPrefix(source, utf8BOM)

	var meta FrontMatter
	if !opensWithDelimiter(source) {
		return meta, source, nil
	}

	body, err := frontmatter.MustParse(bytes.NewReader(source), &meta, yamlFormats...)
	if errors.Is(err, frontmatter.ErrNotFound) {
		return FrontMatter{}, nil, errUnterminated
	}
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("decode front matter: %w", err)
	}
	return meta, body, nil
}

// RawFrontMatter decodes the metadata block into a generic map, keeping the
// YAML types. Files without metadata yield an empty map.
func RawFrontMatter(source []byte) (map[string]any, error) {
	source = bytes.TrimPrefix(source, utf8BOM)
	raw := map[string]any{}
	if !opensWithDelimiter(source) {
		return raw, nil
	}
	_, err := frontmatter.MustParse(bytes.NewReader(source), &raw, yamlFormats...)
	if errors.Is(err, frontmatter.ErrNotFound) {
		return nil, errUnterminated
	}
	if err != nil {
		return nil, fmt.Errorf("decode front matter: %w", err)
	}
	return raw, nil
}

// opensWithDelimiter mirrors the library's detection: blank lines are
// skipped and the first other line must be a start delimiter.
func opensWithDelimiter(source []byte) bool {
	scanner := bufio.NewScanner(bytes.NewReader(source))
	scanner.Buffer(make([]byte, 0, 4096), len(source)+1)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		for _, f := range yamlFormats {
			if string(line) == f.Start {
				return true
			}
		}
		return false
	}
	return false
}
