package content

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"io/fs"
	"sort"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/frontmatter.json
var frontMatterSchema []byte

const frontMatterSchemaURL = "frontmatter.json"

// Issue is one problem found in a file's front matter. Location is a JSON
// pointer into the metadata, empty for file level problems.
type Issue struct {
	Path     string `json:"path"`
	Location string `json:"location,omitempty"`
	Message  string `json:"message"`
}

// Validator checks front matter against the embedded JSON schema. It is
// stricter than the Builder, which defaults what it can; use it to lint a
// content tree before publishing.
type Validator struct {
	fsys    fs.FS
	scanner *Scanner
	schema  *jsonschema.Schema
}

// NewValidator compiles the schema.
func NewValidator(fsys fs.FS, scanner *Scanner) (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(frontMatterSchemaURL, bytes.NewReader(frontMatterSchema)); err != nil {
		return nil, err
	}
	schema, err := compiler.Compile(frontMatterSchemaURL)
	if err != nil {
		return nil, err
	}
	return &Validator{fsys: fsys, scanner: scanner, schema: schema}, nil
}

// ValidateAll checks every file the scanner finds. Files without issues are
// omitted from the result.
func (v *Validator) ValidateAll(ctx context.Context) []Issue {
	var issues []Issue
	for _, p := range v.scanner.Scan(ctx) {
		if ctx.Err() != nil {
			break
		}
		issues = append(issues, v.ValidateFile(p)...)
	}
	return issues
}

// ValidateFile checks one file.
func (v *Validator) ValidateFile(p string) []Issue {
	source, err := fs.ReadFile(v.fsys, p)
	if err != nil {
		return []Issue{{Path: p, Message: err.Error()}}
	}
	return v.ValidateSource(p, source)
}

// ValidateSource checks source as if read from p.
func (v *Validator) ValidateSource(p string, source []byte) []Issue {
	raw, err := RawFrontMatter(source)
	if err != nil {
		return []Issue{{Path: p, Message: err.Error()}}
	}

	doc, err := jsonDocument(raw)
	if err != nil {
		return []Issue{{Path: p, Message: err.Error()}}
	}

	err = v.schema.Validate(doc)
	if err == nil {
		return nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return []Issue{{Path: p, Message: err.Error()}}
	}

	var issues []Issue
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Path:     p,
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(verr)
	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Location < issues[j].Location })
	return issues
}

// jsonDocument round-trips YAML values through JSON so dates become strings
// and numbers become json.Number, the shapes the schema validator expects.
func jsonDocument(raw map[string]any) (any, error) {
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(encoded))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}
