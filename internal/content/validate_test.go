package content

import (
	"context"
	"testing"
	"testing/fstest"
)

func TestValidatorAcceptsCompleteFrontMatter(t *testing.T) {
	fsys := fstest.MapFS{
		"tech/ok.md": file("---\ntitle: OK\ndate: 2024-01-15\ntags: [go, {name: yaml}]\nstatus: draft\nwordCount: 10\n---\nbody\n"),
	}
	v, err := NewValidator(fsys, NewScanner(fsys))
	if err != nil {
		t.Fatalf("NewValidator: %v", err)
	}
	if issues := v.ValidateAll(context.Background()); len(issues) != 0 {
		t.Fatalf("expected no issues, got %+v", issues)
	}
}

func TestValidatorReportsSchemaViolations(t *testing.T) {
	fsys := fstest.MapFS{
		"tech/bad.md":    file("---\ntitle: Bad\nstatus: pending\nviews: -1\n---\nbody\n"),
		"tech/broken.md": file("---\ntitle: never closed\n"),
	}
	v, err := NewValidator(fsys, NewScanner(fsys))
	if err != nil {
		t.Fatalf("NewValidator: %v", err)
	}

	bad := v.ValidateFile("tech/bad.md")
	locations := map[string]bool{}
	for _, issue := range bad {
		locations[issue.Location] = true
	}
	for _, want := range []string{"", "/status", "/views"} {
		if !locations[want] {
			t.Fatalf("expected an issue at %q, got %+v", want, bad)
		}
	}

	broken := v.ValidateFile("tech/broken.md")
	if len(broken) != 1 || broken[0].Path != "tech/broken.md" {
		t.Fatalf("expected a single file level issue, got %+v", broken)
	}
}
