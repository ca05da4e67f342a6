package categories

import (
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestDefaultRegistryLookupIsCaseSensitive(t *testing.T) {
	r := Default()

	entry, ok := r.Lookup("tech")
	if !ok || entry.Name != "技术分享" || entry.Color != "#52c41a" {
		t.Fatalf("unexpected tech entry: %+v %v", entry, ok)
	}
	if _, ok := r.Lookup("Tech"); ok {
		t.Fatal("lookup must be case-sensitive")
	}
}

func TestResolveSynthesizesUnknownDirectory(t *testing.T) {
	r := Default()

	entry, registered := r.Resolve("side-projects")
	if registered {
		t.Fatal("side-projects is not registered")
	}
	if entry.Name != "Side Projects" || entry.Slug != "side-projects" {
		t.Fatalf("unexpected synthesized entry: %+v", entry)
	}
	if entry.Icon != FallbackIcon || entry.Order != FallbackOrder {
		t.Fatalf("expected fallback presentation, got %+v", entry)
	}

	upper, _ := r.Resolve("Tech")
	if upper.Slug != "tech" || upper.Icon != FallbackIcon {
		t.Fatalf("Tech should synthesize its own category, got %+v", upper)
	}
}

func TestAllCollapsesAliasesAndOrders(t *testing.T) {
	all := Default().All()

	want := []string{"thinking", "tech", "life", "diary", "project-review"}
	if len(all) != len(want) {
		t.Fatalf("expected %d categories, got %d: %+v", len(want), len(all), all)
	}
	for i, slug := range want {
		if all[i].Slug != slug {
			t.Fatalf("position %d: want %s got %s", i, slug, all[i].Slug)
		}
	}

	r := Default()
	for _, key := range []string{"项目复盘", "project-review"} {
		entry, ok := r.Lookup(key)
		if !ok || entry.Slug != "project-review" {
			t.Fatalf("alias %s should map to project-review, got %+v", key, entry)
		}
	}
}

func TestBySlug(t *testing.T) {
	entry, ok := Default().BySlug("life")
	if !ok || entry.Icon != "🌱" {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if _, ok := Default().BySlug("missing"); ok {
		t.Fatal("expected miss")
	}
}

func TestRegisterRejectsInvalidEntry(t *testing.T) {
	_, err := NewRegistry(Entry{Key: "x", Slug: "x", Color: "blue"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsValidation(err) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestCategoryProjection(t *testing.T) {
	entry, _ := Default().Lookup("thinking")
	category := entry.Category()
	if category.ID == "" || category.Slug != "thinking" || category.PostCount != 0 {
		t.Fatalf("unexpected projection %+v", category)
	}
	ref := category.Ref()
	if ref.Name != "思考笔记" || ref.Icon != "🤔" {
		t.Fatalf("unexpected ref %+v", ref)
	}
}
