package taxonomy

import (
	"testing"

	"github.com/goliatone/go-blog/internal/categories"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

func post(slug, category string, tags ...string) *interfaces.Post {
	return &interfaces.Post{Slug: slug, Category: interfaces.CategoryRef{Slug: category, Name: category}, Tags: tags}
}

func TestCategoriesIncludesEmptyAndSynthesized(t *testing.T) {
	posts := []*interfaces.Post{
		post("a", "tech"),
		post("b", "life"),
		post("c", "tech"),
		post("d", "book-notes"),
	}
	got := Categories(categories.Default(), posts)

	want := map[string]int{"thinking": 0, "tech": 2, "life": 1, "diary": 0, "project-review": 0, "book-notes": 1}
	if len(got) != len(want) {
		t.Fatalf("expected %d categories, got %+v", len(want), got)
	}
	for _, c := range got {
		if c.PostCount != want[c.Slug] {
			t.Fatalf("%s: want %d got %d", c.Slug, want[c.Slug], c.PostCount)
		}
	}
	if got[len(got)-1].Slug != "book-notes" {
		t.Fatalf("synthesized categories should come last, got %s", got[len(got)-1].Slug)
	}
}

func TestTagsCountAndOrder(t *testing.T) {
	posts := []*interfaces.Post{
		post("a", "tech", "go", "复盘"),
		post("b", "tech", "go"),
		post("c", "life", "zen", "go"),
	}
	got := Tags(posts)
	if len(got) != 3 {
		t.Fatalf("expected 3 tags, got %+v", got)
	}
	if got[0].Name != "go" || got[0].PostCount != 3 || got[0].Slug != "go" {
		t.Fatalf("unexpected first tag %+v", got[0])
	}
	if got[1].Name != "zen" || got[2].Name != "复盘" || got[2].Slug != "review" {
		t.Fatalf("ties should sort by name: %+v", got)
	}
}

func TestFindHelpers(t *testing.T) {
	tags := Tags([]*interfaces.Post{post("a", "tech", "Next.js")})
	if tag, ok := FindTag(tags, "nextjs"); !ok || tag.Name != "Next.js" {
		t.Fatalf("expected Next.js, got %+v %v", tag, ok)
	}
	if _, ok := FindTag(tags, "missing"); ok {
		t.Fatal("unexpected hit")
	}
	cats := Categories(categories.Default(), nil)
	if c, ok := FindCategory(cats, "diary"); !ok || c.PostCount != 0 {
		t.Fatalf("unexpected diary %+v", c)
	}
}
