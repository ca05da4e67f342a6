package posts

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-blog/internal/cache"
	"github.com/goliatone/go-blog/internal/content"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newPipeline(t *testing.T, fsys fstest.MapFS) Service {
	t.Helper()
	builder := content.NewBuilder(fsys, content.WithBuilderClock(func() time.Time { return fixedNow }))
	loader := content.NewLoader(content.NewScanner(fsys), builder)
	c := cache.New(cache.Options{
		TTL: time.Minute,
		Load: func(ctx context.Context) ([]*interfaces.Post, error) {
			result, err := loader.Load(ctx)
			return result.Posts, err
		},
		Default: loader.Fallback,
	})
	return NewService(c)
}

func md(body string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(body), ModTime: fixedNow}
}

func TestServiceTechLifeCorpus(t *testing.T) {
	svc := newPipeline(t, fstest.MapFS{
		"tech/a.md": md("---\ntitle: \"A\"\n---\nAlpha body.\n"),
		"life/b.md": md("---\ntitle: \"B\"\ntags: [\"x\", \"y\"]\nfeatured: true\n---\nBeta body.\n"),
	})
	ctx := context.Background()

	counts := map[string]int{}
	for _, category := range svc.Categories(ctx) {
		counts[category.Slug] = category.PostCount
	}
	if counts["tech"] != 1 || counts["life"] != 1 {
		t.Fatalf("unexpected category counts %v", counts)
	}

	tags := svc.Tags(ctx)
	if len(tags) != 2 {
		t.Fatalf("expected 2 tags, got %+v", tags)
	}
	for _, tag := range tags {
		if tag.PostCount != 1 {
			t.Fatalf("expected count 1 for %q, got %d", tag.Name, tag.PostCount)
		}
	}

	byTag, err := svc.PostsByTag(ctx, "x")
	if err != nil {
		t.Fatalf("PostsByTag: %v", err)
	}
	if len(byTag) != 1 || byTag[0].Slug != "b" {
		t.Fatalf("expected [b], got %+v", byTag)
	}

	post, err := svc.PostBySlug(ctx, "a")
	if err != nil {
		t.Fatalf("PostBySlug: %v", err)
	}
	if post == nil || post.Category.Slug != "tech" {
		t.Fatalf("expected post a in tech, got %+v", post)
	}

	featured := svc.Featured(ctx)
	if len(featured) != 1 || featured[0].Slug != "b" {
		t.Fatalf("expected b featured, got %+v", featured)
	}
}

func TestServiceNotFoundIsNotAnError(t *testing.T) {
	svc := newPipeline(t, fstest.MapFS{"tech/a.md": md("# A\n")})
	ctx := context.Background()

	post, err := svc.PostBySlug(ctx, "missing")
	if err != nil || post != nil {
		t.Fatalf("expected nil, nil; got %+v, %v", post, err)
	}
	list, err := svc.PostsByCategory(ctx, "no-such-category")
	if err != nil || list == nil || len(list) != 0 {
		t.Fatalf("expected empty slice, got %+v, %v", list, err)
	}
	list, err = svc.PostsByTag(ctx, "no-such-tag")
	if err != nil || list == nil || len(list) != 0 {
		t.Fatalf("expected empty slice, got %+v, %v", list, err)
	}
	if cat, _ := svc.CategoryBySlug(ctx, "nope"); cat != nil {
		t.Fatalf("expected nil category, got %+v", cat)
	}
	if rendered, err := svc.Render(ctx, "missing"); rendered != nil || err != nil {
		t.Fatalf("expected nil render, got %+v, %v", rendered, err)
	}
}

func TestServiceRegisteredCategoryWithoutPosts(t *testing.T) {
	svc := newPipeline(t, fstest.MapFS{"tech/a.md": md("# A\n")})
	list, err := svc.PostsByCategory(context.Background(), "diary")
	if err != nil || len(list) != 0 {
		t.Fatalf("expected no diary posts, got %+v, %v", list, err)
	}
	cat, _ := svc.CategoryBySlug(context.Background(), "diary")
	if cat == nil || cat.PostCount != 0 {
		t.Fatalf("expected registered diary category, got %+v", cat)
	}
}

func TestServiceResultsAreCopies(t *testing.T) {
	svc := newPipeline(t, fstest.MapFS{
		"life/b.md": md("---\ntitle: B\ntags: [x]\n---\nbody\n"),
	})
	ctx := context.Background()

	first, _ := svc.PostBySlug(ctx, "b")
	first.Title = "mutated"
	first.Tags[0] = "mutated"

	again, _ := svc.PostBySlug(ctx, "b")
	if again.Title != "B" || again.Tags[0] != "x" {
		t.Fatalf("cached post was mutated: %+v", again)
	}

	all := svc.AllPosts(ctx, false)
	all[0].Slug = "changed"
	if svc.AllPosts(ctx, false)[0].Slug != "b" {
		t.Fatal("AllPosts leaked cached pointers")
	}
}

func TestServiceRender(t *testing.T) {
	svc := newPipeline(t, fstest.MapFS{
		"tech/guide.md": md("---\ntitle: Guide\n---\n# Guide\n\n## Install\n\nRun it.\n"),
	})
	rendered, err := svc.Render(context.Background(), "guide")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(rendered.HTML, `<h2 id="install">Install</h2>`) {
		t.Fatalf("unexpected html %s", rendered.HTML)
	}
	if len(rendered.TOC) != 1 || len(rendered.TOC[0].Children) != 1 || rendered.TOC[0].Children[0].ID != "install" {
		t.Fatalf("unexpected toc %+v", rendered.TOC)
	}
}

func TestServiceClearCacheReloads(t *testing.T) {
	fsys := fstest.MapFS{"tech/a.md": md("# A\n")}
	svc := newPipeline(t, fsys)
	ctx := context.Background()

	if len(svc.AllPosts(ctx, false)) != 1 {
		t.Fatal("expected one post")
	}
	fsys["tech/b.md"] = md("# B\n")
	if len(svc.AllPosts(ctx, false)) != 1 {
		t.Fatal("expected cached corpus before invalidation")
	}
	svc.ClearCache()
	for _, slot := range svc.CacheStatus().Slots {
		if slot.Populated {
			t.Fatalf("expected cleared slot %+v", slot)
		}
	}
	if len(svc.AllPosts(ctx, false)) != 2 {
		t.Fatal("expected reload after ClearCache")
	}
}

func TestServiceEmptyRootServesTemplate(t *testing.T) {
	svc := newPipeline(t, fstest.MapFS{})
	all := svc.AllPosts(context.Background(), false)
	if len(all) != 1 || all[0].Slug != content.FallbackSlug {
		t.Fatalf("expected template post, got %+v", all)
	}
}
