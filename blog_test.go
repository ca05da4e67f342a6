package blog_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	blog "github.com/goliatone/go-blog"
	"github.com/goliatone/go-blog/internal/di"
	"github.com/goliatone/go-blog/internal/logging/console"
)

func newModule(t *testing.T, fsys fstest.MapFS) *blog.Module {
	t.Helper()
	provider := console.NewProvider(console.Options{Writer: io.Discard})
	module, err := blog.New(blog.DefaultConfig(), di.WithFS(fsys), di.WithLoggerProvider(provider))
	if err != nil {
		t.Fatalf("blog.New: %v", err)
	}
	return module
}

func TestModuleQueriesCorpus(t *testing.T) {
	module := newModule(t, fstest.MapFS{
		"tech/a.md": {Data: []byte("---\ntitle: \"A\"\n---\nAlpha.\n")},
		"life/b.md": {Data: []byte("---\ntags: [\"x\", \"y\"]\nfeatured: true\n---\nBeta.\n")},
	})
	ctx := context.Background()

	post, err := module.PostBySlug(ctx, "a")
	if err != nil || post == nil {
		t.Fatalf("PostBySlug: %+v, %v", post, err)
	}
	if post.Category.Slug != "tech" || post.Category.Name != "技术分享" {
		t.Fatalf("unexpected category %+v", post.Category)
	}

	byTag, err := module.PostsByTag(ctx, "x")
	if err != nil || len(byTag) != 1 || byTag[0].Slug != "b" {
		t.Fatalf("PostsByTag: %+v, %v", byTag, err)
	}

	var life blog.Category
	for _, c := range module.Categories(ctx) {
		if c.Slug == "life" {
			life = c
		}
	}
	if life.PostCount != 1 {
		t.Fatalf("unexpected life category %+v", life)
	}
	if len(module.Tags(ctx)) != 2 {
		t.Fatalf("expected two tags")
	}
}

func TestModuleHandler(t *testing.T) {
	module := newModule(t, fstest.MapFS{
		"tech/a.md": {Data: []byte("---\ntitle: A\n---\nAlpha.\n")},
	})
	rec := httptest.NewRecorder()
	module.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/posts/a", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestModuleClearCache(t *testing.T) {
	fsys := fstest.MapFS{"tech/a.md": {Data: []byte("# A\n")}}
	module := newModule(t, fsys)
	ctx := context.Background()

	if n := len(module.AllPosts(ctx, false)); n != 1 {
		t.Fatalf("expected 1 post, got %d", n)
	}
	if posts := module.CacheStatus().Slots[0]; !posts.Populated || posts.Items != 1 {
		t.Fatalf("expected populated posts slot, got %+v", posts)
	}
	fsys["life/b.md"] = &fstest.MapFile{Data: []byte("# B\n")}
	module.ClearCache()
	if module.CacheStatus().Slots[0].Populated {
		t.Fatal("ClearCache should empty the posts slot")
	}
	if n := len(module.AllPosts(ctx, false)); n != 2 {
		t.Fatalf("expected 2 posts after ClearCache, got %d", n)
	}
}
