package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-blog/internal/cache"
	"github.com/goliatone/go-blog/internal/content"
	"github.com/goliatone/go-blog/internal/metrics"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func setupAPI(t *testing.T, opts ...Option) (http.Handler, *metrics.Collector) {
	t.Helper()
	fsys := fstest.MapFS{
		"tech/a.md": {Data: []byte("---\ntitle: A\ndate: 2024-03-01\n---\n# A\n\n## Setup\n")},
		"life/b.md": {Data: []byte("---\ntitle: B\ndate: 2024-04-01\ntags: [x, y]\nfeatured: true\n---\nBeta.\n")},
		"life/c.md": {Data: []byte("---\ntitle: C\ndate: 2024-02-01\ntags: [x]\n---\nGamma.\n")},
	}
	builder := content.NewBuilder(fsys, content.WithBuilderClock(func() time.Time { return fixedNow }))
	loader := content.NewLoader(content.NewScanner(fsys), builder)
	collector := metrics.NewCollector("blog")
	c := cache.New(cache.Options{
		Load: func(ctx context.Context) ([]*interfaces.Post, error) {
			result, err := loader.Load(ctx)
			return result.Posts, err
		},
		Default:  loader.Fallback,
		Recorder: collector,
	})
	api := NewAPI(posts.NewService(c), append([]Option{WithMetrics(collector)}, opts...)...)
	return api.Routes(), collector
}

func doRequest(t *testing.T, h http.Handler, method, path string, wantStatus int) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != wantStatus {
		t.Fatalf("%s %s: expected status %d got %d (%s)", method, path, wantStatus, rec.Code, rec.Body.String())
	}
	return rec
}

func decodeJSONBody(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestListPosts(t *testing.T) {
	h, _ := setupAPI(t)

	var page interfaces.PaginatedPosts
	decodeJSONBody(t, doRequest(t, h, http.MethodGet, "/posts", http.StatusOK), &page)
	if page.Total != 3 || page.Posts[0].Slug != "b" || page.Posts[2].Slug != "c" {
		t.Fatalf("unexpected page %+v", page)
	}

	decodeJSONBody(t, doRequest(t, h, http.MethodGet, "/posts?category=life&sort=title&order=asc&pageSize=1&page=2", http.StatusOK), &page)
	if page.Total != 2 || len(page.Posts) != 1 || page.Posts[0].Slug != "c" || !page.HasPrev {
		t.Fatalf("unexpected filtered page %+v", page)
	}

	decodeJSONBody(t, doRequest(t, h, http.MethodGet, "/posts?featured=true", http.StatusOK), &page)
	if page.Total != 1 || page.Posts[0].Slug != "b" {
		t.Fatalf("unexpected featured page %+v", page)
	}
}

func TestListPostsRejectsBadQuery(t *testing.T) {
	h, _ := setupAPI(t)

	var resp errorResponse
	decodeJSONBody(t, doRequest(t, h, http.MethodGet, "/posts?page=abc", http.StatusBadRequest), &resp)
	if resp.Error != "bad_request" {
		t.Fatalf("unexpected error body %+v", resp)
	}

	decodeJSONBody(t, doRequest(t, h, http.MethodGet, "/posts?sort=views", http.StatusBadRequest), &resp)
	if resp.Error != "validation_failed" || resp.Fields["SortBy"] == "" {
		t.Fatalf("unexpected validation body %+v", resp)
	}
}

func TestGetPost(t *testing.T) {
	h, _ := setupAPI(t)

	var post interfaces.Post
	decodeJSONBody(t, doRequest(t, h, http.MethodGet, "/posts/a", http.StatusOK), &post)
	if post.Title != "A" || post.Category.Slug != "tech" {
		t.Fatalf("unexpected post %+v", post)
	}

	doRequest(t, h, http.MethodGet, "/posts/missing", http.StatusNotFound)
}

func TestRenderPost(t *testing.T) {
	h, _ := setupAPI(t)

	var rendered interfaces.RenderedPost
	decodeJSONBody(t, doRequest(t, h, http.MethodGet, "/posts/a/html", http.StatusOK), &rendered)
	if !strings.Contains(rendered.HTML, `<h2 id="setup">Setup</h2>`) {
		t.Fatalf("unexpected html %q", rendered.HTML)
	}
	if len(rendered.TOC) != 1 || rendered.TOC[0].Children[0].ID != "setup" {
		t.Fatalf("unexpected toc %+v", rendered.TOC)
	}
}

func TestRelatedPosts(t *testing.T) {
	h, _ := setupAPI(t)

	var related []interfaces.RelatedPost
	decodeJSONBody(t, doRequest(t, h, http.MethodGet, "/posts/b/related?limit=5", http.StatusOK), &related)
	if len(related) != 1 || related[0].Slug != "c" {
		t.Fatalf("unexpected related %+v", related)
	}
}

func TestTaxonomyRoutes(t *testing.T) {
	h, _ := setupAPI(t)

	var categories []interfaces.Category
	decodeJSONBody(t, doRequest(t, h, http.MethodGet, "/categories", http.StatusOK), &categories)
	counts := map[string]int{}
	for _, c := range categories {
		counts[c.Slug] = c.PostCount
	}
	if counts["life"] != 2 || counts["tech"] != 1 {
		t.Fatalf("unexpected category counts %v", counts)
	}

	var list []interfaces.Post
	decodeJSONBody(t, doRequest(t, h, http.MethodGet, "/categories/life/posts", http.StatusOK), &list)
	if len(list) != 2 {
		t.Fatalf("expected 2 life posts, got %d", len(list))
	}
	doRequest(t, h, http.MethodGet, "/categories/nope/posts", http.StatusNotFound)

	var tags []interfaces.Tag
	decodeJSONBody(t, doRequest(t, h, http.MethodGet, "/tags", http.StatusOK), &tags)
	if len(tags) != 2 || tags[0].Name != "x" || tags[0].PostCount != 2 {
		t.Fatalf("unexpected tags %+v", tags)
	}
	decodeJSONBody(t, doRequest(t, h, http.MethodGet, "/tags/y/posts", http.StatusOK), &list)
	if len(list) != 1 || list[0].Slug != "b" {
		t.Fatalf("unexpected tag posts %+v", list)
	}
	doRequest(t, h, http.MethodGet, "/tags/nope/posts", http.StatusNotFound)
}

func TestStatsAndArchive(t *testing.T) {
	h, _ := setupAPI(t)

	var stats interfaces.BlogStats
	decodeJSONBody(t, doRequest(t, h, http.MethodGet, "/stats", http.StatusOK), &stats)
	if stats.TotalPosts != 3 || stats.PostsByTag["x"] != 2 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	var archive []interfaces.ArchiveYear
	decodeJSONBody(t, doRequest(t, h, http.MethodGet, "/archive", http.StatusOK), &archive)
	if len(archive) != 1 || archive[0].Year != 2024 || len(archive[0].Posts) != 3 {
		t.Fatalf("unexpected archive %+v", archive)
	}
}

func TestCacheRoutes(t *testing.T) {
	h, _ := setupAPI(t)
	doRequest(t, h, http.MethodGet, "/posts", http.StatusOK)

	var status interfaces.CacheStatus
	decodeJSONBody(t, doRequest(t, h, http.MethodGet, "/cache", http.StatusOK), &status)
	if status.Slots[0].Name != cache.SlotPosts || !status.Slots[0].Populated {
		t.Fatalf("expected populated posts slot, got %+v", status)
	}

	doRequest(t, h, http.MethodDelete, "/cache", http.StatusNoContent)
	decodeJSONBody(t, doRequest(t, h, http.MethodGet, "/cache", http.StatusOK), &status)
	for _, slot := range status.Slots {
		if slot.Populated {
			t.Fatalf("expected cleared slots, got %+v", status)
		}
	}
}

func TestMetricsRouteUsesRoutePatterns(t *testing.T) {
	h, _ := setupAPI(t)
	doRequest(t, h, http.MethodGet, "/posts/a", http.StatusOK)
	doRequest(t, h, http.MethodGet, "/posts/b", http.StatusOK)

	rec := doRequest(t, h, http.MethodGet, "/metrics", http.StatusOK)
	body := rec.Body.String()
	if !strings.Contains(body, `blog_http_requests_total{method="GET",route="/posts/{slug}",status="200"} 2`) {
		t.Fatalf("expected route pattern label in metrics:\n%s", body)
	}
	if !strings.Contains(body, `blog_cache_lookups_total{result="hit",slot="posts"}`) {
		t.Fatalf("expected cache metrics:\n%s", body)
	}
}

func TestMetricsUnmatchedPathsShareOneLabel(t *testing.T) {
	h, _ := setupAPI(t)
	for _, path := range []string{"/wp-admin", "/.env", "/random/a", "/random/b"} {
		doRequest(t, h, http.MethodGet, path, http.StatusNotFound)
	}

	body := doRequest(t, h, http.MethodGet, "/metrics", http.StatusOK).Body.String()
	if !strings.Contains(body, `route="unmatched",status="404"} 4`) {
		t.Fatalf("expected unmatched requests under one label:\n%s", body)
	}
	for _, path := range []string{"/wp-admin", "/.env", "/random/a"} {
		if strings.Contains(body, `route="`+path+`"`) {
			t.Fatalf("raw path %s leaked into metric labels", path)
		}
	}
}

func TestBasePath(t *testing.T) {
	h, _ := setupAPI(t, WithBasePath("/api/"))
	doRequest(t, h, http.MethodGet, "/api/posts/a", http.StatusOK)
	doRequest(t, h, http.MethodGet, "/posts/a", http.StatusNotFound)
}

func TestCORSHeaders(t *testing.T) {
	h, _ := setupAPI(t, WithAllowedOrigins("https://blog.example"))
	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	req.Header.Set("Origin", "https://blog.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://blog.example" {
		t.Fatalf("expected CORS origin header, got %q", got)
	}
}
