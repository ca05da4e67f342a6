package markdown

import (
	"strings"
	"testing"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

func TestRendererRendersHeadingAnchors(t *testing.T) {
	p := NewRenderer(interfaces.RenderOptions{})

	out, err := p.Render([]byte("# Hello World\n\nSome *text*.\n\n## 安装 Go\n\n## 安装 Go\n"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := string(out)
	for _, want := range []string{
		`<h1 id="hello-world">Hello World</h1>`,
		`<em>text</em>`,
		`<h2 id="安装-go">安装 Go</h2>`,
		`<h2 id="安装-go-1">安装 Go</h2>`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
}

func TestRendererDefaultExtensions(t *testing.T) {
	p := NewRenderer(interfaces.RenderOptions{})
	out, err := p.Render([]byte("| a | b |\n|---|---|\n| 1 | 2 |\n\n- [x] done\n\nsee https://example.com\n"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, "<table>") {
		t.Fatalf("expected gfm table, got %s", html)
	}
	if !strings.Contains(html, `type="checkbox"`) {
		t.Fatalf("expected task list checkbox, got %s", html)
	}
	if !strings.Contains(html, `<a href="https://example.com">`) {
		t.Fatalf("expected linkified url, got %s", html)
	}
}

func TestRendererSafeModeOmitsRawHTML(t *testing.T) {
	p := NewRenderer(interfaces.RenderOptions{})
	src := []byte("<script>alert(1)</script>\n")

	unsafe, err := p.Render(src)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(unsafe), "<script>") {
		t.Fatalf("expected raw html by default, got %s", unsafe)
	}

	safe, err := p.RenderWithOptions(src, interfaces.RenderOptions{SafeMode: true})
	if err != nil {
		t.Fatalf("RenderWithOptions: %v", err)
	}
	if strings.Contains(string(safe), "<script>") {
		t.Fatalf("safe mode leaked raw html: %s", safe)
	}
}

func TestRendererHardWraps(t *testing.T) {
	p := NewRenderer(interfaces.RenderOptions{HardWraps: true})
	out, err := p.Render([]byte("line one\nline two\n"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(out), "<br>") {
		t.Fatalf("expected hard wrap, got %s", out)
	}
}

func TestResolveExtensionsNormalizesNames(t *testing.T) {
	got := resolveExtensions([]string{"Tables", "table", "emoji", " footnote "})
	if strings.Join(got, ",") != "footnote,table" {
		t.Fatalf("unexpected extensions %v", got)
	}
	if strings.Join(resolveExtensions(nil), ",") != "gfm,linkify,tasklist" {
		t.Fatalf("unexpected defaults %v", resolveExtensions(nil))
	}
	if !KnownExtension("TaskList") || KnownExtension("emoji") {
		t.Fatal("KnownExtension mismatch")
	}
}

func TestRendererReusesEngines(t *testing.T) {
	r := NewRenderer(interfaces.RenderOptions{})
	for _, exts := range [][]string{nil, {"tasklist", "gfm", "linkify"}, {"GFM", "autolink", "tasklist"}} {
		if _, err := r.RenderWithOptions([]byte("# x\n"), interfaces.RenderOptions{Extensions: exts}); err != nil {
			t.Fatalf("RenderWithOptions: %v", err)
		}
	}
	count := 0
	r.engines.Range(func(_, _ any) bool {
		count++
		return true
	})
	if count != 1 {
		t.Fatalf("expected one cached engine, got %d", count)
	}
}
