package markdown

import (
	"bytes"
	"strings"
	"testing"
)

func render(t *testing.T, md string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Render(&buf, md); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return buf.String()
}

func TestRenderHeadings(t *testing.T) {
	got := render(t, "# Part 1\n\n## Laziness\n")
	if !strings.Contains(got, "<h1") || !strings.Contains(got, "Part 1") {
		t.Errorf("missing h1: %q", got)
	}
	if !strings.Contains(got, "<h2") || !strings.Contains(got, "Laziness") {
		t.Errorf("missing h2: %q", got)
	}
}

func TestRenderInlineFormatting(t *testing.T) {
	got := render(t, "a **bold** and *italic* and `code` word")
	for _, want := range []string{"<strong>bold</strong>", "<em>italic</em>", "<code>code</code>"} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q should contain %q", got, want)
		}
	}
}

func TestCodeBlockWithLanguage(t *testing.T) {
	got := render(t, "```scala\nlazy val s = Stream.cons(1, s)\n```")
	if !strings.Contains(got, `<div class="code-block-wrapper">`) {
		t.Errorf("code block should be wrapped in div: %q", got)
	}
	if !strings.Contains(got, `<span class="code-lang code-lang-scala">scala</span>`) {
		t.Errorf("code block should have language badge: %q", got)
	}
	if !strings.Contains(got, `class="language-scala"`) {
		t.Errorf("code element should carry language class: %q", got)
	}
	if !strings.Contains(got, "lazy val s = Stream.cons(1, s)") {
		t.Errorf("code block missing content: %q", got)
	}
	if !strings.Contains(got, "</div>") {
		t.Errorf("wrapper div should be closed: %q", got)
	}
}

func TestCodeBlockWithoutLanguage(t *testing.T) {
	got := render(t, "```\nplain code\n```")
	if strings.Contains(got, "code-lang") {
		t.Errorf("code block without language should not have badge: %q", got)
	}
	if strings.Contains(got, "code-block-wrapper") {
		t.Errorf("code block without language should not have wrapper: %q", got)
	}
	if !strings.Contains(got, "plain code") {
		t.Errorf("code block missing content: %q", got)
	}
}

func TestCodeBlockEscapesHTML(t *testing.T) {
	got := render(t, "```python\nx = a < b > c\n```")
	if !strings.Contains(got, "a &lt; b &gt; c") {
		t.Errorf("code content should be escaped: %q", got)
	}
}

func TestRawHTMLIsNotEmitted(t *testing.T) {
	got := render(t, "hello <script>alert(1)</script>")
	if strings.Contains(got, "<script>") {
		t.Errorf("raw HTML should not pass through: %q", got)
	}
}

func TestUnsafeLinkSchemeStripped(t *testing.T) {
	got := render(t, "[click](javascript:alert(1))")
	if strings.Contains(got, "javascript:") {
		t.Errorf("javascript scheme should be stripped: %q", got)
	}
}

func TestTable(t *testing.T) {
	got := render(t, "| a | b |\n|---|---|\n| 1 | 2 |\n")
	if !strings.Contains(got, "<table>") || !strings.Contains(got, "<th>") || !strings.Contains(got, "<td>") {
		t.Errorf("GFM table should render: %q", got)
	}
}

func TestSafeURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/blog/post/", "/blog/post/"},
		{"#anchor", "#anchor"},
		{"https://example.com", "https://example.com"},
		{"mailto:me@example.com", "mailto:me@example.com"},
		{"javascript:alert(1)", ""},
		{"data:text/html,x", ""},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := SafeURL(tt.input); got != tt.expected {
			t.Errorf("SafeURL(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
