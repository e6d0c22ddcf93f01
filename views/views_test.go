package views

import (
	"context"
	"strings"
	"testing"

	"github.com/jjmalina/blog"
)

func renderHome(t *testing.T, cfg SiteConfig) string {
	t.Helper()
	v := Views(cfg)
	var b strings.Builder
	cmp := v.Home(nil, "", nil, blog.Page{Number: 1, Total: 1}, cfg.URL)
	if err := cmp.Render(context.Background(), &b); err != nil {
		t.Fatalf("render home: %v", err)
	}
	return b.String()
}

func TestLayoutAnalyticsBeacon(t *testing.T) {
	cfg := SiteConfig{Name: "jjmalina", URL: "http://localhost:3000"}

	out := renderHome(t, cfg)
	if strings.Contains(out, "/api/analytics/visit") {
		t.Error("beacon emitted with analytics disabled")
	}

	cfg.AnalyticsEnabled = true
	out = renderHome(t, cfg)
	if !strings.Contains(out, "/api/analytics/visit") {
		t.Error("beacon missing with analytics enabled")
	}
}

func TestLayoutHeadMetadata(t *testing.T) {
	cfg := SiteConfig{
		Name:        "jjmalina",
		URL:         "http://localhost:3000",
		Description: "A personal blog",
	}
	out := renderHome(t, cfg)
	for _, want := range []string{
		"<title>jjmalina</title>",
		`property="og:title"`,
		`rel="canonical"`,
		`application/ld+json`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("home page missing %s", want)
		}
	}
}
