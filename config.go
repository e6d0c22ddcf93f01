package blog

import "time"

// SiteConfig holds all configuration for the blog.
type SiteConfig struct {
	Name        string // Site name (default "Blog")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Author name for JSON-LD

	Addr         string // Listen address (default ":3000")
	ContentDir   string // Directory of markdown posts (default "content")
	DatabasePath string // SQLite index path (default "data/blog.db")

	AnalyticsEnabled      bool   // Enable analytics (default false)
	AnalyticsDatabasePath string // Analytics SQLite path (default "data/analytics.db")

	PreviewPassword string // Optional: password for viewing drafts
	SessionSecret   string // Required when PreviewPassword is set
	CookieSecure    bool   // Set true for HTTPS

	PostCacheTTL  time.Duration // Post cache TTL (default 5min)
	ResyncEvery   time.Duration // Content re-sync interval (default 1min, 0 disables)
	PostsPerPage  int           // Posts per listing page (default 10)
	FeedItemLimit int           // Max items in the RSS feed (default 20)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/blog.db"
	}
	if c.AnalyticsDatabasePath == "" {
		c.AnalyticsDatabasePath = "data/analytics.db"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
	if c.ResyncEvery == 0 {
		c.ResyncEvery = time.Minute
	}
	if c.PostsPerPage == 0 {
		c.PostsPerPage = 10
	}
	if c.FeedItemLimit == 0 {
		c.FeedItemLimit = 20
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}
