// Package blog is a markdown-file-backed blog engine built with Go, Echo,
// and templ. Posts are markdown files with YAML front matter in a content
// directory; the engine indexes them into SQLite and serves listings,
// posts, tutorial series, an archive, RSS, and a sitemap.
//
// Users provide their own templ templates via the ViewFuncs struct, and the
// engine handles the handler logic, middleware, content sync, and database
// operations. The markdown files stay the single source of truth: there is
// no web-based editing.
package blog

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/jjmalina/blog/analytics"
)

// ViewFuncs holds user-provided templ components that the engine calls
// when rendering pages. This is the inversion-of-control mechanism that
// lets users own and customize all templates.
type ViewFuncs struct {
	Home         func(posts []Post, activeTag string, tags []string, page Page, siteURL string) templ.Component
	HomePartial  func(posts []Post, activeTag string, tags []string, page Page, siteURL string) templ.Component
	BlogSection  func(posts []Post, activeTag string, tags []string, page Page) templ.Component
	Post         func(post Post, ctx PostContext, siteURL string) templ.Component
	PostPartial  func(post Post, ctx PostContext, siteURL string) templ.Component
	Archive      func(groups []YearGroup, siteURL string) templ.Component
	Series       func(info SeriesInfo, siteURL string) templ.Component
	PreviewLogin func(showError bool, csrfToken string) templ.Component
	PreviewIndex func(drafts []Post, csrfToken string) templ.Component
	NotFound     func() templ.Component
	ServerError  func() templ.Component
}

// App is the central blog application. It wires together the store, cache,
// content loader, handlers, middleware, and user-provided templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *PostCache
	Loader *Loader
	Views  ViewFuncs

	loginLimiter   *LoginLimiter
	analyticsStore *analytics.Store
	customRoutes   []func(*App)
	staticDir      string
	stopWatch      chan struct{}
}

// New creates a new blog App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

func (a *App) previewEnabled() bool {
	return a.Config.PreviewPassword != ""
}

// Start initializes the store, syncs the content directory, sets up
// middleware and routes, and starts the server.
func (a *App) Start() error {
	if a.previewEnabled() && a.Config.SessionSecret == "" {
		return fmt.Errorf("blog: SessionSecret is required when PreviewPassword is set")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("blog: init store: %w", err)
	}
	a.Store = store

	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL)

	a.Loader = NewLoader(a.Store, a.Cache, a.Config.ContentDir).
		WithImages(NewImagePipeline(a.Config.ContentDir, a.staticDir))
	stats, err := a.Loader.Sync()
	if err != nil {
		return fmt.Errorf("blog: initial content sync: %w", err)
	}
	log.Printf("blog: content synced: %d indexed, %d pruned, %d skipped", stats.Indexed, stats.Pruned, stats.Skipped)

	if a.Config.ResyncEvery > 0 {
		a.stopWatch = make(chan struct{})
		go a.Loader.Watch(a.Config.ResyncEvery, a.stopWatch)
	}

	if a.previewEnabled() {
		a.loginLimiter = NewLoginLimiter(5, time.Minute)
	}

	if a.Config.AnalyticsEnabled {
		analyticsStore, err := analytics.NewStore(a.Config.AnalyticsDatabasePath)
		if err != nil {
			return fmt.Errorf("blog: init analytics: %w", err)
		}
		a.analyticsStore = analyticsStore
		if err := analytics.InitSalt(analyticsStore); err != nil {
			return fmt.Errorf("blog: init analytics salt: %w", err)
		}
		stopCleanup := analyticsStore.StartCleanupScheduler(365, 24*time.Hour)
		defer stopCleanup()
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/blog", handleBlogRedirect)
	e.GET("/", a.handleHome)
	e.GET("/blog/:slug/", a.handlePost)
	e.GET("/archive/", a.handleArchive)
	e.GET("/series/:series/", a.handleSeries)

	if a.previewEnabled() {
		e.GET("/preview/", a.handlePreview)
		e.POST("/preview/login/", a.handlePreviewLogin)
		e.POST("/preview/logout/", handlePreviewLogout)
	}

	if a.Config.AnalyticsEnabled && a.analyticsStore != nil {
		h := analytics.NewHandler(a.analyticsStore)
		// Stats are visible to draft previewers only; with preview
		// disabled there is nobody to show them to.
		statsAuth := func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				if !a.previewEnabled() || !IsPreviewer(c) {
					return c.NoContent(http.StatusForbidden)
				}
				return next(c)
			}
		}
		h.RegisterRoutes(e, statsAuth)
	}
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.stopWatch != nil {
		close(a.stopWatch)
	}
	if a.Store != nil {
		a.Store.Close()
	}
	if a.analyticsStore != nil {
		a.analyticsStore.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("blog: required environment variable %s is not set", key)
	}
	return v
}
