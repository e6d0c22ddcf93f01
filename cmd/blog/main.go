// Command blog runs the site. All branding comes from environment
// variables; content comes from the markdown files under CONTENT_DIR.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jjmalina/blog"
	"github.com/jjmalina/blog/views"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "serve":
			serve()
		case "new":
			if len(os.Args) < 3 {
				fmt.Fprintln(os.Stderr, "Usage: blog new <title>")
				os.Exit(1)
			}
			if err := runNew(strings.Join(os.Args[2:], " ")); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		case "version":
			fmt.Printf("blog %s\n", version)
		case "help", "-h", "--help":
			printUsage()
		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
			printUsage()
			os.Exit(1)
		}
		return
	}
	serve()
}

func serve() {
	cfg := blog.SiteConfig{
		Name:        blog.EnvOr("SITE_NAME", "jjmalina"),
		URL:         strings.TrimSuffix(blog.EnvOr("SITE_URL", "http://localhost:3000"), "/"),
		Description: os.Getenv("SITE_DESCRIPTION"),
		Author:      blog.EnvOr("SITE_AUTHOR", "Jeremy Malina"),

		Addr:         blog.EnvOr("ADDR", ":3000"),
		ContentDir:   blog.EnvOr("CONTENT_DIR", "content"),
		DatabasePath: blog.EnvOr("DATABASE_PATH", "data/blog.db"),

		AnalyticsEnabled:      strings.EqualFold(os.Getenv("ANALYTICS_ENABLED"), "true"),
		AnalyticsDatabasePath: blog.EnvOr("ANALYTICS_DATABASE_PATH", "data/analytics.db"),

		PreviewPassword: os.Getenv("PREVIEW_PASSWORD"),
		SessionSecret:   os.Getenv("SESSION_SECRET"),
		CookieSecure:    strings.EqualFold(os.Getenv("COOKIE_SECURE"), "true"),
	}

	app := blog.New(cfg, views.Views(views.SiteConfig{
		Name:             cfg.Name,
		URL:              cfg.URL,
		Description:      cfg.Description,
		Author:           cfg.Author,
		AnalyticsEnabled: cfg.AnalyticsEnabled,
	}))
	defer app.Close()

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

func printUsage() {
	fmt.Println(`blog - markdown-file-backed blog engine

Usage:
  blog [command]

Commands:
  serve         Run the site (default)
  new <title>   Scaffold a new draft post under the content directory
  version       Print the version
  help          Show this help message`)
}
