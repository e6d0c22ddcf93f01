package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"github.com/jjmalina/blog"
	"github.com/jjmalina/blog/scaffold"
)

// postData holds the template variables for a scaffolded post.
type postData struct {
	Title string
	Slug  string
	Date  string
}

// runNew scaffolds a draft post file under the content directory.
func runNew(title string) error {
	slug := blog.Slugify(title)
	if slug == "" {
		return fmt.Errorf("title %q produces an empty slug", title)
	}

	contentDir := blog.EnvOr("CONTENT_DIR", "content")
	outPath := filepath.Join(contentDir, slug+".md")
	if _, err := os.Stat(outPath); err == nil {
		return fmt.Errorf("%s already exists", outPath)
	}

	tmpl, err := template.ParseFS(scaffold.Templates, "templates/post.md.tmpl")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(contentDir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	data := postData{
		Title: title,
		Slug:  slug,
		Date:  time.Now().Format("2006-01-02"),
	}
	if err := tmpl.Execute(f, data); err != nil {
		return err
	}

	fmt.Printf("Created %s\n", outPath)
	return nil
}
