package blog

import (
	"bytes"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
)

// frontMatter is the YAML header of a markdown post. Title and date are
// required for published posts; everything else is optional.
type frontMatter struct {
	Title   string   `yaml:"title"`
	Date    string   `yaml:"date"`
	Slug    string   `yaml:"slug"`
	Tags    []string `yaml:"tags"`
	Summary string   `yaml:"summary"`
	Series  string   `yaml:"series"`
	Part    int      `yaml:"part"`
	Draft   bool     `yaml:"draft"`
}

// Loader syncs a directory of markdown files into the Store. The files are
// the single source of truth: every sync re-reads them all and prunes
// index entries whose file disappeared.
type Loader struct {
	store *Store
	cache *PostCache
	dir   string

	// images, when set, processes content images into the static dir
	// after each sync.
	images *ImagePipeline
}

// NewLoader creates a Loader for the given content directory.
func NewLoader(store *Store, cache *PostCache, dir string) *Loader {
	return &Loader{store: store, cache: cache, dir: dir}
}

// WithImages attaches an image pipeline that runs after each sync.
func (l *Loader) WithImages(p *ImagePipeline) *Loader {
	l.images = p
	return l
}

// SyncStats summarizes one sync pass.
type SyncStats struct {
	Indexed int // markdown files parsed and upserted
	Pruned  int // index entries removed because their file is gone
	Skipped int // files rejected by validation
}

// Sync walks the content directory, parses every markdown file, upserts it
// into the store, and prunes entries whose source file no longer exists.
// Files that fail validation are logged and skipped; a sync only fails on
// I/O or database errors.
func (l *Loader) Sync() (SyncStats, error) {
	var stats SyncStats
	keep := make(map[string]struct{})

	err := filepath.WalkDir(l.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Images live under content/images and are handled separately.
			if d.Name() == "images" && path != l.dir {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		rel, err := filepath.Rel(l.dir, path)
		if err != nil {
			return err
		}
		post, err := l.loadFile(path, rel)
		if err != nil {
			log.Printf("content: skipping %s: %v", rel, err)
			stats.Skipped++
			return nil
		}
		if _, dup := keep[post.Slug]; dup {
			log.Printf("content: skipping %s: duplicate slug %q", rel, post.Slug)
			stats.Skipped++
			return nil
		}
		if err := l.store.SavePost(post); err != nil {
			return fmt.Errorf("save %s: %w", rel, err)
		}
		keep[post.Slug] = struct{}{}
		stats.Indexed++
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("content sync: %w", err)
	}

	pruned, err := l.store.Prune(keep)
	if err != nil {
		return stats, fmt.Errorf("content prune: %w", err)
	}
	stats.Pruned = pruned

	if stats.Indexed > 0 || stats.Pruned > 0 {
		l.cache.Invalidate()
	}

	if l.images != nil {
		if err := l.images.Run(); err != nil {
			return stats, fmt.Errorf("content images: %w", err)
		}
	}
	return stats, nil
}

// Watch re-syncs the content directory at the given interval until stop is
// closed. Sync errors are logged, not fatal: a broken file should not take
// the site down.
func (l *Loader) Watch(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if _, err := l.Sync(); err != nil {
				log.Printf("content: %v", err)
			}
		case <-stop:
			return
		}
	}
}

func (l *Loader) loadFile(path, rel string) (Post, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Post{}, err
	}
	return ParsePost(raw, rel)
}

// ParsePost parses markdown source with YAML front matter into a Post.
// rel is the source path relative to the content directory; it seeds the
// slug when the front matter does not set one.
func ParsePost(source []byte, rel string) (Post, error) {
	var meta frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return Post{}, fmt.Errorf("parse front matter: %w", err)
	}

	title := strings.TrimSpace(meta.Title)
	if title == "" {
		return Post{}, fmt.Errorf("missing title")
	}

	slug := strings.TrimSpace(meta.Slug)
	if slug == "" {
		base := strings.TrimSuffix(filepath.Base(rel), ".md")
		slug = Slugify(base)
	}
	if slug == "" {
		slug = Slugify(title)
	}
	if slug == "" {
		return Post{}, fmt.Errorf("no slug: set slug or title front matter")
	}

	date := strings.TrimSpace(meta.Date)
	if date == "" && !meta.Draft {
		return Post{}, fmt.Errorf("missing date")
	}
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return Post{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", date)
		}
	}

	if meta.Series != "" && meta.Part <= 0 {
		return Post{}, fmt.Errorf("series %q needs a positive part", meta.Series)
	}

	return Post{
		Slug:       slug,
		Title:      title,
		Date:       date,
		Tags:       FilterEmpty(meta.Tags),
		Summary:    strings.TrimSpace(meta.Summary),
		Content:    string(body),
		Series:     strings.ToLower(strings.TrimSpace(meta.Series)),
		Part:       meta.Part,
		Draft:      meta.Draft,
		SourcePath: rel,
		Link:       "/blog/" + slug,
	}, nil
}
