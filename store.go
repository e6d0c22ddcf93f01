package blog

import (
	"database/sql"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Store wraps a SQLite database that indexes the markdown content directory.
// The files are the source of truth; everything in here is derived and
// rebuilt by the content loader.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Enable WAL mode for concurrent read/write access, set a busy timeout
	// so writers wait instead of returning SQLITE_BUSY immediately, and tune
	// performance: synchronous=NORMAL is safe with WAL and avoids an fsync
	// per transaction; larger cache and mmap reduce disk I/O.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
		PRAGMA mmap_size=268435456;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    date TEXT NOT NULL,
    tags TEXT NOT NULL,
    summary TEXT NOT NULL,
    content TEXT NOT NULL,
    series TEXT NOT NULL DEFAULT '',
    part INTEGER NOT NULL DEFAULT 0,
    draft INTEGER NOT NULL DEFAULT 0,
    source_path TEXT NOT NULL DEFAULT ''
);
`)
	return err
}

func scanPost(scan func(dest ...any) error) (Post, error) {
	var slug, title, date, tags, summary, content, series, sourcePath string
	var part, draft int
	if err := scan(&slug, &title, &date, &tags, &summary, &content, &series, &part, &draft, &sourcePath); err != nil {
		return Post{}, err
	}
	return Post{
		Slug:       slug,
		Title:      title,
		Date:       date,
		Tags:       ParseTags(tags),
		Summary:    summary,
		Content:    content,
		Series:     series,
		Part:       part,
		Draft:      draft == 1,
		SourcePath: sourcePath,
		Link:       "/blog/" + slug,
	}, nil
}

const postColumns = `slug, title, date, tags, summary, content, series, part, draft, source_path`

// ListPosts returns all published posts ordered by date descending.
// If tag is non-empty, results are filtered to posts containing that tag.
func (s *Store) ListPosts(tag string) ([]Post, error) {
	var rows *sql.Rows
	var err error
	if tag == "" {
		rows, err = s.db.Query(`SELECT ` + postColumns + ` FROM posts WHERE draft = 0 ORDER BY date DESC, slug ASC`)
	} else {
		normalizedTag := strings.ToLower(strings.TrimSpace(tag))
		rows, err = s.db.Query(`SELECT `+postColumns+` FROM posts WHERE draft = 0 AND instr(lower(tags), ',' || ? || ',') > 0 ORDER BY date DESC, slug ASC`, normalizedTag)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		post, err := scanPost(rows.Scan)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// ListTags returns a sorted, deduplicated slice of all tags from published posts.
func (s *Store) ListTags() ([]string, error) {
	rows, err := s.db.Query(`SELECT tags FROM posts WHERE draft = 0`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := make(map[string]struct{})
	for rows.Next() {
		var tags string
		if err := rows.Scan(&tags); err != nil {
			return nil, err
		}
		for _, t := range ParseTags(tags) {
			set[strings.ToLower(t)] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	var result []string
	for t := range set {
		result = append(result, t)
	}
	sort.Strings(result)
	return result, nil
}

// GetPost returns a single published post by slug.
func (s *Store) GetPost(slug string) (Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ? AND draft = 0`, slug)
	return scanPost(row.Scan)
}

// GetPostAny returns a post by slug regardless of draft status (for preview).
func (s *Store) GetPostAny(slug string) (Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ?`, slug)
	return scanPost(row.Scan)
}

// ListAllPosts returns every post, drafts included, ordered by date descending.
func (s *Store) ListAllPosts() ([]Post, error) {
	rows, err := s.db.Query(`SELECT ` + postColumns + ` FROM posts ORDER BY date DESC, slug ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		post, err := scanPost(rows.Scan)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// ListSeriesPosts returns the published posts of a series ordered by part.
func (s *Store) ListSeriesPosts(series string) ([]Post, error) {
	normalized := strings.ToLower(strings.TrimSpace(series))
	rows, err := s.db.Query(`SELECT `+postColumns+` FROM posts WHERE draft = 0 AND series = ? ORDER BY part ASC`, normalized)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		post, err := scanPost(rows.Scan)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// SavePost upserts a post. Tags and series are normalized to lowercase.
func (s *Store) SavePost(p Post) error {
	normalizedTags := make([]string, len(p.Tags))
	for i, t := range p.Tags {
		normalizedTags[i] = strings.ToLower(strings.TrimSpace(t))
	}
	tagString := "," + strings.Join(normalizedTags, ",") + ","
	draft := 0
	if p.Draft {
		draft = 1
	}
	series := strings.ToLower(strings.TrimSpace(p.Series))
	_, err := s.db.Exec(`INSERT OR REPLACE INTO posts (slug, title, date, tags, summary, content, series, part, draft, source_path) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Slug, p.Title, p.Date, tagString, p.Summary, p.Content, series, p.Part, draft, p.SourcePath)
	return err
}

// DeletePost removes a post by slug.
func (s *Store) DeletePost(slug string) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE slug = ?`, slug)
	return err
}

// Prune deletes every indexed post whose slug is not in keep. The content
// loader calls this after a sync so deleted markdown files disappear from
// the index.
func (s *Store) Prune(keep map[string]struct{}) (int, error) {
	rows, err := s.db.Query(`SELECT slug FROM posts`)
	if err != nil {
		return 0, err
	}
	var stale []string
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			rows.Close()
			return 0, err
		}
		if _, ok := keep[slug]; !ok {
			stale = append(stale, slug)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}
	for _, slug := range stale {
		if err := s.DeletePost(slug); err != nil {
			return 0, err
		}
	}
	return len(stale), nil
}

// ParseTags splits a comma-delimited tag string (e.g. ",go,scala,") into a slice.
func ParseTags(tagString string) []string {
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return nil
	}
	parts := strings.Split(tagString, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
