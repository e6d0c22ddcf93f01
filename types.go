package blog

// Post is the core content type. It is authored as a markdown file with
// YAML front matter and indexed into SQLite for serving.
type Post struct {
	Title   string
	Date    string // YYYY-MM-DD
	Tags    []string
	Summary string
	Link    string
	Slug    string
	Content string // markdown body, front matter stripped

	// Series groups multi-part posts (e.g. a tutorial series). Part orders
	// posts within a series, starting at 1. Both are zero values for
	// standalone posts.
	Series string
	Part   int

	// Draft posts are indexed but hidden from public listings and feeds.
	Draft bool

	// SourcePath is the markdown file this post was loaded from, relative
	// to the content directory.
	SourcePath string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}

// Page is the pagination state of a listing page.
type Page struct {
	Number int
	Total  int
}

// PostContext carries the surrounding state a post page renders with:
// related posts and, for series parts, the series and its neighbors.
type PostContext struct {
	Related []Post
	Series  SeriesInfo
	Prev    Post // zero when the post is the first of its series
	Next    Post // zero when the post is the last of its series
}

// YearGroup is a set of posts published in the same year, newest first.
// The archive page renders one section per group.
type YearGroup struct {
	Year  string
	Posts []Post
}

// SeriesInfo describes a post series: its slug, the display title taken
// from the first part's front matter, and the parts in order.
type SeriesInfo struct {
	Slug  string
	Title string
	Parts []Post
}
