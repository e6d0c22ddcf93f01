package blog

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"

	"github.com/jjmalina/blog/stream"
)

// Slugify converts a title to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// FilterEmpty removes empty/whitespace-only strings from a slice.
func FilterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// FilterRelatedPosts finds up to max posts that share at least one tag with
// current, lazily: scanning stops as soon as enough matches are found.
func FilterRelatedPosts(current Post, posts []Post, max int) []Post {
	tagSet := make(map[string]struct{})
	for _, t := range current.Tags {
		tag := normalizeTag(t)
		if tag != "" {
			tagSet[tag] = struct{}{}
		}
	}
	related := stream.Filter(stream.Of(posts...), func(p Post) bool {
		if p.Slug == current.Slug {
			return false
		}
		for _, t := range p.Tags {
			if _, ok := tagSet[normalizeTag(t)]; ok {
				return true
			}
		}
		return false
	})
	return stream.Collect(stream.Take(related, max))
}

// GroupByYear buckets posts into per-year groups. Posts must already be
// ordered by date descending, which is how the store and cache return them.
func GroupByYear(posts []Post) []YearGroup {
	groups := stream.GroupBy(stream.Of(posts...), postYear)
	return stream.Collect(stream.Map(groups, func(g []Post) YearGroup {
		return YearGroup{Year: postYear(g[0]), Posts: g}
	}))
}

func postYear(p Post) string {
	if len(p.Date) >= 4 {
		return p.Date[:4]
	}
	return ""
}

// Paginate slices posts into pages of perPage. Page numbers start at 1;
// out-of-range pages return an empty slice. totalPages is always >= 1.
func Paginate(posts []Post, page, perPage int) (pagePosts []Post, totalPages int) {
	if perPage <= 0 {
		perPage = 10
	}
	pages := stream.Collect(stream.Chunk(stream.Of(posts...), perPage))
	totalPages = len(pages)
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 || page > len(pages) {
		return nil, totalPages
	}
	return pages[page-1], totalPages
}

// BuildSeriesInfo assembles series metadata from its ordered parts. The
// display title is the common prefix convention used in front matter: the
// first part's title up to any " part N" suffix, else the series slug.
func BuildSeriesInfo(slug string, parts []Post) SeriesInfo {
	title := strings.ReplaceAll(slug, "-", " ")
	if len(parts) > 0 {
		t := parts[0].Title
		if idx := strings.LastIndex(strings.ToLower(t), " part "); idx > 0 {
			t = strings.TrimRight(t[:idx], " :,-")
		}
		if t != "" {
			title = t
		}
	}
	return SeriesInfo{Slug: slug, Title: title, Parts: parts}
}

// SeriesNeighbors returns the previous and next parts around post within
// its series. Either may be a zero Post when at the edges.
func SeriesNeighbors(post Post, parts []Post) (prev, next Post) {
	for i, p := range parts {
		if p.Slug != post.Slug {
			continue
		}
		if i > 0 {
			prev = parts[i-1]
		}
		if i < len(parts)-1 {
			next = parts[i+1]
		}
		return prev, next
	}
	return prev, next
}

// JoinTags joins tags with ", ".
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// PathEscape escapes a string for use in a URL path.
func PathEscape(s string) string {
	return url.PathEscape(s)
}

// WebsiteJsonLD returns a JSON-LD string for a WebSite schema using SiteConfig.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        cfg.Name,
		"url":         BuildURL(cfg.URL),
		"description": cfg.Description,
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// BlogPostingJsonLD returns a JSON-LD string for a BlogPosting schema.
func BlogPostingJsonLD(post Post, cfg SiteConfig) string {
	postURL := BuildURL(cfg.URL, "blog", post.Slug)
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      post.Title,
		"description":   post.Summary,
		"datePublished": post.Date,
		"url":           postURL,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	if cfg.Name != "" {
		data["publisher"] = map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
		}
	}
	if len(post.Tags) > 0 {
		data["keywords"] = strings.Join(post.Tags, ", ")
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
