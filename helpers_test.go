package blog

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"Lazy Streams, Part 1", "lazy-streams-part-1"},
		{"  spaced  out  ", "spaced-out"},
		{"Already-Slugged", "already-slugged"},
		{"Symbols & Stuff!", "symbols-stuff"},
		{"UPPER case 123", "upper-case-123"},
		{"trailing---", "trailing"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		want     string
	}{
		{"https://example.com", nil, "https://example.com"},
		{"https://example.com", []string{"blog"}, "https://example.com/blog/"},
		{"https://example.com", []string{"blog", "my-post"}, "https://example.com/blog/my-post/"},
		{"https://example.com/", []string{"archive"}, "https://example.com/archive/"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segments...); got != tt.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.want)
		}
	}
}

func TestFilterEmpty(t *testing.T) {
	got := FilterEmpty([]string{"a", "", "  ", "b"})
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("FilterEmpty = %v", got)
	}
}

func datedPost(slug, date string, tags ...string) Post {
	return Post{Slug: slug, Title: slug, Date: date, Tags: tags}
}

func TestFilterRelatedPosts(t *testing.T) {
	current := datedPost("current", "2024-05-01", "go", "streams")
	posts := []Post{
		current,
		datedPost("a", "2024-04-01", "go"),
		datedPost("b", "2024-03-01", "keyboards"),
		datedPost("c", "2024-02-01", "Streams"),
		datedPost("d", "2024-01-01", "go"),
	}

	related := FilterRelatedPosts(current, posts, 2)
	if len(related) != 2 {
		t.Fatalf("related = %d posts, want 2", len(related))
	}
	if related[0].Slug != "a" || related[1].Slug != "c" {
		t.Errorf("related = %v, %v", related[0].Slug, related[1].Slug)
	}
	for _, p := range related {
		if p.Slug == "current" {
			t.Error("current post should never relate to itself")
		}
	}
}

func TestFilterRelatedPostsNoSharedTags(t *testing.T) {
	current := datedPost("current", "2024-05-01", "go")
	posts := []Post{datedPost("a", "2024-04-01", "keyboards")}
	if got := FilterRelatedPosts(current, posts, 4); len(got) != 0 {
		t.Errorf("related = %v, want none", got)
	}
}

func TestGroupByYear(t *testing.T) {
	posts := []Post{
		datedPost("c", "2024-06-01"),
		datedPost("b", "2024-01-15"),
		datedPost("a", "2015-01-15"),
	}
	groups := GroupByYear(posts)
	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}
	if groups[0].Year != "2024" || len(groups[0].Posts) != 2 {
		t.Errorf("group[0] = %s with %d posts", groups[0].Year, len(groups[0].Posts))
	}
	if groups[1].Year != "2015" || len(groups[1].Posts) != 1 {
		t.Errorf("group[1] = %s with %d posts", groups[1].Year, len(groups[1].Posts))
	}
}

func TestGroupByYearEmpty(t *testing.T) {
	if groups := GroupByYear(nil); len(groups) != 0 {
		t.Errorf("groups = %v, want none", groups)
	}
}

func TestPaginate(t *testing.T) {
	var posts []Post
	for _, slug := range []string{"a", "b", "c", "d", "e"} {
		posts = append(posts, datedPost(slug, "2024-01-01"))
	}

	page1, total := Paginate(posts, 1, 2)
	if total != 3 {
		t.Errorf("totalPages = %d, want 3", total)
	}
	if len(page1) != 2 || page1[0].Slug != "a" {
		t.Errorf("page 1 = %v", page1)
	}

	page3, _ := Paginate(posts, 3, 2)
	if len(page3) != 1 || page3[0].Slug != "e" {
		t.Errorf("page 3 = %v", page3)
	}

	if out, _ := Paginate(posts, 4, 2); out != nil {
		t.Errorf("out-of-range page = %v, want nil", out)
	}
	if out, _ := Paginate(posts, 0, 2); out != nil {
		t.Errorf("page 0 = %v, want nil", out)
	}

	_, total = Paginate(nil, 1, 2)
	if total != 1 {
		t.Errorf("empty totalPages = %d, want 1", total)
	}
}

func TestBuildSeriesInfo(t *testing.T) {
	parts := []Post{
		{Slug: "lazy-streams-part-1", Title: "Lazy streams part 1", Part: 1},
		{Slug: "lazy-streams-part-2", Title: "Lazy streams part 2", Part: 2},
	}
	info := BuildSeriesInfo("lazy-streams", parts)
	if info.Title != "Lazy streams" {
		t.Errorf("Title = %q, want %q", info.Title, "Lazy streams")
	}
	if info.Slug != "lazy-streams" || len(info.Parts) != 2 {
		t.Errorf("info = %+v", info)
	}
}

func TestBuildSeriesInfoFallsBackToSlug(t *testing.T) {
	info := BuildSeriesInfo("keyboard-builds", nil)
	if info.Title != "keyboard builds" {
		t.Errorf("Title = %q", info.Title)
	}
}

func TestSeriesNeighbors(t *testing.T) {
	parts := []Post{
		{Slug: "p1", Part: 1},
		{Slug: "p2", Part: 2},
		{Slug: "p3", Part: 3},
	}

	prev, next := SeriesNeighbors(parts[1], parts)
	if prev.Slug != "p1" || next.Slug != "p3" {
		t.Errorf("middle part neighbors = %q, %q", prev.Slug, next.Slug)
	}

	prev, next = SeriesNeighbors(parts[0], parts)
	if prev.Slug != "" || next.Slug != "p2" {
		t.Errorf("first part neighbors = %q, %q", prev.Slug, next.Slug)
	}

	prev, next = SeriesNeighbors(parts[2], parts)
	if prev.Slug != "p2" || next.Slug != "" {
		t.Errorf("last part neighbors = %q, %q", prev.Slug, next.Slug)
	}
}

func TestWebsiteJsonLD(t *testing.T) {
	cfg := SiteConfig{
		Name:        "jjmalina",
		URL:         "https://example.com",
		Description: "A personal blog",
		Author:      "Jeremy Malina",
	}
	jsonLD := WebsiteJsonLD(cfg)
	for _, want := range []string{`"@type":"WebSite"`, `"jjmalina"`, `"Jeremy Malina"`} {
		if !strings.Contains(jsonLD, want) {
			t.Errorf("WebsiteJsonLD missing %s: %s", want, jsonLD)
		}
	}
}

func TestBlogPostingJsonLD(t *testing.T) {
	cfg := SiteConfig{Name: "jjmalina", URL: "https://example.com", Author: "Jeremy Malina"}
	post := Post{
		Slug:    "lazy-streams-part-1",
		Title:   "Lazy streams part 1",
		Date:    "2015-01-15",
		Summary: "Non-strictness",
		Tags:    []string{"scala", "fp"},
	}
	jsonLD := BlogPostingJsonLD(post, cfg)
	for _, want := range []string{
		`"@type":"BlogPosting"`,
		`"Lazy streams part 1"`,
		`"2015-01-15"`,
		`"scala, fp"`,
		"https://example.com/blog/lazy-streams-part-1/",
	} {
		if !strings.Contains(jsonLD, want) {
			t.Errorf("BlogPostingJsonLD missing %s: %s", want, jsonLD)
		}
	}
}
