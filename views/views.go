// Package views implements the templ components for the default site. The
// engine never imports this package; it receives these functions through
// blog.ViewFuncs, so a fork can swap in its own templates wholesale.
package views

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/jjmalina/blog"
	"github.com/jjmalina/blog/markdown"
)

// Views builds the ViewFuncs for the default site.
func Views(cfg SiteConfig) blog.ViewFuncs {
	pageMeta := func(title, url string) blog.PageMeta {
		return blog.PageMeta{
			Title:       title,
			Description: cfg.Description,
			URL:         url,
			OGType:      "website",
		}
	}
	return blog.ViewFuncs{
		Home: func(posts []blog.Post, activeTag string, tags []string, page blog.Page, siteURL string) templ.Component {
			return layout(cfg, pageMeta(cfg.Name, blog.BuildURL(siteURL)), home(cfg, posts, activeTag, tags, page))
		},
		HomePartial: func(posts []blog.Post, activeTag string, tags []string, page blog.Page, siteURL string) templ.Component {
			return home(cfg, posts, activeTag, tags, page)
		},
		BlogSection: func(posts []blog.Post, activeTag string, tags []string, page blog.Page) templ.Component {
			return postList(posts, activeTag, tags, page)
		},
		Post: func(post blog.Post, ctx blog.PostContext, siteURL string) templ.Component {
			meta := blog.PageMeta{
				Title:       post.Title + " | " + cfg.Name,
				Description: post.Summary,
				URL:         blog.BuildURL(siteURL, "blog", post.Slug),
				OGType:      "article",
			}
			return layout(cfg, meta, postPage(cfg, post, ctx))
		},
		PostPartial: func(post blog.Post, ctx blog.PostContext, siteURL string) templ.Component {
			return postPage(cfg, post, ctx)
		},
		Archive: func(groups []blog.YearGroup, siteURL string) templ.Component {
			return layout(cfg, pageMeta("Archive | "+cfg.Name, blog.BuildURL(siteURL, "archive")), archive(groups))
		},
		Series: func(info blog.SeriesInfo, siteURL string) templ.Component {
			return layout(cfg, pageMeta(info.Title+" | "+cfg.Name, blog.BuildURL(siteURL, "series", info.Slug)), series(info))
		},
		PreviewLogin: func(showError bool, csrfToken string) templ.Component {
			return layout(cfg, blog.PageMeta{Title: "Preview | " + cfg.Name}, previewLogin(showError, csrfToken))
		},
		PreviewIndex: func(drafts []blog.Post, csrfToken string) templ.Component {
			return layout(cfg, blog.PageMeta{Title: "Drafts | " + cfg.Name}, previewIndex(drafts, csrfToken))
		},
		NotFound: func() templ.Component {
			return layout(cfg, blog.PageMeta{Title: "Not Found | " + cfg.Name}, message("404", "This page does not exist."))
		},
		ServerError: func() templ.Component {
			return layout(cfg, blog.PageMeta{Title: "Error | " + cfg.Name}, message("500", "Something went wrong."))
		},
	}
}

func component(render func(w io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return render(w)
	})
}

func esc(s string) string {
	return html.EscapeString(s)
}

func layout(cfg SiteConfig, meta blog.PageMeta, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\"/>")
		b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"/>")
		fmt.Fprintf(&b, "<title>%s</title>", esc(meta.Title))
		if meta.Description != "" {
			fmt.Fprintf(&b, "<meta name=\"description\" content=\"%s\"/>", esc(meta.Description))
		}
		if meta.URL != "" {
			fmt.Fprintf(&b, "<link rel=\"canonical\" href=\"%s\"/>", esc(meta.URL))
			fmt.Fprintf(&b, "<meta property=\"og:url\" content=\"%s\"/>", esc(meta.URL))
		}
		fmt.Fprintf(&b, "<meta property=\"og:title\" content=\"%s\"/>", esc(meta.Title))
		if meta.Description != "" {
			fmt.Fprintf(&b, "<meta property=\"og:description\" content=\"%s\"/>", esc(meta.Description))
		}
		if meta.OGType != "" {
			fmt.Fprintf(&b, "<meta property=\"og:type\" content=\"%s\"/>", esc(meta.OGType))
		}
		fmt.Fprintf(&b, "<link rel=\"alternate\" type=\"application/rss+xml\" title=\"%s\" href=\"/feed.xml\"/>", esc(cfg.Name))
		b.WriteString("<link rel=\"stylesheet\" href=\"/public/style.css\"/></head><body>")
		fmt.Fprintf(&b, "<header><a href=\"/\" class=\"site-title\">%s</a><nav><a href=\"/archive/\">Archive</a><a href=\"/feed.xml\">RSS</a></nav></header><main>", esc(cfg.Name))
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		var tail strings.Builder
		fmt.Fprintf(&tail, "</main><footer><p>&copy; %s</p></footer>", esc(cfg.Author))
		if cfg.AnalyticsEnabled {
			tail.WriteString(analyticsBeacon)
		}
		tail.WriteString("</body></html>")
		_, err := io.WriteString(w, tail.String())
		return err
	})
}

// analyticsBeacon reports the page view to the analytics API. Fire and
// forget; failures are invisible to the reader.
const analyticsBeacon = `<script>fetch("/api/analytics/visit",{method:"POST",headers:{"Content-Type":"application/json"},body:JSON.stringify({path:location.pathname,referrer:document.referrer})}).catch(function(){})</script>`

func home(cfg SiteConfig, posts []blog.Post, activeTag string, tags []string, page blog.Page) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if cfg.Description != "" {
			if _, err := fmt.Fprintf(w, "<p class=\"intro\">%s</p>", esc(cfg.Description)); err != nil {
				return err
			}
		}
		if err := postList(posts, activeTag, tags, page).Render(ctx, w); err != nil {
			return err
		}
		jsonLD := blog.WebsiteJsonLD(blog.SiteConfig{
			Name: cfg.Name, URL: cfg.URL, Description: cfg.Description, Author: cfg.Author,
		})
		_, err := fmt.Fprintf(w, "<script type=\"application/ld+json\">%s</script>", jsonLD)
		return err
	})
}

func postList(posts []blog.Post, activeTag string, tags []string, page blog.Page) templ.Component {
	return component(func(w io.Writer) error {
		var b strings.Builder
		b.WriteString("<section id=\"blog\"><ul class=\"tags\">")
		for _, t := range tags {
			cls := ""
			if t == activeTag {
				cls = " class=\"active\""
			}
			fmt.Fprintf(&b, "<li%s><a href=\"/?tag=%s\">%s</a></li>", cls, blog.PathEscape(t), esc(t))
		}
		b.WriteString("</ul><ul class=\"posts\">")
		for _, p := range posts {
			fmt.Fprintf(&b, "<li><time>%s</time> <a href=\"%s/\">%s</a>", esc(p.Date), esc(p.Link), esc(p.Title))
			if p.Summary != "" {
				fmt.Fprintf(&b, "<p>%s</p>", esc(p.Summary))
			}
			b.WriteString("</li>")
		}
		b.WriteString("</ul>")
		if page.Total > 1 {
			b.WriteString("<nav class=\"pagination\">")
			if page.Number > 1 {
				fmt.Fprintf(&b, "<a href=\"/?page=%d\">Newer</a>", page.Number-1)
			}
			fmt.Fprintf(&b, "<span>%d / %d</span>", page.Number, page.Total)
			if page.Number < page.Total {
				fmt.Fprintf(&b, "<a href=\"/?page=%d\">Older</a>", page.Number+1)
			}
			b.WriteString("</nav>")
		}
		b.WriteString("</section>")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func postPage(cfg SiteConfig, post blog.Post, pctx blog.PostContext) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<article>")
		fmt.Fprintf(&b, "<h1>%s</h1><p class=\"meta\"><time>%s</time>", esc(post.Title), esc(post.Date))
		if len(post.Tags) > 0 {
			fmt.Fprintf(&b, " &middot; %s", esc(blog.JoinTags(post.Tags)))
		}
		if post.Draft {
			b.WriteString(" &middot; <strong>draft</strong>")
		}
		b.WriteString("</p>")
		if pctx.Series.Slug != "" {
			fmt.Fprintf(&b, "<p class=\"series-note\">Part %d of <a href=\"/series/%s/\">%s</a></p>",
				post.Part, blog.PathEscape(pctx.Series.Slug), esc(pctx.Series.Title))
		}
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		if err := markdown.Markdown(post.Content).Render(ctx, w); err != nil {
			return err
		}
		b.Reset()
		if pctx.Series.Slug != "" && (pctx.Prev.Slug != "" || pctx.Next.Slug != "") {
			b.WriteString("<nav class=\"series-nav\">")
			if pctx.Prev.Slug != "" {
				fmt.Fprintf(&b, "<a href=\"%s/\">&larr; %s</a>", esc(pctx.Prev.Link), esc(pctx.Prev.Title))
			}
			if pctx.Next.Slug != "" {
				fmt.Fprintf(&b, "<a href=\"%s/\">%s &rarr;</a>", esc(pctx.Next.Link), esc(pctx.Next.Title))
			}
			b.WriteString("</nav>")
		}
		if len(pctx.Related) > 0 {
			b.WriteString("<aside class=\"related\"><h2>Related</h2><ul>")
			for _, r := range pctx.Related {
				fmt.Fprintf(&b, "<li><a href=\"%s/\">%s</a></li>", esc(r.Link), esc(r.Title))
			}
			b.WriteString("</ul></aside>")
		}
		fmt.Fprintf(&b, "<script type=\"application/ld+json\">%s</script>", blog.BlogPostingJsonLD(post, blog.SiteConfig{
			Name: cfg.Name, URL: cfg.URL, Description: cfg.Description, Author: cfg.Author,
		}))
		b.WriteString("</article>")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func archive(groups []blog.YearGroup) templ.Component {
	return component(func(w io.Writer) error {
		var b strings.Builder
		b.WriteString("<section class=\"archive\"><h1>Archive</h1>")
		for _, g := range groups {
			fmt.Fprintf(&b, "<h2>%s</h2><ul>", esc(g.Year))
			for _, p := range g.Posts {
				fmt.Fprintf(&b, "<li><time>%s</time> <a href=\"%s/\">%s</a></li>", esc(p.Date), esc(p.Link), esc(p.Title))
			}
			b.WriteString("</ul>")
		}
		b.WriteString("</section>")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func series(info blog.SeriesInfo) templ.Component {
	return component(func(w io.Writer) error {
		var b strings.Builder
		fmt.Fprintf(&b, "<section class=\"series\"><h1>%s</h1><ol>", esc(info.Title))
		for _, p := range info.Parts {
			fmt.Fprintf(&b, "<li><a href=\"%s/\">%s</a></li>", esc(p.Link), esc(p.Title))
		}
		b.WriteString("</ol></section>")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func previewLogin(showError bool, csrfToken string) templ.Component {
	return component(func(w io.Writer) error {
		var b strings.Builder
		b.WriteString("<section class=\"preview-login\"><h1>Draft preview</h1>")
		if showError {
			b.WriteString("<p class=\"error\">Wrong password.</p>")
		}
		fmt.Fprintf(&b, "<form method=\"post\" action=\"/preview/login/\"><input type=\"hidden\" name=\"_csrf\" value=\"%s\"/>", esc(csrfToken))
		b.WriteString("<input type=\"password\" name=\"password\" autofocus/><button type=\"submit\">Enter</button></form></section>")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func previewIndex(drafts []blog.Post, csrfToken string) templ.Component {
	return component(func(w io.Writer) error {
		var b strings.Builder
		b.WriteString("<section class=\"preview\"><h1>Drafts</h1><ul>")
		for _, p := range drafts {
			fmt.Fprintf(&b, "<li><a href=\"%s/\">%s</a> <span>%s</span></li>", esc(p.Link), esc(p.Title), esc(p.SourcePath))
		}
		b.WriteString("</ul>")
		fmt.Fprintf(&b, "<form method=\"post\" action=\"/preview/logout/\"><input type=\"hidden\" name=\"_csrf\" value=\"%s\"/><button type=\"submit\">Log out</button></form></section>", esc(csrfToken))
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func message(code, text string) templ.Component {
	return component(func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "<section class=\"message\"><h1>%s</h1><p>%s</p><a href=\"/\">Back home</a></section>", esc(code), esc(text))
		return err
	})
}
