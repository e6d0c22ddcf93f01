package blog

import (
	"database/sql"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

const relatedPostLimit = 4

func (a *App) handleHome(c echo.Context) error {
	tag := c.QueryParam("tag")
	posts, err := a.Cache.ListPosts(tag)
	if err != nil {
		return err
	}
	tags, err := a.Cache.ListTags()
	if err != nil {
		return err
	}
	page := 1
	if v := c.QueryParam("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	pagePosts, totalPages := Paginate(posts, page, a.Config.PostsPerPage)
	pg := Page{Number: page, Total: totalPages}
	if c.Request().Header.Get("HX-Request") == "true" {
		partial := c.QueryParam("partial")
		switch partial {
		case "blog":
			return Render(c, a.Views.BlogSection(pagePosts, tag, tags, pg))
		case "home":
			return Render(c, a.Views.HomePartial(pagePosts, tag, tags, pg, a.Config.URL))
		}
	}
	return Render(c, a.Views.Home(pagePosts, tag, tags, pg, a.Config.URL))
}

func (a *App) handlePost(c echo.Context) error {
	slug := c.Param("slug")
	post, err := a.Cache.GetPost(slug)
	if err == ErrNotFound && a.previewEnabled() && IsPreviewer(c) {
		// Previewers may read drafts at their normal URL.
		post, err = a.Store.GetPostAny(slug)
	}
	if err != nil {
		if err == sql.ErrNoRows {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	if post.Draft {
		// Drafts must never land in a shared cache at their public URL.
		c.Response().Header().Set("Cache-Control", "no-store")
	}
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	ctx := PostContext{
		Related: FilterRelatedPosts(post, posts, relatedPostLimit),
	}
	if post.Series != "" {
		parts, err := a.Store.ListSeriesPosts(post.Series)
		if err != nil {
			return err
		}
		ctx.Series = BuildSeriesInfo(post.Series, parts)
		ctx.Prev, ctx.Next = SeriesNeighbors(post, parts)
	}
	if c.Request().Header.Get("HX-Request") == "true" && c.QueryParam("partial") == "post" {
		return Render(c, a.Views.PostPartial(post, ctx, a.Config.URL))
	}
	return Render(c, a.Views.Post(post, ctx, a.Config.URL))
}

func (a *App) handleArchive(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	return Render(c, a.Views.Archive(GroupByYear(posts), a.Config.URL))
}

func (a *App) handleSeries(c echo.Context) error {
	slug := c.Param("series")
	parts, err := a.Store.ListSeriesPosts(slug)
	if err != nil {
		return err
	}
	if len(parts) == 0 {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	}
	return Render(c, a.Views.Series(BuildSeriesInfo(slug, parts), a.Config.URL))
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func handleBlogRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/")
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

// handleRobots generates robots.txt dynamically from the site URL.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /preview/\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
