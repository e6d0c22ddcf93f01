package blog

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Draft preview: a password-protected session that may read draft posts at
// their normal URL. It edits nothing; content only changes via the
// markdown files.

func (a *App) handlePreview(c echo.Context) error {
	if !IsPreviewer(c) {
		return Render(c, a.Views.PreviewLogin(false, CsrfToken(c)))
	}
	posts, err := a.Store.ListAllPosts()
	if err != nil {
		return err
	}
	var drafts []Post
	for _, p := range posts {
		if p.Draft {
			drafts = append(drafts, p)
		}
	}
	return Render(c, a.Views.PreviewIndex(drafts, CsrfToken(c)))
}

func (a *App) handlePreviewLogin(c echo.Context) error {
	if !a.loginLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.PreviewPassword)) == 1 {
		if err := setPreviewSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/preview/")
	}
	return Render(c, a.Views.PreviewLogin(true, CsrfToken(c)))
}

func handlePreviewLogout(c echo.Context) error {
	if err := clearPreviewSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}
