package analytics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// Handler serves the analytics HTTP API.
type Handler struct {
	store   *Store
	limiter *visitLimiter
}

// NewHandler creates an analytics Handler backed by store.
func NewHandler(store *Store) *Handler {
	return &Handler{
		store:   store,
		limiter: newVisitLimiter(60, time.Minute),
	}
}

// RegisterRoutes registers the analytics API. The visit beacon is public;
// authMiddleware, when non-nil, guards the stats endpoint.
func (h *Handler) RegisterRoutes(e *echo.Echo, authMiddleware echo.MiddlewareFunc) {
	e.POST("/api/analytics/visit", h.handleVisit)
	if authMiddleware != nil {
		e.GET("/api/analytics/stats", h.handleStats, authMiddleware)
		return
	}
	e.GET("/api/analytics/stats", h.handleStats)
}

func (h *Handler) handleVisit(c echo.Context) error {
	var req VisitRequest
	if err := c.Bind(&req); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	path := sanitizePath(req.Path)
	if path == "" {
		return c.NoContent(http.StatusBadRequest)
	}

	ip := c.RealIP()
	ipHash := HashIP(ip)
	if !h.limiter.Allow(ipHash) {
		return c.NoContent(http.StatusTooManyRequests)
	}

	visit := Visit{
		VisitorID: VisitorID(ip, c.Request().UserAgent(), time.Now()),
		IPHash:    ipHash,
		Path:      path,
		Referrer:  strings.TrimSpace(req.Referrer),
		Timestamp: time.Now(),
	}
	if err := h.store.RecordVisit(visit); err != nil {
		c.Logger().Errorf("analytics: record visit: %v", err)
		return c.NoContent(http.StatusInternalServerError)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) handleStats(c echo.Context) error {
	days := 30
	if v := c.QueryParam("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 365 {
			days = n
		}
	}
	stats, err := h.store.GetStats(days)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// sanitizePath keeps only site-local paths and strips query strings.
func sanitizePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") {
		return ""
	}
	if idx := strings.IndexAny(p, "?#"); idx >= 0 {
		p = p[:idx]
	}
	if len(p) > 512 {
		return ""
	}
	return p
}
