// Package analytics provides privacy-first page view analytics. No cookies
// are set and no raw IP addresses are stored: visitors are identified by a
// salted hash that rotates daily, so individuals cannot be tracked across
// days.
package analytics

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

// salt holds the per-installation random salt for IP hashing, protected by sync.Once.
var salt struct {
	once  sync.Once
	value string
}

// InitSalt loads or generates a persistent salt for IP hashing.
// Must be called once at startup before any requests are served.
func InitSalt(store *Store) error {
	var initErr error
	salt.once.Do(func() {
		s, err := store.GetSetting("hash_salt")
		if err != nil {
			initErr = fmt.Errorf("read hash salt: %w", err)
			return
		}
		if s == "" {
			b := make([]byte, 32)
			if _, err := rand.Read(b); err != nil {
				initErr = fmt.Errorf("generate salt: %w", err)
				return
			}
			s = hex.EncodeToString(b)
			if err := store.SetSetting("hash_salt", s); err != nil {
				initErr = fmt.Errorf("store hash salt: %w", err)
				return
			}
		}
		salt.value = s
	})
	return initErr
}

func getSalt() string {
	return salt.value
}

// Visit represents a single page view.
type Visit struct {
	ID        int64     `json:"-"`
	VisitorID string    `json:"visitor_id"` // Anonymous daily-rotating fingerprint hash
	IPHash    string    `json:"-"`          // Hashed IP address
	Path      string    `json:"path"`       // Page path
	Referrer  string    `json:"referrer"`   // Referrer URL
	Timestamp time.Time `json:"timestamp"`
}

// VisitRequest is the data sent from the client beacon.
type VisitRequest struct {
	Path     string `json:"path"`
	Referrer string `json:"referrer"`
}

// Stats holds aggregated analytics data.
type Stats struct {
	Period         string      `json:"period"`
	UniqueVisitors int         `json:"unique_visitors"`
	TotalViews     int         `json:"total_views"`
	TopPages       []PageStat  `json:"top_pages"`
	DailyViews     []DailyView `json:"daily_views"`
}

// PageStat represents page view statistics.
type PageStat struct {
	Path  string `json:"path"`
	Views int    `json:"views"`
}

// DailyView is the view count for a single day.
type DailyView struct {
	Day   string `json:"day"` // YYYY-MM-DD
	Views int    `json:"views"`
}

// VisitorID derives the anonymous visitor fingerprint: a salted hash over
// IP, user agent, and the current date. The date component rotates the
// identifier daily.
func VisitorID(ip, userAgent string, now time.Time) string {
	return hash(getSalt() + "|" + ip + "|" + userAgent + "|" + now.UTC().Format("2006-01-02"))
}

// HashIP returns the salted hash of an IP address.
func HashIP(ip string) string {
	return hash(getSalt() + "|" + ip)
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
