package analytics

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store provides database operations for analytics. It lives in its own
// SQLite database so the analytics write load never contends with the
// content index.
type Store struct {
	db *sql.DB
}

// NewStore creates a new analytics store at dbPath.
func NewStore(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open analytics db: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec(`PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;`); err != nil {
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS visits (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			visitor_id TEXT NOT NULL,
			ip_hash TEXT NOT NULL,
			path TEXT NOT NULL,
			referrer TEXT,
			timestamp DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_visits_timestamp ON visits(timestamp);
		CREATE INDEX IF NOT EXISTS idx_visits_path ON visits(path);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	return err
}

// GetSetting returns the value for key, or "" if unset.
func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// SetSetting upserts a settings key.
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value)
	return err
}

// RecordVisit inserts a page view.
func (s *Store) RecordVisit(v Visit) error {
	_, err := s.db.Exec(`INSERT INTO visits (visitor_id, ip_hash, path, referrer, timestamp) VALUES (?, ?, ?, ?, ?)`,
		v.VisitorID, v.IPHash, v.Path, v.Referrer, v.Timestamp.UTC())
	return err
}

// GetStats aggregates page views over the last days days.
func (s *Store) GetStats(days int) (Stats, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)
	stats := Stats{Period: fmt.Sprintf("%dd", days)}

	err := s.db.QueryRow(`SELECT COUNT(DISTINCT visitor_id), COUNT(*) FROM visits WHERE timestamp >= ?`, since).
		Scan(&stats.UniqueVisitors, &stats.TotalViews)
	if err != nil {
		return Stats{}, fmt.Errorf("visit totals: %w", err)
	}

	rows, err := s.db.Query(`SELECT path, COUNT(*) AS views FROM visits WHERE timestamp >= ? GROUP BY path ORDER BY views DESC LIMIT 10`, since)
	if err != nil {
		return Stats{}, fmt.Errorf("top pages: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ps PageStat
		if err := rows.Scan(&ps.Path, &ps.Views); err != nil {
			return Stats{}, err
		}
		stats.TopPages = append(stats.TopPages, ps)
	}
	if err := rows.Err(); err != nil {
		return Stats{}, err
	}

	dayRows, err := s.db.Query(`SELECT date(timestamp) AS day, COUNT(*) FROM visits WHERE timestamp >= ? GROUP BY day ORDER BY day ASC`, since)
	if err != nil {
		return Stats{}, fmt.Errorf("daily views: %w", err)
	}
	defer dayRows.Close()
	for dayRows.Next() {
		var dv DailyView
		if err := dayRows.Scan(&dv.Day, &dv.Views); err != nil {
			return Stats{}, err
		}
		stats.DailyViews = append(stats.DailyViews, dv)
	}
	return stats, dayRows.Err()
}

// Cleanup deletes visits older than retentionDays.
func (s *Store) Cleanup(retentionDays int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)
	res, err := s.db.Exec(`DELETE FROM visits WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// StartCleanupScheduler deletes expired visits every interval until the
// returned stop function is called.
func (s *Store) StartCleanupScheduler(retentionDays int, interval time.Duration) func() {
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Cleanup(retentionDays)
			case <-stop:
				return
			}
		}
	}()
	return func() { close(stop) }
}
