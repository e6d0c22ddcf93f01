package analytics

import (
	"path/filepath"
	"testing"
	"time"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "analytics.db"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSettings(t *testing.T) {
	store := setupTestStore(t)

	val, err := store.GetSetting("visitor_salt")
	if err != nil {
		t.Fatalf("GetSetting failed: %v", err)
	}
	if val != "" {
		t.Errorf("unset key = %q, want empty", val)
	}

	if err := store.SetSetting("visitor_salt", "abc123"); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}
	val, err = store.GetSetting("visitor_salt")
	if err != nil {
		t.Fatalf("GetSetting failed: %v", err)
	}
	if val != "abc123" {
		t.Errorf("value = %q, want abc123", val)
	}
}

func TestRecordVisitAndStats(t *testing.T) {
	store := setupTestStore(t)
	now := time.Now().UTC()

	visits := []Visit{
		{VisitorID: "v1", IPHash: "h1", Path: "/blog/lazy-streams-part-1/", Timestamp: now},
		{VisitorID: "v1", IPHash: "h1", Path: "/blog/lazy-streams-part-1/", Timestamp: now},
		{VisitorID: "v2", IPHash: "h2", Path: "/", Referrer: "https://news.ycombinator.com", Timestamp: now},
	}
	for _, v := range visits {
		if err := store.RecordVisit(v); err != nil {
			t.Fatalf("RecordVisit failed: %v", err)
		}
	}

	stats, err := store.GetStats(7)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.UniqueVisitors != 2 {
		t.Errorf("UniqueVisitors = %d, want 2", stats.UniqueVisitors)
	}
	if stats.TotalViews != 3 {
		t.Errorf("TotalViews = %d, want 3", stats.TotalViews)
	}
	if len(stats.TopPages) != 2 {
		t.Fatalf("TopPages = %v", stats.TopPages)
	}
	if stats.TopPages[0].Path != "/blog/lazy-streams-part-1/" || stats.TopPages[0].Views != 2 {
		t.Errorf("TopPages[0] = %+v", stats.TopPages[0])
	}
	if len(stats.DailyViews) != 1 || stats.DailyViews[0].Views != 3 {
		t.Errorf("DailyViews = %v", stats.DailyViews)
	}
}

func TestCleanup(t *testing.T) {
	store := setupTestStore(t)
	now := time.Now().UTC()

	old := Visit{VisitorID: "v1", IPHash: "h1", Path: "/", Timestamp: now.AddDate(0, 0, -400)}
	recent := Visit{VisitorID: "v2", IPHash: "h2", Path: "/", Timestamp: now}
	for _, v := range []Visit{old, recent} {
		if err := store.RecordVisit(v); err != nil {
			t.Fatalf("RecordVisit failed: %v", err)
		}
	}

	deleted, err := store.Cleanup(365)
	if err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}

	stats, err := store.GetStats(500)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.TotalViews != 1 {
		t.Errorf("TotalViews after cleanup = %d, want 1", stats.TotalViews)
	}
}

func TestVisitorIDRotatesDaily(t *testing.T) {
	salt.value = "test-salt"
	day1 := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	a := VisitorID("1.2.3.4", "Mozilla/5.0", day1)
	b := VisitorID("1.2.3.4", "Mozilla/5.0", day1.Add(5*time.Hour))
	c := VisitorID("1.2.3.4", "Mozilla/5.0", day2)

	if a != b {
		t.Error("same visitor on the same day should hash identically")
	}
	if a == c {
		t.Error("visitor hash should rotate across days")
	}
	if a == VisitorID("5.6.7.8", "Mozilla/5.0", day1) {
		t.Error("different IPs should hash differently")
	}
}
