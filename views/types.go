package views

// SiteConfig holds the site-wide settings the templates render with.
type SiteConfig struct {
	Name        string
	URL         string
	Description string
	Author      string

	// AnalyticsEnabled makes every page emit the visit beacon.
	AnalyticsEnabled bool
}
