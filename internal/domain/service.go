package domain

import (
	"strings"
	"time"
)

// InstalledItem is one entry from the OS application registry. Immutable per
// enumeration pass; never persisted itself.
type InstalledItem struct {
	PackageID     string
	DisplayName   string
	SystemEntity  bool
	UpdatedSystem bool
}

// Relevant reports whether the item should be considered at all. Updated
// system entries are user-relevant despite originating as system apps.
func (i InstalledItem) Relevant() bool {
	return !i.SystemEntity || i.UpdatedSystem
}

// ClassificationSource records which path produced an impact level, so
// fallback use is observable instead of indistinguishable from success.
type ClassificationSource string

const (
	SourceRemote  ClassificationSource = "remote"
	SourceKeyword ClassificationSource = "keyword"
	SourceDefault ClassificationSource = "default"
)

// Classification is the classifier's verdict for one item.
type Classification struct {
	Level    ImpactLevel
	Excluded bool
	Source   ClassificationSource
	Category string
}

// CategoryRecord is the remote-sourced descriptive template for a class of
// applications, keyed by category name in the catalog.
type CategoryRecord struct {
	Impact         string          `json:"impact"`
	Description    string          `json:"description"`
	Source         string          `json:"source,omitempty"`
	AnnualEstimate *AnnualEstimate `json:"annual_estimate,omitempty"`
}

// AnnualEstimate mirrors the optional annual_estimate object of the remote
// category table. All fields are free text.
type AnnualEstimate struct {
	Wh            string `json:"wh"`
	WhComparison  string `json:"wh-comparison"`
	CO2           string `json:"co2"`
	CO2Comparison string `json:"co2-comparison"`
}

// Catalog holds both remote classification documents. Replaced wholesale on
// each successful refresh, never merged.
type Catalog struct {
	Categories map[string]CategoryRecord
	Domains    map[string]string
	FetchedAt  time.Time
	Offline    bool
}

// Loaded reports whether the catalog carries usable data.
func (c Catalog) Loaded() bool {
	return len(c.Categories) > 0 || len(c.Domains) > 0
}

// Fresh reports whether the catalog is still inside its validity window.
func (c Catalog) Fresh(now time.Time) bool {
	return c.Loaded() && now.Sub(c.FetchedAt) < CatalogRefreshInterval
}

// UsageFrequency buckets a daily-minutes figure.
type UsageFrequency string

const (
	UsageRare     UsageFrequency = "rare"
	UsageModerate UsageFrequency = "moderate"
	UsageHeavy    UsageFrequency = "heavy"
)

// UsageStats is derived synthetically from a single daily-minutes figure.
type UsageStats struct {
	DailyMinutes   float64        `json:"daily_minutes"`
	WeeklyMinutes  float64        `json:"weekly_minutes"`
	MonthlyMinutes float64        `json:"monthly_minutes"`
	Frequency      UsageFrequency `json:"frequency"`
}

// NewUsageStats expands one observed daily-minutes value into the derived
// weekly/monthly estimates and a frequency bucket.
func NewUsageStats(dailyMinutes float64) UsageStats {
	stats := UsageStats{
		DailyMinutes:   dailyMinutes,
		WeeklyMinutes:  dailyMinutes * 7,
		MonthlyMinutes: dailyMinutes * 30,
		Frequency:      UsageModerate,
	}
	switch {
	case dailyMinutes < 10:
		stats.Frequency = UsageRare
	case dailyMinutes > 90:
		stats.Frequency = UsageHeavy
	}
	return stats
}

// GeneratedContent holds the optional model-generated text attached to a
// record. Created and replaced wholesale, never partially updated.
type GeneratedContent struct {
	CO2Comparison    string    `json:"co2_comparison,omitempty"`
	EnergyComparison string    `json:"energy_comparison,omitempty"`
	Explanation      string    `json:"explanation,omitempty"`
	Suggestions      []string  `json:"suggestions,omitempty"`
	AnnualProjection string    `json:"annual_projection,omitempty"`
	GeneratedAt      time.Time `json:"generated_at"`
}

// Fresh reports whether the content is younger than the shared staleness
// threshold.
func (g GeneratedContent) Fresh(now time.Time) bool {
	return !g.GeneratedAt.IsZero() && now.Sub(g.GeneratedAt) < GeneratedContentMaxAge
}

// Empty reports whether no field carries text.
func (g GeneratedContent) Empty() bool {
	return g.CO2Comparison == "" && g.EnergyComparison == "" &&
		g.Explanation == "" && len(g.Suggestions) == 0 && g.AnnualProjection == ""
}

// Service is the central persisted record: one classified application with
// its optional refinements. At most one record exists per PackageID and the
// impact level is always present; Category and Content are layered on top.
type Service struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	PackageID string               `json:"package_id"`
	Level     ImpactLevel          `json:"impact_level"`
	Source    ClassificationSource `json:"classification_source,omitempty"`
	Category  *CategoryRecord      `json:"category,omitempty"`
	Usage     *UsageStats          `json:"usage,omitempty"`
	Content   *GeneratedContent    `json:"content,omitempty"`
	CachedAt  time.Time            `json:"cached_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// Daily returns the record's daily estimate.
func (s Service) Daily() DailyImpact {
	return EstimateDaily(s.Level, s.Usage)
}

// Matches reports whether the record matches a case-insensitive free-text
// query against name or package id.
func (s Service) Matches(query string) bool {
	query = strings.ToLower(query)
	return strings.Contains(strings.ToLower(s.Name), query) ||
		strings.Contains(strings.ToLower(s.PackageID), query)
}
