package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Catalog constants
const (
	// CatalogRefreshInterval is how long fetched classification tables stay valid
	CatalogRefreshInterval = 6 * time.Hour
	// DefaultHTTPTimeout bounds every outbound catalog request
	DefaultHTTPTimeout = 15 * time.Second
	// CatalogMaxRetries is the retry budget for one catalog fetch
	CatalogMaxRetries = 3
)

// Estimator constants
const (
	// UsageMultiplierStepMinutes is the usage-minutes figure that maps to a 1.0 multiplier
	UsageMultiplierStepMinutes = 30.0
	// UsageMultiplierFloor is the lower clamp on the usage multiplier
	UsageMultiplierFloor = 0.1
	// UsageMultiplierCeiling is the upper clamp on the usage multiplier
	UsageMultiplierCeiling = 3.0
	// DaysPerYear is the flat annualization factor (no calendar adjustment)
	DaysPerYear = 365.0
)

// Augmenter constants
const (
	// AugmenterSessionLimit caps generation requests per process lifetime
	AugmenterSessionLimit = 10
	// AugmenterBatchLimit caps enriched items per scan
	AugmenterBatchLimit = 3
	// AugmenterMinInterval is the minimum delay between generation requests
	AugmenterMinInterval = 500 * time.Millisecond
	// AugmenterRetryBackoff is the added delay before the single retry
	AugmenterRetryBackoff = time.Second
	// AugmenterMaxSuggestions bounds the suggestions list
	AugmenterMaxSuggestions = 3
	// GeneratedContentMaxAge marks generated text stale everywhere.
	// The cache and the consumers share this single threshold.
	GeneratedContentMaxAge = 24 * time.Hour
)

// Store constants
const (
	// DefaultRetainDays is how long persisted records survive cleanup
	DefaultRetainDays = 7
	// DefaultListLimit is the default number of records to display
	DefaultListLimit = 50
)

// Model configuration constants
const (
	// DefaultMaxTokens is the default maximum number of generated tokens
	DefaultMaxTokens = 256
	// DefaultTemperature is the default sampling temperature
	DefaultTemperature = 0.7
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)
