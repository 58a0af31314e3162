package domain

// Config mirrors ~/.ecoscan/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	Catalog             CatalogSettings   `yaml:"catalog"`
	AI                  AISettings        `yaml:"ai"`
	Store               StoreSettings     `yaml:"store"`
	Scan                ScanSettings      `yaml:"scan"`
	Classify            ClassifySettings  `yaml:"classify"`
	Models              []ModelDefinition `yaml:"models"`
}

// CatalogSettings configures the remote classification source.
type CatalogSettings struct {
	CategoriesURL  string `yaml:"categories_url"`
	DomainsURL     string `yaml:"domains_url"`
	RefreshHours   int    `yaml:"refresh_hours"`
	TimeoutSeconds int    `yaml:"timeout"`
	SnapshotDir    string `yaml:"snapshot_dir"`
}

// AISettings controls the content augmenter.
type AISettings struct {
	Enabled             bool   `yaml:"enabled"`
	DefaultModel        string `yaml:"default_model"`
	SessionRequestLimit int    `yaml:"session_request_limit"`
	MinIntervalMS       int    `yaml:"min_interval_ms"`
}

// StoreSettings configures the local persisted result set.
type StoreSettings struct {
	Path       string `yaml:"path"`
	RetainDays int    `yaml:"retain_days"`
}

// ScanSettings captures discovery toggles.
type ScanSettings struct {
	IncludeSystem bool `yaml:"include_system"`
}

// ClassifySettings points at optional user-supplied exclusion rules.
type ClassifySettings struct {
	RulesFile string `yaml:"rules_file"`
}
