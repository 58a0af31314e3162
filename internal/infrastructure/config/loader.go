package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/ecoscan/internal/domain"
	"github.com/doeshing/ecoscan/internal/pkg/filesystem"
	"github.com/doeshing/ecoscan/internal/ports"
)

// Default catalog endpoints. Both documents are static JSON files served
// from a public repository.
const (
	DefaultCategoriesURL = "https://raw.githubusercontent.com/doeshing/ecoscan-data/main/categories.json"
	DefaultDomainsURL    = "https://raw.githubusercontent.com/doeshing/ecoscan-data/main/domains.json"
)

// FileLoader loads YAML configuration from ~/.ecoscan/config.yaml
// (overridable via ECOSCAN_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := defaultConfig()
			if err := writeDefault(path, cfg); err != nil {
				return domain.Config{}, err
			}
			return cfg, nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}

	return hydrateDefaults(cfg), nil
}

// Path returns the resolved config file location.
func (l *FileLoader) Path() string {
	return l.resolvePath()
}

// Save writes the configuration back to disk.
func (l *FileLoader) Save(cfg domain.Config) error {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return err
	}
	return writeDefault(path, cfg)
}

// Reset rewrites the config file with the built-in defaults.
func (l *FileLoader) Reset() (domain.Config, error) {
	cfg := defaultConfig()
	if err := l.Save(cfg); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

// Backup copies the current config file aside and returns the backup path.
func (l *FileLoader) Backup() (string, error) {
	path := l.resolvePath()
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	backup := path + ".bak"
	if err := os.WriteFile(backup, data, domain.SecureFilePermissions); err != nil {
		return "", err
	}
	return backup, nil
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv("ECOSCAN_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(filesystem.UserHomeDir(), ".ecoscan", "config.yaml")
}

func ensureConfigDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, domain.DirectoryPermissions)
}

func writeDefault(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

// Default returns the built-in configuration used on first run.
func Default() domain.Config {
	return defaultConfig()
}

func defaultConfig() domain.Config {
	home := filesystem.UserHomeDir()
	return domain.Config{
		ConfigFormatVersion: "1",
		Catalog: domain.CatalogSettings{
			CategoriesURL: DefaultCategoriesURL,
			DomainsURL:    DefaultDomainsURL,
			RefreshHours:  6,
		},
		AI: domain.AISettings{
			Enabled:             true,
			DefaultModel:        "claude-haiku",
			SessionRequestLimit: domain.AugmenterSessionLimit,
		},
		Store: domain.StoreSettings{
			Path:       filepath.Join(home, ".ecoscan", "ecoscan.db"),
			RetainDays: domain.DefaultRetainDays,
		},
		Models: []domain.ModelDefinition{
			{
				Name:       "claude-haiku",
				Endpoint:   "https://api.anthropic.com/v1/messages",
				AuthEnvVar: "ANTHROPIC_API_KEY",
				ModelID:    "claude-3-5-haiku-20241022",
				MaxTokens:  domain.DefaultMaxTokens,
			},
		},
	}
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.Catalog.CategoriesURL == "" {
		cfg.Catalog.CategoriesURL = DefaultCategoriesURL
	}
	if cfg.Catalog.DomainsURL == "" {
		cfg.Catalog.DomainsURL = DefaultDomainsURL
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = filepath.Join(filesystem.UserHomeDir(), ".ecoscan", "ecoscan.db")
	}
	if cfg.AI.DefaultModel == "" && len(cfg.Models) > 0 {
		cfg.AI.DefaultModel = cfg.Models[0].Name
	}
	return cfg
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return path
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
