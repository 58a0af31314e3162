// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and
// external adapters (infrastructure). Following the Ports and Adapters
// (Hexagonal) pattern, these interfaces allow the application to remain
// independent of specific implementations like databases, HTTP clients, or
// CLI frameworks.
package ports

import (
	"context"
	"time"

	"github.com/doeshing/ecoscan/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.ecoscan/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// AppRegistry enumerates installed applications from the OS. The registry is
// queried read-only; nothing is ever written back.
type AppRegistry interface {
	List(ctx context.Context) ([]domain.InstalledItem, error)
	Backends() []string
}

// CatalogSource serves the remote classification documents. Load returns the
// cached catalog when it is still inside its validity window; errors never
// escape past the source, which degrades to an empty or offline catalog.
type CatalogSource interface {
	Load(ctx context.Context) domain.Catalog
	Invalidate()
}

// Classifier maps an installed item to an impact level, or excludes it.
type Classifier interface {
	Classify(catalog domain.Catalog, packageID, displayName string) domain.Classification
}

// Augmenter produces optional generated text for a classified record.
// Implementations degrade to canned fallback text; they never return errors.
type Augmenter interface {
	Augment(ctx context.Context, svc domain.Service) domain.GeneratedContent
	Available() bool
	UseModel(model domain.ModelDefinition)
}

// ProviderFactory builds generation provider instances for model definitions.
type ProviderFactory interface {
	ForModel(domain.ModelDefinition) (Provider, error)
}

// Provider defines the core text-generation capability. Each provider
// implementation wraps a specific hosted API.
type Provider interface {
	Name() string
	Model() domain.ModelDefinition
	Generate(context.Context, ProviderRequest) (ProviderResponse, error)
}

// ProviderRequest contains all data needed to generate one text field.
type ProviderRequest struct {
	Prompt      string
	Model       domain.ModelDefinition
	MaxTokens   int
	Temperature float64
}

// ProviderResponse contains the generated text blob.
type ProviderResponse struct {
	Text string
}

// ServiceRepository is the durable owner of Service records. ReplaceAll has
// replace-all semantics: the previous result set is cleared wholesale.
type ServiceRepository interface {
	ReplaceAll(ctx context.Context, services []domain.Service) error
	All(ctx context.Context) ([]domain.Service, error)
	ByPackage(ctx context.Context, packageID string) (domain.Service, bool, error)
	Search(ctx context.Context, query string) ([]domain.Service, error)
	ByImpact(ctx context.Context, level domain.ImpactLevel) ([]domain.Service, error)
	Cleanup(ctx context.Context, olderThan time.Duration) (int64, error)
	Close() error
}

// SnapshotStore persists the last good catalog documents for offline reuse.
type SnapshotStore interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, data []byte) error
	Clear() error
	Dir() string
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external
// services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
