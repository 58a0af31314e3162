package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/doeshing/ecoscan/internal/domain"
	"github.com/doeshing/ecoscan/internal/ports"
)

// DoctorService runs environment diagnostics.
type DoctorService struct {
	ConfigProvider ports.ConfigProvider
	Registry       ports.AppRegistry
	Catalog        ports.CatalogSource
	Repository     ports.ServiceRepository
	Augmenter      ports.Augmenter
}

// Run executes checks and returns a report.
func (s *DoctorService) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("loaded %s", cfg.ConfigFormatVersion)))

	if err := cfg.ValidateConsistency(); err != nil {
		checks = append(checks, warn("Config consistency", err.Error()))
	} else {
		checks = append(checks, ok("Config consistency", "valid"))
	}

	if s.Registry != nil {
		checks = append(checks, registryDiagnostics(ctx, s.Registry))
	}

	if s.Catalog != nil {
		checks = append(checks, catalogDiagnostics(ctx, s.Catalog))
	}

	if s.Repository != nil {
		if records, err := s.Repository.All(ctx); err != nil {
			checks = append(checks, warn("Store", err.Error()))
		} else {
			checks = append(checks, ok("Store", fmt.Sprintf("%d records", len(records))))
		}
	} else {
		checks = append(checks, warn("Store", "repository not initialized"))
	}

	if cfg.IsAIEnabled() {
		checks = append(checks, apiCheck(cfg.Models))
		if s.Augmenter != nil && !s.Augmenter.Available() {
			checks = append(checks, warn("AI enrichment", "unavailable this session"))
		} else {
			checks = append(checks, ok("AI enrichment", fmt.Sprintf("model %s", cfg.AI.DefaultModel)))
		}
	} else {
		checks = append(checks, warn("AI enrichment", "disabled"))
	}

	checks = append(checks, rulesFileCheck(cfg.Classify.RulesFile))

	return domain.HealthReport{Checks: checks}, nil
}

func registryDiagnostics(ctx context.Context, registry ports.AppRegistry) domain.HealthCheck {
	backends := registry.Backends()
	if len(backends) == 0 {
		return warn("App registry", "no backends detected")
	}
	items, err := registry.List(ctx)
	if err != nil {
		return warn("App registry", err.Error())
	}
	return ok("App registry", fmt.Sprintf("%s: %d entries", strings.Join(backends, ", "), len(items)))
}

func catalogDiagnostics(ctx context.Context, source ports.CatalogSource) domain.HealthCheck {
	catalog := source.Load(ctx)
	switch {
	case catalog.Offline && catalog.Loaded():
		return warn("Catalog", "serving offline snapshot")
	case catalog.Offline:
		return warn("Catalog", "unreachable and no snapshot available")
	case !catalog.Loaded():
		return warn("Catalog", "empty classification tables")
	default:
		return ok("Catalog", fmt.Sprintf("%d categories, %d domains (fetched %s)",
			len(catalog.Categories), len(catalog.Domains),
			catalog.FetchedAt.Format(time.RFC3339)))
	}
}

func apiCheck(models []domain.ModelDefinition) domain.HealthCheck {
	for _, model := range models {
		if isAnthropicEndpoint(model.Endpoint) {
			if envMissing(model.AuthEnvVar, "ANTHROPIC_API_KEY") {
				return warn("API keys", "ANTHROPIC_API_KEY missing")
			}
		} else if isOpenAIEndpoint(model.Endpoint) {
			if envMissing(model.AuthEnvVar, "OPENAI_API_KEY") {
				return warn("API keys", "OPENAI_API_KEY missing")
			}
		}
	}
	return ok("API keys", "detected for configured providers")
}

func rulesFileCheck(path string) domain.HealthCheck {
	if path == "" {
		return ok("Exclusion rules", "built-in defaults")
	}
	expanded := expandPath(path)
	if _, err := os.Stat(expanded); err != nil {
		return warn("Exclusion rules", fmt.Sprintf("missing at %s", expanded))
	}
	return ok("Exclusion rules", expanded)
}

func isAnthropicEndpoint(endpoint string) bool {
	return strings.Contains(endpoint, "anthropic.com")
}

func isOpenAIEndpoint(endpoint string) bool {
	return strings.Contains(endpoint, "openai.com")
}

func envMissing(primary, fallback string) bool {
	if primary != "" && os.Getenv(primary) != "" {
		return false
	}
	if fallback != "" && os.Getenv(fallback) != "" {
		return false
	}
	return true
}

func expandPath(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
