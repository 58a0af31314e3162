package services

import (
	"context"
	"testing"

	"github.com/doeshing/ecoscan/internal/domain"
)

func TestDoctorReportsHealthyEnvironment(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "test-key")
	cfg := scanConfig()
	cfg.Models[0].Endpoint = "https://api.anthropic.com/v1/messages"

	svc := &DoctorService{
		ConfigProvider: stubConfigProvider{cfg: cfg},
		Registry:       stubRegistry{items: testItems()},
		Catalog:        stubCatalog{catalog: loadedCatalog()},
		Repository:     &stubRepository{},
		Augmenter:      &stubAugmenter{available: true},
	}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Overall() != domain.HealthOK {
		t.Fatalf("Overall() = %s, report %+v", report.Overall(), report.Checks)
	}
}

func TestDoctorFlagsOfflineCatalogAndMissingKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	cfg := scanConfig()
	cfg.Models[0].Endpoint = "https://api.anthropic.com/v1/messages"

	svc := &DoctorService{
		ConfigProvider: stubConfigProvider{cfg: cfg},
		Registry:       stubRegistry{items: testItems()},
		Catalog:        stubCatalog{catalog: domain.Catalog{Offline: true}},
		Repository:     &stubRepository{},
		Augmenter:      &stubAugmenter{available: true},
	}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Overall() != domain.HealthWarn {
		t.Fatalf("Overall() = %s, want warn", report.Overall())
	}
	if !hasCheck(report, "Catalog", domain.HealthWarn) {
		t.Errorf("catalog warning missing: %+v", report.Checks)
	}
	if !hasCheck(report, "API keys", domain.HealthWarn) {
		t.Errorf("API key warning missing: %+v", report.Checks)
	}
}

func hasCheck(report domain.HealthReport, name string, status domain.HealthStatus) bool {
	for _, check := range report.Checks {
		if check.Name == name && check.Status == status {
			return true
		}
	}
	return false
}
