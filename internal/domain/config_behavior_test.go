package domain_test

import (
	"testing"
	"time"

	"github.com/doeshing/ecoscan/internal/domain"
)

// TestConfig_GetDefaultModel tests retrieving the default model
func TestConfig_GetDefaultModel(t *testing.T) {
	tests := []struct {
		name        string
		config      domain.Config
		wantError   bool
		wantModelID string
	}{
		{
			name: "returns default model successfully",
			config: domain.Config{
				AI: domain.AISettings{DefaultModel: "claude"},
				Models: []domain.ModelDefinition{
					{Name: "claude", ModelID: "claude-3-5-haiku"},
					{Name: "gpt4", ModelID: "gpt-4o-mini"},
				},
			},
			wantError:   false,
			wantModelID: "claude-3-5-haiku",
		},
		{
			name: "returns error when default model not found",
			config: domain.Config{
				AI: domain.AISettings{DefaultModel: "nonexistent"},
				Models: []domain.ModelDefinition{
					{Name: "claude", ModelID: "claude-3-5-haiku"},
				},
			},
			wantError: true,
		},
		{
			name: "returns error when no default model configured",
			config: domain.Config{
				Models: []domain.ModelDefinition{
					{Name: "claude", ModelID: "claude-3-5-haiku"},
				},
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, err := tt.config.GetDefaultModel()
			if tt.wantError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("GetDefaultModel() error = %v", err)
			}
			if model.ModelID != tt.wantModelID {
				t.Fatalf("GetDefaultModel() ModelID = %s, want %s", model.ModelID, tt.wantModelID)
			}
		})
	}
}

func TestConfig_AugmenterDefaults(t *testing.T) {
	var cfg domain.Config

	if got := cfg.GetSessionRequestLimit(); got != domain.AugmenterSessionLimit {
		t.Errorf("GetSessionRequestLimit() = %d, want %d", got, domain.AugmenterSessionLimit)
	}
	if got := cfg.GetMinRequestInterval(); got != domain.AugmenterMinInterval {
		t.Errorf("GetMinRequestInterval() = %s, want %s", got, domain.AugmenterMinInterval)
	}

	cfg.AI.SessionRequestLimit = 20
	cfg.AI.MinIntervalMS = 250
	if got := cfg.GetSessionRequestLimit(); got != 20 {
		t.Errorf("GetSessionRequestLimit() = %d, want 20", got)
	}
	if got := cfg.GetMinRequestInterval(); got != 250*time.Millisecond {
		t.Errorf("GetMinRequestInterval() = %s, want 250ms", got)
	}
}

func TestConfig_CatalogDefaults(t *testing.T) {
	var cfg domain.Config

	if got := cfg.GetCatalogRefreshInterval(); got != domain.CatalogRefreshInterval {
		t.Errorf("GetCatalogRefreshInterval() = %s, want %s", got, domain.CatalogRefreshInterval)
	}
	if got := cfg.GetCatalogTimeout(); got != domain.DefaultHTTPTimeout {
		t.Errorf("GetCatalogTimeout() = %s, want %s", got, domain.DefaultHTTPTimeout)
	}

	cfg.Catalog.RefreshHours = 12
	cfg.Catalog.TimeoutSeconds = 5
	if got := cfg.GetCatalogRefreshInterval(); got != 12*time.Hour {
		t.Errorf("GetCatalogRefreshInterval() = %s, want 12h", got)
	}
	if got := cfg.GetCatalogTimeout(); got != 5*time.Second {
		t.Errorf("GetCatalogTimeout() = %s, want 5s", got)
	}
}

func TestConfig_ValidateConsistency(t *testing.T) {
	valid := domain.Config{
		Catalog: domain.CatalogSettings{
			CategoriesURL: "https://example.com/categories.json",
			DomainsURL:    "https://example.com/domains.json",
		},
		AI:     domain.AISettings{Enabled: true, DefaultModel: "claude"},
		Models: []domain.ModelDefinition{{Name: "claude"}},
	}
	if err := valid.ValidateConsistency(); err != nil {
		t.Fatalf("ValidateConsistency() error = %v", err)
	}

	missingModel := valid
	missingModel.AI.DefaultModel = "ghost"
	if err := missingModel.ValidateConsistency(); err == nil {
		t.Fatal("expected error for missing default model")
	}

	noURLs := valid
	noURLs.Catalog.CategoriesURL = ""
	if err := noURLs.ValidateConsistency(); err == nil {
		t.Fatal("expected error for empty catalog url")
	}

	aiWithoutModels := valid
	aiWithoutModels.AI.DefaultModel = ""
	aiWithoutModels.Models = nil
	if err := aiWithoutModels.ValidateConsistency(); err == nil {
		t.Fatal("expected error for ai enabled without models")
	}
}
