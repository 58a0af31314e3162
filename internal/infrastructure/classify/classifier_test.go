package classify

import (
	"testing"
	"time"

	"github.com/doeshing/ecoscan/internal/domain"
	"github.com/doeshing/ecoscan/internal/pkg/logger"
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	classifier, err := NewClassifier("", logger.NewNop())
	if err != nil {
		t.Fatalf("NewClassifier() error = %v", err)
	}
	return classifier
}

func loadedCatalog() domain.Catalog {
	return domain.Catalog{
		Categories: map[string]domain.CategoryRecord{
			"social media":    {Impact: "high", Description: "feeds and video"},
			"music streaming": {Impact: "Medium", Description: "audio playback"},
			"mystery":         {Impact: "astronomical", Description: "unknown impact"},
		},
		Domains: map[string]string{
			"instagram.com": "social media",
			"spotify.com":   "music streaming",
			"insta.example": "mystery",
		},
		FetchedAt: time.Now(),
	}
}

func TestClassifyKeywordFallbackWithoutCatalog(t *testing.T) {
	classifier := newTestClassifier(t)

	tests := []struct {
		name       string
		packageID  string
		display    string
		wantLevel  domain.ImpactLevel
		wantSource domain.ClassificationSource
	}{
		{
			name:       "instagram is high impact",
			packageID:  "com.instagram.android",
			display:    "Instagram",
			wantLevel:  domain.ImpactHigh,
			wantSource: domain.SourceKeyword,
		},
		{
			name:       "spotify is medium impact",
			packageID:  "com.spotify.music",
			display:    "Spotify",
			wantLevel:  domain.ImpactMedium,
			wantSource: domain.SourceKeyword,
		},
		{
			name:       "calculator is low impact",
			packageID:  "org.example.calculator",
			display:    "Calculator",
			wantLevel:  domain.ImpactLow,
			wantSource: domain.SourceKeyword,
		},
		{
			name:       "unknown defaults to low",
			packageID:  "io.example.widget",
			display:    "Widget",
			wantLevel:  domain.ImpactLow,
			wantSource: domain.SourceDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Classify(domain.Catalog{}, tt.packageID, tt.display)
			if got.Excluded {
				t.Fatalf("Classify(%s) excluded the item", tt.packageID)
			}
			if got.Level != tt.wantLevel || got.Source != tt.wantSource {
				t.Fatalf("Classify(%s) = (%s, %s), want (%s, %s)",
					tt.packageID, got.Level, got.Source, tt.wantLevel, tt.wantSource)
			}
		})
	}
}

func TestClassifyPrefersCatalogMatch(t *testing.T) {
	classifier := newTestClassifier(t)

	got := classifier.Classify(loadedCatalog(), "com.spotify.music", "Spotify")
	if got.Source != domain.SourceRemote {
		t.Fatalf("source = %s, want remote", got.Source)
	}
	if got.Level != domain.ImpactMedium {
		t.Fatalf("level = %s, want medium", got.Level)
	}
	if got.Category != "music streaming" {
		t.Fatalf("category = %q, want music streaming", got.Category)
	}
}

func TestClassifyOverlappingTokensLongestFirst(t *testing.T) {
	classifier := newTestClassifier(t)

	// "instagram" and "insta" both contain-match an instagram package;
	// the longer token must win regardless of map iteration order.
	got := classifier.Classify(loadedCatalog(), "com.instagram.android", "Instagram")
	if got.Category != "social media" {
		t.Fatalf("category = %q, want social media", got.Category)
	}
	if got.Level != domain.ImpactHigh {
		t.Fatalf("level = %s, want high", got.Level)
	}
}

func TestClassifyUnrecognizedImpactDefaultsLow(t *testing.T) {
	classifier := newTestClassifier(t)

	got := classifier.Classify(loadedCatalog(), "org.example.insta", "Insta Widget")
	if got.Source != domain.SourceRemote {
		t.Fatalf("source = %s, want remote", got.Source)
	}
	if got.Level != domain.ImpactLow {
		t.Fatalf("level = %s, want low for unrecognized impact string", got.Level)
	}
}

func TestClassifyIdempotent(t *testing.T) {
	classifier := newTestClassifier(t)
	catalog := loadedCatalog()

	first := classifier.Classify(catalog, "com.spotify.music", "Spotify")
	second := classifier.Classify(catalog, "com.spotify.music", "Spotify")
	if first != second {
		t.Fatalf("classification not idempotent: %+v vs %+v", first, second)
	}
}

func TestClassifyExcludesSystemEntities(t *testing.T) {
	classifier := newTestClassifier(t)

	tests := []struct {
		name      string
		packageID string
		display   string
	}{
		{name: "exact denylist", packageID: "com.android.settings", display: "Settings"},
		{name: "prefix match", packageID: "com.google.android.gms", display: "Play Services"},
		{name: "keyword match", packageID: "com.example.launcher3", display: "Launcher"},
		{name: "camelcase component", packageID: "com.vendor.internal", display: "ConfigUpdater"},
		{name: "system-sounding name prefix", packageID: "com.vendor.tool", display: "Device Care"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Classify(domain.Catalog{}, tt.packageID, tt.display)
			if !got.Excluded {
				t.Fatalf("Classify(%s, %s) should be excluded", tt.packageID, tt.display)
			}
		})
	}
}
