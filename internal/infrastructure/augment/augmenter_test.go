package augment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/doeshing/ecoscan/internal/domain"
	"github.com/doeshing/ecoscan/internal/pkg/logger"
	"github.com/doeshing/ecoscan/internal/ports"
)

type stubProvider struct {
	text  string
	err   error
	calls *int
}

func (s stubProvider) Name() string                  { return "stub" }
func (s stubProvider) Model() domain.ModelDefinition { return domain.ModelDefinition{} }

func (s stubProvider) Generate(context.Context, ports.ProviderRequest) (ports.ProviderResponse, error) {
	*s.calls++
	if s.err != nil {
		return ports.ProviderResponse{}, s.err
	}
	return ports.ProviderResponse{Text: s.text}, nil
}

type stubFactory struct {
	provider ports.Provider
}

func (s stubFactory) ForModel(domain.ModelDefinition) (ports.Provider, error) {
	return s.provider, nil
}

func testConfig() domain.Config {
	return domain.Config{
		AI:     domain.AISettings{Enabled: true, DefaultModel: "stub"},
		Models: []domain.ModelDefinition{{Name: "stub", Endpoint: "http://stub"}},
	}
}

func newTestAugmenter(provider ports.Provider) *Augmenter {
	a := NewAugmenter(testConfig(), stubFactory{provider: provider}, logger.NewNop())
	a.sleep = func(time.Duration) {}
	return a
}

func testService() domain.Service {
	return domain.Service{
		Name:      "Spotify",
		PackageID: "com.spotify.music",
		Level:     domain.ImpactMedium,
	}
}

func TestGenerateReturnsTrimmedProviderText(t *testing.T) {
	calls := 0
	a := newTestAugmenter(stubProvider{text: "  like boiling a kettle  ", calls: &calls})

	got := a.generate(context.Background(), fieldCO2Comparison, "prompt", testService())
	if got != "like boiling a kettle" {
		t.Fatalf("generate() = %q", got)
	}
	if calls != 1 {
		t.Fatalf("provider calls = %d, want 1", calls)
	}
}

func TestGenerateUsesCacheOnRepeat(t *testing.T) {
	calls := 0
	a := newTestAugmenter(stubProvider{text: "cached answer", calls: &calls})
	svc := testService()

	a.generate(context.Background(), fieldCO2Comparison, "prompt", svc)
	a.generate(context.Background(), fieldCO2Comparison, "prompt", svc)

	if calls != 1 {
		t.Fatalf("provider calls = %d, want 1 (second call should hit the cache)", calls)
	}
}

func TestSessionCeilingReturnsFallback(t *testing.T) {
	calls := 0
	a := newTestAugmenter(stubProvider{text: "fresh", calls: &calls})

	// Distinct packages defeat the cache so every call counts.
	for i := 0; i < domain.AugmenterSessionLimit; i++ {
		svc := testService()
		svc.PackageID = svc.PackageID + string(rune('a'+i))
		a.generate(context.Background(), fieldCO2Comparison, "prompt", svc)
	}
	if calls != domain.AugmenterSessionLimit {
		t.Fatalf("provider calls = %d, want %d", calls, domain.AugmenterSessionLimit)
	}

	svc := testService()
	svc.PackageID = "com.example.eleventh"
	got := a.generate(context.Background(), fieldCO2Comparison, "prompt", svc)
	if got != fallbackText(fieldCO2Comparison) {
		t.Fatalf("11th call = %q, want the canned fallback", got)
	}
	if calls != domain.AugmenterSessionLimit {
		t.Fatalf("11th call hit the network: calls = %d", calls)
	}
	if a.Available() {
		t.Fatal("augmenter should report unavailable at the ceiling")
	}
}

func TestQuotaErrorSticksForSession(t *testing.T) {
	calls := 0
	a := newTestAugmenter(stubProvider{err: errors.New("429: quota exceeded"), calls: &calls})

	got := a.generate(context.Background(), fieldExplanation, "prompt", testService())
	if got != fallbackText(fieldExplanation) {
		t.Fatalf("quota failure should return fallback, got %q", got)
	}
	if calls != 1 {
		t.Fatalf("quota error must not be retried, calls = %d", calls)
	}

	svc := testService()
	svc.PackageID = "com.example.other"
	a.generate(context.Background(), fieldExplanation, "prompt", svc)
	if calls != 1 {
		t.Fatalf("network attempted after sticky quota flag, calls = %d", calls)
	}
	if a.Available() {
		t.Fatal("augmenter should report unavailable after quota flag")
	}
}

func TestTransientErrorRetriesOnce(t *testing.T) {
	calls := 0
	a := newTestAugmenter(stubProvider{err: errors.New("connection reset"), calls: &calls})

	got := a.generate(context.Background(), fieldEnergyComparison, "prompt", testService())
	if got != fallbackText(fieldEnergyComparison) {
		t.Fatalf("persistent failure should return fallback, got %q", got)
	}
	if calls != 2 {
		t.Fatalf("provider calls = %d, want 2 (original plus one retry)", calls)
	}
}

func TestFailedRequestStillPacesNextOne(t *testing.T) {
	calls := 0
	a := newTestAugmenter(stubProvider{err: errors.New("connection reset"), calls: &calls})
	clock := time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return clock }
	var sleeps []time.Duration
	a.sleep = func(d time.Duration) { sleeps = append(sleeps, d) }

	a.generate(context.Background(), fieldCO2Comparison, "prompt", testService())
	a.generate(context.Background(), fieldEnergyComparison, "prompt", testService())

	// First call: one retry backoff. Second call: the inter-request wait
	// (the previous call failed but still hit the network), then a backoff.
	if len(sleeps) != 3 {
		t.Fatalf("sleeps = %v, want retry, pacing wait, retry", sleeps)
	}
	if sleeps[1] != domain.AugmenterMinInterval {
		t.Fatalf("pacing wait = %v, want %v", sleeps[1], domain.AugmenterMinInterval)
	}
}

func TestAugmentBuildsAllFields(t *testing.T) {
	calls := 0
	a := newTestAugmenter(stubProvider{text: "line one\nline two\nline three\nline four", calls: &calls})

	content := a.Augment(context.Background(), testService())
	if content.CO2Comparison == "" || content.EnergyComparison == "" ||
		content.Explanation == "" || content.AnnualProjection == "" {
		t.Fatalf("missing fields: %+v", content)
	}
	if len(content.Suggestions) != domain.AugmenterMaxSuggestions {
		t.Fatalf("suggestions = %d, want %d", len(content.Suggestions), domain.AugmenterMaxSuggestions)
	}
	if content.GeneratedAt.IsZero() {
		t.Fatal("GeneratedAt not set")
	}
}

func TestDisabledAugmenterNeverCallsNetwork(t *testing.T) {
	calls := 0
	cfg := testConfig()
	cfg.AI.Enabled = false
	a := NewAugmenter(cfg, stubFactory{provider: stubProvider{text: "x", calls: &calls}}, logger.NewNop())
	a.sleep = func(time.Duration) {}

	content := a.Augment(context.Background(), testService())
	if calls != 0 {
		t.Fatalf("disabled augmenter issued %d requests", calls)
	}
	if content.Empty() {
		t.Fatal("disabled augmenter should still return fallback text")
	}
	if a.Available() {
		t.Fatal("disabled augmenter should report unavailable")
	}
}
