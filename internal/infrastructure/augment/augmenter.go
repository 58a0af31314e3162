// Package augment decorates classified records with generated text. All
// failure paths degrade to canned fallback strings; callers never observe an
// error. Session state (response cache, request counter, sticky quota flag)
// lives on the Augmenter and is bounded by the process lifetime.
package augment

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/doeshing/ecoscan/internal/domain"
	"github.com/doeshing/ecoscan/internal/ports"
)

type fieldKind string

const (
	fieldCO2Comparison    fieldKind = "co2_comparison"
	fieldEnergyComparison fieldKind = "energy_comparison"
	fieldExplanation      fieldKind = "explanation"
	fieldSuggestions      fieldKind = "suggestions"
	fieldAnnualProjection fieldKind = "annual_projection"
)

type cacheEntry struct {
	text      string
	createdAt time.Time
}

// Augmenter implements ports.Augmenter.
type Augmenter struct {
	factory      ports.ProviderFactory
	logger       ports.Logger
	model        domain.ModelDefinition
	enabled      bool
	sessionLimit int
	minInterval  time.Duration

	mu            sync.Mutex
	cache         map[string]cacheEntry
	requests      int
	quotaExceeded bool
	lastRequest   time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

// NewAugmenter builds the augmenter from configuration. When AI is disabled
// or no model resolves, every call short-circuits to fallback text.
func NewAugmenter(cfg domain.Config, factory ports.ProviderFactory, log ports.Logger) *Augmenter {
	a := &Augmenter{
		factory:      factory,
		logger:       log,
		enabled:      cfg.IsAIEnabled(),
		sessionLimit: cfg.GetSessionRequestLimit(),
		minInterval:  cfg.GetMinRequestInterval(),
		cache:        make(map[string]cacheEntry),
		now:          time.Now,
		sleep:        time.Sleep,
	}
	model, err := cfg.GetDefaultModel()
	if err != nil {
		a.enabled = false
	}
	a.model = model
	return a
}

// Available reports whether enrichment can still issue network requests in
// this session.
func (a *Augmenter) Available() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.enabled && !a.quotaExceeded && a.requests < a.sessionLimit
}

// UseModel switches the generation model for subsequent requests. Intended
// to be called before a scan starts, not mid-flight.
func (a *Augmenter) UseModel(model domain.ModelDefinition) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.model = model
	a.enabled = true
}

// Augment produces the full generated-content block for one record.
func (a *Augmenter) Augment(ctx context.Context, svc domain.Service) domain.GeneratedContent {
	daily := svc.Daily()
	annual := daily.Annual()

	content := domain.GeneratedContent{
		CO2Comparison:    a.generate(ctx, fieldCO2Comparison, co2ComparisonPrompt(svc, daily), svc),
		EnergyComparison: a.generate(ctx, fieldEnergyComparison, energyComparisonPrompt(svc, daily), svc),
		Explanation:      a.generate(ctx, fieldExplanation, explanationPrompt(svc), svc),
		AnnualProjection: a.generate(ctx, fieldAnnualProjection, annualProjectionPrompt(svc, annual), svc),
		GeneratedAt:      a.now(),
	}

	suggestions := a.generate(ctx, fieldSuggestions, suggestionsPrompt(svc), svc)
	content.Suggestions = splitSuggestions(suggestions)

	return content
}

// generate resolves one text field: cache, then quota policy, then the
// network with a single retry.
func (a *Augmenter) generate(ctx context.Context, field fieldKind, prompt string, svc domain.Service) string {
	key := cacheKey(field, svc)

	a.mu.Lock()
	if entry, ok := a.cache[key]; ok && a.now().Sub(entry.createdAt) < domain.GeneratedContentMaxAge {
		a.mu.Unlock()
		return entry.text
	}
	if !a.enabled || a.quotaExceeded || a.requests >= a.sessionLimit {
		a.mu.Unlock()
		return fallbackText(field)
	}
	a.requests++
	wait := a.minInterval - a.now().Sub(a.lastRequest)
	a.mu.Unlock()

	if wait > 0 {
		a.sleep(wait)
	}

	text, err := a.request(ctx, prompt)
	if err != nil {
		if a.noteFailure(err) {
			return fallbackText(field)
		}
		a.sleep(domain.AugmenterRetryBackoff)
		text, err = a.request(ctx, prompt)
		if err != nil {
			a.noteFailure(err)
			return fallbackText(field)
		}
	}

	text = strings.TrimSpace(text)
	a.mu.Lock()
	a.cache[key] = cacheEntry{text: text, createdAt: a.now()}
	a.mu.Unlock()
	return text
}

func (a *Augmenter) request(ctx context.Context, prompt string) (string, error) {
	provider, err := a.factory.ForModel(a.model)
	if err != nil {
		return "", err
	}
	resp, err := provider.Generate(ctx, ports.ProviderRequest{
		Prompt:      prompt,
		Model:       a.model,
		MaxTokens:   a.model.MaxTokens,
		Temperature: a.model.Temperature,
	})
	a.mu.Lock()
	a.lastRequest = a.now()
	a.mu.Unlock()
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// noteFailure records a failed request. It returns true when the error is a
// quota signal, which permanently disables network attempts this session.
func (a *Augmenter) noteFailure(err error) bool {
	if !isQuotaError(err) {
		a.logger.Debug("generation request failed", map[string]interface{}{"error": err.Error()})
		return false
	}

	a.mu.Lock()
	a.quotaExceeded = true
	a.mu.Unlock()
	a.logger.Warn("generation quota exhausted, disabling AI for this session", map[string]interface{}{
		"error": err.Error(),
	})
	return true
}

func isQuotaError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "quota") ||
		strings.Contains(msg, "rate") ||
		strings.Contains(msg, "limit")
}

func cacheKey(field fieldKind, svc domain.Service) string {
	minutes := 0.0
	if svc.Usage != nil {
		minutes = svc.Usage.DailyMinutes
	}
	return fmt.Sprintf("%s|%s|%s|%.1f", field, svc.PackageID, svc.Level, minutes)
}

func splitSuggestions(text string) []string {
	var suggestions []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "-*0123456789. "))
		if line == "" {
			continue
		}
		suggestions = append(suggestions, line)
		if len(suggestions) == domain.AugmenterMaxSuggestions {
			break
		}
	}
	return suggestions
}

var _ ports.Augmenter = (*Augmenter)(nil)
