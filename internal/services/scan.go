// Package services contains the use-case orchestration layer. Each service
// wires ports together without knowing concrete adapter types.
package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/doeshing/ecoscan/internal/domain"
	"github.com/doeshing/ecoscan/internal/ports"
)

// Scanner orchestrates a full discovery pass: enumerate installed
// applications, classify them against the remote catalog, estimate impact,
// optionally enrich the top records, and persist the result set.
type Scanner struct {
	ConfigProvider ports.ConfigProvider
	Registry       ports.AppRegistry
	Catalog        ports.CatalogSource
	Classifier     ports.Classifier
	Augmenter      ports.Augmenter
	Repository     ports.ServiceRepository
	Logger         ports.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	gen    uint64
}

// Run executes one scan. Starting a new scan cancels any scan still in
// flight; only the newest result set ever reaches the repository.
func (s *Scanner) Run(req domain.ScanRequest) (domain.ScanResult, error) {
	if s.ConfigProvider == nil || s.Registry == nil || s.Catalog == nil ||
		s.Classifier == nil || s.Augmenter == nil || s.Logger == nil {
		return domain.ScanResult{}, errors.New("services.Scanner dependencies not satisfied")
	}

	parent := req.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, gen := s.begin(parent)
	defer s.finish(gen)

	started := time.Now()

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return domain.ScanResult{}, fmt.Errorf("load config: %w", err)
	}

	var (
		catalog domain.Catalog
		items   []domain.InstalledItem
		listErr error
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		catalog = s.Catalog.Load(groupCtx)
		return nil
	})
	group.Go(func() error {
		items, listErr = s.Registry.List(groupCtx)
		return nil
	})
	if err := group.Wait(); err != nil {
		return domain.ScanResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.ScanResult{}, err
	}

	result := domain.ScanResult{Catalog: catalog}
	if catalog.Offline {
		result.Statuses = append(result.Statuses, domain.StatusOffline)
	}
	if listErr != nil || len(items) == 0 {
		if listErr != nil {
			s.Logger.Warn("application registry unavailable", map[string]interface{}{
				"error": listErr.Error(),
			})
		}
		result.Statuses = append(result.Statuses, domain.StatusNoRegistry)
		result.Duration = time.Since(started)
		return result, nil
	}

	includeSystem := req.IncludeSystem || cfg.Scan.IncludeSystem
	now := time.Now()
	for _, item := range items {
		if !includeSystem && !item.Relevant() {
			continue
		}
		verdict := s.Classifier.Classify(catalog, item.PackageID, item.DisplayName)
		if verdict.Excluded {
			continue
		}
		svc := domain.Service{
			ID:        uuid.NewString(),
			Name:      item.DisplayName,
			PackageID: item.PackageID,
			Level:     verdict.Level,
			Source:    verdict.Source,
			CachedAt:  now,
			UpdatedAt: now,
		}
		if record, ok := catalog.Categories[verdict.Category]; ok {
			svc.Category = &record
		}
		if minutes, ok := req.UsageMinutes[item.PackageID]; ok {
			stats := domain.NewUsageStats(minutes)
			svc.Usage = &stats
		}
		result.Services = append(result.Services, svc)
	}
	sort.Slice(result.Services, func(i, j int) bool {
		return strings.ToLower(result.Services[i].Name) < strings.ToLower(result.Services[j].Name)
	})

	s.enrich(ctx, cfg, req, &result)

	if err := ctx.Err(); err != nil {
		return domain.ScanResult{}, err
	}

	if s.Repository != nil {
		if err := s.Repository.ReplaceAll(ctx, result.Services); err != nil {
			s.Logger.Warn("persisting scan results failed", map[string]interface{}{
				"error": err.Error(),
			})
			result.Statuses = append(result.Statuses, domain.StatusStoreSkipped)
		}
	}

	result.Duration = time.Since(started)
	s.Logger.Info("scan complete", map[string]interface{}{
		"services": len(result.Services),
		"enriched": result.EnrichedCount,
		"duration": result.Duration.String(),
	})
	return result, nil
}

// enrich attaches generated content to the first few records of the batch,
// up to the fixed per-scan ceiling. Enrichment failures never fail the scan.
func (s *Scanner) enrich(ctx context.Context, cfg domain.Config, req domain.ScanRequest, result *domain.ScanResult) {
	if req.SkipAI {
		return
	}
	if req.ModelOverride != "" {
		model, ok := cfg.FindModelByName(req.ModelOverride)
		if !ok {
			s.Logger.Warn("model override not configured", map[string]interface{}{
				"model": req.ModelOverride,
			})
			result.Statuses = append(result.Statuses, domain.StatusAIUnavailable)
			return
		}
		s.Augmenter.UseModel(model)
	}
	if !s.Augmenter.Available() {
		result.Statuses = append(result.Statuses, domain.StatusAIUnavailable)
		return
	}

	for idx := range result.Services {
		if idx >= domain.AugmenterBatchLimit || ctx.Err() != nil {
			break
		}
		if !s.Augmenter.Available() {
			result.Statuses = append(result.Statuses, domain.StatusAIUnavailable)
			break
		}
		content := s.Augmenter.Augment(ctx, result.Services[idx])
		if content.Empty() {
			continue
		}
		result.Services[idx].Content = &content
		result.EnrichedCount++
	}
}

// begin cancels any scan still in flight and registers the new one. The
// returned generation ties the caller's cleanup to its own registration.
func (s *Scanner) begin(parent context.Context) (context.Context, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	s.gen++
	return ctx, s.gen
}

// finish releases a scan's registration. A scan that was displaced by a
// newer begin must not touch the newer scan's cancel func.
func (s *Scanner) finish(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

var _ domain.ScanService = (*Scanner)(nil)
