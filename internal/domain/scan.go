package domain

import (
	"context"
	"time"
)

// Advisory status strings surfaced to the user. These are the only
// user-visible failure signals; every error path degrades to one of them.
const (
	StatusOffline       = "offline mode"
	StatusAIUnavailable = "AI unavailable"
	StatusStoreSkipped  = "results not persisted"
	StatusNoRegistry    = "no application registry detected"
)

// ScanRequest captures one discovery run originating from the CLI.
type ScanRequest struct {
	Context       context.Context
	IncludeSystem bool
	SkipAI        bool
	ModelOverride string
	UsageMinutes  map[string]float64
	Debug         bool
}

// ScanResult is the canonical response propagated back to the CLI.
type ScanResult struct {
	Services      []Service
	Catalog       Catalog
	EnrichedCount int
	Statuses      []string
	Duration      time.Duration
}

// ScanService exposes the use-case boundary for running a discovery pass.
type ScanService interface {
	Run(ScanRequest) (ScanResult, error)
}
