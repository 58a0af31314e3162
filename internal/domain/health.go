package domain

// HealthStatus grades one environment diagnostic. Warn means the tool still
// works but degraded (offline catalog, missing API key); error means a
// required piece is broken.
type HealthStatus string

const (
	HealthOK    HealthStatus = "ok"
	HealthWarn  HealthStatus = "warn"
	HealthError HealthStatus = "error"
)

// HealthCheck is one named diagnostic with a human-readable detail line.
type HealthCheck struct {
	Name    string
	Status  HealthStatus
	Details string
}

// HealthReport collects every diagnostic from a doctor run, in the order the
// checks executed.
type HealthReport struct {
	Checks []HealthCheck
}

// Overall returns the most severe status in the report.
func (r HealthReport) Overall() HealthStatus {
	overall := HealthOK
	for _, check := range r.Checks {
		switch check.Status {
		case HealthError:
			return HealthError
		case HealthWarn:
			overall = HealthWarn
		}
	}
	return overall
}
