package hotelsearch

import (
	"context"

	healthuc "github.com/kailas-cloud/hotelsearch/internal/usecase/health"
)

// healthUseCase is satisfied by the health service and by test doubles.
type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Health is a snapshot of the backends the client depends on.
type Health struct {
	// Status is "ok", "degraded" or "error".
	Status string
	// SearchEngine is "ok" or "error".
	SearchEngine string
	// Cache is "ok" or "error", and empty when no suggestion cache is configured.
	Cache string
}

// Serving reports whether searches can be answered. A failed cache only
// slows suggestions down.
func (h Health) Serving() bool {
	return h.SearchEngine == string(healthuc.CheckOK)
}

// Health checks the cluster and, when configured, the suggestion cache.
func (c *Client) Health(ctx context.Context) Health {
	report := c.healthSvc.Check(ctx)
	return Health{
		Status:       string(report.Status),
		SearchEngine: string(report.Checks[healthuc.ComponentSearchEngine]),
		Cache:        string(report.Checks[healthuc.ComponentCache]),
	}
}
