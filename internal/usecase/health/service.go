package health

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded means listings work but semantic search falls back to name matching.
	Degraded Status = "degraded"
	// Unhealthy means the catalog is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	CheckOK       CheckResult = "ok"
	CheckError    CheckResult = "error"
	CheckDisabled CheckResult = "disabled"
)

const (
	componentDatabase  = "database"
	componentEmbedding = "embedding"
)

// DefaultTimeout bounds each component check.
const DefaultTimeout = 3 * time.Second

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
	// Errors holds the failure message per failed component.
	Errors map[string]string
}

// Service coordinates health checks.
type Service struct {
	db        Pinger
	embedding EmbeddingChecker
	timeout   time.Duration
}

// New creates a Service. embedding can be nil when semantic search is off.
func New(db Pinger, embedding EmbeddingChecker) *Service {
	return &Service{db: db, embedding: embedding, timeout: DefaultTimeout}
}

// WithTimeout overrides the per-component timeout.
func (s *Service) WithTimeout(d time.Duration) *Service {
	if d > 0 {
		s.timeout = d
	}
	return s
}

// Check runs the component checks concurrently.
func (s *Service) Check(ctx context.Context) Report {
	r := Report{Checks: map[string]CheckResult{}, Errors: map[string]string{}}
	var mu sync.Mutex
	record := func(name string, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			r.Checks[name] = CheckError
			r.Errors[name] = err.Error()
			return
		}
		r.Checks[name] = CheckOK
	}

	var g errgroup.Group
	g.Go(func() error {
		cctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		record(componentDatabase, s.db.Ping(cctx))
		return nil
	})
	if s.embedding != nil {
		g.Go(func() error {
			cctx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()
			record(componentEmbedding, s.embedding.HealthCheck(cctx))
			return nil
		})
	} else {
		r.Checks[componentEmbedding] = CheckDisabled
	}
	_ = g.Wait()

	switch {
	case r.Checks[componentDatabase] == CheckError:
		r.Status = Unhealthy
	case r.Checks[componentEmbedding] == CheckError:
		r.Status = Degraded
	default:
		r.Status = Healthy
	}
	return r
}
