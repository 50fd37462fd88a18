package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/BeritaKita/internal/domain"
)

// ErrNoSourceAvailable is reported when every source's circuit breaker is open.
var ErrNoSourceAvailable = errors.New("no upstream source available")

type ReadinessChecker struct {
	providers []domain.Provider
}

func NewReadinessChecker(providers []domain.Provider) *ReadinessChecker {
	return &ReadinessChecker{providers: providers}
}

// Check reports whether at least one source can currently be fetched.
func (c *ReadinessChecker) Check() error {
	for _, p := range c.providers {
		if p.Available() {
			return nil
		}
	}
	return ErrNoSourceAvailable
}

// Warmup fetches every source once so the first requests are served from cache.
// Failures are only logged; it returns the number of sources that responded.
func (c *ReadinessChecker) Warmup(ctx context.Context, timeout time.Duration) int {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for _, p := range c.providers {
		wg.Add(1)
		go func(p domain.Provider) {
			defer wg.Done()
			if _, err := p.Fetch(ctx); err != nil {
				slog.Warn("Warmup fetch failed", "source", p.Source().ID, "error", err)
				return
			}
			mu.Lock()
			ok++
			mu.Unlock()
		}(p)
	}
	wg.Wait()

	slog.Info("Cache warmup finished", "sources_ok", ok, "sources_total", len(c.providers))
	return ok
}
