package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/BeritaKita/internal/domain"
	"github.com/BeritaKita/internal/infra/metrics"
	cache "github.com/go-pkgz/expirable-cache/v2"
	"github.com/go-pkgz/requester"
	"github.com/sony/gobreaker"
)

// maxBodySize bounds how much of an upstream response is read.
const maxBodySize = 8 << 20

// GenericProvider fetches one outlet's endpoint of the berita-indo API.
// Successful bodies are kept in the shared cache for its TTL; failures are never retried.
type GenericProvider struct {
	source domain.Source
	url    string
	client *requester.Requester
	cache  cache.Cache[string, []byte]
	cb     *gobreaker.CircuitBreaker
}

func NewGenericProvider(
	source domain.Source,
	baseURL string,
	client *requester.Requester,
	respCache cache.Cache[string, []byte],
) *GenericProvider {
	cbSettings := gobreaker.Settings{
		Name:        source.ID,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// Trip if we have 3 consecutive failures
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("CircuitBreaker state changed", "name", name, "from", from, "to", to)
		},
	}

	return &GenericProvider{
		source: source,
		url:    strings.TrimRight(baseURL, "/") + source.Endpoint,
		client: client,
		cache:  respCache,
		cb:     gobreaker.NewCircuitBreaker(cbSettings),
	}
}

func (p *GenericProvider) Source() domain.Source {
	return p.source
}

// URL returns the upstream endpoint this provider calls.
func (p *GenericProvider) URL() string {
	return p.url
}

// Available reports whether the circuit breaker lets requests through.
func (p *GenericProvider) Available() bool {
	return p.cb.State() != gobreaker.StateOpen
}

// Fetch returns the raw upstream body, from cache when fresh.
func (p *GenericProvider) Fetch(ctx context.Context) ([]byte, error) {
	if body, ok := p.cache.Get(p.url); ok {
		metrics.CacheLookups.WithLabelValues(p.source.ID, "hit").Inc()
		return body, nil
	}
	metrics.CacheLookups.WithLabelValues(p.source.ID, "miss").Inc()

	res, err := p.cb.Execute(func() (interface{}, error) {
		return p.fetch(ctx)
	})
	if err != nil {
		var upErr *domain.UpstreamError
		if errors.As(err, &upErr) {
			return nil, err
		}
		// gobreaker.ErrOpenState or ErrTooManyRequests
		metrics.UpstreamRequests.WithLabelValues(p.source.ID, "breaker_open").Inc()
		return nil, &domain.UpstreamError{Source: p.source.ID, Err: err}
	}

	body := res.([]byte)
	p.cache.Set(p.url, body, 0)
	return body, nil
}

func (p *GenericProvider) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, http.NoBody)
	if err != nil {
		return nil, &domain.UpstreamError{Source: p.source.ID, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	start := time.Now()
	resp, err := p.client.Do(req)
	metrics.UpstreamDuration.WithLabelValues(p.source.ID).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(p.source.ID, "network_error").Inc()
		return nil, &domain.UpstreamError{Source: p.source.ID, Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Warn("Failed to close response body", "source", p.source.ID, "error", err)
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		metrics.UpstreamRequests.WithLabelValues(p.source.ID, "http_error").Inc()
		return nil, &domain.UpstreamError{Source: p.source.ID, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(p.source.ID, "network_error").Inc()
		return nil, &domain.UpstreamError{Source: p.source.ID, Err: fmt.Errorf("failed to read body: %w", err)}
	}

	metrics.UpstreamRequests.WithLabelValues(p.source.ID, "ok").Inc()
	return body, nil
}
