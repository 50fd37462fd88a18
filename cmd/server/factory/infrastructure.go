// Package factory provides dependency injection constructors for infrastructure components.
package factory

import (
	"errors"
	"fmt"

	"github.com/BeritaKita/internal/domain"
	"github.com/BeritaKita/internal/infra/provider"
	"github.com/BeritaKita/internal/infra/transformer"
	"github.com/BeritaKita/pkg/config"
	cache "github.com/go-pkgz/expirable-cache/v2"
	"github.com/go-pkgz/requester"
)

// NewRegistry builds the source registry from configuration.
func NewRegistry(cfg *config.Config) (*domain.Registry, error) {
	if len(cfg.Sources) == 0 {
		return nil, errors.New("no sources configured")
	}

	sources := make([]domain.Source, 0, len(cfg.Sources))
	for _, sc := range cfg.Sources {
		style, err := transformer.ParseImageStyle(sc.ImageStyle)
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", sc.ID, err)
		}
		sources = append(sources, domain.Source{
			ID:         sc.ID,
			Name:       sc.Name,
			Endpoint:   sc.Endpoint,
			ImageStyle: style,
		})
	}
	return domain.NewRegistry(sources)
}

// NewUpstreamClient creates the HTTP client shared by all providers.
func NewUpstreamClient(cfg *config.Config) (*requester.Requester, error) {
	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("invalid request timeout: %s", cfg.RequestTimeout)
	}
	if cfg.UserAgent == "" {
		return nil, errors.New("user agent not configured")
	}
	return provider.NewClient(cfg.RequestTimeout, cfg.UserAgent), nil
}

// NewResponseCache creates the upstream response cache.
func NewResponseCache(cfg *config.Config) (cache.Cache[string, []byte], error) {
	if cfg.CacheTTL <= 0 {
		return nil, fmt.Errorf("invalid cache TTL: %s", cfg.CacheTTL)
	}
	return provider.NewResponseCache(cfg.CacheTTL, cfg.CacheMaxKeys), nil
}
