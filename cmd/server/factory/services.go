package factory

import (
	"errors"
	"fmt"

	"github.com/BeritaKita/internal/app"
	"github.com/BeritaKita/internal/domain"
	"github.com/BeritaKita/internal/infra/transformer"
	transport "github.com/BeritaKita/internal/transport/http"
	"github.com/BeritaKita/pkg/config"
)

// NewNewsService creates the news service with validation.
func NewNewsService(
	registry *domain.Registry,
	providers []domain.Provider,
	cfg *config.Config,
) (*app.NewsService, error) {
	if len(providers) == 0 {
		return nil, errors.New("no providers configured")
	}
	if cfg.AggregateItemCap < 1 || cfg.AggregateItemCap > 100 {
		return nil, fmt.Errorf("invalid aggregate item cap: %d (must be 1-100)", cfg.AggregateItemCap)
	}

	tr, err := transformer.GetTransformer("")
	if err != nil {
		return nil, err
	}
	return app.NewNewsService(registry, providers, tr, cfg.AggregateItemCap)
}

// NewNewsReader exposes the service through the interface the HTTP layer consumes.
func NewNewsReader(svc *app.NewsService) domain.NewsReader {
	return svc
}

// NewNewsHandler creates the /api/news handler.
func NewNewsHandler(news domain.NewsReader, cfg *config.Config) (*transport.NewsHandler, error) {
	if cfg.DefaultLimit < 1 {
		return nil, fmt.Errorf("invalid default limit: %d", cfg.DefaultLimit)
	}
	return transport.NewNewsHandler(news, cfg.DefaultLimit, cfg.MaxLimit), nil
}

// NewReadiness exposes the readiness checker to the HTTP server.
func NewReadiness(checker *app.ReadinessChecker) transport.Readiness {
	return checker
}
