package factory

import (
	"errors"
	"log/slog"

	"github.com/BeritaKita/internal/domain"
	"github.com/BeritaKita/internal/infra/provider"
	"github.com/BeritaKita/pkg/config"
	cache "github.com/go-pkgz/expirable-cache/v2"
	"github.com/go-pkgz/requester"
)

// NewProviders creates one provider per registered source.
func NewProviders(
	cfg *config.Config,
	registry *domain.Registry,
	client *requester.Requester,
	respCache cache.Cache[string, []byte],
) ([]domain.Provider, error) {
	if cfg.UpstreamBaseURL == "" {
		return nil, errors.New("upstream base URL not configured")
	}

	var providers []domain.Provider
	for _, src := range registry.All() {
		p := provider.NewGenericProvider(src, cfg.UpstreamBaseURL, client, respCache)
		providers = append(providers, p)
		slog.Info("Registered provider", "source", src.ID, "name", src.Name, "url", p.URL(), "image_style", src.ImageStyle)
	}
	return providers, nil
}
