package provider

import (
	"log/slog"
	"net/http"
	"time"

	cache "github.com/go-pkgz/expirable-cache/v2"
	"github.com/go-pkgz/requester"
	"github.com/go-pkgz/requester/middleware"
)

// NewClient builds the upstream HTTP client shared by all providers.
// Every request carries the identifying User-Agent and is logged at debug level.
func NewClient(timeout time.Duration, userAgent string) *requester.Requester {
	return requester.New(
		http.Client{Timeout: timeout},
		middleware.Header("User-Agent", userAgent),
		LoggingRoundTripper(slog.Default().With("component", "upstream"), RoundTripperOpts{Level: slog.LevelDebug}),
	)
}

// NewResponseCache builds the TTL cache of upstream bodies keyed by URL.
func NewResponseCache(ttl time.Duration, maxKeys int) cache.Cache[string, []byte] {
	return cache.NewCache[string, []byte]().
		WithTTL(ttl).
		WithMaxKeys(maxKeys)
}
