package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/BeritaKita/cmd/server/factory"
	"github.com/BeritaKita/internal/app"
	"github.com/BeritaKita/internal/infra/tracing"
	transport "github.com/BeritaKita/internal/transport/http"
	"github.com/BeritaKita/pkg/config"
	"go.uber.org/fx"
)

var logLevel = new(slog.LevelVar)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	fx.New(
		fx.Provide(
			// Config
			config.Load,

			// Infrastructure
			factory.NewRegistry,
			factory.NewUpstreamClient,
			factory.NewResponseCache,

			// Providers
			factory.NewProviders,

			// Services
			factory.NewNewsService,
			factory.NewNewsReader,
			app.NewReadinessChecker,
			factory.NewReadiness,

			// HTTP Server
			factory.NewNewsHandler,
			transport.NewHTTPServer,
		),
		fx.Invoke(
			SetupLogging,
			SetupTracer,
			Warmup,
			StartServer,
		),
	).Run()
}

// --- Invokers ---

func SetupLogging(cfg *config.Config) {
	logLevel.Set(config.ParseLevel(cfg.LogLevel))
	slog.Info("Configuration loaded",
		"upstream", cfg.UpstreamBaseURL,
		"sources", len(cfg.Sources),
		"cache_ttl", cfg.CacheTTL,
		"request_timeout", cfg.RequestTimeout,
		"log_level", logLevel.Level())
}

func SetupTracer(lc fx.Lifecycle, cfg *config.Config) error {
	ctx := context.Background()
	shutdown, err := tracing.InitTracer(ctx, "berita-kita", cfg.OTLPEndpoint)
	if err != nil {
		slog.Error("Failed to initialize tracer", "error", err)
		return err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Info("Shutting down tracer provider")
			return shutdown(ctx)
		},
	})
	return nil
}

// Warmup fills the upstream cache in the background once the app has started.
func Warmup(lc fx.Lifecycle, checker *app.ReadinessChecker, cfg *config.Config) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go checker.Warmup(ctx, cfg.RequestTimeout)
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			return nil
		},
	})
}

func StartServer(lc fx.Lifecycle, server *http.Server) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				slog.Info("Starting news API server", "address", server.Addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					slog.Error("HTTP server failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return server.Shutdown(ctx)
		},
	})
}
