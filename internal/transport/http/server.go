package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/BeritaKita/pkg/config"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Readiness reports whether the service can serve news.
type Readiness interface {
	Check() error
}

func NewHTTPServer(cfg *config.Config, handler *NewsHandler, readiness Readiness) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           NewRouter(handler, readiness),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// NewRouter wires the API, health and metrics routes.
func NewRouter(handler *NewsHandler, readiness Readiness) *mux.Router {
	r := mux.NewRouter()
	r.Use(metricsMiddleware, recoverMiddleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprint(w, "OK")
	}).Methods(http.MethodGet)

	r.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := readiness.Check(); err != nil {
			slog.Warn("Readiness check failed", "error", err)
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, "READY")
	}).Methods(http.MethodGet)

	r.Handle("/metrics", promhttp.Handler())

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/news", handler.List).Methods(http.MethodGet)
	api.HandleFunc("/news/{source}", handler.Passthrough).Methods(http.MethodGet)

	return r
}
