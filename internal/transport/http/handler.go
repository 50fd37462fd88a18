package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/BeritaKita/internal/domain"
	"github.com/gorilla/mux"
)

const (
	msgFetchFailed   = "Failed to fetch news data"
	msgInvalidSource = "Invalid news source"
	msgInvalidQuery  = "Invalid query parameters"
)

// NewsHandler serves the /api/news endpoints.
type NewsHandler struct {
	news         domain.NewsReader
	defaultLimit int
	maxLimit     int
}

func NewNewsHandler(news domain.NewsReader, defaultLimit, maxLimit int) *NewsHandler {
	if defaultLimit < 1 {
		defaultLimit = 10
	}
	if maxLimit < defaultLimit {
		maxLimit = defaultLimit
	}
	return &NewsHandler{news: news, defaultLimit: defaultLimit, maxLimit: maxLimit}
}

// List handles GET /api/news?source=&page=&limit=&q=
func (h *NewsHandler) List(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidQuery, err)
		return
	}

	res, err := h.news.Page(r.Context(), q)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, successResponse{Success: true, Data: res})
}

// Passthrough handles GET /api/news/{source}, returning the upstream body unmodified.
func (h *NewsHandler) Passthrough(w http.ResponseWriter, r *http.Request) {
	source := mux.Vars(r)["source"]

	body, err := h.news.Raw(r.Context(), source)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		slog.Warn("Failed to write passthrough response", "source", source, "error", err)
	}
}

func (h *NewsHandler) parseQuery(r *http.Request) (domain.Query, error) {
	values := r.URL.Query()

	page, err := positiveInt(values.Get("page"), 1)
	if err != nil {
		return domain.Query{}, fmt.Errorf("page: %w", err)
	}
	limit, err := positiveInt(values.Get("limit"), h.defaultLimit)
	if err != nil {
		return domain.Query{}, fmt.Errorf("limit: %w", err)
	}
	if limit > h.maxLimit {
		limit = h.maxLimit
	}

	return domain.Query{
		SourceID: values.Get("source"),
		Search:   values.Get("q"),
		Page:     page,
		Limit:    limit,
	}, nil
}

func (h *NewsHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrUnknownSource):
		writeError(w, http.StatusBadRequest, msgInvalidSource, err)
	case errors.Is(err, domain.ErrInvalidQuery):
		writeError(w, http.StatusBadRequest, msgInvalidQuery, err)
	default:
		slog.Error("Error fetching news", "path", r.URL.Path, "query", r.URL.RawQuery, "error", err)
		writeError(w, http.StatusInternalServerError, msgFetchFailed, err)
	}
}

func positiveInt(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidQuery, raw)
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: %d must be at least 1", domain.ErrInvalidQuery, n)
	}
	return n, nil
}
