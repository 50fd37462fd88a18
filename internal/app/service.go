package app

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/BeritaKita/internal/domain"
	"github.com/BeritaKita/internal/infra/metrics"
	"github.com/BeritaKita/pkg/logging"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// NewsService resolves page requests against the source registry,
// fetching one source or fanning out to all of them.
type NewsService struct {
	registry     *domain.Registry
	providers    map[string]domain.Provider
	transformer  domain.Transformer
	aggregateCap int
	sampler      *logging.ErrorSampler
	tracer       trace.Tracer
}

// sourceResult is the outcome of one fan-out task.
type sourceResult struct {
	source   domain.Source
	articles []domain.Article
	err      error
}

func NewNewsService(
	registry *domain.Registry,
	providers []domain.Provider,
	transformer domain.Transformer,
	aggregateCap int,
) (*NewsService, error) {
	byID := make(map[string]domain.Provider, len(providers))
	for _, p := range providers {
		byID[p.Source().ID] = p
	}
	for _, src := range registry.All() {
		if _, ok := byID[src.ID]; !ok {
			return nil, fmt.Errorf("no provider for source %s", src.ID)
		}
	}

	return &NewsService{
		registry:     registry,
		providers:    byID,
		transformer:  transformer,
		aggregateCap: aggregateCap,
		sampler:      logging.NewErrorSampler(10),
		tracer:       otel.Tracer("news-aggregator"),
	}, nil
}

// Page returns one page of normalized articles. Page and Limit must be at least 1.
func (s *NewsService) Page(ctx context.Context, q domain.Query) (*domain.PageResult, error) {
	if q.Page < 1 || q.Limit < 1 {
		return nil, fmt.Errorf("%w: page and limit must be positive", domain.ErrInvalidQuery)
	}

	ctx, span := s.tracer.Start(ctx, "NewsService.Page")
	defer span.End()
	span.SetAttributes(
		attribute.String("source", q.SourceID),
		attribute.Int("page", q.Page),
		attribute.Int("limit", q.Limit),
	)

	var (
		res *domain.PageResult
		err error
	)
	if q.SourceID == "" {
		res, err = s.FetchAll(ctx, q)
	} else {
		res, err = s.FetchSource(ctx, q)
	}
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return res, nil
}

// FetchSource serves a page from a single source. Upstream failures are returned to the caller.
func (s *NewsService) FetchSource(ctx context.Context, q domain.Query) (*domain.PageResult, error) {
	src, ok := s.registry.Lookup(q.SourceID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownSource, q.SourceID)
	}

	batch, err := s.load(ctx, src, 0)
	if err != nil {
		return nil, err
	}

	articles := batch.Articles
	total := batch.Total
	if q.Search != "" {
		articles = lo.Filter(articles, func(a domain.Article, _ int) bool { return a.Matches(q.Search) })
		total = 0
	}
	if total <= 0 {
		total = len(articles)
	}

	sortNewestFirst(articles)
	posts, hasMore := paginate(articles, q.Page, q.Limit)

	slog.Debug("Served source page", "source", src.ID, "page", q.Page, "posts", len(posts), "has_more", hasMore)
	return &domain.PageResult{
		Posts:   posts,
		HasMore: hasMore,
		Total:   total,
		Page:    q.Page,
		Limit:   q.Limit,
	}, nil
}

// FetchAll fans out to every registered source and merges what could be gathered.
// A failing source contributes nothing; the request itself never fails because of it.
func (s *NewsService) FetchAll(ctx context.Context, q domain.Query) (*domain.PageResult, error) {
	sources := s.registry.All()
	results := make([]sourceResult, len(sources))

	var g errgroup.Group
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			batch, err := s.load(ctx, src, s.aggregateCap)
			results[i] = sourceResult{source: src, err: err}
			if err == nil {
				results[i].articles = batch.Articles
			}
			return nil
		})
	}
	_ = g.Wait() // tasks report through results

	for _, r := range results {
		if r.err != nil {
			s.recordFailure(r.source, r.err)
			continue
		}
		if n := s.sampler.Success(r.source.ID); n > 0 {
			slog.Info("Source recovered", "source", r.source.ID, "failed_attempts", n)
		}
	}

	succeeded := lo.Filter(results, func(r sourceResult, _ int) bool { return r.err == nil })
	articles := lo.Flatten(lo.Map(succeeded, func(r sourceResult, _ int) []domain.Article { return r.articles }))
	if q.Search != "" {
		articles = lo.Filter(articles, func(a domain.Article, _ int) bool { return a.Matches(q.Search) })
	}

	sortNewestFirst(articles)
	posts, hasMore := paginate(articles, q.Page, q.Limit)

	slog.Debug("Served aggregate page",
		"sources_ok", len(succeeded), "sources_total", len(sources),
		"collected", len(articles), "page", q.Page, "has_more", hasMore)
	return &domain.PageResult{
		Posts:   posts,
		HasMore: hasMore,
		Total:   len(articles),
		Page:    q.Page,
		Limit:   q.Limit,
	}, nil
}

// Raw returns the unmodified upstream payload of a source.
func (s *NewsService) Raw(ctx context.Context, sourceID string) ([]byte, error) {
	src, ok := s.registry.Lookup(sourceID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownSource, sourceID)
	}

	ctx, span := s.tracer.Start(ctx, "NewsService.Raw")
	defer span.End()
	span.SetAttributes(attribute.String("source", src.ID))

	body, err := s.providers[src.ID].Fetch(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return body, nil
}

// load fetches and normalizes one source, considering at most maxItems raw items.
func (s *NewsService) load(ctx context.Context, src domain.Source, maxItems int) (*domain.Batch, error) {
	ctx, span := s.tracer.Start(ctx, "fetchSource")
	defer span.End()
	span.SetAttributes(attribute.String("source", src.ID))

	body, err := s.providers[src.ID].Fetch(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	batch, err := s.transformer.Transform(bytes.NewReader(body), src, maxItems)
	if err != nil {
		span.RecordError(err)
		return nil, &domain.UpstreamError{Source: src.ID, Err: err}
	}

	metrics.ArticlesNormalized.WithLabelValues(src.ID).Add(float64(len(batch.Articles)))
	metrics.ArticlesDropped.WithLabelValues(src.ID).Add(float64(batch.Dropped))
	span.SetAttributes(attribute.Int("articles", len(batch.Articles)))
	return batch, nil
}

func (s *NewsService) recordFailure(src domain.Source, err error) {
	metrics.AggregateSourceFailures.WithLabelValues(src.ID).Inc()

	count, log := s.sampler.Failure(src.ID)
	if log {
		slog.Warn("Source failed during aggregation", "source", src.ID, "name", src.Name,
			"consecutive_failures", count, "error", err)
		return
	}
	slog.Debug("Source failed during aggregation", "source", src.ID, "consecutive_failures", count, "error", err)
}
