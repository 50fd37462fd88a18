package transformer

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/BeritaKita/internal/domain"
	"github.com/BeritaKita/internal/infra/metrics"
)

// NewsTransformer normalizes the berita-indo API payloads shared by every outlet.
type NewsTransformer struct{}

func NewNewsTransformer() *NewsTransformer {
	return &NewsTransformer{}
}

func (t *NewsTransformer) Transform(reader io.Reader, src domain.Source, maxItems int) (*domain.Batch, error) {
	env, err := decodeEnvelope(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to transform articles from %s: %w", src.ID, err)
	}

	items := env.Data
	if maxItems > 0 && len(items) > maxItems {
		items = items[:maxItems]
	}

	batch := &domain.Batch{
		Articles: make([]domain.Article, 0, len(items)),
		Received: len(items),
		Total:    env.Total,
	}
	for _, raw := range items {
		obj, ok := decodeObject(raw)
		if !ok {
			batch.Dropped++
			continue
		}
		article := t.Normalize(obj, src)
		if !article.Valid() {
			batch.Dropped++
			continue
		}
		batch.Articles = append(batch.Articles, article)
	}

	return batch, nil
}

// Normalize maps one raw item to an Article without validating it.
func (t *NewsTransformer) Normalize(raw RawArticle, src domain.Source) domain.Article {
	shape := inspectImage(raw["image"])
	metrics.ImageShapes.WithLabelValues(src.ID, string(shape.style)).Inc()
	if shape.style != domain.UnknownStyle && shape.style != src.ImageStyle {
		slog.Debug("Image shape differs from documented style",
			"source", src.ID, "detected", shape.style, "documented", src.ImageStyle)
	}

	return domain.Article{
		Title:          raw.str("title"),
		Link:           raw.str("link"),
		ContentSnippet: firstNonEmpty(raw.str("contentSnippet"), raw.str("content"), raw.str("description")),
		PubDate:        firstNonEmpty(raw.str("isoDate"), raw.str("pubDate")),
		Image:          shape.resolve(),
		Source:         src.Name,
		SourceID:       src.ID,
	}
}
