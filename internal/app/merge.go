package app

import (
	"slices"
	"time"

	"github.com/BeritaKita/internal/domain"
	"github.com/BeritaKita/internal/infra/transformer"
)

type datedArticle struct {
	article domain.Article
	at      time.Time
	ok      bool
}

// sortNewestFirst orders articles by descending publish time.
// Articles with an empty or unparsable date go last; ties keep their input order.
func sortNewestFirst(articles []domain.Article) {
	dated := make([]datedArticle, len(articles))
	for i, a := range articles {
		at, ok := transformer.ParsePubDate(a.PubDate)
		dated[i] = datedArticle{article: a, at: at, ok: ok}
	}

	slices.SortStableFunc(dated, func(a, b datedArticle) int {
		switch {
		case a.ok && b.ok:
			return b.at.Compare(a.at)
		case a.ok:
			return -1
		case b.ok:
			return 1
		default:
			return 0
		}
	})

	for i := range dated {
		articles[i] = dated[i].article
	}
}

// paginate returns the [(page-1)*limit, page*limit) window and whether items remain past it.
// Pages past the end yield an empty window, including pages whose offset would overflow int.
func paginate(articles []domain.Article, page, limit int) ([]domain.Article, bool) {
	n := len(articles)
	if n == 0 || page-1 > (n-1)/limit {
		return []domain.Article{}, false
	}
	start := (page - 1) * limit
	end := n
	if limit < n-start {
		end = start + limit
	}
	return articles[start:end], end < n
}
