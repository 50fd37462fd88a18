package newsclient

import (
	"context"
	"sync"

	"github.com/BeritaKita/internal/domain"
)

// DefaultPageSize is the page size the web front end requests.
const DefaultPageSize = 15

// Pager loads one page of news.
type Pager interface {
	Page(ctx context.Context, q domain.Query) (*domain.PageResult, error)
}

// Feed accumulates pages for an infinite-scroll view.
// At most one request is in flight; changing filters starts over from page 1
// and discards responses that belong to the previous filters.
type Feed struct {
	pager Pager
	limit int

	mu         sync.Mutex
	source     string
	search     string
	page       int
	hasMore    bool
	loading    bool
	generation uint64
	posts      []domain.Article
	err        error
}

// NewFeed makes a feed over pager; limit below 1 selects DefaultPageSize.
func NewFeed(pager Pager, limit int) *Feed {
	if limit < 1 {
		limit = DefaultPageSize
	}
	return &Feed{pager: pager, limit: limit, hasMore: true}
}

// Reset switches to new filters and loads their first page.
func (f *Feed) Reset(ctx context.Context, source, search string) error {
	f.mu.Lock()
	f.generation++
	f.source, f.search = source, search
	f.page = 0
	f.hasMore = true
	f.posts = nil
	f.err = nil
	f.loading = true
	gen := f.generation
	f.mu.Unlock()

	return f.load(ctx, gen, 1)
}

// LoadMore fetches the next page. It reports false without doing anything
// when a request is already in flight or there is nothing more to load.
func (f *Feed) LoadMore(ctx context.Context) (bool, error) {
	f.mu.Lock()
	if f.loading || !f.hasMore {
		f.mu.Unlock()
		return false, nil
	}
	f.loading = true
	gen, next := f.generation, f.page+1
	f.mu.Unlock()

	return true, f.load(ctx, gen, next)
}

func (f *Feed) load(ctx context.Context, gen uint64, page int) error {
	f.mu.Lock()
	q := domain.Query{SourceID: f.source, Search: f.search, Page: page, Limit: f.limit}
	f.mu.Unlock()

	res, err := f.pager.Page(ctx, q)

	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.generation {
		// filters changed while loading
		return nil
	}
	f.loading = false

	if err != nil {
		f.err = err
		if page == 1 {
			f.posts = nil
		}
		return err
	}

	f.err = nil
	f.page = page
	if page == 1 {
		f.posts = append([]domain.Article(nil), res.Posts...)
	} else {
		f.posts = append(f.posts, res.Posts...)
	}
	f.hasMore = res.HasMore && len(res.Posts) > 0
	return nil
}

// Posts returns a copy of the loaded articles.
func (f *Feed) Posts() []domain.Article {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Article(nil), f.posts...)
}

// HasMore reports whether another page may be loaded.
func (f *Feed) HasMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasMore
}

// Loading reports whether a request is in flight.
func (f *Feed) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// Err returns the error of the last completed request, if any.
func (f *Feed) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Page returns the last successfully loaded page number.
func (f *Feed) Page() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.page
}
