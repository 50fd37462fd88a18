package domain

import (
	"context"
	"strings"
)

// Article is the normalized news item served to clients.
// Title and Link are always non-empty; every other field is best-effort.
type Article struct {
	Title          string `json:"title"`
	Link           string `json:"link"`
	ContentSnippet string `json:"contentSnippet"`
	PubDate        string `json:"pubDate"`
	Image          *Image `json:"image"`
	Source         string `json:"source"`   // display name, e.g. "CNN Indonesia"
	SourceID       string `json:"sourceId"` // registry key, e.g. "cnn-news"
}

// Valid reports whether the article passes the only data-quality gate.
func (a Article) Valid() bool {
	return a.Title != "" && a.Link != ""
}

// Matches reports whether the article title or snippet contains the search term, ignoring case.
// An empty term matches everything.
func (a Article) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(a.Title), term) ||
		strings.Contains(strings.ToLower(a.ContentSnippet), term)
}

// Image holds the resolved thumbnail and full-size URLs of an article.
type Image struct {
	Small string `json:"small,omitempty"`
	Large string `json:"large,omitempty"`
}

// Query describes a page request.
type Query struct {
	SourceID string // empty means every registered source
	Search   string
	Page     int
	Limit    int
}

// PageResult is one page of the merged, reverse-chronological collection.
type PageResult struct {
	Posts   []Article `json:"posts"`
	HasMore bool      `json:"hasMore"`
	Total   int       `json:"total"`
	Page    int       `json:"page"`
	Limit   int       `json:"limit"`
}

// Batch is the outcome of transforming one upstream payload.
type Batch struct {
	Articles []Article
	Received int // raw items considered before filtering
	Dropped  int // items rejected for a missing title or link
	Total    int // upstream "total" field, 0 when absent
}

// Provider fetches raw payloads from one upstream outlet.
type Provider interface {
	Source() Source
	Fetch(ctx context.Context) ([]byte, error)
	Available() bool
}

// NewsReader serves normalized pages and raw passthrough payloads.
type NewsReader interface {
	Page(ctx context.Context, q Query) (*PageResult, error)
	Raw(ctx context.Context, sourceID string) ([]byte, error)
}
