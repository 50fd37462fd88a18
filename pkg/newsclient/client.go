// Package newsclient is a Go client for the /api/news endpoint,
// including the infinite-scroll pager used by front ends.
package newsclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/BeritaKita/internal/domain"
	"github.com/go-pkgz/requester"
	"github.com/go-pkgz/requester/middleware"
)

// Client calls the news API.
type Client struct {
	baseURL string
	rq      *requester.Requester
}

// New makes a client for the API served at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		rq:      requester.New(http.Client{Timeout: timeout}, middleware.JSON),
	}
}

type pageResponse struct {
	Success bool               `json:"success"`
	Data    *domain.PageResult `json:"data"`
	Message string             `json:"message"`
	Error   string             `json:"error"`
}

// Page requests one page. It fails on transport errors, non-2xx statuses and success=false payloads.
func (c *Client) Page(ctx context.Context, q domain.Query) (*domain.PageResult, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("limit", strconv.Itoa(q.Limit))
	if q.SourceID != "" {
		params.Set("source", q.SourceID)
	}
	if q.Search != "" {
		params.Set("q", q.Search)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/news?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.rq.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var body pageResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		if decodeErr == nil && body.Message != "" {
			return nil, fmt.Errorf("failed to fetch news: status %d: %s", resp.StatusCode, body.Message)
		}
		return nil, fmt.Errorf("failed to fetch news: status %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode response: %w", decodeErr)
	}
	if !body.Success || body.Data == nil {
		msg := body.Message
		if msg == "" {
			msg = "failed to load news"
		}
		return nil, fmt.Errorf("%s", msg)
	}
	return body.Data, nil
}
