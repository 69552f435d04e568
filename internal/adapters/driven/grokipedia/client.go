package grokipedia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/grokipedia-mcp/internal/core/domain"
	"github.com/custodia-labs/grokipedia-mcp/internal/core/ports/driven"
	"github.com/custodia-labs/grokipedia-mcp/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.ArticleSource = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL   = "https://grokipedia.com"
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "grokipedia-mcp"

	// RetryDelay is the initial delay between retries.
	RetryDelay = 500 * time.Millisecond

	// maxErrorBody bounds how much of an error response is kept.
	maxErrorBody = 512
)

// Config holds configuration for the API client.
type Config struct {
	// BaseURL is the API root (default: https://grokipedia.com).
	BaseURL string

	// Timeout bounds each HTTP request (default: 30s).
	Timeout time.Duration

	// RequestsPerSecond and Burst configure client-side throttling.
	// Zero RequestsPerSecond disables throttling.
	RequestsPerSecond float64
	Burst             int

	// MaxRetries bounds retries of 429 and 5xx responses.
	MaxRetries int

	// UserAgent is sent with every request.
	UserAgent string

	// HTTPClient overrides the transport. Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client reads articles from the Grokipedia HTTP API.
type Client struct {
	http        *http.Client
	baseURL     string
	userAgent   string
	maxRetries  int
	retryDelay  time.Duration
	rateLimiter *RateLimiter
}

// NewClient creates a new API client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		http:        httpClient,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:   cfg.UserAgent,
		maxRetries:  cfg.MaxRetries,
		retryDelay:  RetryDelay,
		rateLimiter: NewRateLimiter(cfg.RequestsPerSecond, cfg.Burst),
	}
}

// Search runs a full-text search.
func (c *Client) Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	params := url.Values{}
	params.Set("query", query)
	if opts.Limit > 0 {
		params.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		params.Set("offset", strconv.Itoa(opts.Offset))
	}

	var resp searchResponse
	if err := c.get(ctx, searchPath, params, &resp); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(resp.Results))
	for _, hit := range resp.Results {
		results = append(results, hit.toDomain())
	}
	return results, nil
}

// FetchArticle fetches one page by slug.
// Returns an error matching domain.ErrNotFound for unknown slugs.
func (c *Client) FetchArticle(ctx context.Context, slug string, opts domain.FetchOptions) (*domain.Article, error) {
	params := url.Values{}
	params.Set("slug", slug)
	params.Set("includeContent", strconv.FormatBool(opts.IncludeContent))

	var resp pageResponse
	err := c.get(ctx, pagePath, params, &resp)
	switch {
	case IsNotFound(err):
		// A 404 carries the API's error body; callers only need the sentinel.
		return nil, fmt.Errorf("get page %s: %w", slug, domain.ErrNotFound)
	case err != nil:
		return nil, fmt.Errorf("get page %s: %w", slug, err)
	}
	if !resp.Found || resp.Page == nil {
		return nil, fmt.Errorf("get page %s: %w", slug, domain.ErrNotFound)
	}

	article := resp.Page.toDomain()
	if article.Slug == "" {
		article.Slug = slug
	}
	return article, nil
}

// get performs a GET with throttling and retries, decoding JSON into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	endpoint := c.baseURL + path + "?" + params.Encode()

	delay := c.retryDelay
	for attempt := 0; ; attempt++ {
		err := c.do(ctx, endpoint, out)
		if err == nil {
			return nil
		}

		var apiErr *APIError
		transient := IsRateLimited(err) || (errors.As(err, &apiErr) && retryable(apiErr.StatusCode))
		if !transient || attempt >= c.maxRetries {
			return err
		}

		logger.Debug("Retrying %s after %v (attempt %d/%d): %v", path, delay, attempt+1, c.maxRetries, err)
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
}

func (c *Client) do(ctx context.Context, endpoint string, out any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests {
		return &RateLimitError{RetryAt: c.rateLimiter.RecordRateLimit(resp)}
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg, URL: endpoint}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
