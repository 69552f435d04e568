package grokipedia

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/custodia-labs/grokipedia-mcp/internal/core/domain"
)

// RateLimitError reports a 429 response that outlived the retry budget.
type RateLimitError struct {
	RetryAt time.Time
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("grokipedia: rate limit exceeded, retry at %s", e.RetryAt.Format(time.RFC3339))
}

// Is reports whether target is domain.ErrRateLimited.
func (e *RateLimitError) Is(target error) bool {
	return target == domain.ErrRateLimited
}

// APIError represents a non-success response from the API.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("grokipedia: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// Is reports whether target is domain.ErrNotFound for 404 responses.
func (e *APIError) Is(target error) bool {
	return target == domain.ErrNotFound && e.StatusCode == http.StatusNotFound
}

// IsNotFound checks if the error indicates a page was not found.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

// retryable reports whether a status code is worth another attempt.
func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}
