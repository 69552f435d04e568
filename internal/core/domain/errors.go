package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent the three failure kinds an operation can surface.
// Typed errors below match them through errors.Is.
var (
	// ErrInvalidArgument indicates malformed request parameters.
	// Requests failing validation never reach the article source.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound indicates a requested article or section does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUpstream indicates the article source failed for a reason other
	// than a missing article (network, protocol, rate limit).
	ErrUpstream = errors.New("upstream failure")

	// ErrRateLimited indicates the upstream API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)

// InvalidArgumentError names the offending request parameter.
type InvalidArgumentError struct {
	Param  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Param, e.Reason)
}

// Is reports whether target is ErrInvalidArgument.
func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// ArticleNotFoundError is returned when an article slug is unknown.
// Suggestions may be empty when nothing similar is known.
type ArticleNotFoundError struct {
	Slug        string
	Suggestions []SuggestionCandidate
}

func (e *ArticleNotFoundError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("page not found: %s", e.Slug)
	}

	names := make([]string, len(e.Suggestions))
	for i, s := range e.Suggestions {
		names[i] = s.Label()
	}
	return fmt.Sprintf("page not found: %s. Did you mean one of these? %s",
		e.Slug, strings.Join(names, ", "))
}

// Is reports whether target is ErrNotFound.
func (e *ArticleNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// SectionNotFoundError is returned when no heading of an article matches.
// Available lists the article's headings so callers can self-correct.
type SectionNotFoundError struct {
	Slug      string
	Heading   string
	Available []string
}

func (e *SectionNotFoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("section %q not found in %s (article has no sections)", e.Heading, e.Slug)
	}
	return fmt.Sprintf("section %q not found in %s. Available sections: %s",
		e.Heading, e.Slug, strings.Join(e.Available, ", "))
}

// Is reports whether target is ErrNotFound.
func (e *SectionNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// UpstreamError wraps a source failure with the operation that hit it.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream failure during %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrUpstream.
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}
