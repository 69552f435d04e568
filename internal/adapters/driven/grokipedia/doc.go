// Package grokipedia provides an HTTP client for the Grokipedia API.
// It implements the driven.ArticleSource interface.
//
// Requests are throttled by a token bucket and retried with exponential
// backoff on 429 and 5xx responses. HTML fragments in snippets and
// descriptions are reduced to plain text.
package grokipedia
