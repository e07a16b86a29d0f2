package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/jursearch"
)

var _ jursearch.ContentClient = (*LoggingContentClient)(nil)

// LoggingContentClient wraps a ContentClient with logging.
type LoggingContentClient struct {
	next   jursearch.ContentClient
	logger *slog.Logger
}

// NewLoggingContentClient creates a new LoggingContentClient.
func NewLoggingContentClient(next jursearch.ContentClient, logger *slog.Logger) *LoggingContentClient {
	return &LoggingContentClient{next: next, logger: logger}
}

// Search delegates to the wrapped client and logs hit and failure counts.
func (c *LoggingContentClient) Search(ctx context.Context, params jursearch.SearchParams, pages int) (results []*jursearch.SearchResult, err error) {
	defer func(begin time.Time) {
		failed := 0
		for _, r := range results {
			if r.Err != "" {
				failed++
			}
		}
		c.logger.Info("content search",
			"query", params.FString,
			"pages", pages,
			"count", len(results),
			"failed", failed,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Search(ctx, params, pages)
}

var _ jursearch.LinkSearcher = (*LoggingLinkSearcher)(nil)

// LoggingLinkSearcher wraps a LinkSearcher with logging.
type LoggingLinkSearcher struct {
	next   jursearch.LinkSearcher
	logger *slog.Logger
}

// NewLoggingLinkSearcher creates a new LoggingLinkSearcher.
func NewLoggingLinkSearcher(next jursearch.LinkSearcher, logger *slog.Logger) *LoggingLinkSearcher {
	return &LoggingLinkSearcher{next: next, logger: logger}
}

// SearchLinks delegates to the wrapped searcher and logs the link count.
func (s *LoggingLinkSearcher) SearchLinks(ctx context.Context, query string, n int) (links []jursearch.Link, err error) {
	defer func(begin time.Time) {
		s.logger.Info("link search",
			"query", query,
			"n", n,
			"count", len(links),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SearchLinks(ctx, query, n)
}
