package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/jursearch"
)

var _ jursearch.SearchService = (*LoggingSearchService)(nil)

// LoggingSearchService wraps a SearchService with logging. Provider
// failures reported in the result metadata are logged as warnings.
type LoggingSearchService struct {
	next   jursearch.SearchService
	logger *slog.Logger
}

// NewLoggingSearchService creates a new LoggingSearchService.
func NewLoggingSearchService(next jursearch.SearchService, logger *slog.Logger) *LoggingSearchService {
	return &LoggingSearchService{next: next, logger: logger}
}

// SearchInternal delegates to the wrapped service.
func (s *LoggingSearchService) SearchInternal(ctx context.Context, query string, limit int) (results *jursearch.SearchResults, err error) {
	defer s.log("search internal", query, limit, time.Now(), &results, &err)
	return s.next.SearchInternal(ctx, query, limit)
}

// SearchWeb delegates to the wrapped service.
func (s *LoggingSearchService) SearchWeb(ctx context.Context, query string, limit int) (results *jursearch.SearchResults, err error) {
	defer s.log("search web", query, limit, time.Now(), &results, &err)
	return s.next.SearchWeb(ctx, query, limit)
}

// SearchEverywhere delegates to the wrapped service.
func (s *LoggingSearchService) SearchEverywhere(ctx context.Context, query string, limit int) (results *jursearch.SearchResults, err error) {
	defer s.log("search everywhere", query, limit, time.Now(), &results, &err)
	return s.next.SearchEverywhere(ctx, query, limit)
}

func (s *LoggingSearchService) log(msg, query string, limit int, begin time.Time, results **jursearch.SearchResults, err *error) {
	level := slog.LevelInfo
	count := 0
	var providerErr string
	if r := *results; r != nil {
		count = len(r.Docs)
		providerErr = r.Meta["error"]
	}
	if *err != nil || providerErr != "" {
		level = slog.LevelWarn
	}
	attrs := []any{
		"query", query,
		"limit", limit,
		"count", count,
		"duration", time.Since(begin),
		"err", *err,
	}
	if providerErr != "" {
		attrs = append(attrs, "provider_err", providerErr)
	}
	s.logger.Log(context.Background(), level, msg, attrs...)
}
