package mock

import (
	"context"

	"github.com/fwojciec/jursearch"
)

var _ jursearch.ContentClient = (*ContentClient)(nil)

// ContentClient is a mock implementation of jursearch.ContentClient.
type ContentClient struct {
	SearchFn func(ctx context.Context, params jursearch.SearchParams, pages int) ([]*jursearch.SearchResult, error)
}

func (c *ContentClient) Search(ctx context.Context, params jursearch.SearchParams, pages int) ([]*jursearch.SearchResult, error) {
	return c.SearchFn(ctx, params, pages)
}

var _ jursearch.SearchService = (*SearchService)(nil)

// SearchService is a mock implementation of jursearch.SearchService.
type SearchService struct {
	SearchInternalFn   func(ctx context.Context, query string, limit int) (*jursearch.SearchResults, error)
	SearchWebFn        func(ctx context.Context, query string, limit int) (*jursearch.SearchResults, error)
	SearchEverywhereFn func(ctx context.Context, query string, limit int) (*jursearch.SearchResults, error)
}

func (s *SearchService) SearchInternal(ctx context.Context, query string, limit int) (*jursearch.SearchResults, error) {
	return s.SearchInternalFn(ctx, query, limit)
}

func (s *SearchService) SearchWeb(ctx context.Context, query string, limit int) (*jursearch.SearchResults, error) {
	return s.SearchWebFn(ctx, query, limit)
}

func (s *SearchService) SearchEverywhere(ctx context.Context, query string, limit int) (*jursearch.SearchResults, error) {
	return s.SearchEverywhereFn(ctx, query, limit)
}
