package mock

import (
	"context"

	"github.com/fwojciec/jursearch"
)

var _ jursearch.LinkSearcher = (*LinkSearcher)(nil)

// LinkSearcher is a mock implementation of jursearch.LinkSearcher.
type LinkSearcher struct {
	SearchLinksFn func(ctx context.Context, query string, n int) ([]jursearch.Link, error)
}

func (s *LinkSearcher) SearchLinks(ctx context.Context, query string, n int) ([]jursearch.Link, error) {
	return s.SearchLinksFn(ctx, query, n)
}

var _ jursearch.PageScraper = (*PageScraper)(nil)

// PageScraper is a mock implementation of jursearch.PageScraper.
type PageScraper struct {
	ScrapeFn func(ctx context.Context, url string) (*jursearch.WebPage, error)
}

func (s *PageScraper) Scrape(ctx context.Context, url string) (*jursearch.WebPage, error) {
	return s.ScrapeFn(ctx, url)
}

var _ jursearch.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of jursearch.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
