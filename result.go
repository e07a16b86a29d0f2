package jursearch

import (
	"context"
	"net/url"
	"time"
	"unicode/utf8"
)

// Source identifies where a unified document came from.
type Source string

// Document sources.
const (
	SourceInternal Source = "internal"
	SourceYandex   Source = "yandex"
)

// UntitledPlaceholder stands in for a missing document or page title.
const UntitledPlaceholder = "Без заголовка"

// UnifiedDoc is a search hit from any source in a common shape.
type UnifiedDoc struct {
	Title       string     `json:"title"`
	Content     string     `json:"content,omitempty"`
	URL         string     `json:"url"`
	Source      Source     `json:"source"`
	ScoreRank   float64    `json:"score_rank"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// Validate returns an error if the document contains invalid fields.
func (d *UnifiedDoc) Validate() error {
	if utf8.RuneCountInString(d.Title) < 2 {
		return Errorf(EINVALID, "document title must be at least 2 characters")
	}
	u, err := url.Parse(d.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Errorf(EINVALID, "document URL %q must be an absolute http(s) URL", d.URL)
	}
	switch d.Source {
	case SourceInternal, SourceYandex:
	default:
		return Errorf(EINVALID, "unknown document source %q", d.Source)
	}
	return nil
}

// SearchResults is a ranked list of documents plus provider metadata.
type SearchResults struct {
	Docs []*UnifiedDoc     `json:"docs"`
	Meta map[string]string `json:"meta"`
}

// SearchService searches the content API, the web, or both.
// Provider failures are reported in Meta["error"] with empty Docs rather
// than as errors.
type SearchService interface {
	SearchInternal(ctx context.Context, query string, limit int) (*SearchResults, error)
	SearchWeb(ctx context.Context, query string, limit int) (*SearchResults, error)
	SearchEverywhere(ctx context.Context, query string, limit int) (*SearchResults, error)
}
