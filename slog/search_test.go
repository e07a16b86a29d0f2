package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/jursearch"
	"github.com/fwojciec/jursearch/mock"
	jsslog "github.com/fwojciec/jursearch/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSearchService(t *testing.T) {
	t.Parallel()

	results := func(context.Context, string, int) (*jursearch.SearchResults, error) {
		return &jursearch.SearchResults{
			Docs: []*jursearch.UnifiedDoc{{Title: "A"}, {Title: "B"}},
			Meta: map[string]string{"provider": "internal", "count": "2"},
		}, nil
	}
	failed := func(context.Context, string, int) (*jursearch.SearchResults, error) {
		return &jursearch.SearchResults{
			Docs: []*jursearch.UnifiedDoc{},
			Meta: map[string]string{"provider": "yandex", "count": "0", "error": "quota"},
		}, nil
	}
	inner := &mock.SearchService{
		SearchInternalFn:   results,
		SearchWebFn:        failed,
		SearchEverywhereFn: results,
	}

	t.Run("logs each operation with count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		svc := jsslog.NewLoggingSearchService(inner, slog.New(slog.NewTextHandler(&buf, nil)))

		_, err := svc.SearchInternal(context.Background(), "q", 5)
		require.NoError(t, err)
		_, err = svc.SearchEverywhere(context.Background(), "q", 3)
		require.NoError(t, err)

		output := buf.String()
		assert.Contains(t, output, `msg="search internal"`)
		assert.Contains(t, output, `msg="search everywhere"`)
		assert.Contains(t, output, "count=2")
		assert.Contains(t, output, "limit=3")
		assert.Contains(t, output, "level=INFO")
	})

	t.Run("warns on provider failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		svc := jsslog.NewLoggingSearchService(inner, slog.New(slog.NewTextHandler(&buf, nil)))

		got, err := svc.SearchWeb(context.Background(), "q", 5)

		require.NoError(t, err)
		assert.Equal(t, "quota", got.Meta["error"])
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "provider_err=quota")
	})
}
