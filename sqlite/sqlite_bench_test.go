package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/fwojciec/jursearch"
	"github.com/fwojciec/jursearch/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkSaveDocument compares fresh inserts with upserts of already
// stored URLs, the common case when a query is repeated.
func BenchmarkSaveDocument(b *testing.B) {
	b.Run("insert", func(b *testing.B) {
		benchmarkSave(b, func(i int) string { return fmt.Sprintf("https://example.ru/doc/%d", i) })
	})

	b.Run("upsert", func(b *testing.B) {
		benchmarkSave(b, func(i int) string { return fmt.Sprintf("https://example.ru/doc/%d", i%10) })
	})
}

func benchmarkSave(b *testing.B, urlFor func(i int) string) {
	b.Helper()

	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()

	svc := sqlite.NewDocumentService(db)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		doc := &jursearch.Document{
			Source:    jursearch.SourceYandex,
			SourceURL: urlFor(i),
			Title:     fmt.Sprintf("Документ %d", i),
			Content:   fmt.Sprintf("Порядок исчисления НДС, редакция %d. Ставка 20 процентов применяется по умолчанию.", i),
			Score:     0.5,
		}
		if err := svc.SaveDocument(ctx, doc); err != nil {
			b.Fatal(err)
		}
	}
}
