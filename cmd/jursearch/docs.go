package main

import (
	"fmt"

	"github.com/fwojciec/jursearch"
)

// Run executes the docs command.
func (c *DocsCmd) Run(deps *Dependencies) error {
	filter := jursearch.DocumentFilter{Limit: c.Limit}
	switch source := jursearch.Source(c.Source); source {
	case "":
	case jursearch.SourceInternal, jursearch.SourceYandex:
		filter.Source = &source
	default:
		fmt.Fprintf(deps.Stderr, "error: unknown source %q, expected internal or yandex\n", c.Source)
		return jursearch.Errorf(jursearch.EINVALID, "unknown source %q", c.Source)
	}

	docs, err := deps.Documents.FindDocuments(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", jursearch.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(deps.Stdout, "No saved documents. Run a search with --save first.")
		return nil
	}

	if c.Full {
		unified := make([]*jursearch.UnifiedDoc, len(docs))
		for i, d := range docs {
			unified[i] = &jursearch.UnifiedDoc{Title: d.Title, Content: d.Content, URL: d.SourceURL, Source: d.Source, ScoreRank: d.Score}
		}
		fmt.Fprintln(deps.Stdout, jursearch.FormatDocuments(unified, len(unified)))
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Saved documents (%d):\n\n", len(docs))
	for i, doc := range docs {
		title := doc.Title
		if title == "" {
			title = doc.SourceURL
		}
		fmt.Fprintf(deps.Stdout, "  %d. [%s] %s\n     %s\n     fetched %s\n",
			i+1, doc.Source, title, doc.SourceURL, doc.FetchedAt.Format("2006-01-02 15:04"))
	}

	return nil
}
