package main

import (
	"context"
	"fmt"

	"github.com/fwojciec/jursearch"
)

// Run executes the internal command.
func (c *InternalCmd) Run(deps *Dependencies) error {
	return c.run(deps, deps.Search.SearchInternal)
}

// Run executes the web command.
func (c *WebCmd) Run(deps *Dependencies) error {
	return c.run(deps, deps.Search.SearchWeb)
}

// Run executes the everywhere command.
func (c *EverywhereCmd) Run(deps *Dependencies) error {
	return c.run(deps, deps.Search.SearchEverywhere)
}

type searchFunc func(ctx context.Context, query string, limit int) (*jursearch.SearchResults, error)

func (f *SearchFlags) run(deps *Dependencies, search searchFunc) error {
	results, err := search(deps.Ctx, f.Query, f.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", jursearch.ErrorMessage(err))
		return err
	}
	if msg := results.Meta["error"]; msg != "" {
		fmt.Fprintf(deps.Stderr, "warning: %s search failed: %s\n", results.Meta["provider"], msg)
	}

	fmt.Fprintln(deps.Stdout, jursearch.FormatDocuments(results.Docs, len(results.Docs)))

	if !f.Save {
		return nil
	}
	saved := 0
	for _, doc := range results.Docs {
		if err := deps.Documents.SaveDocument(deps.Ctx, jursearch.NewDocument(doc)); err != nil {
			fmt.Fprintf(deps.Stderr, "error: save %s: %s\n", doc.URL, jursearch.ErrorMessage(err))
			return err
		}
		saved++
	}
	fmt.Fprintf(deps.Stdout, "Saved %d documents\n", saved)
	return nil
}
