package mock

import (
	"context"

	"github.com/fwojciec/jursearch"
)

var _ jursearch.Asker = (*Asker)(nil)

// Asker is a mock implementation of jursearch.Asker.
type Asker struct {
	AskFn func(ctx context.Context, question string, pref jursearch.SearchPreference) (string, error)
}

func (a *Asker) Ask(ctx context.Context, question string, pref jursearch.SearchPreference) (string, error) {
	return a.AskFn(ctx, question, pref)
}

var _ jursearch.ToolRunner = (*ToolRunner)(nil)

// ToolRunner is a mock implementation of jursearch.ToolRunner.
type ToolRunner struct {
	RunToolFn func(ctx context.Context, name, query string, limit int) (string, error)
}

func (r *ToolRunner) RunTool(ctx context.Context, name, query string, limit int) (string, error) {
	return r.RunToolFn(ctx, name, query, limit)
}
