package slog

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/jursearch"
)

var _ jursearch.Asker = (*LoggingAsker)(nil)

// LoggingAsker wraps an Asker with logging.
type LoggingAsker struct {
	next   jursearch.Asker
	logger *slog.Logger
}

// NewLoggingAsker creates a new LoggingAsker.
func NewLoggingAsker(next jursearch.Asker, logger *slog.Logger) *LoggingAsker {
	return &LoggingAsker{next: next, logger: logger}
}

// Ask delegates to the wrapped asker and logs the answer length.
func (a *LoggingAsker) Ask(ctx context.Context, question string, pref jursearch.SearchPreference) (answer string, err error) {
	defer func(begin time.Time) {
		a.logger.Info("ask",
			"preference", string(pref),
			"question_chars", utf8.RuneCountInString(question),
			"answer_chars", utf8.RuneCountInString(answer),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Ask(ctx, question, pref)
}

var _ jursearch.ToolRunner = (*LoggingToolRunner)(nil)

// LoggingToolRunner wraps a ToolRunner with debug logging.
type LoggingToolRunner struct {
	next   jursearch.ToolRunner
	logger *slog.Logger
}

// NewLoggingToolRunner creates a new LoggingToolRunner.
func NewLoggingToolRunner(next jursearch.ToolRunner, logger *slog.Logger) *LoggingToolRunner {
	return &LoggingToolRunner{next: next, logger: logger}
}

// RunTool delegates to the wrapped runner.
func (r *LoggingToolRunner) RunTool(ctx context.Context, name, query string, limit int) (out string, err error) {
	defer func(begin time.Time) {
		r.logger.Debug("tool",
			"name", name,
			"query", query,
			"limit", limit,
			"bytes", len(out),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.RunTool(ctx, name, query, limit)
}
