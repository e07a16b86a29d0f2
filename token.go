package jursearch

import "context"

// TokenCounter counts the tokens a model would see for text.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
