//go:build integration

package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/jursearch"
	"github.com/fwojciec/jursearch/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCounter_CountTokens(t *testing.T) {
	t.Parallel()

	tc, err := gemini.NewTokenCounter("")
	require.NoError(t, err)

	var _ jursearch.TokenCounter = tc

	t.Run("counts tokens in russian text", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "Ставка НДС составляет 20 процентов.")

		require.NoError(t, err)
		assert.Positive(t, count)
	})

	t.Run("blank text is zero", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), " \n ")

		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("longer text has more tokens", func(t *testing.T) {
		t.Parallel()

		short, err := tc.CountTokens(context.Background(), "НДС")
		require.NoError(t, err)
		long, err := tc.CountTokens(context.Background(), "Порядок исчисления и уплаты налога на добавленную стоимость при экспорте товаров.")
		require.NoError(t, err)

		assert.Greater(t, long, short)
	})
}
