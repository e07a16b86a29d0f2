package doctree_test

import (
	"testing"

	"github.com/fwojciec/jursearch/doctree"
	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"space before punctuation", "Hello , world ;  next", "Hello, world; next"},
		{"trailing colon", "Пример:", "Пример ..."},
		{"trailing semicolon with spaces", "Итого;  ", "Итого ..."},
		{"spaced trailing colon", "Пример : ", "Пример ..."},
		{"html nbsp entity", "a&#160;b", "a b"},
		{"semicolon before ellipsis", "a;...b", "a; ...b"},
		{"brackets", "( x ) [ y ]", "(x) [y]"},
		{"space after separators", "a:b;c", "a: b; c"},
		{"time literal", "10:30", "10: 30"},
		{"nbsp absorbs spaces", "a \u00a0  b", "a\u00a0b"},
		{"collapse spaces", "a    b", "a b"},
		{"keeps trailing elision", "Пример ...", "Пример ..."},
		{"unicode whitespace before comma", "a\u2003\u00a0, b", "a, b"},
		{"entity before separator", "text&#160;;", "text ..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, doctree.Clean(tt.in))
		})
	}
}

func TestClean_Idempotent(t *testing.T) {
	t.Parallel()

	corpus := []string{
		"",
		"Hello , world ;  next",
		"Пример:",
		"Пример ...",
		"a;...b",
		"x ...;",
		"a (:",
		"a [ : ]",
		"a;,",
		"a\u00a0  b",
		"( ;x",
		"Итого;  ",
		"text&#160;;",
		"a; ;",
		"10:30",
		"  leading",
		"trailing ",
		" ... ",
		"\t;\n",
		"Налог на доходы ( НДФЛ ) : ставка 13 % ; порядок :",
	}
	for _, s := range corpus {
		once := doctree.Clean(s)
		assert.Equal(t, once, doctree.Clean(once), "input %q", s)
	}
}
