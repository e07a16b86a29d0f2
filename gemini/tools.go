package gemini

import (
	"github.com/fwojciec/jursearch"
	"google.golang.org/genai"
)

// DefaultLimit is the result count used when the model omits limit.
const DefaultLimit = 5

// FunctionDeclarations declares the search tools to the model.
func FunctionDeclarations() []*genai.FunctionDeclaration {
	return []*genai.FunctionDeclaration{
		declare(jursearch.ToolSearchInternal,
			"Ищет документы во внутренней базе Актиона (1gl.ru). Используй, когда пользователь просит искать во внутренней базе или предпочтение поиска internal."),
		declare(jursearch.ToolSearchYandex,
			"Ищет документы в Яндексе (интернет). Используй, когда пользователь просит искать в интернете или предпочтение поиска yandex."),
		declare(jursearch.ToolSearchEverywhere,
			"Ищет документы одновременно во внутренней базе и в Яндексе. Используй для максимального охвата или когда предпочтение поиска everywhere."),
	}
}

func declare(name, description string) *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        name,
		Description: description,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"query": {
					Type:        genai.TypeString,
					Description: "Чёткий поисковый запрос по юридической или бухгалтерской тематике",
				},
				"limit": {
					Type:        genai.TypeInteger,
					Description: "Максимальное количество результатов от 1 до 10. По умолчанию 5",
				},
			},
			Required: []string{"query"},
		},
	}
}
