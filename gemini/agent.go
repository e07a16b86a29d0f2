// Package gemini implements the question answering agent on Google Gemini
// function calling.
package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/fwojciec/jursearch"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// MaxRounds bounds the generate/tool-call exchanges per question.
const MaxRounds = 5

// ContentGenerator generates model responses. *genai.Models satisfies it.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

var _ jursearch.Asker = (*Agent)(nil)

// Agent answers questions by letting the model call the search tools.
type Agent struct {
	generator ContentGenerator
	tools     jursearch.ToolRunner
	model     string

	// Tokens, when set, is used to log the size of each tool result.
	Tokens jursearch.TokenCounter
	Logger *slog.Logger
}

// NewAgent creates an Agent. An empty model means DefaultModel.
func NewAgent(generator ContentGenerator, tools jursearch.ToolRunner, model string) *Agent {
	if model == "" {
		model = DefaultModel
	}
	return &Agent{generator: generator, tools: tools, model: model}
}

// Ask answers question, searching the sources pref points to by default.
func (a *Agent) Ask(ctx context.Context, question string, pref jursearch.SearchPreference) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", jursearch.Errorf(jursearch.EINVALID, "question required")
	}
	if pref == "" {
		pref = jursearch.PreferEverywhere
	}

	config := BuildConfig(pref)
	contents := []*genai.Content{genai.NewContentFromText(question, genai.RoleUser)}

	for round := 1; round <= MaxRounds; round++ {
		resp, err := a.generator.GenerateContent(ctx, a.model, contents, config)
		if err != nil {
			return "", err
		}
		if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			return "", jursearch.Errorf(jursearch.EINTERNAL, "gemini returned no candidates")
		}

		calls := resp.FunctionCalls()
		if len(calls) == 0 {
			return resp.Text(), nil
		}

		contents = append(contents, resp.Candidates[0].Content)
		parts := make([]*genai.Part, 0, len(calls))
		for _, call := range calls {
			parts = append(parts, a.call(ctx, round, call))
		}
		contents = append(contents, genai.NewContentFromParts(parts, genai.RoleUser))
	}

	return "", jursearch.Errorf(jursearch.EINTERNAL, "no answer after %d rounds", MaxRounds)
}

// call runs one function call and wraps its output as a function response.
// Tool errors are reported to the model rather than aborting the exchange.
func (a *Agent) call(ctx context.Context, round int, call *genai.FunctionCall) *genai.Part {
	query, _ := call.Args["query"].(string)
	limit := intArg(call.Args["limit"], DefaultLimit)

	response := map[string]any{}
	out, err := a.tools.RunTool(ctx, call.Name, query, limit)
	if err != nil {
		a.logger().Warn("tool call failed", "round", round, "tool", call.Name, "err", err)
		response["error"] = jursearch.ErrorMessage(err)
	} else {
		response["output"] = out
		a.logTokens(ctx, call.Name, out)
	}

	return &genai.Part{FunctionResponse: &genai.FunctionResponse{
		ID:       call.ID,
		Name:     call.Name,
		Response: response,
	}}
}

func (a *Agent) logTokens(ctx context.Context, tool, out string) {
	if a.Tokens == nil {
		return
	}
	n, err := a.Tokens.CountTokens(ctx, out)
	if err != nil {
		a.logger().Debug("count tool result tokens", "tool", tool, "err", err)
		return
	}
	a.logger().Info("tool result", "tool", tool, "chars", len([]rune(out)), "tokens", n)
}

func (a *Agent) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

// intArg converts a JSON number argument to an int.
func intArg(v any, def int) int {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return def
		}
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i
		}
	}
	return def
}

// BuildConfig returns the generation config: the system instruction for
// pref, the three search tools and temperature 0.
func BuildConfig(pref jursearch.SearchPreference) *genai.GenerateContentConfig {
	temp := float32(0)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: SystemInstruction(pref)}}},
		Tools:             []*genai.Tool{{FunctionDeclarations: FunctionDeclarations()}},
		Temperature:       &temp,
	}
}

// SystemInstruction describes the agent role and the default search
// source.
func SystemInstruction(pref jursearch.SearchPreference) string {
	return fmt.Sprintf(`Ты помощник бухгалтера и юриста. Отвечай на русском языке, опираясь только на найденные документы, и указывай ссылки на источники.

Текущее предпочтение поиска: %q. Если пользователь явно не попросил другой источник, используй инструмент %s.`,
		string(pref), toolFor(pref))
}

func toolFor(pref jursearch.SearchPreference) string {
	switch pref {
	case jursearch.PreferInternal:
		return jursearch.ToolSearchInternal
	case jursearch.PreferYandex:
		return jursearch.ToolSearchYandex
	}
	return jursearch.ToolSearchEverywhere
}
