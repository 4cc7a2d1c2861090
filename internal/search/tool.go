package search

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"triage-agent/internal/llm"
)

// ToolName is the identifier the model uses to invoke web search.
const ToolName = "search_tool"

// MaxResults bounds the snippets returned per query to keep prompt growth
// bounded.
const MaxResults = 5

// Tool exposes a Searcher as a model-invocable tool.
type Tool struct {
	client Searcher
}

// NewTool wraps a search client for the dialogue controller's tool set.
func NewTool(client Searcher) *Tool {
	return &Tool{client: client}
}

func (t *Tool) Name() string { return ToolName }

// Spec declares the tool to the completion client.
func (t *Tool) Spec() llm.ToolSpec {
	return llm.ToolSpec{
		Name:        ToolName,
		Description: "Busca informações médicas relevantes na internet. Use quando os sintomas ou o histórico do paciente não forem claros.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"query": {
					"type": "string",
					"description": "Termos de busca"
				}
			},
			"required": ["query"]
		}`),
	}
}

type toolArgs struct {
	Query string `json:"query"`
}

// Invoke runs one search and returns the ranked snippets as a JSON list.
func (t *Tool) Invoke(ctx context.Context, args json.RawMessage) (string, error) {
	var in toolArgs
	if err := json.Unmarshal(args, &in); err != nil {
		return "", errors.New("invalid search arguments")
	}
	in.Query = strings.TrimSpace(in.Query)
	if in.Query == "" {
		return "", errors.New("empty search query")
	}

	results, err := t.client.Search(ctx, in.Query, MaxResults)
	if err != nil {
		return "", err
	}

	b, err := json.Marshal(results)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
