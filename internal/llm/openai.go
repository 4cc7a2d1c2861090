package llm

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"

	"triage-agent/pkg"
)

// ToolSpec declares one tool the model may invoke. Parameters is a JSON
// schema object describing the tool's arguments.
type ToolSpec struct {
	Name        string
	Description string
	Parameters  json.RawMessage
}

// Completion is the tagged result of one completion round: either a final
// answer (Content, no ToolCalls) or one or more tool-call requests, possibly
// accompanied by partial text.
type Completion struct {
	Content   string
	ToolCalls []pkg.ToolCall
}

// Client defines the completion capability consumed by the dialogue
// controller. Complete accepts the assembled prompt history and the declared
// tool set and returns one structured result. Implementations must be
// stateless and safe for concurrent use.
type Client interface {
	Complete(ctx context.Context, messages []pkg.Message, tools []ToolSpec) (*Completion, error)
}

// OpenAIClient calls the OpenAI chat completion API with function-calling
// enabled. API credentials and the model name are loaded from environment
// variables.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient constructs an OpenAI-backed completion client. It reads the
// API key and model name from the environment and falls back to a sensible
// default model.
func NewOpenAIClient() *OpenAIClient {
	apiKey := os.Getenv("OPENAI_API_KEY")
	c := openai.NewClient(apiKey)

	model := os.Getenv("OPENAI_MODEL_CHAT")
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &OpenAIClient{client: c, model: model}
}

// Complete sends the message history and tool declarations to the OpenAI
// chat completion API and returns the assistant's structured response.
func (c *OpenAIClient) Complete(ctx context.Context, messages []pkg.Message, tools []ToolSpec) (*Completion, error) {
	if c.client == nil {
		return nil, errors.New("openai client not initialized")
	}

	oaMsgs := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		oaMsgs = append(oaMsgs, toOpenAIMessage(m))
	}

	oaTools := make([]openai.Tool, 0, len(tools))
	for _, t := range tools {
		oaTools = append(oaTools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: openai.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    oaMsgs,
		Tools:       oaTools,
		Temperature: 0.2,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("completion returned no choices")
	}

	choice := resp.Choices[0].Message
	out := &Completion{Content: choice.Content}
	for _, tc := range choice.ToolCalls {
		id := tc.ID
		if id == "" {
			// Some providers omit tool-call IDs; synthesize one so the
			// tool-result message can still be correlated.
			id = uuid.NewString()
		}
		out.ToolCalls = append(out.ToolCalls, pkg.ToolCall{
			ID:        id,
			Name:      tc.Function.Name,
			Arguments: json.RawMessage(tc.Function.Arguments),
		})
	}
	return out, nil
}

// toOpenAIMessage converts a transcript message to the provider's wire type,
// carrying tool calls and tool-result correlation IDs both ways.
func toOpenAIMessage(m pkg.Message) openai.ChatCompletionMessage {
	out := openai.ChatCompletionMessage{Content: m.Content}
	switch m.Role {
	case pkg.RoleSystem:
		out.Role = openai.ChatMessageRoleSystem
	case pkg.RoleAssistant:
		out.Role = openai.ChatMessageRoleAssistant
	case pkg.RoleTool:
		out.Role = openai.ChatMessageRoleTool
		out.ToolCallID = m.ToolCallID
	default:
		out.Role = openai.ChatMessageRoleUser
	}
	for _, tc := range m.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, openai.ToolCall{
			ID:   tc.ID,
			Type: openai.ToolTypeFunction,
			Function: openai.FunctionCall{
				Name:      tc.Name,
				Arguments: string(tc.Arguments),
			},
		})
	}
	return out
}
