package llm

import (
	"encoding/json"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"triage-agent/pkg"
)

func TestToOpenAIMessageRoles(t *testing.T) {
	tests := []struct {
		role pkg.Role
		want string
	}{
		{pkg.RoleSystem, openai.ChatMessageRoleSystem},
		{pkg.RoleUser, openai.ChatMessageRoleUser},
		{pkg.RoleAssistant, openai.ChatMessageRoleAssistant},
		{pkg.RoleTool, openai.ChatMessageRoleTool},
		{pkg.Role("other"), openai.ChatMessageRoleUser},
	}
	for _, tt := range tests {
		got := toOpenAIMessage(pkg.Message{Role: tt.role, Content: "x"})
		if got.Role != tt.want {
			t.Errorf("role %q mapped to %q, want %q", tt.role, got.Role, tt.want)
		}
	}
}

func TestToOpenAIMessageToolTraffic(t *testing.T) {
	assistant := toOpenAIMessage(pkg.Message{
		Role: pkg.RoleAssistant,
		ToolCalls: []pkg.ToolCall{
			{ID: "c1", Name: "search_tool", Arguments: json.RawMessage(`{"query":"x"}`)},
		},
	})
	if len(assistant.ToolCalls) != 1 {
		t.Fatalf("tool calls not carried over: %+v", assistant)
	}
	tc := assistant.ToolCalls[0]
	if tc.ID != "c1" || tc.Function.Name != "search_tool" || tc.Function.Arguments != `{"query":"x"}` {
		t.Errorf("unexpected tool call conversion: %+v", tc)
	}

	result := toOpenAIMessage(pkg.Message{Role: pkg.RoleTool, ToolCallID: "c1", Content: "[]"})
	if result.Role != openai.ChatMessageRoleTool || result.ToolCallID != "c1" {
		t.Errorf("tool result lost correlation: %+v", result)
	}
}
