package pkg

import "encoding/json"

// Role identifies who authored a message in a conversation transcript.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	// RoleTool marks a tool-result message produced by the tool invoker in
	// response to an assistant tool call.
	RoleTool Role = "tool"
)

// ToolCall is a request emitted by the model to invoke a named tool. ID
// correlates the eventual tool-result message back to this request.
type ToolCall struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// Message is one turn of dialogue. Messages are immutable once appended to a
// conversation; their order is the transcript. Content may be empty when the
// message instead carries tool calls.
type Message struct {
	Role       Role       `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// ConversationState is the full persisted unit for one conversation.
// Messages is append-only and never reordered; QuestionCount only increases.
type ConversationState struct {
	Messages      []Message `json:"messages"`
	QuestionCount int       `json:"question_count"`
}

// Clone returns a deep copy of the state. The dialogue controller mutates a
// copy during a turn so a failed turn leaves the loaded state untouched.
func (s *ConversationState) Clone() *ConversationState {
	if s == nil {
		return &ConversationState{}
	}
	out := &ConversationState{QuestionCount: s.QuestionCount}
	out.Messages = make([]Message, len(s.Messages))
	copy(out.Messages, s.Messages)
	return out
}

// PatientRecord is the opaque structured medical record supplied by the
// caller on each turn. It is echoed into the system prompt but never
// persisted by the dialogue engine.
type PatientRecord map[string]any

// String renders the record as compact JSON for prompt interpolation.
func (r PatientRecord) String() string {
	if len(r) == 0 {
		return "{}"
	}
	b, err := json.Marshal(r)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// ChatRequest is the inbound payload for one conversation turn.
type ChatRequest struct {
	ConversationID string        `json:"conversation_id"`
	Message        string        `json:"message"`
	PatientRecord  PatientRecord `json:"patient_record"`
}

// ChatMessage is the externally visible projection of a transcript message.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatHistoryResponse wraps the projected transcript for the history endpoint.
type ChatHistoryResponse struct {
	Messages []ChatMessage `json:"messages"`
}
