package core

import (
	"context"
	"encoding/json"
	"fmt"

	"triage-agent/internal/llm"
	"triage-agent/internal/metrics"
	"triage-agent/pkg"
	logx "triage-agent/pkg/logger"
)

// Tool is one externally executable capability the model may invoke. Invoke
// returns a serialized result payload for the transcript.
type Tool interface {
	Name() string
	Spec() llm.ToolSpec
	Invoke(ctx context.Context, args json.RawMessage) (string, error)
}

// Invoker executes tool-call requests emitted by the model. A failed or
// unknown invocation never aborts the turn; it yields an error payload the
// model can react to on the next round.
type Invoker struct {
	tools map[string]Tool
	specs []llm.ToolSpec
}

// NewInvoker builds an Invoker over a fixed tool set. The declared set is
// stable for the lifetime of every conversation.
func NewInvoker(tools ...Tool) *Invoker {
	inv := &Invoker{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		inv.tools[t.Name()] = t
		inv.specs = append(inv.specs, t.Spec())
	}
	return inv
}

// Specs returns the declared tool set for the completion client.
func (inv *Invoker) Specs() []llm.ToolSpec {
	return inv.specs
}

// Invoke executes one tool call and returns the correlated tool-result
// message to append to the transcript.
func (inv *Invoker) Invoke(ctx context.Context, call pkg.ToolCall) pkg.Message {
	msg := pkg.Message{Role: pkg.RoleTool, ToolCallID: call.ID}

	t, ok := inv.tools[call.Name]
	if !ok {
		// Hallucinated or malformed tool call; return a compact structured
		// payload the model can use to proceed.
		logx.Warn().Str("tool_name", call.Name).Msg("unknown tool call; returning fallback result")
		metrics.ToolInvocations.WithLabelValues(call.Name, "unknown").Inc()
		msg.Content = fmt.Sprintf("{\"error\":\"unknown_tool\",\"name\":%q}", call.Name)
		return msg
	}

	out, err := t.Invoke(ctx, call.Arguments)
	if err != nil {
		logx.Error().Err(err).Str("tool_name", call.Name).Msg("tool invocation failed")
		metrics.ToolInvocations.WithLabelValues(call.Name, "error").Inc()
		msg.Content = fmt.Sprintf("{\"error\":\"tool_failed\",\"name\":%q,\"detail\":%q}", call.Name, err.Error())
		return msg
	}

	metrics.ToolInvocations.WithLabelValues(call.Name, "ok").Inc()
	msg.Content = out
	return msg
}
