package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"triage-agent/internal/db"
	"triage-agent/internal/errx"
	"triage-agent/internal/llm"
	"triage-agent/internal/metrics"
	"triage-agent/pkg"
	logx "triage-agent/pkg/logger"
)

const (
	// DefaultMaxRounds bounds the completion/tool loop of one turn. The
	// model normally answers within a round or two; hitting the bound means
	// it is stuck requesting tools and the turn is aborted.
	DefaultMaxRounds = 8

	// DefaultContextWindow is how many of the most recent transcript
	// messages are sent to the model each round. Older messages stay stored
	// but are dropped from the prompt.
	DefaultContextWindow = 20

	// hypothesisEvery is the question cadence at which the model is told to
	// offer a preliminary hypothesis and specialist referral.
	hypothesisEvery = 3
)

// Config tunes the controller's loop bounds.
type Config struct {
	MaxRounds     int
	ContextWindow int
}

// Controller drives one dialogue turn: repeated rounds of prompt assembly,
// completion, and conditional tool invocation, until the model produces a
// plain answer. It is the only writer of conversation state.
type Controller struct {
	llm     llm.Client
	invoker *Invoker
	store   db.Store

	maxRounds int
	window    int

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewController constructs a Controller. Zero config fields fall back to the
// defaults above.
func NewController(client llm.Client, invoker *Invoker, store db.Store, cfg Config) *Controller {
	if cfg.MaxRounds <= 0 {
		cfg.MaxRounds = DefaultMaxRounds
	}
	if cfg.ContextWindow <= 0 {
		cfg.ContextWindow = DefaultContextWindow
	}
	return &Controller{
		llm:       client,
		invoker:   invoker,
		store:     store,
		maxRounds: cfg.MaxRounds,
		window:    cfg.ContextWindow,
		locks:     make(map[string]*sync.Mutex),
	}
}

// Chat runs one full turn for the conversation: append the user message,
// loop rounds until a plain assistant answer, persist the updated state, and
// return the final message. State is written once, after the loop, so a
// failed turn leaves the prior committed state untouched and the same user
// message can be retried safely.
func (c *Controller) Chat(ctx context.Context, conversationID, userMessage string, record pkg.PatientRecord) (pkg.Message, error) {
	start := time.Now()

	// At most one in-flight turn per conversation; load-modify-save on the
	// store is not transactional, so concurrent turns would lose messages.
	unlock := c.lockConversation(conversationID)
	defer unlock()

	loaded, err := c.store.Load(ctx, conversationID)
	if err != nil {
		metrics.TurnsTotal.WithLabelValues("store_error").Inc()
		return pkg.Message{}, errx.WrapStore(err)
	}

	state := loaded.Clone()
	state.Messages = append(state.Messages, pkg.Message{Role: pkg.RoleUser, Content: userMessage})

	var final pkg.Message
	rounds := 0
	for {
		if rounds >= c.maxRounds {
			logx.Warn().Str("conversation_id", conversationID).Int("rounds", rounds).
				Msg("turn exceeded round limit")
			metrics.TurnsTotal.WithLabelValues("round_limit").Inc()
			return pkg.Message{}, errx.WrapRoundLimit()
		}
		rounds++

		completion, err := c.llm.Complete(ctx, c.buildPrompt(state, record), c.invoker.Specs())
		if err != nil {
			logx.Error().Err(err).Str("conversation_id", conversationID).Msg("completion failed")
			metrics.TurnsTotal.WithLabelValues("completion_error").Inc()
			return pkg.Message{}, errx.WrapCompletion(err)
		}

		assistant := pkg.Message{
			Role:      pkg.RoleAssistant,
			Content:   completion.Content,
			ToolCalls: completion.ToolCalls,
		}
		state.Messages = append(state.Messages, assistant)

		if len(completion.ToolCalls) == 0 {
			// Plain answer: the only branch that counts as a question.
			state.QuestionCount++
			final = assistant
			break
		}

		for _, call := range completion.ToolCalls {
			state.Messages = append(state.Messages, c.invoker.Invoke(ctx, call))
		}
	}

	if err := c.store.Save(ctx, conversationID, state); err != nil {
		metrics.TurnsTotal.WithLabelValues("store_error").Inc()
		return pkg.Message{}, errx.WrapStore(err)
	}

	logx.Info().Str("conversation_id", conversationID).
		Int("rounds", rounds).
		Int("question_count", state.QuestionCount).
		Msg("turn completed")
	metrics.TurnsTotal.WithLabelValues("ok").Inc()
	metrics.RoundsPerTurn.Observe(float64(rounds))
	metrics.TurnDuration.Observe(time.Since(start).Seconds())

	return final, nil
}

// History returns the externally visible transcript projection: user and
// assistant messages with non-empty content, in append order. Tool traffic
// is filtered out.
func (c *Controller) History(ctx context.Context, conversationID string) ([]pkg.ChatMessage, error) {
	state, err := c.store.Load(ctx, conversationID)
	if err != nil {
		return nil, errx.WrapStore(err)
	}
	out := make([]pkg.ChatMessage, 0, len(state.Messages))
	for _, m := range state.Messages {
		if m.Content == "" {
			continue
		}
		switch m.Role {
		case pkg.RoleUser, pkg.RoleAssistant:
			out = append(out, pkg.ChatMessage{Role: string(m.Role), Content: m.Content})
		}
	}
	return out, nil
}

// buildPrompt assembles the context window for one round: the system prompt
// with the stringified patient record, the hypothesis directive when the
// stored question count is a positive multiple of three, then the most
// recent transcript messages. The cadence check runs fresh every round, so
// it can recur within a long turn.
func (c *Controller) buildPrompt(state *pkg.ConversationState, record pkg.PatientRecord) []pkg.Message {
	window := state.Messages
	if len(window) > c.window {
		window = window[len(window)-c.window:]
	}

	prompt := make([]pkg.Message, 0, len(window)+2)
	prompt = append(prompt, pkg.Message{
		Role:    pkg.RoleSystem,
		Content: fmt.Sprintf(SystemPromptTemplate, record.String()),
	})
	if state.QuestionCount > 0 && state.QuestionCount%hypothesisEvery == 0 {
		prompt = append(prompt, pkg.Message{Role: pkg.RoleSystem, Content: HypothesisDirective})
	}
	return append(prompt, window...)
}

// lockConversation serializes turns per conversation id and returns the
// unlock function.
func (c *Controller) lockConversation(id string) func() {
	c.mu.Lock()
	l, ok := c.locks[id]
	if !ok {
		l = &sync.Mutex{}
		c.locks[id] = l
	}
	c.mu.Unlock()
	l.Lock()
	return l.Unlock
}
