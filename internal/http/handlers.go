package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"triage-agent/internal/core"
	"triage-agent/internal/errx"
	"triage-agent/pkg"
	logx "triage-agent/pkg/logger"
)

// Server bundles together the dependencies required by HTTP handlers. It
// implements http.Handler so it can be passed to http.ListenAndServe.
type Server struct {
	Controller *core.Controller
	metrics    http.Handler
}

// NewServer constructs a Server around the dialogue controller.
func NewServer(controller *core.Controller) *Server {
	return &Server{
		Controller: controller,
		metrics:    promhttp.Handler(),
	}
}

// ServeHTTP dispatches incoming requests based on the URL path. Minimal
// routing logic is implemented here to keep dependencies light.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := uuid.NewString()
	w.Header().Set("X-Request-Id", requestID)
	path := r.URL.Path

	switch {
	// Run one dialogue turn: POST /api/chat
	case path == "/api/chat" && r.Method == http.MethodPost:
		s.handleChat(w, r)
	// Fetch projected history: GET /api/chat/{conversation_id}/history
	case strings.HasPrefix(path, "/api/chat/") && strings.HasSuffix(path, "/history") && r.Method == http.MethodGet:
		parts := strings.Split(path, "/")
		if len(parts) != 5 || parts[3] == "" {
			http.NotFound(w, r)
			return
		}
		s.handleHistory(w, r, parts[3])
	case path == "/healthz" && r.Method == http.MethodGet:
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	case path == "/metrics" && r.Method == http.MethodGet:
		s.metrics.ServeHTTP(w, r)
		return
	default:
		http.NotFound(w, r)
		return
	}

	logx.Debug().Str("request_id", requestID).
		Str("method", r.Method).
		Str("path", path).
		Dur("elapsed", time.Since(start)).
		Msg("request handled")
}

// handleChat runs one dialogue turn and returns the final assistant message.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req pkg.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ConversationID == "" {
		writeError(w, http.StatusBadRequest, "conversation_id is required")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message must not be empty")
		return
	}
	if req.PatientRecord == nil {
		writeError(w, http.StatusBadRequest, "patient_record is required")
		return
	}

	reply, err := s.Controller.Chat(ctx, req.ConversationID, req.Message, req.PatientRecord)
	if err != nil {
		logx.Error().Err(err).Str("conversation_id", req.ConversationID).Msg("turn failed")
		writeError(w, errx.Status(err), errx.SafeMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, pkg.ChatMessage{
		Role:    string(pkg.RoleAssistant),
		Content: reply.Content,
	})
}

// handleHistory returns the projected transcript for a conversation. An
// unknown conversation yields an empty list, not an error.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request, conversationID string) {
	ctx := r.Context()

	messages, err := s.Controller.History(ctx, conversationID)
	if err != nil {
		logx.Error().Err(err).Str("conversation_id", conversationID).Msg("history fetch failed")
		writeError(w, errx.Status(err), errx.SafeMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, pkg.ChatHistoryResponse{Messages: messages})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
