package pkg_test

import (
	"strings"
	"testing"

	"triage-agent/pkg"
)

func TestConversationStateClone(t *testing.T) {
	orig := &pkg.ConversationState{
		Messages:      []pkg.Message{{Role: pkg.RoleUser, Content: "oi"}},
		QuestionCount: 2,
	}

	clone := orig.Clone()
	clone.Messages = append(clone.Messages, pkg.Message{Role: pkg.RoleAssistant, Content: "olá"})
	clone.Messages[0].Content = "mutado"
	clone.QuestionCount = 5

	if len(orig.Messages) != 1 || orig.Messages[0].Content != "oi" || orig.QuestionCount != 2 {
		t.Errorf("clone mutation leaked into original: %+v", orig)
	}
}

func TestCloneNil(t *testing.T) {
	var s *pkg.ConversationState
	clone := s.Clone()
	if clone == nil || len(clone.Messages) != 0 || clone.QuestionCount != 0 {
		t.Errorf("nil clone should be an empty state, got %+v", clone)
	}
}

func TestPatientRecordString(t *testing.T) {
	if got := pkg.PatientRecord(nil).String(); got != "{}" {
		t.Errorf("empty record = %q, want {}", got)
	}
	rec := pkg.PatientRecord{"weight": 72.5}
	if got := rec.String(); !strings.Contains(got, "72.5") {
		t.Errorf("record string missing field: %q", got)
	}
}
