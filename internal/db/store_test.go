package db_test

import (
	"context"
	"testing"

	"triage-agent/internal/db"
	"triage-agent/pkg"
)

func TestMemoryStoreLoadAbsent(t *testing.T) {
	store := db.NewMemoryStore()

	state, err := store.Load(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(state.Messages) != 0 || state.QuestionCount != 0 {
		t.Errorf("expected empty state, got %+v", state)
	}
}

func TestMemoryStoreReadYourWrites(t *testing.T) {
	store := db.NewMemoryStore()
	ctx := context.Background()

	saved := &pkg.ConversationState{
		Messages: []pkg.Message{
			{Role: pkg.RoleUser, Content: "oi"},
			{Role: pkg.RoleAssistant, Content: "olá"},
		},
		QuestionCount: 1,
	}
	if err := store.Save(ctx, "conv-1", saved); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load(ctx, "conv-1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.QuestionCount != 1 || len(loaded.Messages) != 2 {
		t.Fatalf("loaded state differs: %+v", loaded)
	}
	if loaded.Messages[1].Content != "olá" {
		t.Errorf("loaded content = %q", loaded.Messages[1].Content)
	}
}

func TestMemoryStoreIsolation(t *testing.T) {
	store := db.NewMemoryStore()
	ctx := context.Background()

	saved := &pkg.ConversationState{Messages: []pkg.Message{{Role: pkg.RoleUser, Content: "oi"}}}
	if err := store.Save(ctx, "conv-1", saved); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Mutating the caller's copy or a loaded copy must not touch the store.
	saved.Messages[0].Content = "mutado"
	loaded, _ := store.Load(ctx, "conv-1")
	loaded.Messages = append(loaded.Messages, pkg.Message{Role: pkg.RoleAssistant, Content: "extra"})

	again, _ := store.Load(ctx, "conv-1")
	if len(again.Messages) != 1 || again.Messages[0].Content != "oi" {
		t.Errorf("stored state was mutated: %+v", again)
	}
}

func TestMemoryStoreOverwrite(t *testing.T) {
	store := db.NewMemoryStore()
	ctx := context.Background()

	_ = store.Save(ctx, "conv-1", &pkg.ConversationState{QuestionCount: 1})
	_ = store.Save(ctx, "conv-1", &pkg.ConversationState{QuestionCount: 2})

	loaded, err := store.Load(ctx, "conv-1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.QuestionCount != 2 {
		t.Errorf("question count = %d, want 2 (last write wins)", loaded.QuestionCount)
	}
}
