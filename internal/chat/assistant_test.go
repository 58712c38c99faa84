package chat

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/visionchain/screening-api/internal/config"
)

func TestAssistantUnconfigured(t *testing.T) {
	a := NewAssistant(config.GroqConfig{Model: "llama-3.3-70b-versatile"}, zap.NewNop())
	if a.Available() {
		t.Fatal("assistant without a key must report unavailable")
	}
	if _, err := a.Reply(context.Background(), []Message{{Role: "user", Content: "hi"}}); !errors.Is(err, ErrUnconfigured) {
		t.Fatalf("expected ErrUnconfigured, got %v", err)
	}
}

func TestAssistantConfigured(t *testing.T) {
	a := NewAssistant(config.GroqConfig{
		APIKey:  "test-key",
		BaseURL: "https://api.groq.com/openai/v1",
		Model:   "llama-3.3-70b-versatile",
	}, zap.NewNop())
	if !a.Available() {
		t.Fatal("assistant with a key must report available")
	}
}
