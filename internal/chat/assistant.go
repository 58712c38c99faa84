// Package chat proxies the operator-facing assistant to an
// OpenAI-compatible chat backend (Groq in the demo deployment).
package chat

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/visionchain/screening-api/internal/config"
	"github.com/visionchain/screening-api/internal/logging"
)

// ErrUnconfigured reports that no API key was provided.
var ErrUnconfigured = errors.New("chat backend not configured")

// Message is one turn of the conversation.
type Message struct {
	Role    string `json:"role" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// Assistant completes operator conversations against the chat backend.
type Assistant struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewAssistant builds the assistant, or a disabled one when no key is
// configured.
func NewAssistant(cfg config.GroqConfig, logger *zap.Logger) *Assistant {
	a := &Assistant{model: cfg.Model, logger: logger.Named("chat")}
	if cfg.APIKey == "" {
		return a
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	a.client = openai.NewClientWithConfig(clientConfig)
	return a
}

// Available reports whether the backend is configured.
func (a *Assistant) Available() bool {
	return a != nil && a.client != nil
}

// Reply completes the conversation and returns the assistant's answer.
func (a *Assistant) Reply(ctx context.Context, messages []Message) (string, error) {
	if !a.Available() {
		return "", ErrUnconfigured
	}

	chatMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		chatMessages = append(chatMessages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Messages:    chatMessages,
		Temperature: 0.7,
		MaxTokens:   500,
	})
	if err != nil {
		wrapped := logging.NewOperationError("chat.completion", "", err)
		a.logger.Error("chat completion failed", zap.Error(wrapped))
		return "", wrapped
	}
	if len(resp.Choices) == 0 {
		return "", logging.NewOperationError("chat.completion", "", errors.New("empty completion"))
	}
	return resp.Choices[0].Message.Content, nil
}
