package services

import (
	"context"
	"fmt"

	"dental-chatbot-backend/config"
)

// CompletionRequest is a single system+user exchange sent to a chat model.
type CompletionRequest struct {
	SystemPrompt string
	UserMessage  string
	Temperature  float64
	MaxTokens    int
}

// Generator produces chat completions.
type Generator interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Embedder turns text into a fixed-length vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// AIService is a provider that can both generate and embed.
type AIService interface {
	Generator
	Embedder
}

// NewAIService builds the provider selected by cfg.AI.Provider.
func NewAIService(ctx context.Context, cfg *config.Config) (AIService, error) {
	switch cfg.AI.Provider {
	case "openai":
		return NewOpenAIProvider(OpenAIOptions{
			APIKey:         cfg.AI.APIKey,
			BaseURL:        cfg.AI.BaseURL,
			ChatModel:      cfg.ChatModel(),
			EmbeddingModel: cfg.EmbeddingModelName(),
			Timeout:        cfg.AI.Timeout,
		}), nil
	case "gemini":
		return NewGeminiProvider(ctx, GeminiOptions{
			APIKey:         cfg.AI.APIKey,
			BaseURL:        cfg.AI.BaseURL,
			ChatModel:      cfg.ChatModel(),
			EmbeddingModel: cfg.EmbeddingModelName(),
			Timeout:        cfg.AI.Timeout,
		})
	default:
		return nil, fmt.Errorf("unsupported AI provider %q", cfg.AI.Provider)
	}
}
