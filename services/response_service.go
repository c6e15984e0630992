package services

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"dental-chatbot-backend/logger"
	"dental-chatbot-backend/metrics"
	"dental-chatbot-backend/models"
)

const (
	assistantPreamble = "You are SmileSmartAssistant, a helpful dental chatbot. "
	assistantRules    = " Be concise and friendly in your responses. Base your answers directly on the provided context. If the specific information is not in the context, say so politely."
	contextHeader     = "\n\nHere is relevant information to help answer the query:\n"

	// FallbackResponse is returned whenever the language model cannot be reached.
	FallbackResponse = "I'm sorry, I'm having trouble connecting to my knowledge base right now. Please try again later."

	DefaultTemperature = 0.7
	DefaultMaxTokens   = 500
)

// ResponseService turns a classified message plus retrieved context into a reply.
type ResponseService struct {
	generator   Generator
	temperature float64
	maxTokens   int
	log         logger.Logger
}

func NewResponseService(generator Generator, temperature float64, maxTokens int, log logger.Logger) *ResponseService {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &ResponseService{
		generator:   generator,
		temperature: temperature,
		maxTokens:   maxTokens,
		log:         log,
	}
}

// BuildSystemPrompt assembles the intent-scoped instructions and appends the
// context block when context is non-empty.
func BuildSystemPrompt(intent models.Intent, context string) string {
	var b strings.Builder
	b.WriteString(assistantPreamble)
	b.WriteString(ProfileFor(intent).Instruction)
	b.WriteString(assistantRules)
	if context != "" {
		b.WriteString(contextHeader)
		b.WriteString(context)
	}
	return b.String()
}

// Respond never fails: any generation error yields FallbackResponse.
func (s *ResponseService) Respond(ctx context.Context, message string, intent models.Intent, context string) string {
	ctx, span := otel.Tracer("dental-chatbot-backend/services").Start(ctx, "response.generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("intent", intent.String()),
		attribute.Int("context_length", len(context)),
	)

	start := time.Now()
	text, err := s.generator.Complete(ctx, CompletionRequest{
		SystemPrompt: BuildSystemPrompt(intent, context),
		UserMessage:  message,
		Temperature:  s.temperature,
		MaxTokens:    s.maxTokens,
	})
	if err == nil && strings.TrimSpace(text) == "" {
		err = ErrEmptyCompletion
	}
	if err != nil {
		metrics.GenerationDuration.WithLabelValues("chat", "error").Observe(time.Since(start).Seconds())
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		s.log.Warn("response generation failed, using fallback", map[string]interface{}{
			"intent": intent.String(),
			"error":  err,
		})
		return FallbackResponse
	}

	metrics.GenerationDuration.WithLabelValues("chat", "ok").Observe(time.Since(start).Seconds())
	return strings.TrimSpace(text)
}
