package services

import (
	"context"
	"strings"
	"time"

	"dental-chatbot-backend/logger"
	"dental-chatbot-backend/models"
)

// ChatbotService runs one user turn: classify, retrieve, generate.
type ChatbotService struct {
	intents     IntentDetector
	retriever   Retriever
	responder   *ResponseService
	turnTimeout time.Duration
	log         logger.Logger
}

type ChatbotServiceOption func(*ChatbotService)

// WithTurnTimeout bounds a whole turn. Upstream calls still running at the
// deadline fail and the turn answers with the fallback reply.
func WithTurnTimeout(d time.Duration) ChatbotServiceOption {
	return func(s *ChatbotService) { s.turnTimeout = d }
}

func NewChatbotService(intents IntentDetector, retriever Retriever, responder *ResponseService, log logger.Logger, opts ...ChatbotServiceOption) *ChatbotService {
	s := &ChatbotService{
		intents:   intents,
		retriever: retriever,
		responder: responder,
		log:       log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ChatbotService) ProcessMessage(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	if s.turnTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.turnTimeout)
		defer cancel()
	}

	intent := s.intents.Classify(ctx, message)
	knowledge := s.retrieve(ctx, message, intent)
	reply := s.responder.Respond(ctx, message, intent, knowledge)

	s.log.Debug("message processed", map[string]interface{}{
		"session_id":     req.SessionID,
		"intent":         intent.String(),
		"context_length": len(knowledge),
	})
	return models.NewTextResponse(reply, intent, req.SessionID), nil
}

// Classify exposes intent detection on its own.
func (s *ChatbotService) Classify(ctx context.Context, message string) models.Intent {
	return s.intents.Classify(ctx, message)
}

func (s *ChatbotService) retrieve(ctx context.Context, message string, intent models.Intent) string {
	if ProfileFor(intent).SkipRetrieval {
		return ""
	}
	text, err := s.retriever.Retrieve(ctx, message, intent)
	if err != nil {
		s.log.Warn("context retrieval failed, answering without context", map[string]interface{}{
			"intent": intent.String(),
			"error":  err,
		})
		return ""
	}
	return text
}
