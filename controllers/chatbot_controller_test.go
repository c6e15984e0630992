package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"dental-chatbot-backend/logger"
	"dental-chatbot-backend/models"
	"dental-chatbot-backend/services"
)

func newTestChatbotController(t *testing.T, gen *stubGenerator) *ChatbotController {
	log := logger.NewTestLogger(t)
	bot := services.NewChatbotService(
		services.NewRuleIntentDetector(),
		services.NewKeywordRetriever(testFacts()),
		services.NewResponseService(gen, services.DefaultTemperature, services.DefaultMaxTokens, log),
		log,
	)
	return NewChatbotController(bot)
}

func TestHandleChat(t *testing.T) {
	cc := newTestChatbotController(t, &stubGenerator{text: "Dr. Jane Lee is our orthodontist."})

	w := performJSON(t, cc.HandleChat, http.MethodPost, "/", models.ChatRequest{
		Message:   "Which orthodontist do you have?",
		SessionID: "abc",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.ChatResponse
	decode(t, w, &resp)
	assert.Equal(t, "Dr. Jane Lee is our orthodontist.", resp.Response)
	assert.Equal(t, models.IntentDoctor, resp.Intent)
	assert.Equal(t, "abc", resp.SessionID)
	assert.False(t, resp.Timestamp.IsZero())
}

func TestHandleChat_BadRequests(t *testing.T) {
	cc := newTestChatbotController(t, &stubGenerator{text: "unused"})

	tests := []struct {
		name string
		body interface{}
	}{
		{"malformed json", `{"message":`},
		{"missing message", map[string]string{"session_id": "abc"}},
		{"blank message", map[string]string{"message": "   "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performJSON(t, cc.HandleChat, http.MethodPost, "/", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestDetectIntent(t *testing.T) {
	cc := newTestChatbotController(t, &stubGenerator{})

	w := performJSON(t, cc.DetectIntent, http.MethodPost, "/", models.IntentRequest{Message: "Do you take my insurance?"})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.IntentResponse
	decode(t, w, &resp)
	assert.Equal(t, models.IntentInsurance, resp.Intent)
}

func TestGetSupportedIntents(t *testing.T) {
	cc := newTestChatbotController(t, &stubGenerator{})

	w := performJSON(t, cc.GetSupportedIntents, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Intents []struct {
			Intent models.Intent `json:"intent"`
		} `json:"intents"`
	}
	decode(t, w, &resp)
	assert.Len(t, resp.Intents, len(models.Intents))
}
