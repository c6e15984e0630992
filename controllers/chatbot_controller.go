package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dental-chatbot-backend/models"
	"dental-chatbot-backend/services"
)

type ChatbotController struct {
	chatbotService *services.ChatbotService
}

func NewChatbotController(chatbotService *services.ChatbotService) *ChatbotController {
	return &ChatbotController{
		chatbotService: chatbotService,
	}
}

// HandleChat processes chat messages
func (cc *ChatbotController) HandleChat(c *gin.Context) {
	var req models.ChatRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}
	if req.Channel == "" {
		req.Channel = models.ChannelWeb
	}

	response, err := cc.chatbotService.ProcessMessage(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrEmptyMessage) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{
			"error":   "Failed to process message",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// DetectIntent classifies a message without generating a reply
func (cc *ChatbotController) DetectIntent(c *gin.Context) {
	var req models.IntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.IntentResponse{
		Intent: cc.chatbotService.Classify(c.Request.Context(), req.Message),
	})
}

// GetSupportedIntents returns list of supported intents
func (cc *ChatbotController) GetSupportedIntents(c *gin.Context) {
	intents := []map[string]interface{}{
		{
			"intent":      models.IntentGreeting,
			"description": "Say hello and learn what the assistant can do",
			"examples":    []string{"Hello", "Good morning"},
		},
		{
			"intent":      models.IntentAppointment,
			"description": "Ask about booking a dental appointment",
			"examples":    []string{"I'd like to book a visit", "Can I schedule a cleaning?"},
		},
		{
			"intent":      models.IntentInsurance,
			"description": "Ask which insurance providers and plans are accepted",
			"examples":    []string{"Is Delta Dental covered?", "What insurance plans do you take?"},
		},
		{
			"intent":      models.IntentDoctor,
			"description": "Ask about dentists, specialists and their availability",
			"examples":    []string{"Who is your orthodontist?", "When is Dr. Lee available?"},
		},
		{
			"intent":      models.IntentHospital,
			"description": "Ask about clinic locations, hours and urgent care",
			"examples":    []string{"Where is your downtown clinic?", "Which branch has urgent care?"},
		},
		{
			"intent":      models.IntentGeneral,
			"description": "General dental questions",
			"examples":    []string{"How often should I floss?"},
		},
	}

	c.JSON(http.StatusOK, gin.H{
		"intents": intents,
	})
}
