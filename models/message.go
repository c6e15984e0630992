package models

import "time"

// MessageChannel represents the communication channel
type MessageChannel string

const (
	ChannelWeb       MessageChannel = "web"
	ChannelWebSocket MessageChannel = "websocket"
)

type ChatRequest struct {
	Message   string                 `json:"message" binding:"required"`
	SessionID string                 `json:"session_id,omitempty"`
	Channel   MessageChannel         `json:"channel,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type ChatResponse struct {
	Response  string    `json:"response"`
	Intent    Intent    `json:"intent"`
	SessionID string    `json:"session_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type IntentRequest struct {
	Message string `json:"message" binding:"required"`
}

type IntentResponse struct {
	Intent Intent `json:"intent"`
}

// NewTextResponse creates a plain chat response stamped with the current time.
func NewTextResponse(text string, intent Intent, sessionID string) *ChatResponse {
	return &ChatResponse{
		Response:  text,
		Intent:    intent,
		SessionID: sessionID,
		Timestamp: time.Now(),
	}
}
