package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"dental-chatbot-backend/logger"
	"dental-chatbot-backend/models"
	"dental-chatbot-backend/services"
)

type WebSocketController struct {
	chatbotService *services.ChatbotService
	upgrader       websocket.Upgrader
	log            logger.Logger
}

// NewWebSocketController accepts connections from allowedOrigins only. An
// empty list allows any origin.
func NewWebSocketController(chatbotService *services.ChatbotService, allowedOrigins []string, log logger.Logger) *WebSocketController {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}

	return &WebSocketController{
		chatbotService: chatbotService,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if len(allowed) == 0 {
					return true
				}
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
		log: log,
	}
}

type wsMessage struct {
	Message string `json:"message"`
}

func (wc *WebSocketController) HandleWebSocket(c *gin.Context) {
	conn, err := wc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		wc.log.Warn("websocket upgrade failed", map[string]interface{}{"error": err})
		return
	}
	defer conn.Close()

	sessionID := c.Query("session_id")
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	log := wc.log.WithFields(map[string]interface{}{"session_id": sessionID})

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("websocket read failed", map[string]interface{}{"error": err})
			}
			return
		}

		response, err := wc.chatbotService.ProcessMessage(c.Request.Context(), models.ChatRequest{
			Message:   msg.Message,
			SessionID: sessionID,
			Channel:   models.ChannelWebSocket,
		})
		if err != nil {
			if writeErr := conn.WriteJSON(gin.H{"error": "Failed to process message", "details": err.Error()}); writeErr != nil {
				return
			}
			continue
		}

		if err := conn.WriteJSON(response); err != nil {
			log.Warn("websocket write failed", map[string]interface{}{"error": err})
			return
		}
	}
}
