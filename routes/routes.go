package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dental-chatbot-backend/controllers"
	"dental-chatbot-backend/logger"
	"dental-chatbot-backend/middleware"
	"dental-chatbot-backend/services"
)

// Dependencies are the services the HTTP layer needs. VectorRetriever and
// Populator are nil when no vector store is configured.
type Dependencies struct {
	Chatbot         *services.ChatbotService
	Appointments    *services.AppointmentService
	Facts           *services.FactStore
	VectorRetriever *services.VectorRetriever
	Populator       *services.EmbeddingPopulator

	SimilarityThreshold float64
	MatchLimit          int
	AdminToken          string
	AllowedOrigins      []string
	Logger              logger.Logger
}

func SetupRoutes(router *gin.Engine, deps *Dependencies) {
	chatbotController := controllers.NewChatbotController(deps.Chatbot)
	wsController := controllers.NewWebSocketController(deps.Chatbot, deps.AllowedOrigins, deps.Logger)
	appointmentController := controllers.NewAppointmentController(deps.Appointments, deps.Facts)
	clinicController := controllers.NewClinicController(deps.Facts)
	embeddingController := controllers.NewEmbeddingController(
		deps.VectorRetriever, deps.Populator, deps.Facts, deps.SimilarityThreshold, deps.MatchLimit,
	)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := router.Group("/api/v1")
	{
		public.POST("/chat", chatbotController.HandleChat)
		public.POST("/intent", chatbotController.DetectIntent)
		public.GET("/intents", chatbotController.GetSupportedIntents)

		// WebSocket for real-time chat
		public.GET("/ws", wsController.HandleWebSocket)

		public.POST("/appointments", appointmentController.ScheduleAppointment)
		public.GET("/appointments/options", appointmentController.GetOptions)

		public.GET("/dentists", clinicController.ListDentists)
		public.GET("/dentists/availability", clinicController.GetAvailability)
		public.GET("/insurance/validity", clinicController.CheckInsurance)
	}

	admin := router.Group("/api/v1/embeddings")
	admin.Use(middleware.RequireAdminToken(deps.AdminToken))
	{
		admin.POST("/search", embeddingController.Search)
		admin.POST("/populate", embeddingController.Populate)
		admin.GET("/populate", embeddingController.PopulateStatus)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Route not found",
			"path":  c.Request.URL.Path,
		})
	})
}
