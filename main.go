package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"dental-chatbot-backend/config"
	"dental-chatbot-backend/controllers"
	"dental-chatbot-backend/database"
	"dental-chatbot-backend/logger"
	"dental-chatbot-backend/middleware"
	"dental-chatbot-backend/repositories"
	"dental-chatbot-backend/routes"
)

var rootCmd = &cobra.Command{
	Use:   "dental-chatbot",
	Short: "SmileSmart dental clinic assistant backend",
	RunE:  runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and WebSocket server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.SilenceUsage = true
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, logger.Logger, error) {
	if err := config.Load(); err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg := config.Get()
	return cfg, logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format), nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := database.Connect(cfg); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := database.Disconnect(cfg); err != nil {
			log.Warn("database disconnect failed", map[string]interface{}{"error": err})
		}
	}()

	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	appointments := repositories.NewAppointmentRepository(database.GetMongoDB(), database.AppointmentsCollection)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS(cfg.Security.AllowedOrigins))
	if err := router.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
		return fmt.Errorf("invalid trusted proxies: %w", err)
	}

	health := controllers.NewHealthController(
		func(ctx context.Context) error { return database.HealthCheck(ctx, cfg) },
		appointments,
		cfg.Retrieval.VectorBackend,
		cfg.AI.Provider,
	)
	router.GET("/health", health.Check)

	routes.SetupRoutes(router, &routes.Dependencies{
		Chatbot:             app.chatbotService(),
		Appointments:        app.appointmentService(ctx, appointments),
		Facts:               app.facts,
		VectorRetriever:     app.vectorRetriever,
		Populator:           app.populator,
		SimilarityThreshold: cfg.Retrieval.SimilarityThreshold,
		MatchLimit:          cfg.Retrieval.MatchLimit,
		AdminToken:          cfg.Security.AdminToken,
		AllowedOrigins:      cfg.Security.AllowedOrigins,
		Logger:              log,
	})

	logAvailableEndpoints(router, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.WriteTimeout(),
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server starting", map[string]interface{}{
			"port":         cfg.Port,
			"health_check": fmt.Sprintf("http://localhost:%s/health", cfg.Port),
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

	log.Info("shutting down server", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", map[string]interface{}{"error": err})
	}

	log.Info("server exited", nil)
	return nil
}

// logAvailableEndpoints logs all registered routes
func logAvailableEndpoints(router *gin.Engine, log logger.Logger) {
	for _, route := range router.Routes() {
		log.Debug("route registered", map[string]interface{}{
			"method": route.Method,
			"path":   route.Path,
		})
	}
}
