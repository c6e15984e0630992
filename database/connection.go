package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo/readpref"

	"dental-chatbot-backend/config"
)

// Connect establishes the appointments database connection based on config
func Connect(cfg *config.Config) error {
	switch cfg.Database.Type {
	case "mongodb":
		return ConnectMongoDB(cfg)
	default:
		return fmt.Errorf("unsupported database type: %s", cfg.Database.Type)
	}
}

// Disconnect closes the appointments database connection
func Disconnect(cfg *config.Config) error {
	switch cfg.Database.Type {
	case "mongodb":
		return DisconnectMongoDB()
	default:
		return nil
	}
}

// HealthCheck pings the appointments database
func HealthCheck(ctx context.Context, cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	switch cfg.Database.Type {
	case "mongodb":
		if mongoClient == nil {
			return fmt.Errorf("mongodb client not initialized")
		}
		return mongoClient.Ping(ctx, readpref.Primary())
	default:
		return fmt.Errorf("unsupported database type: %s", cfg.Database.Type)
	}
}
