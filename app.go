package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"dental-chatbot-backend/config"
	"dental-chatbot-backend/database"
	"dental-chatbot-backend/logger"
	"dental-chatbot-backend/repositories"
	"dental-chatbot-backend/services"
)

// application holds the wired services and the resources to release on exit.
type application struct {
	cfg *config.Config
	log logger.Logger

	facts           *services.FactStore
	ai              services.AIService
	embedder        services.Embedder
	vectorStore     services.VectorStore
	vectorRetriever *services.VectorRetriever
	populator       *services.EmbeddingPopulator

	closers []func() error
}

func (a *application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn("failed to release resource", map[string]interface{}{"error": err})
		}
	}
}

// newApplication builds everything shared by the server and the CLI jobs.
func newApplication(ctx context.Context, cfg *config.Config, log logger.Logger) (*application, error) {
	app := &application{cfg: cfg, log: log}

	facts, err := services.LoadFactStore(cfg.Data.Dir, log)
	if err != nil {
		return nil, fmt.Errorf("failed to load clinic data: %w", err)
	}
	app.facts = facts

	ai, err := services.NewAIService(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.ai = ai
	app.embedder = ai

	if cfg.Redis.Addr != "" {
		client, err := database.NewRedis(ctx, cfg.Redis)
		if err != nil {
			log.Warn("redis unavailable, embedding cache disabled", map[string]interface{}{"error": err})
		} else {
			app.closers = append(app.closers, client.Close)
			app.embedder = newEmbeddingCache(ai, client, cfg, log)
		}
	}

	store, err := openVectorStore(ctx, app)
	if err != nil {
		app.Close()
		return nil, err
	}
	if store != nil {
		app.vectorStore = store
		app.vectorRetriever = services.NewVectorRetriever(
			app.embedder, store, cfg.Retrieval.SimilarityThreshold, cfg.Retrieval.MatchLimit, log,
		)
		// population bypasses the embedding cache
		app.populator = services.NewEmbeddingPopulator(ai, store, cfg.Retrieval.ChunkSize, log,
			services.WithJobTimeout(cfg.PopulateTimeout))
	}

	return app, nil
}

func newEmbeddingCache(ai services.AIService, client *redis.Client, cfg *config.Config, log logger.Logger) services.Embedder {
	return services.NewCachedEmbedder(ai, client, cfg.EmbeddingModelName(), cfg.Redis.CacheTTL, log)
}

func openVectorStore(ctx context.Context, app *application) (services.VectorStore, error) {
	cfg := app.cfg
	switch cfg.Retrieval.VectorBackend {
	case "pgvector":
		pg, err := database.NewPostgres(cfg.Postgres)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, pg.Close)
		if err := pg.Ping(ctx); err != nil {
			return nil, fmt.Errorf("failed to ping postgres: %w", err)
		}

		store, err := repositories.NewPGVectorStore(pg.DB, cfg.Postgres.EmbeddingTable, cfg.Postgres.Dimensions)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return store, nil

	case "chroma":
		client, collection, err := repositories.OpenChromaCollection(ctx, cfg.Retrieval.ChromaURL, cfg.Retrieval.ChromaCollection)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, client.Close)
		return repositories.NewChromaStore(collection), nil

	default:
		return nil, nil
	}
}

func (a *application) chatbotService() *services.ChatbotService {
	var detector services.IntentDetector = services.NewRuleIntentDetector()
	if a.cfg.AI.IntentServiceURL != "" {
		detector = services.NewRemoteIntentDetector(a.cfg.AI.IntentServiceURL, a.cfg.AI.Timeout, a.log)
	}

	retriever := services.NewFallbackRetriever(a.vectorRetriever, services.NewKeywordRetriever(a.facts), a.log)
	responder := services.NewResponseService(a.ai, a.cfg.AI.Temperature, a.cfg.AI.MaxTokens, a.log)
	return services.NewChatbotService(detector, retriever, responder, a.log,
		services.WithTurnTimeout(a.cfg.RequestTimeout))
}

func (a *application) appointmentService(ctx context.Context, repo services.AppointmentRepository) *services.AppointmentService {
	opts := []services.AppointmentServiceOption{
		services.WithLocation(a.cfg.Location()),
		services.WithConfirmationTokens(a.cfg.AI.ConfirmTokens),
		services.WithScheduleTimeout(a.cfg.RequestTimeout),
	}

	if a.cfg.Email.Provider == "ses" {
		notifier, err := services.NewSESNotifier(ctx, a.cfg.Email.Region, a.cfg.Email.FromEmail, a.cfg.Email.FromName)
		if err != nil {
			a.log.Warn("email notifier unavailable", map[string]interface{}{"error": err})
		} else {
			opts = append(opts, services.WithNotifier(notifier))
		}
	}

	return services.NewAppointmentService(repo, a.ai, a.facts, a.log, opts...)
}
