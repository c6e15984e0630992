package services

import (
	"context"
	"sort"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"dental-chatbot-backend/logger"
	"dental-chatbot-backend/metrics"
	"dental-chatbot-backend/models"
)

const (
	DefaultSimilarityThreshold = 0.7
	DefaultMatchLimit          = 5
)

// VectorStore persists embedding rows and answers similarity queries.
type VectorStore interface {
	Insert(ctx context.Context, record *models.EmbeddingRecord) error
	Count(ctx context.Context) (int64, error)
	Search(ctx context.Context, embedding []float32, threshold float64, limit int) ([]models.VectorMatch, error)
}

// VectorRetriever embeds the query and returns the closest stored passages.
// Failures and empty results yield "" so the next strategy in the chain runs.
type VectorRetriever struct {
	embedder  Embedder
	store     VectorStore
	threshold float64
	limit     int
	log       logger.Logger
}

func NewVectorRetriever(embedder Embedder, store VectorStore, threshold float64, limit int, log logger.Logger) *VectorRetriever {
	// zero is a valid threshold; only negative means unset
	if threshold < 0 {
		threshold = DefaultSimilarityThreshold
	}
	if limit <= 0 {
		limit = DefaultMatchLimit
	}
	return &VectorRetriever{
		embedder:  embedder,
		store:     store,
		threshold: threshold,
		limit:     limit,
		log:       log,
	}
}

func (r *VectorRetriever) Name() string { return "vector" }

func (r *VectorRetriever) Retrieve(ctx context.Context, query string, intent models.Intent) (string, error) {
	matches, err := r.Search(ctx, query, intent, r.threshold, r.limit)
	if err != nil {
		r.log.Warn("vector search failed, falling back", map[string]interface{}{
			"intent": intent.String(),
			"error":  err,
		})
		metrics.RetrievalFallbacks.WithLabelValues(r.Name(), "error").Inc()
		return "", nil
	}
	if len(matches) == 0 {
		r.log.Info("vector search returned no matches, falling back", map[string]interface{}{
			"intent": intent.String(),
		})
		metrics.RetrievalFallbacks.WithLabelValues(r.Name(), "no_matches").Inc()
		return "", nil
	}

	parts := make([]string, len(matches))
	for i, m := range matches {
		parts[i] = m.Content
	}
	return strings.Join(parts, tableSeparator), nil
}

// Search returns matches for the hint-augmented query, most similar first.
func (r *VectorRetriever) Search(ctx context.Context, query string, intent models.Intent, threshold float64, limit int) ([]models.VectorMatch, error) {
	ctx, span := otel.Tracer("dental-chatbot-backend/services").Start(ctx, "vector.search")
	defer span.End()
	span.SetAttributes(
		attribute.String("intent", intent.String()),
		attribute.Float64("threshold", threshold),
		attribute.Int("limit", limit),
	)

	embedding, err := r.embedder.Embed(ctx, AugmentQuery(query, intent))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "embedding failed")
		return nil, err
	}

	matches, err := r.store.Search(ctx, embedding, threshold, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "search failed")
		return nil, err
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	span.SetAttributes(attribute.Int("matches", len(matches)))
	return matches, nil
}

// AugmentQuery appends the intent's hint words to the query.
func AugmentQuery(query string, intent models.Intent) string {
	hints := ProfileFor(intent).SearchHints
	if hints == "" {
		return query
	}
	return strings.TrimSpace(query + " " + hints)
}
