package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"dental-chatbot-backend/logger"
	"dental-chatbot-backend/metrics"
	"dental-chatbot-backend/models"
	"dental-chatbot-backend/utils"
)

// EmbeddingPopulator fills an empty vector store from source documents.
// A store that already holds any row is left untouched.
type EmbeddingPopulator struct {
	embedder   Embedder
	store      VectorStore
	chunkSize  int
	jobTimeout time.Duration
	log        logger.Logger

	// runMu serializes runs so the emptiness check and the inserts are atomic
	// with respect to other runs in this process.
	runMu sync.Mutex

	mu     sync.Mutex
	status models.PopulationStatus
}

type EmbeddingPopulatorOption func(*EmbeddingPopulator)

// WithJobTimeout bounds a background run started with Start.
func WithJobTimeout(d time.Duration) EmbeddingPopulatorOption {
	return func(p *EmbeddingPopulator) {
		if d > 0 {
			p.jobTimeout = d
		}
	}
}

func NewEmbeddingPopulator(embedder Embedder, store VectorStore, chunkSize int, log logger.Logger, opts ...EmbeddingPopulatorOption) *EmbeddingPopulator {
	if chunkSize <= 0 {
		chunkSize = utils.DefaultChunkSize
	}
	p := &EmbeddingPopulator{
		embedder:   embedder,
		store:      store,
		chunkSize:  chunkSize,
		jobTimeout: 30 * time.Minute,
		log:        log,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start runs Populate in the background, detached from ctx's cancellation.
// It returns ErrPopulationRunning if a background run is still going.
func (p *EmbeddingPopulator) Start(ctx context.Context, docs []models.SourceDocument) error {
	p.mu.Lock()
	if p.status.Running {
		p.mu.Unlock()
		return ErrPopulationRunning
	}
	started := time.Now()
	p.status = models.PopulationStatus{Running: true, StartedAt: &started}
	p.mu.Unlock()

	jobCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.jobTimeout)
	go func() {
		defer cancel()
		result, err := p.Populate(jobCtx, docs)

		finished := time.Now()
		p.mu.Lock()
		defer p.mu.Unlock()
		p.status.Running = false
		p.status.FinishedAt = &finished
		p.status.Result = result
		if err != nil {
			p.status.Error = err.Error()
			p.log.Error("background embedding population failed", map[string]interface{}{"error": err})
		}
	}()
	return nil
}

// Status reports the latest background run.
func (p *EmbeddingPopulator) Status() models.PopulationStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// Populate embeds and inserts every chunk of every document, one at a time.
// The first failure stops the run; rows already written stay.
func (p *EmbeddingPopulator) Populate(ctx context.Context, docs []models.SourceDocument) (*models.PopulateResult, error) {
	p.runMu.Lock()
	defer p.runMu.Unlock()

	existing, err := p.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count embeddings: %w", err)
	}
	if existing > 0 {
		p.log.Info("embeddings already populated, skipping", map[string]interface{}{"existing": existing})
		return &models.PopulateResult{
			Skipped:   true,
			Documents: len(docs),
			Message:   "Embeddings already exist",
		}, nil
	}

	result := &models.PopulateResult{Documents: len(docs)}
	for i, doc := range docs {
		chunks, err := utils.ChunkText(doc.Text, p.chunkSize)
		if err != nil {
			return result, fmt.Errorf("failed to chunk document %d: %w", i, err)
		}

		for j, chunk := range chunks {
			embedding, err := p.embedder.Embed(ctx, chunk)
			if err != nil {
				return result, fmt.Errorf("failed to embed document %d chunk %d: %w", i, j, err)
			}

			metadata := make(map[string]interface{}, len(doc.Metadata)+2)
			for k, v := range doc.Metadata {
				metadata[k] = v
			}
			metadata["chunk_index"] = j
			metadata["total_chunks"] = len(chunks)

			if err := p.store.Insert(ctx, &models.EmbeddingRecord{
				Content:   chunk,
				Metadata:  metadata,
				Embedding: embedding,
			}); err != nil {
				return result, fmt.Errorf("failed to store document %d chunk %d: %w", i, j, err)
			}
			result.Inserted++
			metrics.EmbeddingsInserted.Inc()
		}
	}

	result.Message = fmt.Sprintf("Inserted %d embeddings from %d documents", result.Inserted, result.Documents)
	p.log.Info("embeddings populated", map[string]interface{}{
		"documents": result.Documents,
		"inserted":  result.Inserted,
	})
	return result, nil
}
