package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	chromago "github.com/amikos-tech/chroma-go/pkg/api/v2"
	"github.com/amikos-tech/chroma-go/pkg/embeddings"
	"github.com/google/uuid"

	"dental-chatbot-backend/models"
)

// ChromaStore keeps embeddings in a Chroma collection configured for cosine
// distance. Similarity is 1 - distance.
type ChromaStore struct {
	collection chromago.Collection
}

func NewChromaStore(collection chromago.Collection) *ChromaStore {
	return &ChromaStore{collection: collection}
}

// OpenChromaCollection connects to Chroma at baseURL and gets or creates name.
func OpenChromaCollection(ctx context.Context, baseURL, name string) (chromago.Client, chromago.Collection, error) {
	client, err := chromago.NewHTTPClient(chromago.WithBaseURL(baseURL))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create chroma client: %w", err)
	}

	collection, err := client.GetOrCreateCollection(
		ctx,
		name,
		chromago.WithCollectionMetadataCreate(
			chromago.NewMetadata(
				chromago.NewStringAttribute("description", "Dental clinic knowledge base"),
				chromago.NewStringAttribute("hnsw:space", "cosine"),
			),
		),
	)
	if err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to get or create chroma collection %q: %w", name, err)
	}
	return client, collection, nil
}

func (s *ChromaStore) Insert(ctx context.Context, record *models.EmbeddingRecord) error {
	attrs := make([]*chromago.MetaAttribute, 0, len(record.Metadata))
	for k, v := range record.Metadata {
		switch val := v.(type) {
		case int:
			attrs = append(attrs, chromago.NewIntAttribute(k, int64(val)))
		case int64:
			attrs = append(attrs, chromago.NewIntAttribute(k, val))
		case float64:
			attrs = append(attrs, chromago.NewFloatAttribute(k, val))
		case bool:
			attrs = append(attrs, chromago.NewBoolAttribute(k, val))
		default:
			attrs = append(attrs, chromago.NewStringAttribute(k, fmt.Sprint(val)))
		}
	}

	id := uuid.New().String()
	if err := s.collection.Add(ctx,
		chromago.WithIDs(chromago.DocumentID(id)),
		chromago.WithTexts(record.Content),
		chromago.WithEmbeddings(embeddings.NewEmbeddingFromFloat32(record.Embedding)),
		chromago.WithMetadatas(chromago.NewDocumentMetadata(attrs...)),
	); err != nil {
		return fmt.Errorf("add chroma document: %w", err)
	}
	record.ID = id
	return nil
}

func (s *ChromaStore) Count(ctx context.Context) (int64, error) {
	n, err := s.collection.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count chroma documents: %w", err)
	}
	return int64(n), nil
}

func (s *ChromaStore) Search(ctx context.Context, embedding []float32, threshold float64, limit int) ([]models.VectorMatch, error) {
	results, err := s.collection.Query(ctx,
		chromago.WithQueryEmbeddings(embeddings.NewEmbeddingFromFloat32(embedding)),
		chromago.WithNResults(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("query chroma: %w", err)
	}

	documentGroups := results.GetDocumentsGroups()
	metadataGroups := results.GetMetadatasGroups()
	distanceGroups := results.GetDistancesGroups()
	if len(documentGroups) == 0 || len(distanceGroups) == 0 {
		return nil, nil
	}

	var matches []models.VectorMatch
	for i, doc := range documentGroups[0] {
		if i >= len(distanceGroups[0]) {
			break
		}
		similarity := 1 - float64(distanceGroups[0][i])
		if similarity <= threshold || doc.ContentString() == "" {
			continue
		}

		m := models.VectorMatch{Content: doc.ContentString(), Similarity: similarity}
		if len(metadataGroups) > 0 && i < len(metadataGroups[0]) && metadataGroups[0][i] != nil {
			m.Metadata = metadataToMap(metadataGroups[0][i])
		}
		matches = append(matches, m)
	}
	return matches, nil
}

// chroma metadata has no exported accessor for all keys; JSON round-trips it.
func metadataToMap(md chromago.DocumentMetadata) map[string]interface{} {
	out := map[string]interface{}{}
	data, err := json.Marshal(md)
	if err != nil {
		return out
	}
	_ = json.Unmarshal(data, &out)
	return out
}
