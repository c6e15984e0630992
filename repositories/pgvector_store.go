package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/pgvector/pgvector-go"

	"dental-chatbot-backend/models"
)

var identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// PGVectorStore keeps embeddings in a Postgres table with a pgvector column.
// Similarity is cosine similarity, 1 - (embedding <=> query).
type PGVectorStore struct {
	db         *sql.DB
	table      string
	dimensions int
}

func NewPGVectorStore(db *sql.DB, table string, dimensions int) (*PGVectorStore, error) {
	if !identifierPattern.MatchString(table) {
		return nil, fmt.Errorf("invalid embedding table name %q", table)
	}
	if dimensions <= 0 {
		return nil, fmt.Errorf("embedding dimensions must be positive")
	}
	return &PGVectorStore{db: db, table: table, dimensions: dimensions}, nil
}

func (s *PGVectorStore) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id BIGSERIAL PRIMARY KEY,
			content TEXT NOT NULL,
			metadata JSONB NOT NULL DEFAULT '{}'::jsonb,
			embedding vector(%d) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, s.table, s.dimensions),
	}
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure embedding schema: %w", err)
		}
	}
	return nil
}

func (s *PGVectorStore) Insert(ctx context.Context, record *models.EmbeddingRecord) error {
	metadata, err := json.Marshal(record.Metadata)
	if err != nil {
		return fmt.Errorf("marshal embedding metadata: %w", err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (content, metadata, embedding) VALUES ($1, $2, $3) RETURNING id`, s.table)
	var id int64
	if err := s.db.QueryRowContext(ctx, query, record.Content, metadata, pgvector.NewVector(record.Embedding)).Scan(&id); err != nil {
		return fmt.Errorf("insert embedding: %w", err)
	}
	record.ID = fmt.Sprintf("%d", id)
	return nil
}

func (s *PGVectorStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, s.table)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count embeddings: %w", err)
	}
	return n, nil
}

func (s *PGVectorStore) Search(ctx context.Context, embedding []float32, threshold float64, limit int) ([]models.VectorMatch, error) {
	query := fmt.Sprintf(`SELECT content, metadata, 1 - (embedding <=> $1) AS similarity
		FROM %s
		WHERE 1 - (embedding <=> $1) > $2
		ORDER BY embedding <=> $1
		LIMIT $3`, s.table)

	rows, err := s.db.QueryContext(ctx, query, pgvector.NewVector(embedding), threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("search embeddings: %w", err)
	}
	defer rows.Close()

	var matches []models.VectorMatch
	for rows.Next() {
		var (
			m        models.VectorMatch
			metadata []byte
		)
		if err := rows.Scan(&m.Content, &metadata, &m.Similarity); err != nil {
			return nil, fmt.Errorf("scan embedding match: %w", err)
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &m.Metadata); err != nil {
				return nil, fmt.Errorf("decode embedding metadata: %w", err)
			}
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate embedding matches: %w", err)
	}
	return matches, nil
}
