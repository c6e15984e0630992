package models

import "time"

// SourceDocument is a clinic record prepared for chunking and embedding.
type SourceDocument struct {
	Text     string                 `json:"text"`
	Metadata map[string]interface{} `json:"metadata"`
}

// EmbeddingRecord is one stored chunk. Rows are append-only.
type EmbeddingRecord struct {
	ID        string                 `json:"id,omitempty"`
	Content   string                 `json:"content"`
	Metadata  map[string]interface{} `json:"metadata"`
	Embedding []float32              `json:"-"`
}

type VectorMatch struct {
	Content    string                 `json:"content"`
	Similarity float64                `json:"similarity"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

type EmbeddingSearchRequest struct {
	Query     string   `json:"query" binding:"required"`
	Intent    string   `json:"intent,omitempty"`
	Threshold *float64 `json:"threshold,omitempty"`
	Limit     *int     `json:"limit,omitempty"`
}

type EmbeddingSearchResponse struct {
	Matches []VectorMatch `json:"matches"`
}

type PopulateResult struct {
	Skipped   bool   `json:"skipped"`
	Documents int    `json:"documents"`
	Inserted  int    `json:"inserted"`
	Message   string `json:"message"`
}

// PopulationStatus describes the latest background population run.
type PopulationStatus struct {
	Running    bool            `json:"running"`
	StartedAt  *time.Time      `json:"started_at,omitempty"`
	FinishedAt *time.Time      `json:"finished_at,omitempty"`
	Result     *PopulateResult `json:"result,omitempty"`
	Error      string          `json:"error,omitempty"`
}
