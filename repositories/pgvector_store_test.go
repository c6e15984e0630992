package repositories

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dental-chatbot-backend/models"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestNewPGVectorStore_Validation(t *testing.T) {
	db, _ := setupMockDB(t)

	_, err := NewPGVectorStore(db, "embeddings; DROP TABLE x", 1536)
	assert.Error(t, err)

	_, err = NewPGVectorStore(db, "document_embeddings", 0)
	assert.Error(t, err)

	store, err := NewPGVectorStore(db, "document_embeddings", 1536)
	require.NoError(t, err)
	assert.Equal(t, "document_embeddings", store.table)
}

func TestPGVectorStore_EnsureSchema(t *testing.T) {
	db, mock := setupMockDB(t)
	store, err := NewPGVectorStore(db, "document_embeddings", 3)
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("CREATE EXTENSION IF NOT EXISTS vector")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS document_embeddings")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGVectorStore_Insert(t *testing.T) {
	db, mock := setupMockDB(t)
	store, err := NewPGVectorStore(db, "document_embeddings", 3)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO document_embeddings (content, metadata, embedding) VALUES ($1, $2, $3) RETURNING id")).
		WithArgs("Question: Parking?", []byte(`{"chunk_index":0,"source_type":"faq"}`), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	record := &models.EmbeddingRecord{
		Content:   "Question: Parking?",
		Metadata:  map[string]interface{}{"source_type": "faq", "chunk_index": 0},
		Embedding: []float32{0.1, 0.2, 0.3},
	}
	require.NoError(t, store.Insert(context.Background(), record))
	assert.Equal(t, "42", record.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGVectorStore_Count(t *testing.T) {
	db, mock := setupMockDB(t)
	store, err := NewPGVectorStore(db, "document_embeddings", 3)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM document_embeddings")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM document_embeddings")).
		WillReturnError(errors.New("relation does not exist"))
	_, err = store.Count(context.Background())
	assert.Error(t, err)
}

func TestPGVectorStore_Search(t *testing.T) {
	db, mock := setupMockDB(t)
	store, err := NewPGVectorStore(db, "document_embeddings", 3)
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"content", "metadata", "similarity"}).
		AddRow("Dr. Jane Lee, Specialization: Orthodontics", []byte(`{"source_type":"doctor"}`), 0.91).
		AddRow("Dr. Omar Haddad, Specialization: Endodontics", []byte(`{}`), 0.74)
	mock.ExpectQuery(`SELECT content, metadata, 1 - \(embedding <=> \$1\) AS similarity\s+FROM document_embeddings`).
		WithArgs(sqlmock.AnyArg(), 0.7, 5).
		WillReturnRows(rows)

	matches, err := store.Search(context.Background(), []float32{0.1, 0.2, 0.3}, 0.7, 5)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "Dr. Jane Lee, Specialization: Orthodontics", matches[0].Content)
	assert.Equal(t, "doctor", matches[0].Metadata["source_type"])
	assert.InDelta(t, 0.91, matches[0].Similarity, 1e-9)
	assert.InDelta(t, 0.74, matches[1].Similarity, 1e-9)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGVectorStore_SearchError(t *testing.T) {
	db, mock := setupMockDB(t)
	store, err := NewPGVectorStore(db, "document_embeddings", 3)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT content").WillReturnError(errors.New("operator does not exist"))

	_, err = store.Search(context.Background(), []float32{1, 0, 0}, 0.7, 5)
	assert.Error(t, err)
}
