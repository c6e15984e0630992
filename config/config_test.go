package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("AI_PROVIDER", "")
	t.Setenv("VECTOR_BACKEND", "")
	t.Setenv("AI_MODEL", "")
	t.Setenv("AI_EMBEDDING_MODEL", "")
	t.Setenv("DATABASE_URL", "")

	c, err := New()
	require.NoError(t, err)

	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "openai", c.AI.Provider)
	assert.Equal(t, 0.7, c.AI.Temperature)
	assert.Equal(t, 500, c.AI.MaxTokens)
	assert.Equal(t, 350, c.AI.ConfirmTokens)
	assert.Equal(t, 30*time.Second, c.AI.Timeout)
	assert.Equal(t, 45*time.Second, c.RequestTimeout)
	assert.Equal(t, 30*time.Minute, c.PopulateTimeout)
	assert.Greater(t, c.WriteTimeout(), c.RequestTimeout)
	assert.Equal(t, "none", c.Retrieval.VectorBackend)
	assert.Equal(t, 0.7, c.Retrieval.SimilarityThreshold)
	assert.Equal(t, 5, c.Retrieval.MatchLimit)
	assert.Equal(t, "gpt-4o-mini", c.ChatModel())
	assert.Equal(t, "text-embedding-3-small", c.EmbeddingModelName())
	assert.Equal(t, "mongodb://localhost:27017/dental_chatbot", c.BuildDatabaseURI())
}

func TestNew_Overrides(t *testing.T) {
	t.Setenv("AI_PROVIDER", "gemini")
	t.Setenv("MATCH_LIMIT", "3")
	t.Setenv("SIMILARITY_THRESHOLD", "0.55")
	t.Setenv("AI_TIMEOUT", "5s")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	c, err := New()
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.5-flash", c.ChatModel())
	assert.Equal(t, "text-embedding-004", c.EmbeddingModelName())
	assert.Equal(t, 3, c.Retrieval.MatchLimit)
	assert.Equal(t, 0.55, c.Retrieval.SimilarityThreshold)
	assert.Equal(t, 5*time.Second, c.AI.Timeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.Security.AllowedOrigins)
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown provider", map[string]string{"AI_PROVIDER": "llama"}},
		{"unknown backend", map[string]string{"VECTOR_BACKEND": "faiss"}},
		{"pgvector without url", map[string]string{"VECTOR_BACKEND": "pgvector", "POSTGRES_URL": ""}},
		{"threshold out of range", map[string]string{"SIMILARITY_THRESHOLD": "1.5"}},
		{"zero match limit", map[string]string{"MATCH_LIMIT": "0"}},
		{"negative request timeout", map[string]string{"REQUEST_TIMEOUT": "-1s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := New()
			assert.Error(t, err)
		})
	}
}

func TestLocation(t *testing.T) {
	c := &Config{Data: DataConfig{Timezone: "America/New_York"}}
	assert.Equal(t, "America/New_York", c.Location().String())

	c.Data.Timezone = "Not/AZone"
	assert.Equal(t, time.Local, c.Location())
}

func TestBuildDatabaseURI_WithCredentials(t *testing.T) {
	c := &Config{Database: DatabaseConfig{
		Host: "db", Port: "27017", Name: "clinic", Username: "app", Password: "pw",
	}}
	assert.Equal(t, "mongodb://app:pw@db:27017/clinic", c.BuildDatabaseURI())

	c.Database.URI = "mongodb+srv://cluster.example/clinic"
	assert.Equal(t, "mongodb+srv://cluster.example/clinic", c.BuildDatabaseURI())
}
