package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"dental-chatbot-backend/models"
	"dental-chatbot-backend/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubGenerator struct {
	text string
	err  error
}

func (s *stubGenerator) Complete(context.Context, services.CompletionRequest) (string, error) {
	return s.text, s.err
}

type stubEmbedder struct {
	err error
}

func (s *stubEmbedder) Embed(context.Context, string) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []float32{0.1, 0.2}, nil
}

// blockingEmbedder holds every call until release is closed.
type blockingEmbedder struct {
	release chan struct{}
}

func (b *blockingEmbedder) Embed(ctx context.Context, _ string) ([]float32, error) {
	select {
	case <-b.release:
		return []float32{1}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type stubVectorStore struct {
	mu      sync.Mutex
	matches []models.VectorMatch
	count   int64
}

func (s *stubVectorStore) Insert(context.Context, *models.EmbeddingRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count++
	return nil
}

func (s *stubVectorStore) Count(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count, nil
}

func (s *stubVectorStore) Search(context.Context, []float32, float64, int) ([]models.VectorMatch, error) {
	return s.matches, nil
}

type stubAppointmentRepo struct {
	err error
}

func (s *stubAppointmentRepo) Insert(context.Context, *models.Appointment) error { return s.err }

func testFacts() *services.FactStore {
	return services.NewFactStore(
		[]models.FAQ{{Question: "Is parking available?", Answer: "Yes, behind the clinic."}},
		[]models.Doctor{
			{FirstName: "Jane", LastName: "Lee", Specialization: "Orthodontics", DaysAvailable: "Monday,Tuesday"},
			{FirstName: "Omar", LastName: "Haddad", Specialization: "Endodontics", DaysAvailable: "Wednesday"},
		},
		[]models.Hospital{{Name: "SmileSmart Downtown", BranchLocation: "Downtown"}},
		[]models.Insurance{
			{ProviderName: "Delta Dental", CoverageType: "PPO", Status: "Yes"},
			{ProviderName: "Cigna", CoverageType: "HMO", Status: "No"},
		},
	)
}

func performJSON(t *testing.T, handler gin.HandlerFunc, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}

	router := gin.New()
	router.Handle(method, "/", handler)

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
