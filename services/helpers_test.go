package services

import (
	"context"
	"errors"
	"sync"

	"dental-chatbot-backend/models"
)

var errUpstream = errors.New("upstream unavailable")

type fakeGenerator struct {
	mu       sync.Mutex
	text     string
	err      error
	requests []CompletionRequest
}

func (f *fakeGenerator) Complete(_ context.Context, req CompletionRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func (f *fakeGenerator) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// blockingGenerator waits for its context to end.
type blockingGenerator struct{}

func (blockingGenerator) Complete(ctx context.Context, _ CompletionRequest) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

type fakeEmbedder struct {
	mu     sync.Mutex
	vector []float32
	err    error
	inputs []string
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inputs = append(f.inputs, text)
	if f.err != nil {
		return nil, f.err
	}
	return f.vector, nil
}

type fakeVectorStore struct {
	mu        sync.Mutex
	count     int64
	countErr  error
	insertErr error
	matches   []models.VectorMatch
	searchErr error
	inserted  []*models.EmbeddingRecord
	searches  int
}

func (f *fakeVectorStore) Insert(_ context.Context, record *models.EmbeddingRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, record)
	f.count++
	return nil
}

func (f *fakeVectorStore) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count, f.countErr
}

func (f *fakeVectorStore) Search(_ context.Context, _ []float32, _ float64, _ int) ([]models.VectorMatch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches++
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	out := make([]models.VectorMatch, len(f.matches))
	copy(out, f.matches)
	return out, nil
}

type fakeAppointmentRepo struct {
	err   error
	saved []*models.Appointment
}

func (f *fakeAppointmentRepo) Insert(_ context.Context, appt *models.Appointment) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, appt)
	return nil
}

type fakeNotifier struct {
	err      error
	messages []string
}

func (f *fakeNotifier) SendConfirmation(_ context.Context, _ *models.Appointment, message string) error {
	f.messages = append(f.messages, message)
	return f.err
}

type staticRetriever struct {
	text  string
	err   error
	calls int
}

func (s *staticRetriever) Retrieve(context.Context, string, models.Intent) (string, error) {
	s.calls++
	return s.text, s.err
}

func newTestFacts() *FactStore {
	return NewFactStore(
		[]models.FAQ{
			{Question: "Do you offer teeth whitening?", Answer: "Yes, in-office whitening takes about an hour."},
			{Question: "Is parking available?", Answer: "Free parking is available behind the clinic."},
		},
		[]models.Doctor{
			{FirstName: "Jane", LastName: "Lee", Specialization: "Orthodontics", DaysAvailable: "Monday, Tuesday,Friday"},
			{FirstName: "Omar", LastName: "Haddad", Specialization: "Endodontics", DaysAvailable: "Wednesday"},
			{FirstName: "Priya", LastName: "Nair", Specialization: "orthodontics", DaysAvailable: "Thursday"},
		},
		[]models.Hospital{
			{Name: "SmileSmart Downtown", BranchLocation: "Downtown", Address: "1 Main St", OpenHours: "8am-6pm", UrgentCare: "Yes"},
			{Name: "SmileSmart Riverside", BranchLocation: "Riverside", Address: "9 River Rd", OpenHours: "9am-5pm", UrgentCare: "No"},
		},
		[]models.Insurance{
			{ProviderName: "Delta Dental", CoverageType: "PPO", Status: "Yes"},
			{ProviderName: "Cigna", CoverageType: "HMO", Status: "No"},
		},
	)
}
