package services

import (
	"context"
	"strings"

	"dental-chatbot-backend/models"
)

// Retriever returns context text for a query. An empty string means nothing was found.
type Retriever interface {
	Retrieve(ctx context.Context, query string, intent models.Intent) (string, error)
}

// KeywordRetriever scans the fact tables for records containing any query token.
type KeywordRetriever struct {
	facts *FactStore
}

func NewKeywordRetriever(facts *FactStore) *KeywordRetriever {
	return &KeywordRetriever{facts: facts}
}

func (r *KeywordRetriever) Name() string { return "keyword" }

// Retrieve joins the matching records, or returns the intent's full table
// when nothing matches.
func (r *KeywordRetriever) Retrieve(_ context.Context, query string, intent models.Intent) (string, error) {
	tokens := strings.Fields(strings.ToLower(query))

	var matched []string
	switch intent {
	case models.IntentDoctor:
		for _, d := range r.facts.Doctors() {
			if anyTokenIn(tokens, d.FirstName, d.LastName, d.Specialization) {
				matched = append(matched, d.Text())
			}
		}
	case models.IntentHospital:
		for _, h := range r.facts.Hospitals() {
			if anyTokenIn(tokens, h.Name, h.BranchLocation) {
				matched = append(matched, h.Text())
			}
		}
	case models.IntentInsurance:
		for _, ins := range r.facts.Insurance() {
			if anyTokenIn(tokens, ins.ProviderName) {
				matched = append(matched, ins.Text())
			}
		}
	default:
		for _, f := range r.facts.FAQs() {
			if anyTokenIn(tokens, f.Question, f.Answer) {
				matched = append(matched, f.Text())
			}
		}
	}

	if len(matched) > 0 {
		return strings.Join(matched, tableSeparator), nil
	}
	return ProfileFor(intent).DefaultContext(r.facts), nil
}

func anyTokenIn(tokens []string, fields ...string) bool {
	for _, field := range fields {
		lower := strings.ToLower(field)
		for _, tok := range tokens {
			if strings.Contains(lower, tok) {
				return true
			}
		}
	}
	return false
}
