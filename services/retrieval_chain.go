package services

import (
	"context"
	"fmt"

	"dental-chatbot-backend/logger"
	"dental-chatbot-backend/metrics"
	"dental-chatbot-backend/models"
)

// RetrievalChain tries each strategy in order and keeps the first non-empty result.
type RetrievalChain struct {
	strategies []Retriever
	log        logger.Logger
}

func NewRetrievalChain(log logger.Logger, strategies ...Retriever) *RetrievalChain {
	kept := make([]Retriever, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			kept = append(kept, s)
		}
	}
	return &RetrievalChain{strategies: kept, log: log}
}

// NewFallbackRetriever puts vector search in front of keyword search.
// A nil vector retriever leaves keyword search alone.
func NewFallbackRetriever(vector *VectorRetriever, keyword *KeywordRetriever, log logger.Logger) *RetrievalChain {
	if vector == nil {
		return NewRetrievalChain(log, keyword)
	}
	return NewRetrievalChain(log, vector, keyword)
}

func (c *RetrievalChain) Retrieve(ctx context.Context, query string, intent models.Intent) (string, error) {
	for i, s := range c.strategies {
		name := strategyName(s, i)

		text, err := s.Retrieve(ctx, query, intent)
		if err != nil {
			c.log.Warn("retrieval strategy failed", map[string]interface{}{
				"strategy": name,
				"intent":   intent.String(),
				"error":    err,
			})
			metrics.RetrievalFallbacks.WithLabelValues(name, "error").Inc()
			continue
		}
		if text != "" {
			return text, nil
		}
	}
	return "", nil
}

func strategyName(r Retriever, i int) string {
	if n, ok := r.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fmt.Sprintf("strategy_%d", i)
}
