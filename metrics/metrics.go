package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	IntentsClassified = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_intents_total",
			Help: "Messages classified per intent",
		},
		[]string{"intent"},
	)

	RetrievalFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_retrieval_fallbacks_total",
			Help: "Retrieval strategies that produced no context",
		},
		[]string{"strategy", "reason"},
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chatbot_generation_duration_seconds",
			Help:    "Duration of language model calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind", "status"},
	)

	Appointments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_appointments_total",
			Help: "Appointment bookings by outcome",
		},
		[]string{"status"},
	)

	EmbeddingsInserted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chatbot_embeddings_inserted_total",
			Help: "Embedding rows written by the population job",
		},
	)
)
