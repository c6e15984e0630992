package services

import "errors"

var (
	ErrEmptyMessage        = errors.New("message is empty")
	ErrInvalidDate         = errors.New("invalid appointment date")
	ErrPersistAppointment  = errors.New("failed to save appointment")
	ErrVectorStoreDisabled = errors.New("vector store is not configured")
	ErrEmbeddingFailed     = errors.New("embedding request failed")
	ErrEmptyCompletion     = errors.New("language model returned no text")
	ErrPopulationRunning   = errors.New("embedding population is already running")
)
