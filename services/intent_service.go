package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"dental-chatbot-backend/logger"
	"dental-chatbot-backend/metrics"
	"dental-chatbot-backend/models"
	"dental-chatbot-backend/utils"
)

// IntentDetector labels a message. Implementations never fail; they degrade
// to models.IntentGeneral.
type IntentDetector interface {
	Classify(ctx context.Context, message string) models.Intent
}

// RuleIntentDetector adapts the regex classifier.
type RuleIntentDetector struct {
	classifier *utils.IntentClassifier
}

func NewRuleIntentDetector() *RuleIntentDetector {
	return &RuleIntentDetector{classifier: utils.NewIntentClassifier()}
}

func (d *RuleIntentDetector) Classify(_ context.Context, message string) models.Intent {
	intent := d.classifier.ClassifyIntent(message)
	metrics.IntentsClassified.WithLabelValues(intent.String()).Inc()
	return intent
}

type remoteIntentRequest struct {
	Message string `json:"message"`
}

type remoteIntentResponse struct {
	Intent string `json:"intent"`
	Error  string `json:"error,omitempty"`
}

// RemoteIntentDetector delegates classification to an HTTP service that
// accepts {"message"} and answers {"intent"}.
type RemoteIntentDetector struct {
	url    string
	client *http.Client
	log    logger.Logger
}

func NewRemoteIntentDetector(url string, timeout time.Duration, log logger.Logger) *RemoteIntentDetector {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RemoteIntentDetector{
		url:    url,
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

func (d *RemoteIntentDetector) Classify(ctx context.Context, message string) models.Intent {
	intent, err := d.classify(ctx, message)
	if err != nil {
		d.log.Warn("remote intent detection failed, defaulting to general", map[string]interface{}{
			"error": err,
		})
		intent = models.IntentGeneral
	}
	metrics.IntentsClassified.WithLabelValues(intent.String()).Inc()
	return intent
}

func (d *RemoteIntentDetector) classify(ctx context.Context, message string) (models.Intent, error) {
	body, err := json.Marshal(remoteIntentRequest{Message: message})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("intent service returned status %d", resp.StatusCode)
	}

	var out remoteIntentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("intent service error: %s", out.Error)
	}

	intent, ok := models.ParseIntent(out.Intent)
	if !ok {
		return "", fmt.Errorf("unknown intent label %q", out.Intent)
	}
	return intent, nil
}
