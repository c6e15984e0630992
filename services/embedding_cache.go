package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"dental-chatbot-backend/logger"
)

const embeddingCachePrefix = "embedding:"

// CachedEmbedder memoizes embeddings in Redis. Cache failures fall through
// to the wrapped Embedder.
type CachedEmbedder struct {
	next   Embedder
	client *redis.Client
	model  string
	ttl    time.Duration
	log    logger.Logger
}

func NewCachedEmbedder(next Embedder, client *redis.Client, model string, ttl time.Duration, log logger.Logger) *CachedEmbedder {
	return &CachedEmbedder{next: next, client: client, model: model, ttl: ttl, log: log}
}

func (c *CachedEmbedder) key(text string) string {
	sum := sha256.Sum256([]byte(c.model + "\x00" + text))
	return embeddingCachePrefix + hex.EncodeToString(sum[:])
}

func (c *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	key := c.key(text)

	cached, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var vec []float32
		if jsonErr := json.Unmarshal(cached, &vec); jsonErr == nil && len(vec) > 0 {
			return vec, nil
		}
		c.log.Warn("discarding unreadable cached embedding", map[string]interface{}{"key": key})
	case !errors.Is(err, redis.Nil):
		c.log.Warn("embedding cache read failed", map[string]interface{}{"error": err})
	}

	vec, err := c.next.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(vec); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.log.Warn("embedding cache write failed", map[string]interface{}{"error": err})
		}
	}
	return vec, nil
}
