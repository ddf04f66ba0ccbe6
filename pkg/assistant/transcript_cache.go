package assistant

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"Food-Tracker/internal/utils/cache"
)

const (
	DefaultTranscriptTTL = 24 * time.Hour
	transcriptKeyPrefix  = "voice:transcript:"
)

// TranscriptCache remembers transcripts by audio content hash so a re-sent
// recording is not transcribed twice.
type TranscriptCache interface {
	Get(ctx context.Context, audioHash string) (string, bool, error)
	Set(ctx context.Context, audioHash string, transcript string) error
}

type redisTranscriptCache struct {
	client *cache.RedisClient
	ttl    time.Duration
}

func NewTranscriptCache(client *cache.RedisClient, ttl time.Duration) TranscriptCache {
	if ttl <= 0 {
		ttl = DefaultTranscriptTTL
	}
	return &redisTranscriptCache{client: client, ttl: ttl}
}

func (c *redisTranscriptCache) Get(ctx context.Context, audioHash string) (string, bool, error) {
	v, err := c.client.Get(ctx, transcriptKeyPrefix+audioHash)
	if errors.Is(err, cache.ErrMiss) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (c *redisTranscriptCache) Set(ctx context.Context, audioHash string, transcript string) error {
	return c.client.Set(ctx, transcriptKeyPrefix+audioHash, transcript, c.ttl)
}

func AudioHash(audio []byte) string {
	sum := sha256.Sum256(audio)
	return hex.EncodeToString(sum[:])
}
