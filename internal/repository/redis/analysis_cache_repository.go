package redis

import (
	"context"
	"encoding/json"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"ai-assistant-be/internal/repository/contract"
	"ai-assistant-be/pkg/vision"
)

const keyPrefix = "analysis_cache:"

type analysisCacheRepository struct {
	client *goredis.Client
}

// NewAnalysisCacheRepository creates the redis-backed analysis cache store.
// Entries carry no TTL: cached analyses are immutable and content-addressed.
func NewAnalysisCacheRepository(client *goredis.Client) contract.IAnalysisCacheRepository {
	return &analysisCacheRepository{client: client}
}

func (r *analysisCacheRepository) Get(ctx context.Context, fingerprint string) (*vision.Result, bool, error) {
	payload, err := r.client.Get(ctx, keyPrefix+fingerprint).Bytes()
	if err == goredis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", fingerprint, err)
	}

	var result vision.Result
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, false, fmt.Errorf("decode cached analysis %s: %w", fingerprint, err)
	}

	return &result, true, nil
}

func (r *analysisCacheRepository) Put(ctx context.Context, fingerprint string, result *vision.Result) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode analysis %s: %w", fingerprint, err)
	}

	if err := r.client.Set(ctx, keyPrefix+fingerprint, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", fingerprint, err)
	}

	return nil
}
