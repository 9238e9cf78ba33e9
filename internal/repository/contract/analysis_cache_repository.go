package contract

import (
	"context"

	"ai-assistant-be/pkg/vision"
)

// IAnalysisCacheRepository is the durable analysis-cache boundary. It matches
// vision.Store so either backend (postgres, redis) can sit behind the
// two-tier cache.
type IAnalysisCacheRepository interface {
	Get(ctx context.Context, fingerprint string) (*vision.Result, bool, error)
	Put(ctx context.Context, fingerprint string, result *vision.Result) error
}
