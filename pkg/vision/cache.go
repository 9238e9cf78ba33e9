// FILE: pkg/vision/cache.go
// PURPOSE: Two-tier analysis cache: a bounded in-process LRU memo in front of
//          a durable key-value store, both keyed by image fingerprint.

package vision

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"log"

	lru "github.com/hashicorp/golang-lru/v2"
)

// MemoCapacity bounds the in-process memo.
const MemoCapacity = 100

// Store is the durable cache boundary. Implementations live in
// internal/repository (postgres and redis).
type Store interface {
	Get(ctx context.Context, fingerprint string) (*Result, bool, error)
	Put(ctx context.Context, fingerprint string, result *Result) error
}

// Fingerprint returns the hex content hash used as the cache key.
func Fingerprint(raw []byte) string {
	sum := md5.Sum(raw)
	return hex.EncodeToString(sum[:])
}

// Cache fronts the durable store with an LRU memo. Safe for concurrent use;
// it is shared across sessions since the key is content-derived.
type Cache struct {
	memo   *lru.Cache[string, *Result]
	store  Store
	logger *log.Logger
}

// NewCache builds a cache with the given memo capacity. store may be nil
// (console mode without durable storage); the memo still applies.
func NewCache(capacity int, store Store, logger *log.Logger) (*Cache, error) {
	memo, err := lru.New[string, *Result](capacity)
	if err != nil {
		return nil, fmt.Errorf("create analysis memo: %w", err)
	}
	return &Cache{
		memo:   memo,
		store:  store,
		logger: logger,
	}, nil
}

// Get checks the memo, then the durable store. A durable hit refills the memo.
// Store errors are logged and treated as a miss; a degraded cache must never
// block an analysis.
func (c *Cache) Get(ctx context.Context, fingerprint string) (*Result, bool) {
	if result, ok := c.memo.Get(fingerprint); ok {
		return result, true
	}

	if c.store == nil {
		return nil, false
	}

	result, found, err := c.store.Get(ctx, fingerprint)
	if err != nil {
		c.logger.Printf("[WARN] Analysis cache lookup failed for %s: %v", fingerprint, err)
		return nil, false
	}
	if !found {
		return nil, false
	}

	c.memo.Add(fingerprint, result)
	return result, true
}

// Put persists to the durable store first, then the memo. A store failure is
// logged; the memo is still populated so the process keeps the benefit.
func (c *Cache) Put(ctx context.Context, fingerprint string, result *Result) {
	if c.store != nil {
		if err := c.store.Put(ctx, fingerprint, result); err != nil {
			c.logger.Printf("[WARN] Analysis cache write failed for %s: %v", fingerprint, err)
		}
	}
	c.memo.Add(fingerprint, result)
}
