// Package cache holds the Redis fast lane: the latest report per user and
// the XP leaderboard.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nexosr/career-engine/internal/config"
	"github.com/nexosr/career-engine/internal/model"
)

// ReportCache stores the report of each user's most recent completed
// assessment.
type ReportCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewReportCache creates a ReportCache whose entries expire after ttl.
func NewReportCache(rdb *redis.Client, ttl time.Duration) *ReportCache {
	return &ReportCache{rdb: rdb, ttl: ttl}
}

// setLatestAttempts bounds the optimistic retries of SetLatest when the key
// changes between WATCH and EXEC.
const setLatestAttempts = 5

// GetLatest returns the cached report, or nil on a miss.
func (c *ReportCache) GetLatest(ctx context.Context, userID string) (*model.Report, error) {
	key := config.CacheKey.LatestReportKey(userID)
	snap, err := readSnapshot(ctx, c.rdb, key)
	if err != nil {
		return nil, fmt.Errorf("get latest report: %w", err)
	}
	if snap == nil {
		return nil, nil
	}
	return &snap.Report, nil
}

// SetLatest stores snap unless the cached snapshot completed later. The
// read and the write run in one WATCH transaction, so two completions
// racing for the same user always leave the newer report cached.
func (c *ReportCache) SetLatest(ctx context.Context, userID string, snap model.ReportSnapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	key := config.CacheKey.LatestReportKey(userID)

	txf := func(tx *redis.Tx) error {
		cur, err := readSnapshot(ctx, tx, key)
		if err != nil {
			return err
		}
		if cur != nil && cur.CompletedAt.After(snap.CompletedAt) {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, raw, c.ttl)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < setLatestAttempts; attempt++ {
		err = c.rdb.Watch(ctx, txf, key)
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("set latest report: %w", err)
	}
	return nil
}

// snapshotReader is the part of *redis.Client and *redis.Tx readSnapshot uses.
type snapshotReader interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// readSnapshot loads the snapshot at key. A corrupt or unstamped entry is
// a miss and is dropped so the next write heals it.
func readSnapshot(ctx context.Context, rdb snapshotReader, key string) (*model.ReportSnapshot, error) {
	raw, err := rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snap model.ReportSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil || snap.CompletedAt.IsZero() {
		rdb.Del(ctx, key)
		return nil, nil
	}
	return &snap, nil
}

// Invalidate drops the cached report for userID.
func (c *ReportCache) Invalidate(ctx context.Context, userID string) error {
	return c.rdb.Del(ctx, config.CacheKey.LatestReportKey(userID)).Err()
}
