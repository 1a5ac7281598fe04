package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/nexosr/career-engine/internal/config"
)

// RankedUser is one member of the XP sorted set.
type RankedUser struct {
	UserID   string
	XPPoints int
	Rank     int
}

// LeaderboardCache ranks users by XP in a Redis sorted set.
type LeaderboardCache struct {
	rdb *redis.Client
}

func NewLeaderboardCache(rdb *redis.Client) *LeaderboardCache {
	return &LeaderboardCache{rdb: rdb}
}

// SetXP records absolute XP totals. Writing totals rather than deltas keeps
// replays of the same event harmless.
func (c *LeaderboardCache) SetXP(ctx context.Context, totals map[string]int) error {
	if len(totals) == 0 {
		return nil
	}
	members := make([]redis.Z, 0, len(totals))
	for userID, xp := range totals {
		members = append(members, redis.Z{Score: float64(xp), Member: userID})
	}
	if err := c.rdb.ZAdd(ctx, config.CacheKey.LeaderboardKey(), members...).Err(); err != nil {
		return fmt.Errorf("zadd leaderboard: %w", err)
	}
	return nil
}

// Top returns the highest ranked users, best first.
func (c *LeaderboardCache) Top(ctx context.Context, limit int) ([]RankedUser, error) {
	if limit <= 0 {
		return nil, nil
	}
	results, err := c.rdb.ZRevRangeWithScores(ctx, config.CacheKey.LeaderboardKey(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("zrevrange leaderboard: %w", err)
	}

	out := make([]RankedUser, 0, len(results))
	for i, z := range results {
		id, ok := z.Member.(string)
		if !ok {
			continue
		}
		out = append(out, RankedUser{UserID: id, XPPoints: int(z.Score), Rank: i + 1})
	}
	return out, nil
}

// Rank returns the 1-indexed rank of userID, or 0 if unranked.
func (c *LeaderboardCache) Rank(ctx context.Context, userID string) (int, error) {
	rank, err := c.rdb.ZRevRank(ctx, config.CacheKey.LeaderboardKey(), userID).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("zrevrank leaderboard: %w", err)
	}
	return int(rank) + 1, nil
}
