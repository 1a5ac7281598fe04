package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// LatestReportKey returns the cache key for the report of a user's most recent completed assessment
func (r *CacheKeyStruct) LatestReportKey(userID string) string {
	return fmt.Sprintf("user:%s:latest_report", userID)
}

// LeaderboardKey returns the sorted-set key ranking users by XP
func (r *CacheKeyStruct) LeaderboardKey() string {
	return "leaderboard:xp"
}

var CacheKey = NewCacheKeyStruct()
