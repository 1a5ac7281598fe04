package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/nexosr/career-engine/internal/gamification"
	"github.com/nexosr/career-engine/internal/logger"
	"github.com/nexosr/career-engine/internal/model"
)

// ProgressView is a user's XP standing plus leaderboard rank when known.
type ProgressView struct {
	gamification.Progress
	Rank int `json:"rank,omitempty"`
}

// GamificationService serves the leaderboard and per-user progress.
type GamificationService struct {
	users       UserStore
	leaderboard LeaderboardReader
	size        int
	log         zerolog.Logger
}

// NewGamificationService creates a new GamificationService. size is the
// default leaderboard length.
func NewGamificationService(users UserStore, leaderboard LeaderboardReader, size int, log zerolog.Logger) *GamificationService {
	if size <= 0 {
		size = 20
	}
	return &GamificationService{
		users:       users,
		leaderboard: leaderboard,
		size:        size,
		log:         logger.Component(log, "gamification_service"),
	}
}

// Leaderboard returns the top users by XP. The Redis sorted set is the
// fast lane; when it is empty or unreachable Postgres answers directly.
func (s *GamificationService) Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = s.size
	}

	if s.leaderboard != nil {
		entries, err := s.fromCache(ctx, limit)
		if err == nil && len(entries) > 0 {
			return entries, nil
		}
		if err != nil {
			s.log.Warn().Err(err).Msg("leaderboard cache read failed, using database")
		}
	}

	entries, err := s.users.TopByXP(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("top by xp: %w", err)
	}
	return entries, nil
}

func (s *GamificationService) fromCache(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	ranked, err := s.leaderboard.Top(ctx, limit)
	if err != nil || len(ranked) == 0 {
		return nil, err
	}

	ids := make([]string, len(ranked))
	for i, r := range ranked {
		ids[i] = r.UserID
	}
	profiles, err := s.users.ProfilesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	entries := make([]model.LeaderboardEntry, 0, len(ranked))
	for _, r := range ranked {
		p, ok := profiles[r.UserID]
		if !ok {
			continue
		}
		entries = append(entries, model.LeaderboardEntry{
			Rank:     len(entries) + 1,
			UserID:   r.UserID,
			Name:     p.Name,
			XPPoints: r.XPPoints,
			Badges:   p.Badges,
			Segment:  p.Segment,
		})
	}
	return entries, nil
}

// Progress returns the user's XP, level, badges and rank.
func (s *GamificationService) Progress(ctx context.Context, userID string) (*ProgressView, error) {
	profile, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &ProgressView{Progress: gamification.ProgressFor(profile.XPPoints, profile.Badges)}
	if s.leaderboard != nil {
		rank, err := s.leaderboard.Rank(ctx, userID)
		if err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("leaderboard rank failed")
		}
		view.Rank = rank
	}
	return view, nil
}

// Badges returns the badge catalog.
func (s *GamificationService) Badges() []gamification.Badge {
	return gamification.Badges()
}
