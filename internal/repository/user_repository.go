package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexosr/career-engine/internal/apperr"
	"github.com/nexosr/career-engine/internal/model"
)

// UserRepository reads user profiles and XP standings.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// GetProfile returns the profile for userID.
func (r *UserRepository) GetProfile(ctx context.Context, userID string) (*model.UserProfile, error) {
	p, err := scanProfile(r.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM users WHERE id = $1`, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// ProfilesByIDs returns the profiles that exist among ids, keyed by id.
func (r *UserRepository) ProfilesByIDs(ctx context.Context, ids []string) (map[string]model.UserProfile, error) {
	out := make(map[string]model.UserProfile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+profileColumns+` FROM users WHERE id = ANY($1::text[])`, ids)
	if err != nil {
		return nil, fmt.Errorf("profiles by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out[p.ID] = *p
	}
	return out, rows.Err()
}

// TopByXP returns the leaderboard straight from Postgres.
func (r *UserRepository) TopByXP(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, xp_points, badges, segment
		 FROM users
		 ORDER BY xp_points DESC, created_at ASC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("top by xp: %w", err)
	}
	defer rows.Close()

	var entries []model.LeaderboardEntry
	for rows.Next() {
		var e model.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Name, &e.XPPoints, &e.Badges, &e.Segment); err != nil {
			return nil, err
		}
		e.Rank = len(entries) + 1
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// XPByIDs returns current XP totals for ids. Unknown ids are omitted.
func (r *UserRepository) XPByIDs(ctx context.Context, ids []string) (map[string]int, error) {
	out := make(map[string]int, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, xp_points FROM users WHERE id = ANY($1::text[])`, ids)
	if err != nil {
		return nil, fmt.Errorf("xp by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var xp int
		if err := rows.Scan(&id, &xp); err != nil {
			return nil, err
		}
		out[id] = xp
	}
	return out, rows.Err()
}

// Upsert creates or replaces a user profile. Used by seeding and tests.
func (r *UserRepository) Upsert(ctx context.Context, p *model.UserProfile) error {
	if p.Segment == "" {
		p.Segment = model.SegmentForAge(p.Age)
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (id, name, age, segment, interests, goals, is_premium,
		                    xp_points, badges, tests_taken, mentor_sessions)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (id) DO UPDATE
		 SET name = EXCLUDED.name, age = EXCLUDED.age, segment = EXCLUDED.segment,
		     interests = EXCLUDED.interests, goals = EXCLUDED.goals,
		     is_premium = EXCLUDED.is_premium, updated_at = NOW()`,
		p.ID, p.Name, p.Age, p.Segment, nonNil(p.Interests), p.Goals, p.IsPremium,
		p.XPPoints, nonNil(p.Badges), p.TestsTaken, p.MentorSessions)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}
