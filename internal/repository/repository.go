// Package repository is the PostgreSQL persistence layer. Each repository
// wraps a pgx pool; writes that touch a user's ledger lock the user row and
// decide the award inside the same transaction.
package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/nexosr/career-engine/internal/model"
)

// AwardFunc decides the award for an activity given the user's profile as
// it stood before the activity is counted.
type AwardFunc func(profile model.UserProfile) model.Award

const profileColumns = `id, name, age, segment, interests, goals, is_premium,
	xp_points, badges, tests_taken, mentor_sessions`

func scanProfile(row pgx.Row) (*model.UserProfile, error) {
	p := &model.UserProfile{}
	err := row.Scan(&p.ID, &p.Name, &p.Age, &p.Segment, &p.Interests, &p.Goals, &p.IsPremium,
		&p.XPPoints, &p.Badges, &p.TestsTaken, &p.MentorSessions)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// applyAward locks the user row, asks decide for the award and writes it.
// counter names the activity column to increment.
func applyAward(ctx context.Context, tx pgx.Tx, userID, counter string, decide AwardFunc) (model.Award, error) {
	profile, err := scanProfile(tx.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM users WHERE id = $1 FOR UPDATE`, userID))
	if err != nil {
		return model.Award{}, err
	}

	award := decide(*profile)

	// Badges are appended only when missing, so a stale decision can never
	// duplicate one.
	_, err = tx.Exec(ctx,
		`UPDATE users
		 SET xp_points = xp_points + $2,
		     `+counter+` = `+counter+` + 1,
		     badges = COALESCE(badges, '{}') || ARRAY(
		         SELECT b FROM unnest($3::text[]) AS b
		         WHERE NOT b = ANY(COALESCE(users.badges, '{}'))
		     ),
		     updated_at = NOW()
		 WHERE id = $1`,
		userID, award.XPDelta, nonNil(award.BadgesGranted))
	if err != nil {
		return model.Award{}, err
	}
	return award, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
