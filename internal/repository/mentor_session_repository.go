package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexosr/career-engine/internal/apperr"
	"github.com/nexosr/career-engine/internal/model"
)

// MentorSessionRepository handles mentor booking data access.
type MentorSessionRepository struct {
	pool *pgxpool.Pool
}

// NewMentorSessionRepository creates a new MentorSessionRepository.
func NewMentorSessionRepository(pool *pgxpool.Pool) *MentorSessionRepository {
	return &MentorSessionRepository{pool: pool}
}

// Book inserts the session and applies the booking award to the mentee in
// one transaction.
func (r *MentorSessionRepository) Book(ctx context.Context, s *model.MentorSession, decide AwardFunc) (model.Award, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Status == "" {
		s.Status = model.MentorSessionPending
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return model.Award{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	err = tx.QueryRow(ctx,
		`INSERT INTO mentor_sessions (id, mentor_id, mentee_id, mentor_name, mentee_name,
		                              session_type, scheduled_at, status, price, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING created_at`,
		s.ID, s.MentorID, s.MenteeID, s.MentorName, s.MenteeName,
		s.SessionType, s.ScheduledAt, s.Status, s.Price, s.Notes,
	).Scan(&s.CreatedAt)
	if err != nil {
		return model.Award{}, fmt.Errorf("insert mentor session: %w", err)
	}

	award, err := applyAward(ctx, tx, s.MenteeID, "mentor_sessions", decide)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Award{}, apperr.ErrUserNotFound
	}
	if err != nil {
		return model.Award{}, fmt.Errorf("apply booking award: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Award{}, fmt.Errorf("commit: %w", err)
	}
	return award, nil
}

// ListForUser returns sessions where userID is mentee or mentor, latest
// scheduled first.
func (r *MentorSessionRepository) ListForUser(ctx context.Context, userID string, limit int) ([]model.MentorSession, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT s.id, s.mentor_id, s.mentee_id, s.mentor_name, s.mentee_name, s.session_type,
		        s.scheduled_at, s.status, s.price, s.notes, s.created_at
		 FROM mentor_sessions s
		 LEFT JOIN mentors m ON m.id = s.mentor_id
		 WHERE s.mentee_id = $1 OR m.user_id = $1
		 ORDER BY s.scheduled_at DESC
		 LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list mentor sessions: %w", err)
	}
	defer rows.Close()

	var out []model.MentorSession
	for rows.Next() {
		var s model.MentorSession
		if err := rows.Scan(&s.ID, &s.MentorID, &s.MenteeID, &s.MentorName, &s.MenteeName, &s.SessionType,
			&s.ScheduledAt, &s.Status, &s.Price, &s.Notes, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
