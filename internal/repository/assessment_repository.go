package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexosr/career-engine/internal/apperr"
	"github.com/nexosr/career-engine/internal/model"
)

// Completion is the write-once result of submitting a session.
type Completion struct {
	SessionID   uuid.UUID
	UserID      string
	Answers     []model.Answer
	Score       float64
	Report      model.Report
	CompletedAt time.Time
}

// AssessmentRepository handles assessment session data access.
type AssessmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssessmentRepository creates a new AssessmentRepository.
func NewAssessmentRepository(pool *pgxpool.Pool) *AssessmentRepository {
	return &AssessmentRepository{pool: pool}
}

const sessionColumns = `id, user_id, test_type, items, answers, score, report, status, created_at, completed_at`

func scanSession(row pgx.Row) (*model.AssessmentSession, error) {
	s := &model.AssessmentSession{}
	err := row.Scan(&s.ID, &s.UserID, &s.TestType, &s.Items, &s.Answers, &s.Score, &s.Report,
		&s.Status, &s.CreatedAt, &s.CompletedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Create inserts a new in-progress session. ID and CreatedAt are filled in.
func (r *AssessmentRepository) Create(ctx context.Context, s *model.AssessmentSession) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Answers == nil {
		s.Answers = []model.Answer{}
	}
	s.Status = model.SessionStatusInProgress

	err := r.pool.QueryRow(ctx,
		`INSERT INTO assessments (id, user_id, test_type, items, answers, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		s.ID, s.UserID, s.TestType, s.Items, s.Answers, s.Status,
	).Scan(&s.CreatedAt)
	if err != nil {
		return fmt.Errorf("create assessment: %w", err)
	}
	return nil
}

// Get returns the session if it exists and belongs to userID.
func (r *AssessmentRepository) Get(ctx context.Context, sessionID uuid.UUID, userID string) (*model.AssessmentSession, error) {
	s, err := scanSession(r.pool.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM assessments WHERE id = $1 AND user_id = $2`,
		sessionID, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get assessment: %w", err)
	}
	return s, nil
}

// CountCompleted returns how many assessments userID has completed.
func (r *AssessmentRepository) CountCompleted(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM assessments WHERE user_id = $1 AND status = $2`,
		userID, model.SessionStatusCompleted,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count completed: %w", err)
	}
	return n, nil
}

// ListCompleted returns completed sessions, newest first.
func (r *AssessmentRepository) ListCompleted(ctx context.Context, userID string, limit int) ([]model.AssessmentSession, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+sessionColumns+`
		 FROM assessments
		 WHERE user_id = $1 AND status = $2
		 ORDER BY completed_at DESC
		 LIMIT $3`,
		userID, model.SessionStatusCompleted, limit)
	if err != nil {
		return nil, fmt.Errorf("list completed: %w", err)
	}
	defer rows.Close()

	var sessions []model.AssessmentSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}

// LatestReport returns the report of the newest completed session together
// with its completion time, or nil.
func (r *AssessmentRepository) LatestReport(ctx context.Context, userID string) (*model.ReportSnapshot, error) {
	var snap model.ReportSnapshot
	err := r.pool.QueryRow(ctx,
		`SELECT report, completed_at
		 FROM assessments
		 WHERE user_id = $1 AND status = $2 AND report IS NOT NULL
		 ORDER BY completed_at DESC
		 LIMIT 1`,
		userID, model.SessionStatusCompleted,
	).Scan(&snap.Report, &snap.CompletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest report: %w", err)
	}
	return &snap, nil
}

// Complete moves the session from IN_PROGRESS to COMPLETED and applies the
// ledger award in one transaction. The status check is part of the UPDATE,
// so of two racing submissions exactly one wins; the other gets
// apperr.ErrAssessmentAlreadyCompleted and nothing is written.
func (r *AssessmentRepository) Complete(ctx context.Context, c Completion, decide AwardFunc) (model.Award, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return model.Award{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	answers := c.Answers
	if answers == nil {
		answers = []model.Answer{}
	}

	var id uuid.UUID
	err = tx.QueryRow(ctx,
		`UPDATE assessments
		 SET answers = $3, score = $4, report = $5, status = $6, completed_at = $7
		 WHERE id = $1 AND user_id = $2 AND status = $8
		 RETURNING id`,
		c.SessionID, c.UserID, answers, c.Score, c.Report,
		model.SessionStatusCompleted, c.CompletedAt, model.SessionStatusInProgress,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Award{}, r.completionConflict(ctx, tx, c)
	}
	if err != nil {
		return model.Award{}, fmt.Errorf("complete assessment: %w", err)
	}

	award, err := applyAward(ctx, tx, c.UserID, "tests_taken", decide)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Award{}, apperr.ErrUserNotFound
	}
	if err != nil {
		return model.Award{}, fmt.Errorf("apply assessment award: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Award{}, fmt.Errorf("commit: %w", err)
	}
	return award, nil
}

// completionConflict tells a missing session apart from one that is already
// completed.
func (r *AssessmentRepository) completionConflict(ctx context.Context, tx pgx.Tx, c Completion) error {
	var exists bool
	err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM assessments WHERE id = $1 AND user_id = $2)`,
		c.SessionID, c.UserID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check assessment: %w", err)
	}
	if !exists {
		return apperr.ErrSessionNotFound
	}
	return apperr.ErrAssessmentAlreadyCompleted
}
