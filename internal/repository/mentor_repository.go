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

// MentorRepository handles mentor data access.
type MentorRepository struct {
	pool *pgxpool.Pool
}

// NewMentorRepository creates a new MentorRepository.
func NewMentorRepository(pool *pgxpool.Pool) *MentorRepository {
	return &MentorRepository{pool: pool}
}

const mentorColumns = `id, user_id, name, email, expertise, experience_years, bio, category,
	hourly_rate, session_30min_rate, session_1hr_rate, rating, total_sessions, approved, created_at`

func scanMentor(row pgx.Row) (*model.Mentor, error) {
	m := &model.Mentor{}
	err := row.Scan(&m.ID, &m.UserID, &m.Name, &m.Email, &m.Expertise, &m.ExperienceYears, &m.Bio,
		&m.Category, &m.HourlyRate, &m.Session30MinRate, &m.Session1HrRate, &m.Rating,
		&m.TotalSessions, &m.Approved, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// GetApproved returns an approved mentor by id.
func (r *MentorRepository) GetApproved(ctx context.Context, id string) (*model.Mentor, error) {
	m, err := scanMentor(r.pool.QueryRow(ctx,
		`SELECT `+mentorColumns+` FROM mentors WHERE id = $1 AND approved = TRUE`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrMentorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get mentor: %w", err)
	}
	return m, nil
}

// ListApproved returns every approved mentor, best rated first.
func (r *MentorRepository) ListApproved(ctx context.Context) ([]model.Mentor, error) {
	return r.query(ctx, "list mentors",
		`SELECT `+mentorColumns+`
		 FROM mentors
		 WHERE approved = TRUE
		 ORDER BY rating DESC, created_at ASC`)
}

// ListFiltered returns up to limit approved mentors in category and with
// expertise. Empty filter fields match everything.
func (r *MentorRepository) ListFiltered(ctx context.Context, f model.MentorFilter, limit int) ([]model.Mentor, error) {
	return r.query(ctx, "browse mentors",
		`SELECT `+mentorColumns+`
		 FROM mentors
		 WHERE approved = TRUE
		   AND ($1::text = '' OR category = $1)
		   AND ($2::text = '' OR $2 = ANY(expertise))
		 ORDER BY rating DESC, created_at ASC
		 LIMIT $3`,
		f.Category, f.Expertise, limit)
}

// ListPending returns up to limit mentors awaiting approval, oldest
// application first.
func (r *MentorRepository) ListPending(ctx context.Context, limit int) ([]model.Mentor, error) {
	return r.query(ctx, "list pending mentors",
		`SELECT `+mentorColumns+`
		 FROM mentors
		 WHERE approved = FALSE
		 ORDER BY created_at ASC, id ASC
		 LIMIT $1`,
		limit)
}

// Apply inserts m as an unapproved mentor. The partial unique index on
// user_id makes a second application by the same user a no-op, reported as
// apperr.ErrAlreadyAppliedMentor.
func (r *MentorRepository) Apply(ctx context.Context, m *model.Mentor) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO mentors (id, user_id, name, email, expertise, experience_years, bio, category,
		                      hourly_rate, session_30min_rate, session_1hr_rate, rating,
		                      total_sessions, approved)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 0, FALSE)
		 ON CONFLICT (user_id) WHERE user_id NOT IN ('', 'system') DO NOTHING
		 RETURNING created_at`,
		m.ID, m.UserID, m.Name, m.Email, nonNil(m.Expertise), m.ExperienceYears, m.Bio, m.Category,
		m.HourlyRate, m.Session30MinRate, m.Session1HrRate, m.Rating,
	).Scan(&m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.ErrAlreadyAppliedMentor
	}
	if err != nil {
		return fmt.Errorf("apply mentor: %w", err)
	}
	return nil
}

// Approve makes a mentor visible to browsing, matching and booking.
// Approving an approved mentor is a no-op.
func (r *MentorRepository) Approve(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE mentors SET approved = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("approve mentor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrMentorNotFound
	}
	return nil
}

func (r *MentorRepository) query(ctx context.Context, op, sql string, args ...any) ([]model.Mentor, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var mentors []model.Mentor
	for rows.Next() {
		m, err := scanMentor(rows)
		if err != nil {
			return nil, err
		}
		mentors = append(mentors, *m)
	}
	return mentors, rows.Err()
}

// Upsert creates or replaces a mentor. Used by seeding.
func (r *MentorRepository) Upsert(ctx context.Context, m *model.Mentor) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO mentors (id, user_id, name, email, expertise, experience_years, bio, category,
		                      hourly_rate, session_30min_rate, session_1hr_rate, rating,
		                      total_sessions, approved)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 ON CONFLICT (id) DO UPDATE
		 SET name = EXCLUDED.name, email = EXCLUDED.email, expertise = EXCLUDED.expertise,
		     experience_years = EXCLUDED.experience_years, bio = EXCLUDED.bio,
		     category = EXCLUDED.category, hourly_rate = EXCLUDED.hourly_rate,
		     session_30min_rate = EXCLUDED.session_30min_rate,
		     session_1hr_rate = EXCLUDED.session_1hr_rate, rating = EXCLUDED.rating,
		     total_sessions = EXCLUDED.total_sessions, approved = EXCLUDED.approved`,
		m.ID, m.UserID, m.Name, m.Email, nonNil(m.Expertise), m.ExperienceYears, m.Bio, m.Category,
		m.HourlyRate, m.Session30MinRate, m.Session1HrRate, m.Rating, m.TotalSessions, m.Approved)
	if err != nil {
		return fmt.Errorf("upsert mentor: %w", err)
	}
	return nil
}
