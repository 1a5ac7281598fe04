package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexosr/career-engine/internal/model"
)

// OpportunityRepository handles opportunity data access.
type OpportunityRepository struct {
	pool *pgxpool.Pool
}

// NewOpportunityRepository creates a new OpportunityRepository.
func NewOpportunityRepository(pool *pgxpool.Pool) *OpportunityRepository {
	return &OpportunityRepository{pool: pool}
}

const opportunityColumns = `id, title, type, company, description, requirements, link, deadline, tags, created_at`

// List returns all opportunities, newest first.
func (r *OpportunityRepository) List(ctx context.Context) ([]model.Opportunity, error) {
	return r.query(ctx, "list opportunities",
		`SELECT `+opportunityColumns+`
		 FROM opportunities
		 ORDER BY created_at DESC, id ASC`)
}

// ListByType returns up to limit opportunities of type t, newest first. An
// empty t matches every type.
func (r *OpportunityRepository) ListByType(ctx context.Context, t model.OpportunityType, limit int) ([]model.Opportunity, error) {
	return r.query(ctx, "browse opportunities",
		`SELECT `+opportunityColumns+`
		 FROM opportunities
		 WHERE $1::text = '' OR type = $1
		 ORDER BY created_at DESC, id ASC
		 LIMIT $2`,
		string(t), limit)
}

func (r *OpportunityRepository) query(ctx context.Context, op, sql string, args ...any) ([]model.Opportunity, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []model.Opportunity
	for rows.Next() {
		var o model.Opportunity
		if err := rows.Scan(&o.ID, &o.Title, &o.Type, &o.Company, &o.Description, &o.Requirements,
			&o.Link, &o.Deadline, &o.Tags, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// Upsert creates or replaces an opportunity. Used by seeding.
func (r *OpportunityRepository) Upsert(ctx context.Context, o *model.Opportunity) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO opportunities (id, title, type, company, description, requirements, link, deadline, tags)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (id) DO UPDATE
		 SET title = EXCLUDED.title, type = EXCLUDED.type, company = EXCLUDED.company,
		     description = EXCLUDED.description, requirements = EXCLUDED.requirements,
		     link = EXCLUDED.link, deadline = EXCLUDED.deadline, tags = EXCLUDED.tags`,
		o.ID, o.Title, o.Type, o.Company, o.Description, nonNil(o.Requirements), o.Link, o.Deadline, nonNil(o.Tags))
	if err != nil {
		return fmt.Errorf("upsert opportunity: %w", err)
	}
	return nil
}
