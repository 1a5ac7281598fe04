package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexosr/career-engine/internal/model"
)

// ChatRepository handles chat message data access.
type ChatRepository struct {
	pool *pgxpool.Pool
}

// NewChatRepository creates a new ChatRepository.
func NewChatRepository(pool *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{pool: pool}
}

// Append stores msgs in order. The batch runs in one implicit transaction,
// so a question is never saved without its answer.
func (r *ChatRepository) Append(ctx context.Context, msgs ...model.ChatMessage) error {
	if len(msgs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, m := range msgs {
		batch.Queue(
			`INSERT INTO chat_messages (id, user_id, role, content, created_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			m.ID, m.UserID, m.Role, m.Content, m.Timestamp)
	}

	br := r.pool.SendBatch(ctx, batch)
	for range msgs {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("append chat message: %w", err)
		}
	}
	return br.Close()
}

// Recent returns the user's last limit messages, oldest first.
func (r *ChatRepository) Recent(ctx context.Context, userID string, limit int) ([]model.ChatMessage, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, role, content, created_at
		 FROM (
		     SELECT seq, id, user_id, role, content, created_at
		     FROM chat_messages
		     WHERE user_id = $1
		     ORDER BY seq DESC
		     LIMIT $2
		 ) recent
		 ORDER BY seq ASC`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}
	defer rows.Close()

	var out []model.ChatMessage
	for rows.Next() {
		var m model.ChatMessage
		if err := rows.Scan(&m.ID, &m.UserID, &m.Role, &m.Content, &m.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
