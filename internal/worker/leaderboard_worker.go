package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/nexosr/career-engine/internal/config"
	"github.com/nexosr/career-engine/internal/logger"
	"github.com/nexosr/career-engine/internal/metrics"
	"github.com/nexosr/career-engine/internal/model"
)

const (
	LeaderboardBatchSize    = 100
	LeaderboardBatchTimeout = 2 * time.Second
	LeaderboardPollTimeout  = 1 * time.Second
)

// Event outcomes recorded on career_leaderboard_events_total.
const (
	OutcomeApplied  = "applied"
	OutcomeDropped  = "dropped"
	OutcomeRequeued = "requeued"
	OutcomeInvalid  = "invalid"
)

// XPReader loads current XP totals from the system of record.
type XPReader interface {
	XPByIDs(ctx context.Context, ids []string) (map[string]int, error)
}

// LeaderboardWriter stores absolute XP totals in the ranking.
type LeaderboardWriter interface {
	SetXP(ctx context.Context, totals map[string]int) error
}

// TopReader lists the highest-XP users from the system of record.
type TopReader interface {
	TopByXP(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)
}

// LeaderboardWorker consumes leaderboard_events_queue and copies the
// affected users' XP from Postgres into the Redis sorted set. Events only
// name a user, so replaying one is harmless.
type LeaderboardWorker struct {
	rdb     *redis.Client
	users   XPReader
	board   LeaderboardWriter
	metrics *metrics.Metrics
	log     zerolog.Logger
}

// NewLeaderboardWorker creates a new LeaderboardWorker.
func NewLeaderboardWorker(rdb *redis.Client, users XPReader, board LeaderboardWriter, m *metrics.Metrics, log zerolog.Logger) *LeaderboardWorker {
	return &LeaderboardWorker{
		rdb:     rdb,
		users:   users,
		board:   board,
		metrics: m,
		log:     logger.Component(log, "leaderboard_worker"),
	}
}

type leaderboardEvent struct {
	UserID string    `json:"user_id"`
	At     time.Time `json:"at"`
}

// ----------------------------------------------------------------
// Worker loop with batching
// ----------------------------------------------------------------

// Start runs until ctx is cancelled, then flushes what it holds. Call in a
// goroutine.
func (w *LeaderboardWorker) Start(ctx context.Context) {
	w.log.Info().Msg("LeaderboardWorker started")

	batch := make([]*leaderboardEvent, 0, LeaderboardBatchSize)
	lastFlush := time.Now()

	for {
		if len(batch) > 0 &&
			(len(batch) >= LeaderboardBatchSize || time.Since(lastFlush) >= LeaderboardBatchTimeout) {

			w.flushSafe(ctx, batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Int("pending", len(batch)).Msg("Shutdown requested. Flushing remaining batch...")
			w.flushSafe(context.Background(), batch)
			return

		default:
			item, err := w.rdb.BLPop(ctx, LeaderboardPollTimeout, config.WorkerKey.LeaderboardEventsQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			ev, err := decodeEvent(item[1])
			if err != nil {
				w.log.Error().Err(err).Str("payload", item[1]).Msg("Invalid leaderboard event")
				w.metrics.LeaderboardEvent(OutcomeInvalid, 1)
				continue
			}

			batch = append(batch, ev)
		}
	}
}

// Prewarm loads the top limit users into the sorted set so reads do not
// fall through to Postgres after a Redis flush.
func (w *LeaderboardWorker) Prewarm(ctx context.Context, top TopReader, limit int) error {
	entries, err := top.TopByXP(ctx, limit)
	if err != nil {
		return fmt.Errorf("top by xp: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}

	totals := make(map[string]int, len(entries))
	for _, e := range entries {
		totals[e.UserID] = e.XPPoints
	}
	if err := w.board.SetXP(ctx, totals); err != nil {
		return fmt.Errorf("set xp: %w", err)
	}
	w.log.Info().Int("users", len(totals)).Msg("Leaderboard prewarmed")
	return nil
}

func decodeEvent(raw string) (*leaderboardEvent, error) {
	var ev leaderboardEvent
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		return nil, err
	}
	if ev.UserID == "" {
		return nil, errors.New("event without user_id")
	}
	return &ev, nil
}

// ----------------------------------------------------------------
// Batch sync with per-user fallback
// ----------------------------------------------------------------

func (w *LeaderboardWorker) flushSafe(ctx context.Context, batch []*leaderboardEvent) {
	if len(batch) == 0 {
		return
	}

	ids := distinctUsers(batch)
	if err := w.sync(ctx, ids); err != nil {
		w.log.Warn().Err(err).Int("users", len(ids)).Msg("bulk leaderboard sync failed, using fallback")

		for _, id := range ids {
			if err := w.sync(ctx, []string{id}); err != nil {
				w.log.Error().Err(err).Str("user_id", id).Msg("leaderboard sync failed, requeueing")
				w.requeue(ctx, id)
			}
		}
	}
}

// sync copies XP for ids into the leaderboard. Users that no longer exist
// are counted as dropped.
func (w *LeaderboardWorker) sync(ctx context.Context, ids []string) error {
	totals, err := w.users.XPByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("load xp: %w", err)
	}
	if len(totals) > 0 {
		if err := w.board.SetXP(ctx, totals); err != nil {
			return fmt.Errorf("set xp: %w", err)
		}
	}

	w.metrics.LeaderboardEvent(OutcomeApplied, len(totals))
	w.metrics.LeaderboardEvent(OutcomeDropped, len(ids)-len(totals))
	return nil
}

func (w *LeaderboardWorker) requeue(ctx context.Context, userID string) {
	w.metrics.LeaderboardEvent(OutcomeRequeued, 1)
	if w.rdb == nil {
		return
	}
	raw, _ := json.Marshal(leaderboardEvent{UserID: userID, At: time.Now().UTC()})
	if err := w.rdb.RPush(ctx, config.WorkerKey.LeaderboardEventsQueue, raw).Err(); err != nil {
		w.log.Error().Err(err).Str("user_id", userID).Msg("requeue failed, event lost")
	}
}

func distinctUsers(batch []*leaderboardEvent) []string {
	seen := make(map[string]struct{}, len(batch))
	ids := make([]string, 0, len(batch))
	for _, ev := range batch {
		if _, ok := seen[ev.UserID]; ok {
			continue
		}
		seen[ev.UserID] = struct{}{}
		ids = append(ids, ev.UserID)
	}
	return ids
}

// ----------------------------------------------------------------
// Producer side
// ----------------------------------------------------------------

// LeaderboardPublisher enqueues a user whose XP changed.
type LeaderboardPublisher struct {
	rdb *redis.Client
}

// NewLeaderboardPublisher creates a new LeaderboardPublisher.
func NewLeaderboardPublisher(rdb *redis.Client) *LeaderboardPublisher {
	return &LeaderboardPublisher{rdb: rdb}
}

// Publish pushes an event for userID onto the leaderboard queue.
func (p *LeaderboardPublisher) Publish(ctx context.Context, userID string) error {
	raw, err := json.Marshal(leaderboardEvent{UserID: userID, At: time.Now().UTC()})
	if err != nil {
		return err
	}
	return p.rdb.RPush(ctx, config.WorkerKey.LeaderboardEventsQueue, raw).Err()
}
