package chat

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/nexosr/career-engine/internal/logger"
	"github.com/nexosr/career-engine/internal/metrics"
)

// ResilientSource tries the model and answers from keywords on any
// failure. It never returns an error.
type ResilientSource struct {
	primary  Source
	fallback Source
	metrics  *metrics.Metrics
	log      zerolog.Logger
}

// NewResilientSource composes primary and fallback. A nil primary means the
// model is disabled. A nil fallback uses KeywordSource.
func NewResilientSource(primary, fallback Source, m *metrics.Metrics, log zerolog.Logger) *ResilientSource {
	if fallback == nil {
		fallback = KeywordSource{}
	}
	return &ResilientSource{
		primary:  primary,
		fallback: fallback,
		metrics:  m,
		log:      logger.Component(log, "chat_source"),
	}
}

func (r *ResilientSource) Reply(ctx context.Context, req Request) (string, error) {
	reply, _ := r.Resolve(ctx, req)
	return reply, nil
}

// Resolve returns the reply together with the metrics label of the source
// that produced it.
func (r *ResilientSource) Resolve(ctx context.Context, req Request) (string, string) {
	if r.primary != nil {
		reply, err := r.primary.Reply(ctx, req)
		if err == nil {
			r.metrics.ChatReplied(metrics.SourceModel)
			return reply, metrics.SourceModel
		}
		r.log.Warn().Err(err).Str("user_id", req.Profile.ID).Msg("model chat failed, using keyword reply")
	}

	reply, err := r.fallback.Reply(ctx, req)
	if err != nil || reply == "" {
		r.log.Error().Err(err).Msg("fallback chat source failed, using keyword reply")
		reply = Keyword(req)
	}
	r.metrics.ChatReplied(metrics.SourceFallback)
	return reply, metrics.SourceFallback
}
