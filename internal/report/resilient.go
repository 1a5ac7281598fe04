package report

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/nexosr/career-engine/internal/logger"
	"github.com/nexosr/career-engine/internal/metrics"
	"github.com/nexosr/career-engine/internal/model"
)

// ResilientSource tries Primary and resolves any failure with Fallback. It
// never returns an error.
type ResilientSource struct {
	primary  Source
	fallback Source
	metrics  *metrics.Metrics
	log      zerolog.Logger
}

// NewResilientSource composes primary and fallback. A nil primary means the
// model is disabled and every report comes from fallback. A nil fallback
// uses FallbackSource.
func NewResilientSource(primary, fallback Source, m *metrics.Metrics, log zerolog.Logger) *ResilientSource {
	if fallback == nil {
		fallback = FallbackSource{}
	}
	return &ResilientSource{
		primary:  primary,
		fallback: fallback,
		metrics:  m,
		log:      logger.Component(log, "report_source"),
	}
}

func (r *ResilientSource) Generate(ctx context.Context, req Request) (model.Report, error) {
	rep, _ := r.Resolve(ctx, req)
	return rep, nil
}

// Resolve returns the report together with the metrics label of the source
// that produced it.
func (r *ResilientSource) Resolve(ctx context.Context, req Request) (model.Report, string) {
	if r.primary != nil {
		rep, err := r.primary.Generate(ctx, req)
		if err == nil {
			r.metrics.ReportProduced(metrics.SourceModel)
			return rep, metrics.SourceModel
		}
		r.log.Warn().Err(err).
			Str("user_id", req.Profile.ID).
			Str("test_type", string(req.TestType)).
			Msg("model report failed, using fallback")
	}

	rep, err := r.fallback.Generate(ctx, req)
	if err != nil {
		r.log.Error().Err(err).Msg("fallback source failed, using scripted report")
		rep = Fallback(req.Score)
	}
	r.metrics.ReportProduced(metrics.SourceFallback)
	return rep, metrics.SourceFallback
}
