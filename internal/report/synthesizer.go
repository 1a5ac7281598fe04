package report

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/nexosr/career-engine/internal/model"
)

// Synthesizer is the entry point used by the assessment flow.
type Synthesizer struct {
	source *ResilientSource
	tracer trace.Tracer
}

// NewSynthesizer wraps source with tracing.
func NewSynthesizer(source *ResilientSource) *Synthesizer {
	return &Synthesizer{
		source: source,
		tracer: otel.Tracer("github.com/nexosr/career-engine/internal/report"),
	}
}

// Synthesize always returns a usable report.
func (s *Synthesizer) Synthesize(ctx context.Context, profile model.UserProfile, session *model.AssessmentSession, score float64) model.Report {
	rep, _ := s.SynthesizeWithSource(ctx, profile, session, score)
	return rep
}

// SynthesizeWithSource is Synthesize plus the name of the source used.
func (s *Synthesizer) SynthesizeWithSource(ctx context.Context, profile model.UserProfile, session *model.AssessmentSession, score float64) (model.Report, string) {
	ctx, span := s.tracer.Start(ctx, "report.synthesize",
		trace.WithAttributes(
			attribute.String("report.test_type", string(session.TestType)),
			attribute.Float64("report.score", score),
		))
	defer span.End()

	rep, source := s.source.Resolve(ctx, NewRequest(profile, session, score))
	span.SetAttributes(attribute.String("report.source", source))
	return rep, source
}
