// Package report produces career reports for completed assessments. A
// reasoning model is tried first; any failure resolves to a deterministic
// fallback report with the same shape.
package report

import (
	"context"

	"github.com/nexosr/career-engine/internal/model"
)

// Request is everything a Source may look at when writing a report.
type Request struct {
	Profile  model.UserProfile
	TestType model.TestType
	Items    []model.Item
	Answers  []model.Answer
	Score    float64
}

// NewRequest builds a Request from a session whose answers are already set.
func NewRequest(profile model.UserProfile, session *model.AssessmentSession, score float64) Request {
	return Request{
		Profile:  profile,
		TestType: session.TestType,
		Items:    session.Items,
		Answers:  session.Answers,
		Score:    score,
	}
}

// Source produces a report for a request.
type Source interface {
	Generate(ctx context.Context, req Request) (model.Report, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, req Request) (model.Report, error)

func (f SourceFunc) Generate(ctx context.Context, req Request) (model.Report, error) {
	return f(ctx, req)
}
