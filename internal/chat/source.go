// Package chat answers a user's career questions. A reasoning model is
// tried first; any failure resolves to keyword-matched answers built from
// the user's profile.
package chat

import (
	"context"

	"github.com/nexosr/career-engine/internal/model"
)

// HistoryWindow is how many earlier messages are shown to the model.
const HistoryWindow = 10

// Request is everything a Source may look at when replying.
type Request struct {
	Profile model.UserProfile
	// Latest is the user's newest completed assessment, or nil.
	Latest *model.AssessmentSession
	// History holds earlier messages, oldest first.
	History []model.ChatMessage
	Message string
}

// Source produces the assistant's reply to a request.
type Source interface {
	Reply(ctx context.Context, req Request) (string, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, req Request) (string, error)

func (f SourceFunc) Reply(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
