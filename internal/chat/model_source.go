package chat

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/nexosr/career-engine/internal/apperr"
	"github.com/nexosr/career-engine/internal/llm"
	"github.com/nexosr/career-engine/internal/model"
)

// Reply length caps. Premium users get longer answers.
const (
	PremiumMaxTokens = 500
	FreeMaxTokens    = 200
)

// ModelSource asks the reasoning model for a free-text reply.
type ModelSource struct {
	client *llm.Client
}

// NewModelSource builds a ModelSource on client.
func NewModelSource(client *llm.Client) *ModelSource {
	return &ModelSource{client: client}
}

// Reply calls the model. Any failure, including an empty answer, comes back
// wrapped in apperr.ErrExternalModelUnavailable.
func (s *ModelSource) Reply(ctx context.Context, req Request) (string, error) {
	content, err := s.client.Complete(ctx, openai.ChatCompletionRequest{
		Messages:  messages(req),
		MaxTokens: MaxTokens(req.Profile),
	})
	if err != nil {
		return "", apperr.Wrap(apperr.CodeExternalModelUnavailable, err)
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return "", apperr.Wrap(apperr.CodeExternalModelUnavailable, errors.New("model returned an empty reply"))
	}
	return content, nil
}

// MaxTokens returns the reply cap for p.
func MaxTokens(p model.UserProfile) int {
	if p.IsPremium {
		return PremiumMaxTokens
	}
	return FreeMaxTokens
}
