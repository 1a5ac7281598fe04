package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nexosr/career-engine/internal/apperr"
	"github.com/nexosr/career-engine/internal/chat"
	"github.com/nexosr/career-engine/internal/logger"
	"github.com/nexosr/career-engine/internal/model"
	"github.com/nexosr/career-engine/internal/validator"
)

// ChatHistoryLimit caps how many messages ChatHistory returns.
const ChatHistoryLimit = 100

// ChatService runs the career companion conversation.
type ChatService struct {
	users     UserStore
	sessions  AssessmentStore
	messages  ChatStore
	responder ChatResponder
	validate  *validator.Validator
	log       zerolog.Logger
	now       func() time.Time
}

// NewChatService creates a new ChatService.
func NewChatService(
	users UserStore,
	sessions AssessmentStore,
	messages ChatStore,
	responder ChatResponder,
	log zerolog.Logger,
) *ChatService {
	return &ChatService{
		users:     users,
		sessions:  sessions,
		messages:  messages,
		responder: responder,
		validate:  validator.Default(),
		log:       logger.Component(log, "chat_service"),
		now:       time.Now,
	}
}

// Send answers req with the user's profile, latest assessment and recent
// conversation as context, then stores the question and the answer.
func (s *ChatService) Send(ctx context.Context, userID string, req model.ChatRequest) (*model.ChatReply, error) {
	if fields := s.validate.Struct(req); fields != nil {
		return nil, apperr.Wrap(apperr.CodeInvalidSubmission, fmt.Errorf("%v", fields))
	}

	profile, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	history, err := s.messages.Recent(ctx, userID, chat.HistoryWindow)
	if err != nil {
		return nil, fmt.Errorf("load chat history: %w", err)
	}

	latest, err := s.sessions.ListCompleted(ctx, userID, 1)
	if err != nil {
		return nil, fmt.Errorf("load latest assessment: %w", err)
	}

	chatReq := chat.Request{Profile: *profile, History: history, Message: req.Message}
	if len(latest) > 0 {
		chatReq.Latest = &latest[0]
	}
	reply, source := s.responder.Resolve(ctx, chatReq)

	at := s.now().UTC()
	err = s.messages.Append(ctx,
		model.ChatMessage{ID: uuid.New(), UserID: userID, Role: model.ChatRoleUser, Content: req.Message, Timestamp: at},
		model.ChatMessage{ID: uuid.New(), UserID: userID, Role: model.ChatRoleAssistant, Content: reply, Timestamp: at},
	)
	if err != nil {
		return nil, fmt.Errorf("save chat messages: %w", err)
	}

	s.log.Info().
		Str("user_id", userID).
		Str("source", source).
		Int("history", len(history)).
		Msg("chat reply sent")

	return &model.ChatReply{Message: reply}, nil
}

// ChatHistory returns the user's most recent messages, oldest first.
func (s *ChatService) ChatHistory(ctx context.Context, userID string) ([]model.ChatMessage, error) {
	msgs, err := s.messages.Recent(ctx, userID, ChatHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("list chat history: %w", err)
	}
	return msgs, nil
}
