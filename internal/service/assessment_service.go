package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/nexosr/career-engine/internal/apperr"
	"github.com/nexosr/career-engine/internal/gamification"
	"github.com/nexosr/career-engine/internal/logger"
	"github.com/nexosr/career-engine/internal/metrics"
	"github.com/nexosr/career-engine/internal/model"
	"github.com/nexosr/career-engine/internal/questionbank"
	"github.com/nexosr/career-engine/internal/repository"
	"github.com/nexosr/career-engine/internal/scoring"
	"github.com/nexosr/career-engine/internal/validator"
)

// HistoryLimit caps how many completed assessments History returns.
const HistoryLimit = 100

// AssessmentConfig holds the tunables of the assessment flow.
type AssessmentConfig struct {
	QuestionsPerTest int
	FreeTestLimit    int
}

// AssessmentService handles starting and submitting assessments.
type AssessmentService struct {
	cfg       AssessmentConfig
	bank      *questionbank.Bank
	users     UserStore
	sessions  AssessmentStore
	synth     ReportSynthesizer
	reports   ReportCache
	publisher LeaderboardPublisher
	validate  *validator.Validator
	metrics   *metrics.Metrics
	tracer    trace.Tracer
	log       zerolog.Logger
	now       func() time.Time
}

// NewAssessmentService creates a new AssessmentService.
func NewAssessmentService(
	cfg AssessmentConfig,
	bank *questionbank.Bank,
	users UserStore,
	sessions AssessmentStore,
	synth ReportSynthesizer,
	reports ReportCache,
	publisher LeaderboardPublisher,
	m *metrics.Metrics,
	log zerolog.Logger,
) *AssessmentService {
	if cfg.QuestionsPerTest <= 0 {
		cfg.QuestionsPerTest = questionbank.DefaultCount
	}
	return &AssessmentService{
		cfg:       cfg,
		bank:      bank,
		users:     users,
		sessions:  sessions,
		synth:     synth,
		reports:   reports,
		publisher: publisher,
		validate:  validator.Default(),
		metrics:   m,
		tracer:    otel.Tracer("github.com/nexosr/career-engine/internal/service"),
		log:       logger.Component(log, "assessment_service"),
		now:       time.Now,
	}
}

// StartAssessment snapshots a fresh random set of items into a new session.
// Non-premium users are limited to FreeTestLimit completed assessments.
func (s *AssessmentService) StartAssessment(ctx context.Context, userID string, testType model.TestType) (*model.AssessmentSession, error) {
	if !testType.Valid() {
		return nil, apperr.Withf(apperr.CodeUnknownTestType, "unknown test type %q", testType)
	}

	profile, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !profile.IsPremium && s.cfg.FreeTestLimit > 0 {
		done, err := s.sessions.CountCompleted(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("count completed: %w", err)
		}
		if done >= s.cfg.FreeTestLimit {
			return nil, apperr.Withf(apperr.CodeFreeTierLimitReached,
				"Free users can only take %d tests. Upgrade to Premium!", s.cfg.FreeTestLimit)
		}
	}

	items, err := s.bank.Select(testType, s.cfg.QuestionsPerTest)
	if err != nil {
		return nil, err
	}

	session := &model.AssessmentSession{
		UserID:   userID,
		TestType: testType,
		Items:    items,
		Answers:  []model.Answer{},
		Status:   model.SessionStatusInProgress,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.log.Info().
		Str("user_id", userID).
		Str("session_id", session.ID.String()).
		Str("test_type", string(testType)).
		Msg("assessment started")
	return session, nil
}

// SubmitAssessment scores the answers, writes the report and applies the
// ledger award. A session can be submitted exactly once.
func (s *AssessmentService) SubmitAssessment(ctx context.Context, sessionID uuid.UUID, userID string, answers []model.Answer) (*model.SubmitResult, error) {
	ctx, span := s.tracer.Start(ctx, "assessment.submit",
		trace.WithAttributes(attribute.String("assessment.session_id", sessionID.String())))
	defer span.End()

	if fields := s.validate.Struct(model.SubmitAssessmentRequest{Answers: answers}); fields != nil {
		return nil, apperr.Wrap(apperr.CodeInvalidSubmission, fmt.Errorf("%v", fields))
	}

	session, err := s.sessions.Get(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session.Completed() {
		return nil, apperr.ErrAssessmentAlreadyCompleted
	}

	profile, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	submitted := append([]model.Answer{}, answers...)
	score := scoring.Score(session.TestType, session.Items, submitted)

	snapshot := *session
	snapshot.Answers = submitted
	rep := s.synth.Synthesize(ctx, *profile, &snapshot, score)

	completedAt := s.now().UTC()
	award, err := s.sessions.Complete(ctx, repository.Completion{
		SessionID:   session.ID,
		UserID:      userID,
		Answers:     submitted,
		Score:       score,
		Report:      rep,
		CompletedAt: completedAt,
	}, gamification.OnAssessmentCompleted)
	if err != nil {
		return nil, err
	}

	s.afterCompletion(ctx, userID, model.ReportSnapshot{Report: rep, CompletedAt: completedAt})
	s.metrics.AssessmentSubmitted(string(session.TestType))
	span.SetAttributes(attribute.String("assessment.test_type", string(session.TestType)))

	s.log.Info().
		Str("user_id", userID).
		Str("session_id", session.ID.String()).
		Float64("score", score).
		Int("xp", award.XPDelta).
		Strs("badges", award.BadgesGranted).
		Msg("assessment completed")

	return &model.SubmitResult{
		Score:         score,
		Report:        rep,
		XPEarned:      award.XPDelta,
		BadgesGranted: award.BadgesGranted,
	}, nil
}

// afterCompletion refreshes the Redis fast lane. Failures only cost a cache
// miss or a late leaderboard update, so they are logged and dropped. The
// snapshot carries its completion time, so a slower concurrent submission
// cannot replace a newer cached report.
func (s *AssessmentService) afterCompletion(ctx context.Context, userID string, snap model.ReportSnapshot) {
	if s.reports != nil {
		if err := s.reports.SetLatest(ctx, userID, snap); err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("cache latest report failed")
		}
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, userID); err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("publish leaderboard event failed")
		}
	}
}

// GetAssessment returns one of the user's sessions.
func (s *AssessmentService) GetAssessment(ctx context.Context, sessionID uuid.UUID, userID string) (*model.AssessmentSession, error) {
	return s.sessions.Get(ctx, sessionID, userID)
}

// History returns the user's completed assessments, newest first.
func (s *AssessmentService) History(ctx context.Context, userID string) ([]model.AssessmentSession, error) {
	sessions, err := s.sessions.ListCompleted(ctx, userID, HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return sessions, nil
}
