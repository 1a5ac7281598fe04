// Package engine builds the career engine's services from configuration
// and the shared Postgres and Redis clients. Transports and commands get
// every service from New instead of wiring repositories themselves.
package engine

import (
	"fmt"
	"math/rand/v2"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/nexosr/career-engine/internal/cache"
	"github.com/nexosr/career-engine/internal/chat"
	"github.com/nexosr/career-engine/internal/config"
	"github.com/nexosr/career-engine/internal/llm"
	"github.com/nexosr/career-engine/internal/metrics"
	"github.com/nexosr/career-engine/internal/questionbank"
	"github.com/nexosr/career-engine/internal/report"
	"github.com/nexosr/career-engine/internal/repository"
	"github.com/nexosr/career-engine/internal/service"
	"github.com/nexosr/career-engine/internal/worker"
)

// Engine holds the wired services.
type Engine struct {
	Assessments     *service.AssessmentService
	Recommendations *service.RecommendationService
	Mentorship      *service.MentorshipService
	Gamification    *service.GamificationService
	Dashboard       *service.DashboardService
	Chat            *service.ChatService

	Synthesizer *report.Synthesizer
	Metrics     *metrics.Metrics

	// ModelEnabled reports whether reports and chat try the reasoning
	// model before falling back.
	ModelEnabled bool
}

// New wires every service. reg may be nil to skip metrics. The model
// client is built only when cfg carries an API key; otherwise reports and
// chat replies always come from the fallbacks.
func New(cfg *config.Config, pool *pgxpool.Pool, rdb *redis.Client, reg prometheus.Registerer, log zerolog.Logger) (*Engine, error) {
	var m *metrics.Metrics
	if reg != nil {
		m = metrics.New(reg)
	}

	client := NewModelClient(cfg, m, log)
	synth, err := NewSynthesizer(client, m, log)
	if err != nil {
		return nil, err
	}
	responder := NewChatResponder(client, m, log)

	// ─── Repositories ──────────────────────────────────────────────────
	users := repository.NewUserRepository(pool)
	sessions := repository.NewAssessmentRepository(pool)
	mentors := repository.NewMentorRepository(pool)
	opportunities := repository.NewOpportunityRepository(pool)
	bookings := repository.NewMentorSessionRepository(pool)
	chats := repository.NewChatRepository(pool)

	// ─── Redis Fast Lane ───────────────────────────────────────────────
	reports := cache.NewReportCache(rdb, cfg.ReportCacheTTL)
	board := cache.NewLeaderboardCache(rdb)
	publisher := worker.NewLeaderboardPublisher(rdb)

	bank := questionbank.New(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))

	return &Engine{
		Assessments: service.NewAssessmentService(
			service.AssessmentConfig{QuestionsPerTest: cfg.QuestionsPerTest, FreeTestLimit: cfg.FreeTestLimit},
			bank, users, sessions, synth, reports, publisher, m, log,
		),
		Recommendations: service.NewRecommendationService(users, sessions, reports, mentors, opportunities, log),
		Mentorship:      service.NewMentorshipService(users, mentors, bookings, publisher, log),
		Gamification:    service.NewGamificationService(users, board, cfg.LeaderboardSize, log),
		Dashboard:       service.NewDashboardService(users, sessions, bookings),
		Chat:            service.NewChatService(users, sessions, chats, responder, log),
		Synthesizer:     synth,
		Metrics:         m,
		ModelEnabled:    client != nil,
	}, nil
}

// NewModelClient returns the shared reasoning-model client, or nil when
// the model is disabled.
func NewModelClient(cfg *config.Config, m *metrics.Metrics, log zerolog.Logger) *llm.Client {
	if !cfg.ModelEnabled() {
		return nil
	}
	return llm.New(llm.Config{
		APIKey:        cfg.LLMAPIKey,
		BaseURL:       cfg.LLMBaseURL,
		Model:         cfg.LLMModel,
		Timeout:       cfg.LLMTimeout,
		MaxRetries:    cfg.LLMMaxRetries,
		RatePerMinute: cfg.LLMRatePerMinute,
	}, m, log)
}

// NewSynthesizer builds the report synthesizer. A nil client gives a
// fallback-only synthesizer.
func NewSynthesizer(client *llm.Client, m *metrics.Metrics, log zerolog.Logger) (*report.Synthesizer, error) {
	// A nil *ModelSource stored in the interface would not compare equal
	// to nil, so primary stays untyped until the model is enabled.
	var primary report.Source
	if client != nil {
		src, err := report.NewModelSourceWithClient(client)
		if err != nil {
			return nil, fmt.Errorf("build report model source: %w", err)
		}
		primary = src
	}
	return report.NewSynthesizer(report.NewResilientSource(primary, report.FallbackSource{}, m, log)), nil
}

// NewChatResponder builds the chat responder. A nil client answers from
// keywords only.
func NewChatResponder(client *llm.Client, m *metrics.Metrics, log zerolog.Logger) *chat.ResilientSource {
	var primary chat.Source
	if client != nil {
		primary = chat.NewModelSource(client)
	}
	return chat.NewResilientSource(primary, chat.KeywordSource{}, m, log)
}
