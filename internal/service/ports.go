package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/nexosr/career-engine/internal/cache"
	"github.com/nexosr/career-engine/internal/chat"
	"github.com/nexosr/career-engine/internal/model"
	"github.com/nexosr/career-engine/internal/repository"
)

// The interfaces below are the collaborators the services need. The pgx
// repositories, the Redis caches and the leaderboard publisher satisfy them
// in production.

type UserStore interface {
	GetProfile(ctx context.Context, userID string) (*model.UserProfile, error)
	ProfilesByIDs(ctx context.Context, ids []string) (map[string]model.UserProfile, error)
	TopByXP(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)
}

type AssessmentStore interface {
	Create(ctx context.Context, s *model.AssessmentSession) error
	Get(ctx context.Context, sessionID uuid.UUID, userID string) (*model.AssessmentSession, error)
	CountCompleted(ctx context.Context, userID string) (int, error)
	ListCompleted(ctx context.Context, userID string, limit int) ([]model.AssessmentSession, error)
	LatestReport(ctx context.Context, userID string) (*model.ReportSnapshot, error)
	Complete(ctx context.Context, c repository.Completion, decide repository.AwardFunc) (model.Award, error)
}

type MentorStore interface {
	GetApproved(ctx context.Context, id string) (*model.Mentor, error)
	ListApproved(ctx context.Context) ([]model.Mentor, error)
	ListFiltered(ctx context.Context, f model.MentorFilter, limit int) ([]model.Mentor, error)
	ListPending(ctx context.Context, limit int) ([]model.Mentor, error)
	Apply(ctx context.Context, m *model.Mentor) error
	Approve(ctx context.Context, id string) error
}

type OpportunityStore interface {
	List(ctx context.Context) ([]model.Opportunity, error)
	ListByType(ctx context.Context, t model.OpportunityType, limit int) ([]model.Opportunity, error)
}

// ChatStore keeps each user's conversation with the career companion.
type ChatStore interface {
	Append(ctx context.Context, msgs ...model.ChatMessage) error
	Recent(ctx context.Context, userID string, limit int) ([]model.ChatMessage, error)
}

type MentorSessionStore interface {
	Book(ctx context.Context, s *model.MentorSession, decide repository.AwardFunc) (model.Award, error)
	ListForUser(ctx context.Context, userID string, limit int) ([]model.MentorSession, error)
}

// ReportCache is the fast lane for each user's latest report. A miss is
// (nil, nil). SetLatest never replaces a snapshot with an older one.
type ReportCache interface {
	GetLatest(ctx context.Context, userID string) (*model.Report, error)
	SetLatest(ctx context.Context, userID string, snap model.ReportSnapshot) error
}

type LeaderboardReader interface {
	Top(ctx context.Context, limit int) ([]cache.RankedUser, error)
	Rank(ctx context.Context, userID string) (int, error)
}

// LeaderboardPublisher queues a user whose XP changed.
type LeaderboardPublisher interface {
	Publish(ctx context.Context, userID string) error
}

// ChatResponder never fails; see chat.ResilientSource.
type ChatResponder interface {
	Resolve(ctx context.Context, req chat.Request) (reply, source string)
}

// ReportSynthesizer never fails; see report.Synthesizer.
type ReportSynthesizer interface {
	Synthesize(ctx context.Context, profile model.UserProfile, session *model.AssessmentSession, score float64) model.Report
}
