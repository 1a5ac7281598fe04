package service

import (
	"github.com/nexosr/career-engine/internal/cache"
	"github.com/nexosr/career-engine/internal/chat"
	"github.com/nexosr/career-engine/internal/report"
	"github.com/nexosr/career-engine/internal/repository"
	"github.com/nexosr/career-engine/internal/worker"
)

// Production collaborators must keep satisfying the service ports.
var (
	_ UserStore            = (*repository.UserRepository)(nil)
	_ AssessmentStore      = (*repository.AssessmentRepository)(nil)
	_ MentorStore          = (*repository.MentorRepository)(nil)
	_ OpportunityStore     = (*repository.OpportunityRepository)(nil)
	_ MentorSessionStore   = (*repository.MentorSessionRepository)(nil)
	_ ChatStore            = (*repository.ChatRepository)(nil)
	_ ReportCache          = (*cache.ReportCache)(nil)
	_ LeaderboardReader    = (*cache.LeaderboardCache)(nil)
	_ LeaderboardPublisher = (*worker.LeaderboardPublisher)(nil)
	_ ReportSynthesizer    = (*report.Synthesizer)(nil)
	_ ChatResponder        = (*chat.ResilientSource)(nil)
)
