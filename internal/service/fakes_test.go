package service

import (
	"context"
	"errors"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nexosr/career-engine/internal/apperr"
	"github.com/nexosr/career-engine/internal/cache"
	"github.com/nexosr/career-engine/internal/model"
	"github.com/nexosr/career-engine/internal/repository"
)

// memStore is an in-memory stand-in for the Postgres repositories. It
// implements every store interface and applies awards atomically, like the
// transactional repositories do.
type memStore struct {
	mu            sync.Mutex
	users         map[string]*model.UserProfile
	sessions      map[uuid.UUID]*model.AssessmentSession
	mentors       []model.Mentor
	opportunities []model.Opportunity
	bookings      []model.MentorSession
	chats         []model.ChatMessage
	failChat      bool
	seq           int
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[string]*model.UserProfile),
		sessions: make(map[uuid.UUID]*model.AssessmentSession),
	}
}

func (m *memStore) addUser(p model.UserProfile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[p.ID] = &p
}

func (m *memStore) profile(id string) model.UserProfile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneProfile(*m.users[id])
}

func cloneProfile(p model.UserProfile) model.UserProfile {
	p.Badges = append([]string(nil), p.Badges...)
	p.Interests = append([]string(nil), p.Interests...)
	return p
}

func cloneSession(s model.AssessmentSession) model.AssessmentSession {
	s.Items = append([]model.Item(nil), s.Items...)
	s.Answers = append([]model.Answer(nil), s.Answers...)
	if s.Report != nil {
		r := *s.Report
		s.Report = &r
	}
	return s
}

// ─── UserStore ─────────────────────────────────────────────────────────

func (m *memStore) GetProfile(_ context.Context, userID string) (*model.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.users[userID]
	if !ok {
		return nil, apperr.ErrUserNotFound
	}
	out := cloneProfile(*p)
	return &out, nil
}

func (m *memStore) ProfilesByIDs(_ context.Context, ids []string) (map[string]model.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]model.UserProfile)
	for _, id := range ids {
		if p, ok := m.users[id]; ok {
			out[id] = cloneProfile(*p)
		}
	}
	return out, nil
}

func (m *memStore) TopByXP(_ context.Context, limit int) ([]model.LeaderboardEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []model.UserProfile
	for _, p := range m.users {
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].XPPoints != all[j].XPPoints {
			return all[i].XPPoints > all[j].XPPoints
		}
		return all[i].ID < all[j].ID
	})

	var out []model.LeaderboardEntry
	for i, p := range all {
		if i == limit {
			break
		}
		out = append(out, model.LeaderboardEntry{Rank: i + 1, UserID: p.ID, Name: p.Name, XPPoints: p.XPPoints, Badges: p.Badges, Segment: p.Segment})
	}
	return out, nil
}

// ─── AssessmentStore ───────────────────────────────────────────────────

func (m *memStore) Create(_ context.Context, s *model.AssessmentSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	stored := cloneSession(*s)
	m.sessions[s.ID] = &stored
	return nil
}

func (m *memStore) Get(_ context.Context, sessionID uuid.UUID, userID string) (*model.AssessmentSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok || s.UserID != userID {
		return nil, apperr.ErrSessionNotFound
	}
	out := cloneSession(*s)
	return &out, nil
}

func (m *memStore) CountCompleted(_ context.Context, userID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.sessions {
		if s.UserID == userID && s.Completed() {
			n++
		}
	}
	return n, nil
}

func (m *memStore) ListCompleted(_ context.Context, userID string, limit int) ([]model.AssessmentSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.AssessmentSession
	for _, s := range m.sessions {
		if s.UserID == userID && s.Completed() {
			out = append(out, cloneSession(*s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompletedAt.After(*out[j].CompletedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) LatestReport(ctx context.Context, userID string) (*model.ReportSnapshot, error) {
	done, _ := m.ListCompleted(ctx, userID, 1)
	if len(done) == 0 {
		return nil, nil
	}
	return &model.ReportSnapshot{Report: *done[0].Report, CompletedAt: *done[0].CompletedAt}, nil
}

func (m *memStore) Complete(_ context.Context, c repository.Completion, decide repository.AwardFunc) (model.Award, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[c.SessionID]
	if !ok || s.UserID != c.UserID {
		return model.Award{}, apperr.ErrSessionNotFound
	}
	if s.Status != model.SessionStatusInProgress {
		return model.Award{}, apperr.ErrAssessmentAlreadyCompleted
	}
	user, ok := m.users[c.UserID]
	if !ok {
		return model.Award{}, apperr.ErrUserNotFound
	}

	score := c.Score
	rep := c.Report
	at := c.CompletedAt
	s.Answers = append([]model.Answer(nil), c.Answers...)
	s.Score = &score
	s.Report = &rep
	s.Status = model.SessionStatusCompleted
	s.CompletedAt = &at

	award := decide(cloneProfile(*user))
	user.Apply(award)
	user.TestsTaken++
	return award, nil
}

// ─── MentorStore / OpportunityStore ────────────────────────────────────

func (m *memStore) GetApproved(_ context.Context, id string) (*model.Mentor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, mt := range m.mentors {
		if mt.ID == id && mt.Approved {
			out := mt
			return &out, nil
		}
	}
	return nil, apperr.ErrMentorNotFound
}

func (m *memStore) ListApproved(context.Context) ([]model.Mentor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Mentor
	for _, mt := range m.mentors {
		if mt.Approved {
			out = append(out, mt)
		}
	}
	return out, nil
}

func (m *memStore) ListFiltered(_ context.Context, f model.MentorFilter, limit int) ([]model.Mentor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Mentor
	for _, mt := range m.mentors {
		if len(out) == limit {
			break
		}
		if !mt.Approved || (f.Category != "" && mt.Category != f.Category) {
			continue
		}
		if f.Expertise != "" && !slices.Contains(mt.Expertise, f.Expertise) {
			continue
		}
		out = append(out, mt)
	}
	return out, nil
}

func (m *memStore) ListPending(_ context.Context, limit int) ([]model.Mentor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Mentor
	for _, mt := range m.mentors {
		if len(out) == limit {
			break
		}
		if !mt.Approved {
			out = append(out, mt)
		}
	}
	return out, nil
}

func (m *memStore) Apply(_ context.Context, mt *model.Mentor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.mentors {
		if existing.UserID != "" && existing.UserID == mt.UserID {
			return apperr.ErrAlreadyAppliedMentor
		}
	}
	m.seq++
	mt.CreatedAt = time.Unix(int64(m.seq), 0)
	m.mentors = append(m.mentors, *mt)
	return nil
}

func (m *memStore) Approve(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.mentors {
		if m.mentors[i].ID == id {
			m.mentors[i].Approved = true
			return nil
		}
	}
	return apperr.ErrMentorNotFound
}

func (m *memStore) List(context.Context) ([]model.Opportunity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Opportunity(nil), m.opportunities...), nil
}

func (m *memStore) ListByType(_ context.Context, t model.OpportunityType, limit int) ([]model.Opportunity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Opportunity
	for _, o := range m.opportunities {
		if t == "" || o.Type == t {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ─── ChatStore ─────────────────────────────────────────────────────────

func (m *memStore) Append(_ context.Context, msgs ...model.ChatMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failChat {
		return errors.New("postgres: connection refused")
	}
	m.chats = append(m.chats, msgs...)
	return nil
}

func (m *memStore) Recent(_ context.Context, userID string, limit int) ([]model.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var mine []model.ChatMessage
	for _, c := range m.chats {
		if c.UserID == userID {
			mine = append(mine, c)
		}
	}
	if len(mine) > limit {
		mine = mine[len(mine)-limit:]
	}
	return mine, nil
}

// ─── MentorSessionStore ────────────────────────────────────────────────

func (m *memStore) Book(_ context.Context, s *model.MentorSession, decide repository.AwardFunc) (model.Award, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[s.MenteeID]
	if !ok {
		return model.Award{}, apperr.ErrUserNotFound
	}
	s.ID = uuid.New()
	m.seq++
	s.CreatedAt = time.Unix(int64(m.seq), 0)
	m.bookings = append(m.bookings, *s)

	award := decide(cloneProfile(*user))
	user.Apply(award)
	user.MentorSessions++
	return award, nil
}

func (m *memStore) ListForUser(_ context.Context, userID string, limit int) ([]model.MentorSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.MentorSession
	for i := len(m.bookings) - 1; i >= 0 && len(out) < limit; i-- {
		b := m.bookings[i]
		if b.MenteeID == userID || b.MentorID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

// ─── Redis stand-ins ───────────────────────────────────────────────────

// memReportCache mirrors cache.ReportCache: an older snapshot never
// replaces a newer one.
type memReportCache struct {
	mu      sync.Mutex
	reports map[string]model.ReportSnapshot
	sets    int
	failGet bool
}

func newMemReportCache() *memReportCache {
	return &memReportCache{reports: make(map[string]model.ReportSnapshot)}
}

func (c *memReportCache) GetLatest(_ context.Context, userID string) (*model.Report, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet {
		return nil, errors.New("redis: connection refused")
	}
	snap, ok := c.reports[userID]
	if !ok {
		return nil, nil
	}
	return &snap.Report, nil
}

func (c *memReportCache) SetLatest(_ context.Context, userID string, snap model.ReportSnapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if cur, ok := c.reports[userID]; ok && cur.CompletedAt.After(snap.CompletedAt) {
		return nil
	}
	c.reports[userID] = snap
	return nil
}

type memLeaderboard struct {
	ranked []cache.RankedUser
	err    error
}

func (l *memLeaderboard) Top(_ context.Context, limit int) ([]cache.RankedUser, error) {
	if l.err != nil {
		return nil, l.err
	}
	return l.ranked[:min(limit, len(l.ranked))], nil
}

func (l *memLeaderboard) Rank(_ context.Context, userID string) (int, error) {
	for _, r := range l.ranked {
		if r.UserID == userID {
			return r.Rank, nil
		}
	}
	return 0, nil
}

type memPublisher struct {
	mu  sync.Mutex
	ids []string
}

func (p *memPublisher) Publish(_ context.Context, userID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ids = append(p.ids, userID)
	return nil
}

func (p *memPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.ids...)
}
