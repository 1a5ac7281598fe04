package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/nexosr/career-engine/internal/apperr"
	"github.com/nexosr/career-engine/internal/gamification"
	"github.com/nexosr/career-engine/internal/metrics"
	"github.com/nexosr/career-engine/internal/model"
	"github.com/nexosr/career-engine/internal/questionbank"
	"github.com/nexosr/career-engine/internal/report"
)

type assessmentFixture struct {
	store     *memStore
	reports   *memReportCache
	publisher *memPublisher
	metrics   *metrics.Metrics
	svc       *AssessmentService
}

func newAssessmentFixture(t *testing.T) *assessmentFixture {
	t.Helper()
	f := &assessmentFixture{
		store:     newMemStore(),
		reports:   newMemReportCache(),
		publisher: &memPublisher{},
		metrics:   metrics.New(prometheus.NewRegistry()),
	}
	f.store.addUser(model.UserProfile{ID: "free", Name: "Free User", Age: 17, Segment: model.SegmentStudent, Interests: []string{"Technology"}})
	f.store.addUser(model.UserProfile{ID: "premium", Name: "Premium User", Age: 30, Segment: model.SegmentProfessional, IsPremium: true})

	// Model disabled: every report is the scripted fallback.
	synth := report.NewSynthesizer(report.NewResilientSource(nil, nil, f.metrics, zerolog.Nop()))

	f.svc = NewAssessmentService(
		AssessmentConfig{QuestionsPerTest: questionbank.DefaultCount, FreeTestLimit: 2},
		questionbank.NewSeeded(11),
		f.store, f.store, synth, f.reports, f.publisher, f.metrics, zerolog.Nop(),
	)
	return f
}

func correctAnswers(items []model.Item) []model.Answer {
	out := make([]model.Answer, len(items))
	for i, it := range items {
		out[i] = model.Answer{QuestionID: it.ID, Selected: *it.CorrectIndex}
	}
	return out
}

func (f *assessmentFixture) complete(t *testing.T, userID string, tt model.TestType) {
	t.Helper()
	s, err := f.svc.StartAssessment(context.Background(), userID, tt)
	if err != nil {
		t.Fatalf("StartAssessment: %v", err)
	}
	if _, err := f.svc.SubmitAssessment(context.Background(), s.ID, userID, []model.Answer{{QuestionID: s.Items[0].ID, Selected: 2}}); err != nil {
		t.Fatalf("SubmitAssessment: %v", err)
	}
}

func TestStartAssessment(t *testing.T) {
	f := newAssessmentFixture(t)

	s, err := f.svc.StartAssessment(context.Background(), "free", model.TestTypeCareerInterest)
	if err != nil {
		t.Fatalf("StartAssessment: %v", err)
	}
	if len(s.Items) != questionbank.DefaultCount {
		t.Errorf("items = %d, want %d", len(s.Items), questionbank.DefaultCount)
	}
	if s.Status != model.SessionStatusInProgress || s.Completed() {
		t.Errorf("status = %s, want IN_PROGRESS", s.Status)
	}

	stored, err := f.store.Get(context.Background(), s.ID, "free")
	if err != nil {
		t.Fatalf("stored session missing: %v", err)
	}
	if stored.Items[3].ID != s.Items[3].ID {
		t.Error("stored snapshot differs from returned items")
	}
}

func TestStartAssessmentRejectsUnknownType(t *testing.T) {
	f := newAssessmentFixture(t)

	_, err := f.svc.StartAssessment(context.Background(), "free", "numerology")
	if !errors.Is(err, apperr.ErrUnknownTestType) {
		t.Fatalf("expected ErrUnknownTestType, got %v", err)
	}
	if len(f.store.sessions) != 0 {
		t.Fatal("a session was created for an unknown test type")
	}
}

func TestStartAssessmentFreeTierLimit(t *testing.T) {
	f := newAssessmentFixture(t)

	f.complete(t, "free", model.TestTypePersonality)
	f.complete(t, "free", model.TestTypeSkillAssessment)

	_, err := f.svc.StartAssessment(context.Background(), "free", model.TestTypeAptitude)
	if !errors.Is(err, apperr.ErrFreeTierLimitReached) {
		t.Fatalf("expected ErrFreeTierLimitReached, got %v", err)
	}

	f.complete(t, "premium", model.TestTypePersonality)
	f.complete(t, "premium", model.TestTypePersonality)
	if _, err := f.svc.StartAssessment(context.Background(), "premium", model.TestTypeAptitude); err != nil {
		t.Fatalf("premium user blocked: %v", err)
	}
}

func TestSubmitAssessment(t *testing.T) {
	f := newAssessmentFixture(t)
	ctx := context.Background()

	s, err := f.svc.StartAssessment(ctx, "free", model.TestTypeAptitude)
	if err != nil {
		t.Fatalf("StartAssessment: %v", err)
	}

	res, err := f.svc.SubmitAssessment(ctx, s.ID, "free", correctAnswers(s.Items))
	if err != nil {
		t.Fatalf("SubmitAssessment: %v", err)
	}

	if res.Score != 100 {
		t.Errorf("score = %v, want 100", res.Score)
	}
	if res.XPEarned != gamification.AssessmentXP {
		t.Errorf("xp = %d, want %d", res.XPEarned, gamification.AssessmentXP)
	}
	if len(res.BadgesGranted) != 1 || res.BadgesGranted[0] != gamification.BadgeCareerExplorer {
		t.Errorf("badges = %v, want Career Explorer", res.BadgesGranted)
	}
	if len(res.Report.CareerPaths) != model.CareerPathCount || !strings.Contains(res.Report.Summary, "100.0%") {
		t.Errorf("unexpected report: %+v", res.Report)
	}

	p := f.store.profile("free")
	if p.XPPoints != 50 || p.TestsTaken != 1 || !p.HasBadge(gamification.BadgeCareerExplorer) {
		t.Errorf("profile not updated: %+v", p)
	}

	stored, _ := f.store.Get(ctx, s.ID, "free")
	if !stored.Completed() || stored.Score == nil || *stored.Score != 100 || stored.Report == nil || stored.CompletedAt == nil {
		t.Errorf("session not completed: %+v", stored)
	}

	if _, ok := f.reports.reports["free"]; !ok {
		t.Error("latest report not cached")
	}
	if got := f.publisher.published(); len(got) != 1 || got[0] != "free" {
		t.Errorf("published = %v, want [free]", got)
	}
	if got := testutil.ToFloat64(f.metrics.AssessmentsSubmitted.WithLabelValues("aptitude")); got != 1 {
		t.Errorf("submitted metric = %v, want 1", got)
	}
}

func TestSubmitAssessmentTwice(t *testing.T) {
	f := newAssessmentFixture(t)
	ctx := context.Background()

	s, _ := f.svc.StartAssessment(ctx, "free", model.TestTypeAptitude)
	if _, err := f.svc.SubmitAssessment(ctx, s.ID, "free", correctAnswers(s.Items)); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	before, _ := f.store.Get(ctx, s.ID, "free")

	_, err := f.svc.SubmitAssessment(ctx, s.ID, "free", nil)
	if !errors.Is(err, apperr.ErrAssessmentAlreadyCompleted) {
		t.Fatalf("expected ErrAssessmentAlreadyCompleted, got %v", err)
	}

	after, _ := f.store.Get(ctx, s.ID, "free")
	if *after.Score != *before.Score || after.Report.Summary != before.Report.Summary || len(after.Answers) != len(before.Answers) {
		t.Fatal("second submission altered the stored result")
	}
	if p := f.store.profile("free"); p.XPPoints != 50 || p.TestsTaken != 1 {
		t.Fatalf("ledger applied twice: %+v", p)
	}
}

func TestSubmitAssessmentConcurrentExactlyOnce(t *testing.T) {
	f := newAssessmentFixture(t)
	ctx := context.Background()

	s, _ := f.svc.StartAssessment(ctx, "premium", model.TestTypePersonality)
	answers := []model.Answer{{QuestionID: s.Items[0].ID, Selected: 4}}

	const racers = 12
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.SubmitAssessment(ctx, s.ID, "premium", answers)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, apperr.ErrAssessmentAlreadyCompleted):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if successes != 1 || conflicts != racers-1 {
		t.Fatalf("successes = %d conflicts = %d", successes, conflicts)
	}
	if p := f.store.profile("premium"); p.XPPoints != gamification.AssessmentXP || p.TestsTaken != 1 {
		t.Fatalf("ledger applied more than once: %+v", p)
	}
}

func TestSubmitAssessmentErrors(t *testing.T) {
	f := newAssessmentFixture(t)
	ctx := context.Background()
	s, _ := f.svc.StartAssessment(ctx, "free", model.TestTypePersonality)

	tests := []struct {
		name      string
		sessionID uuid.UUID
		userID    string
		answers   []model.Answer
		want      error
	}{
		{"unknown session", uuid.New(), "free", nil, apperr.ErrSessionNotFound},
		{"someone else's session", s.ID, "premium", nil, apperr.ErrSessionNotFound},
		{"negative selection", s.ID, "free", []model.Answer{{QuestionID: 1, Selected: -2}}, apperr.ErrInvalidSubmission},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.SubmitAssessment(ctx, tt.sessionID, tt.userID, tt.answers)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}

	if stored, _ := f.store.Get(ctx, s.ID, "free"); stored.Completed() {
		t.Fatal("rejected submissions completed the session")
	}
}

func TestSubmitAssessmentRejectsRepeatedQuestion(t *testing.T) {
	f := newAssessmentFixture(t)
	ctx := context.Background()
	s, _ := f.svc.StartAssessment(ctx, "free", model.TestTypeAptitude)

	first := model.Answer{QuestionID: s.Items[0].ID, Selected: *s.Items[0].CorrectIndex}
	answers := make([]model.Answer, len(s.Items))
	for i := range answers {
		answers[i] = first
	}

	res, err := f.svc.SubmitAssessment(ctx, s.ID, "free", answers)
	if !errors.Is(err, apperr.ErrInvalidSubmission) {
		t.Fatalf("expected ErrInvalidSubmission, got result %+v err %v", res, err)
	}
	if stored, _ := f.store.Get(ctx, s.ID, "free"); stored.Completed() {
		t.Fatal("repeated answers completed the session")
	}
	if p := f.store.profile("free"); p.XPPoints != 0 {
		t.Fatalf("xp awarded for rejected submission: %+v", p)
	}
}

func TestSubmitAssessmentKeepsNewestCachedReport(t *testing.T) {
	f := newAssessmentFixture(t)
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	newer, _ := f.svc.StartAssessment(ctx, "premium", model.TestTypeAptitude)
	older, _ := f.svc.StartAssessment(ctx, "premium", model.TestTypeAptitude)

	// The newer completion refreshes the cache first; the older one's
	// write arrives late and must not win.
	f.svc.now = func() time.Time { return base.Add(time.Second) }
	if _, err := f.svc.SubmitAssessment(ctx, newer.ID, "premium", correctAnswers(newer.Items)); err != nil {
		t.Fatalf("submit newer: %v", err)
	}
	f.svc.now = func() time.Time { return base }
	if _, err := f.svc.SubmitAssessment(ctx, older.ID, "premium", nil); err != nil {
		t.Fatalf("submit older: %v", err)
	}

	got, err := f.reports.GetLatest(ctx, "premium")
	if err != nil || got == nil {
		t.Fatalf("GetLatest = %v, %v", got, err)
	}
	if !strings.Contains(got.Summary, "100.0%") {
		t.Fatalf("cached summary %q, want the newer 100%% report", got.Summary)
	}
	if f.reports.sets != 2 {
		t.Errorf("cache writes = %d, want 2", f.reports.sets)
	}
}

func TestSubmitAssessmentWithNoAnswers(t *testing.T) {
	f := newAssessmentFixture(t)
	ctx := context.Background()
	s, _ := f.svc.StartAssessment(ctx, "free", model.TestTypeSkillAssessment)

	res, err := f.svc.SubmitAssessment(ctx, s.ID, "free", nil)
	if err != nil {
		t.Fatalf("SubmitAssessment: %v", err)
	}
	if res.Score != 0 {
		t.Fatalf("score = %v, want 0", res.Score)
	}
}

func TestHistoryNewestFirst(t *testing.T) {
	f := newAssessmentFixture(t)
	f.complete(t, "premium", model.TestTypePersonality)
	f.complete(t, "premium", model.TestTypeAptitude)

	// An unfinished session must not show up.
	if _, err := f.svc.StartAssessment(context.Background(), "premium", model.TestTypeCareerInterest); err != nil {
		t.Fatal(err)
	}

	history, err := f.svc.History(context.Background(), "premium")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history = %d sessions, want 2", len(history))
	}
	if history[0].CompletedAt.Before(*history[1].CompletedAt) {
		t.Error("history is not newest first")
	}
}
