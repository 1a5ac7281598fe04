package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nexosr/career-engine/internal/model"
	"github.com/nexosr/career-engine/internal/report"
)

func seedCompleted(store *memStore, userID string, rep model.Report, score float64, at time.Time) {
	store.mu.Lock()
	defer store.mu.Unlock()
	id := uuid.New()
	store.sessions[id] = &model.AssessmentSession{
		ID: id, UserID: userID, TestType: model.TestTypeCareerInterest,
		Score: &score, Report: &rep, Status: model.SessionStatusCompleted, CompletedAt: &at,
	}
}

func newRecommendationFixture() (*memStore, *memReportCache, *RecommendationService) {
	store := newMemStore()
	store.addUser(model.UserProfile{ID: "u1", Name: "Ravi", Interests: []string{"Design"}})
	store.mentors = []model.Mentor{
		{ID: "m-tech", Name: "Tech", Category: "Technology", Approved: true},
		{ID: "m-fin", Name: "Finance", Category: "Finance", Approved: true},
		{ID: "m-design", Name: "Design", Category: "Creative", Expertise: []string{"Design"}, Approved: true},
		{ID: "m-pending", Name: "Pending", Category: "Technology", Approved: false},
	}
	store.opportunities = []model.Opportunity{
		{ID: "o-math", Tags: []string{"Mathematics"}},
		{ID: "o-design", Tags: []string{"Design"}},
		{ID: "o-law", Tags: []string{"Law"}},
	}
	reports := newMemReportCache()
	svc := NewRecommendationService(store, store, reports, store, store, zerolog.Nop())
	return store, reports, svc
}

func ids[T any](items []T, id func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = id(it)
	}
	return out
}

func TestRecommendMentorsFromStoredReportRefillsCache(t *testing.T) {
	store, reports, svc := newRecommendationFixture()
	rep := report.Fallback(70)
	rep.MentorCategories = []string{"Technology"}
	seedCompleted(store, "u1", rep, 70, time.Now())

	mentors, err := svc.RecommendMentors(context.Background(), "u1")
	if err != nil {
		t.Fatalf("RecommendMentors: %v", err)
	}

	got := ids(mentors, func(m model.Mentor) string { return m.ID })
	if len(got) != 2 || got[0] != "m-tech" || got[1] != "m-design" {
		t.Fatalf("mentors = %v, want [m-tech m-design]", got)
	}
	if reports.sets != 1 {
		t.Errorf("cache refills = %d, want 1", reports.sets)
	}
}

func TestRecommendUsesCachedReport(t *testing.T) {
	store, reports, svc := newRecommendationFixture()

	stored := report.Fallback(10)
	stored.MentorCategories = []string{"Technology"}
	seedCompleted(store, "u1", stored, 10, time.Now())

	cached := report.Fallback(10)
	cached.MentorCategories = []string{"Finance"}
	reports.reports["u1"] = model.ReportSnapshot{Report: cached, CompletedAt: time.Now()}

	mentors, err := svc.RecommendMentors(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}
	got := ids(mentors, func(m model.Mentor) string { return m.ID })
	if len(got) != 2 || got[0] != "m-fin" {
		t.Fatalf("mentors = %v, want the cached report to drive matching", got)
	}
}

func TestRecommendSurvivesCacheOutage(t *testing.T) {
	store, reports, svc := newRecommendationFixture()
	reports.failGet = true
	rep := report.Fallback(10)
	rep.SubjectRecommendations = []string{"Mathematics"}
	seedCompleted(store, "u1", rep, 10, time.Now())

	opps, err := svc.RecommendOpportunities(context.Background(), "u1")
	if err != nil {
		t.Fatalf("RecommendOpportunities: %v", err)
	}
	got := ids(opps, func(o model.Opportunity) string { return o.ID })
	if len(got) != 2 || got[0] != "o-math" || got[1] != "o-design" {
		t.Fatalf("opportunities = %v, want [o-math o-design]", got)
	}
}

func TestRecommendWithoutAssessment(t *testing.T) {
	_, _, svc := newRecommendationFixture()

	mentors, err := svc.RecommendMentors(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}
	if got := ids(mentors, func(m model.Mentor) string { return m.ID }); len(got) != 1 || got[0] != "m-design" {
		t.Fatalf("mentors = %v, want interests alone to match m-design", got)
	}
}

func TestOpportunitiesByType(t *testing.T) {
	store, _, svc := newRecommendationFixture()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store.opportunities = []model.Opportunity{
		{ID: "old-course", Type: model.OpportunityCourse, CreatedAt: base},
		{ID: "intern", Type: model.OpportunityInternship, CreatedAt: base.Add(time.Hour)},
		{ID: "new-course", Type: model.OpportunityCourse, CreatedAt: base.Add(2 * time.Hour)},
	}
	for i := 0; i < OpportunityBrowseLimit+5; i++ {
		store.opportunities = append(store.opportunities, model.Opportunity{ID: "p", Type: model.OpportunityProject, CreatedAt: base.Add(-time.Hour)})
	}

	tests := []struct {
		name string
		typ  model.OpportunityType
		want []string
	}{
		{"courses newest first", model.OpportunityCourse, []string{"new-course", "old-course"}},
		{"internships", model.OpportunityInternship, []string{"intern"}},
		{"unknown type", "bootcamp", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Opportunities(context.Background(), tt.typ)
			if err != nil {
				t.Fatalf("Opportunities: %v", err)
			}
			if gotIDs := ids(got, func(o model.Opportunity) string { return o.ID }); fmt.Sprint(gotIDs) != fmt.Sprint(tt.want) {
				t.Errorf("opportunities = %v, want %v", gotIDs, tt.want)
			}
		})
	}

	all, err := svc.Opportunities(context.Background(), "")
	if err != nil {
		t.Fatalf("Opportunities: %v", err)
	}
	if len(all) != OpportunityBrowseLimit || all[0].ID != "new-course" {
		t.Errorf("unfiltered = %d, first %q; want %d newest first", len(all), all[0].ID, OpportunityBrowseLimit)
	}
}
