package validator

import (
	"testing"

	"github.com/nexosr/career-engine/internal/model"
)

func validReport() model.Report {
	paths := make([]model.CareerPath, model.CareerPathCount)
	for i := range paths {
		paths[i] = model.CareerPath{Title: "Engineer", MatchScore: 80 - i*5, Description: "Builds things"}
	}
	return model.Report{
		Strengths:              []string{"Focus"},
		Weaknesses:             []string{"Delegation"},
		Interests:              []string{"Technology"},
		PredictedLearningPath:  "Backend first",
		SubjectRecommendations: []string{"Mathematics"},
		SkillGaps:              []string{"Networking"},
		CareerPaths:            paths,
		MentorCategories:       []string{"Technology"},
		Summary:                "Solid.",
	}
}

func TestStructValidReport(t *testing.T) {
	r := validReport()
	if errs := Default().Struct(r); errs != nil {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestStructReportsJSONFieldPaths(t *testing.T) {
	r := validReport()
	r.Strengths = nil
	r.CareerPaths[2].MatchScore = 140

	errs := New().Struct(r)
	if _, ok := errs["strengths"]; !ok {
		t.Errorf("expected error for strengths, got %v", errs)
	}
	if _, ok := errs["career_paths[2].match_score"]; !ok {
		t.Errorf("expected error for career_paths[2].match_score, got %v", errs)
	}
}

func TestStructWrongCareerPathCount(t *testing.T) {
	r := validReport()
	r.CareerPaths = r.CareerPaths[:3]

	if err := New().Validate(r); err == nil {
		t.Fatal("expected validation error for 3 career paths")
	}
}

func TestStructNegativeAnswer(t *testing.T) {
	req := model.SubmitAssessmentRequest{Answers: []model.Answer{{QuestionID: 1, Selected: -1}}}

	errs := New().Struct(req)
	if _, ok := errs["answers[0].selected"]; !ok {
		t.Fatalf("expected error for answers[0].selected, got %v", errs)
	}
}
