package report

import (
	"context"
	"fmt"

	"github.com/nexosr/career-engine/internal/model"
)

// FallbackSource returns the scripted report used whenever the model cannot
// answer. Only the summary depends on the input.
type FallbackSource struct{}

func (FallbackSource) Generate(_ context.Context, req Request) (model.Report, error) {
	return Fallback(req.Score), nil
}

// Fallback builds the scripted report for score. Every call returns fresh
// slices.
func Fallback(score float64) model.Report {
	return model.Report{
		Strengths:              []string{"Analytical thinking", "Problem-solving", "Attention to detail"},
		Weaknesses:             []string{"Time management", "Public speaking"},
		Interests:              []string{"Technology", "Innovation"},
		PredictedLearningPath:  "Focus on building technical and soft skills",
		SubjectRecommendations: []string{"Mathematics", "Computer Science", "Communication"},
		SkillGaps:              []string{"Leadership", "Networking"},
		CareerPaths: []model.CareerPath{
			{Title: "Software Developer", MatchScore: 85, Description: "Build software applications"},
			{Title: "Data Analyst", MatchScore: 80, Description: "Analyze data for insights"},
			{Title: "Product Manager", MatchScore: 75, Description: "Lead product development"},
			{Title: "UX Designer", MatchScore: 70, Description: "Design user experiences"},
			{Title: "Business Analyst", MatchScore: 65, Description: "Bridge business and tech"},
		},
		MentorCategories: []string{"Technology", "Career Coaching"},
		Summary:          fmt.Sprintf("Based on your assessment score of %.1f%%, you show strong potential in analytical fields.", score),
	}
}
