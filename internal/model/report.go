package model

import "time"

// CareerPathCount is the number of career paths every report carries.
const CareerPathCount = 5

// CareerPath is a ranked career suggestion.
type CareerPath struct {
	Title       string `json:"title" validate:"required"`
	MatchScore  int    `json:"match_score" validate:"gte=0,lte=100"`
	Description string `json:"description" validate:"required"`
}

// Report is the structured career report produced for a completed
// assessment. Field names form the wire contract with the reasoning model.
type Report struct {
	Strengths              []string     `json:"strengths" validate:"min=1,dive,required"`
	Weaknesses             []string     `json:"weaknesses" validate:"min=1,dive,required"`
	Interests              []string     `json:"interests" validate:"min=1"`
	PredictedLearningPath  string       `json:"predicted_learning_path" validate:"required"`
	SubjectRecommendations []string     `json:"subject_recommendations" validate:"min=1"`
	SkillGaps              []string     `json:"skill_gaps" validate:"min=1"`
	CareerPaths            []CareerPath `json:"career_paths" validate:"len=5,dive"`
	MentorCategories       []string     `json:"mentor_categories" validate:"min=1"`
	Summary                string       `json:"summary" validate:"required"`
}

// ReportSnapshot is a report stamped with the completion time of the
// assessment that produced it.
type ReportSnapshot struct {
	Report      Report    `json:"report"`
	CompletedAt time.Time `json:"completed_at"`
}
