package model

import (
	"time"

	"github.com/google/uuid"
)

// TestType identifies a psychometric test family.
type TestType string

const (
	TestTypeAptitude        TestType = "aptitude"
	TestTypePersonality     TestType = "personality"
	TestTypeCareerInterest  TestType = "career_interest"
	TestTypeSkillAssessment TestType = "skill_assessment"
)

// TestTypes lists every known test type in display order.
var TestTypes = []TestType{
	TestTypeAptitude,
	TestTypePersonality,
	TestTypeCareerInterest,
	TestTypeSkillAssessment,
}

// Valid reports whether t is one of the known test types.
func (t TestType) Valid() bool {
	for _, known := range TestTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Objective reports whether items of this type carry a correct answer.
func (t TestType) Objective() bool {
	return t == TestTypeAptitude
}

// Item is a single catalog question. CorrectIndex is set only for
// objectively scored types; Category, Trait, Field and Skill are descriptive
// tags used by reporting.
type Item struct {
	ID           int      `json:"id"`
	Prompt       string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex *int     `json:"correct,omitempty"`
	Category     string   `json:"category,omitempty"`
	Trait        string   `json:"trait,omitempty"`
	Field        string   `json:"field,omitempty"`
	Skill        string   `json:"skill,omitempty"`
}

// Clone returns a deep copy so catalog entries are never shared.
func (it Item) Clone() Item {
	out := it
	out.Options = append([]string(nil), it.Options...)
	if it.CorrectIndex != nil {
		idx := *it.CorrectIndex
		out.CorrectIndex = &idx
	}
	return out
}

// Answer selects an option index for a question.
type Answer struct {
	QuestionID int `json:"question_id" validate:"gte=0"`
	Selected   int `json:"selected" validate:"gte=0"`
}

// SessionStatus enumerates assessment session states.
type SessionStatus string

const (
	SessionStatusInProgress SessionStatus = "IN_PROGRESS"
	SessionStatusCompleted  SessionStatus = "COMPLETED"
)

// AssessmentSession is a single attempt at a test. Items are snapshotted at
// creation; answers, score and report are written once on completion.
type AssessmentSession struct {
	ID          uuid.UUID     `json:"id"`
	UserID      string        `json:"user_id"`
	TestType    TestType      `json:"test_type"`
	Items       []Item        `json:"questions"`
	Answers     []Answer      `json:"answers"`
	Score       *float64      `json:"score,omitempty"`
	Report      *Report       `json:"ai_report,omitempty"`
	Status      SessionStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
}

// Completed reports whether the session has been submitted.
func (s *AssessmentSession) Completed() bool {
	return s.Status == SessionStatusCompleted
}

// SubmitAssessmentRequest is the payload for submitting answers.
type SubmitAssessmentRequest struct {
	Answers []Answer `json:"answers" validate:"unique=QuestionID,dive"`
}

// SubmitResult is returned after a successful submission.
type SubmitResult struct {
	Score         float64  `json:"score"`
	Report        Report   `json:"ai_report"`
	XPEarned      int      `json:"xp_earned"`
	BadgesGranted []string `json:"badges_granted,omitempty"`
}
