package model

import "time"

// OpportunityType classifies an opportunity.
type OpportunityType string

const (
	OpportunityInternship    OpportunityType = "internship"
	OpportunityCourse        OpportunityType = "course"
	OpportunityProject       OpportunityType = "project"
	OpportunityCertification OpportunityType = "certification"
)

// Opportunity is an internship, course, project or certification users can
// be pointed to.
type Opportunity struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Type         OpportunityType `json:"type"`
	Company      string          `json:"company"`
	Description  string          `json:"description"`
	Requirements []string        `json:"requirements"`
	Link         string          `json:"link"`
	Deadline     *time.Time      `json:"deadline,omitempty"`
	Tags         []string        `json:"tags"`
	CreatedAt    time.Time       `json:"created_at"`
}
