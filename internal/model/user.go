package model

import "slices"

// Segment classifies users by life stage.
type Segment string

const (
	SegmentStudent      Segment = "student"
	SegmentGraduate     Segment = "graduate"
	SegmentProfessional Segment = "professional"
)

// SegmentForAge derives the segment from a user's age.
func SegmentForAge(age int) Segment {
	switch {
	case age < 19:
		return SegmentStudent
	case age < 26:
		return SegmentGraduate
	default:
		return SegmentProfessional
	}
}

// UserProfile is the read-only view of a user the engine works from.
type UserProfile struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Age            int      `json:"age"`
	Segment        Segment  `json:"segment"`
	Interests      []string `json:"interests"`
	Goals          string   `json:"goals"`
	IsPremium      bool     `json:"is_premium"`
	XPPoints       int      `json:"xp_points"`
	Badges         []string `json:"badges"`
	TestsTaken     int      `json:"tests_taken"`
	MentorSessions int      `json:"mentor_sessions"`
}

// HasBadge reports whether the profile already holds the named badge.
func (p *UserProfile) HasBadge(name string) bool {
	return slices.Contains(p.Badges, name)
}

// Award is the outcome of a gamification decision: XP to add and badges to
// append. It is never stored on its own.
type Award struct {
	XPDelta       int      `json:"xp_delta"`
	BadgesGranted []string `json:"badges_granted,omitempty"`
}

// LeaderboardEntry is one ranked row of the XP leaderboard.
type LeaderboardEntry struct {
	Rank     int      `json:"rank"`
	UserID   string   `json:"user_id"`
	Name     string   `json:"name"`
	XPPoints int      `json:"xp_points"`
	Badges   []string `json:"badges"`
	Segment  Segment  `json:"segment"`
}

// Apply adds an award to the in-memory profile. Activity counters are the
// caller's to bump.
func (p *UserProfile) Apply(a Award) {
	p.XPPoints += a.XPDelta
	for _, b := range a.BadgesGranted {
		if !p.HasBadge(b) {
			p.Badges = append(p.Badges, b)
		}
	}
}
