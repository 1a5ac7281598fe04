// Package gamification decides the XP and badges earned by user activity.
// It never persists anything; callers apply the returned award.
package gamification

import "github.com/nexosr/career-engine/internal/model"

const (
	AssessmentXP = 50
	SessionXP    = 25

	// MentorshipProSessions is the booking count that earns Mentorship Pro.
	MentorshipProSessions = 3
)

// OnAssessmentCompleted returns the award for completing an assessment.
// profile holds the state before the completion is counted.
func OnAssessmentCompleted(profile model.UserProfile) model.Award {
	award := model.Award{XPDelta: AssessmentXP}
	if profile.TestsTaken+1 == 1 && !profile.HasBadge(BadgeCareerExplorer) {
		award.BadgesGranted = append(award.BadgesGranted, BadgeCareerExplorer)
	}
	return award
}

// OnSessionBooked returns the award for booking a mentor session. profile
// holds the state before the booking is counted.
func OnSessionBooked(profile model.UserProfile) model.Award {
	award := model.Award{XPDelta: SessionXP}
	if profile.MentorSessions+1 >= MentorshipProSessions && !profile.HasBadge(BadgeMentorshipPro) {
		award.BadgesGranted = append(award.BadgesGranted, BadgeMentorshipPro)
	}
	return award
}
