package service

import (
	"context"
	"fmt"
	"math"

	"github.com/nexosr/career-engine/internal/model"
)

const (
	dashboardSkillGaps = 5
	dashboardRecent    = 3
	dashboardUpcoming  = 3
)

// DashboardStats are the headline numbers of a user's dashboard.
type DashboardStats struct {
	TestsCompleted int     `json:"tests_completed"`
	AverageScore   float64 `json:"average_score"`
	MentorSessions int     `json:"mentor_sessions"`
	XPPoints       int     `json:"xp_points"`
	BadgesEarned   int     `json:"badges_earned"`
}

// DashboardData consolidates everything a user's dashboard shows.
type DashboardData struct {
	User              model.UserProfile         `json:"user"`
	Stats             DashboardStats            `json:"stats"`
	CareerPaths       []model.CareerPath        `json:"career_paths"`
	SkillGaps         []string                  `json:"skill_gaps"`
	Badges            []string                  `json:"badges"`
	RecentAssessments []model.AssessmentSession `json:"recent_assessments"`
	UpcomingSessions  []model.MentorSession     `json:"upcoming_sessions"`
}

// DashboardService builds the user dashboard.
type DashboardService struct {
	users    UserStore
	sessions AssessmentStore
	bookings MentorSessionStore
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(users UserStore, sessions AssessmentStore, bookings MentorSessionStore) *DashboardService {
	return &DashboardService{users: users, sessions: sessions, bookings: bookings}
}

// Summary returns the dashboard for userID.
func (s *DashboardService) Summary(ctx context.Context, userID string) (*DashboardData, error) {
	profile, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	assessments, err := s.sessions.ListCompleted(ctx, userID, HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}

	bookings, err := s.bookings.ListForUser(ctx, userID, SessionListLimit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	data := &DashboardData{
		User:        *profile,
		CareerPaths: []model.CareerPath{},
		SkillGaps:   []string{},
		Badges:      append([]string{}, profile.Badges...),
	}

	// assessments are newest first.
	var total float64
	for _, a := range assessments {
		if a.Score != nil {
			total += *a.Score
		}
	}
	if n := len(assessments); n > 0 {
		data.Stats.AverageScore = math.Round(total/float64(n)*10) / 10
		if latest := assessments[0].Report; latest != nil {
			data.CareerPaths = latest.CareerPaths
		}
	}
	data.SkillGaps = distinctSkillGaps(assessments, dashboardSkillGaps)
	data.RecentAssessments = assessments[:min(len(assessments), dashboardRecent)]

	var mentee int
	data.UpcomingSessions = []model.MentorSession{}
	for _, b := range bookings {
		if b.MenteeID != userID {
			continue
		}
		mentee++
		upcoming := b.Status == model.MentorSessionPending || b.Status == model.MentorSessionConfirmed
		if upcoming && len(data.UpcomingSessions) < dashboardUpcoming {
			data.UpcomingSessions = append(data.UpcomingSessions, b)
		}
	}

	data.Stats.TestsCompleted = len(assessments)
	data.Stats.MentorSessions = mentee
	data.Stats.XPPoints = profile.XPPoints
	data.Stats.BadgesEarned = len(profile.Badges)
	return data, nil
}

func distinctSkillGaps(assessments []model.AssessmentSession, limit int) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, a := range assessments {
		if a.Report == nil {
			continue
		}
		for _, g := range a.Report.SkillGaps {
			if _, ok := seen[g]; ok {
				continue
			}
			seen[g] = struct{}{}
			out = append(out, g)
			if len(out) == limit {
				return out
			}
		}
	}
	return out
}
