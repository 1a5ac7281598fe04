package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/nexosr/career-engine/internal/logger"
	"github.com/nexosr/career-engine/internal/model"
	"github.com/nexosr/career-engine/internal/recommend"
)

// OpportunityBrowseLimit caps how many opportunities Opportunities returns.
const OpportunityBrowseLimit = 50

// RecommendationService matches mentors and opportunities to a user's
// latest report and lists the opportunity catalog.
type RecommendationService struct {
	users         UserStore
	sessions      AssessmentStore
	reports       ReportCache
	mentors       MentorStore
	opportunities OpportunityStore
	log           zerolog.Logger
}

// NewRecommendationService creates a new RecommendationService.
func NewRecommendationService(
	users UserStore,
	sessions AssessmentStore,
	reports ReportCache,
	mentors MentorStore,
	opportunities OpportunityStore,
	log zerolog.Logger,
) *RecommendationService {
	return &RecommendationService{
		users:         users,
		sessions:      sessions,
		reports:       reports,
		mentors:       mentors,
		opportunities: opportunities,
		log:           logger.Component(log, "recommendation_service"),
	}
}

// RecommendMentors returns up to 10 approved mentors for the user.
func (s *RecommendationService) RecommendMentors(ctx context.Context, userID string) ([]model.Mentor, error) {
	profile, rep, err := s.userContext(ctx, userID)
	if err != nil {
		return nil, err
	}

	catalog, err := s.mentors.ListApproved(ctx)
	if err != nil {
		return nil, fmt.Errorf("list mentors: %w", err)
	}
	return recommend.MatchMentors(rep, *profile, catalog), nil
}

// RecommendOpportunities returns up to 20 opportunities for the user.
func (s *RecommendationService) RecommendOpportunities(ctx context.Context, userID string) ([]model.Opportunity, error) {
	profile, rep, err := s.userContext(ctx, userID)
	if err != nil {
		return nil, err
	}

	catalog, err := s.opportunities.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list opportunities: %w", err)
	}
	return recommend.MatchOpportunities(rep, *profile, catalog), nil
}

// Opportunities lists the catalog newest first, optionally narrowed to one
// type.
func (s *RecommendationService) Opportunities(ctx context.Context, t model.OpportunityType) ([]model.Opportunity, error) {
	opps, err := s.opportunities.ListByType(ctx, t, OpportunityBrowseLimit)
	if err != nil {
		return nil, fmt.Errorf("browse opportunities: %w", err)
	}
	return opps, nil
}

func (s *RecommendationService) userContext(ctx context.Context, userID string) (*model.UserProfile, *model.Report, error) {
	profile, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	rep, err := s.latestReport(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return profile, rep, nil
}

// latestReport reads the Redis fast lane first and falls back to Postgres,
// refilling the cache on a miss.
func (s *RecommendationService) latestReport(ctx context.Context, userID string) (*model.Report, error) {
	if s.reports != nil {
		rep, err := s.reports.GetLatest(ctx, userID)
		if err == nil && rep != nil {
			return rep, nil
		}
		if err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("report cache read failed")
		}
	}

	snap, err := s.sessions.LatestReport(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("latest report: %w", err)
	}
	if snap == nil {
		return nil, nil
	}

	if s.reports != nil {
		if err := s.reports.SetLatest(ctx, userID, *snap); err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("report cache refill failed")
		}
	}
	return &snap.Report, nil
}
