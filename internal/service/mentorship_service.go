package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nexosr/career-engine/internal/apperr"
	"github.com/nexosr/career-engine/internal/gamification"
	"github.com/nexosr/career-engine/internal/logger"
	"github.com/nexosr/career-engine/internal/model"
	"github.com/nexosr/career-engine/internal/validator"
)

// Listing caps.
const (
	SessionListLimit       = 100
	MentorBrowseLimit      = 100
	PendingMentorListLimit = 100
)

// BookingResult is returned after a successful booking.
type BookingResult struct {
	Session       model.MentorSession `json:"session"`
	XPEarned      int                 `json:"xp_earned"`
	BadgesGranted []string            `json:"badges_granted,omitempty"`
}

// MentorshipService handles mentor onboarding, browsing and session
// bookings.
type MentorshipService struct {
	users     UserStore
	mentors   MentorStore
	bookings  MentorSessionStore
	publisher LeaderboardPublisher
	validate  *validator.Validator
	log       zerolog.Logger
}

// NewMentorshipService creates a new MentorshipService.
func NewMentorshipService(
	users UserStore,
	mentors MentorStore,
	bookings MentorSessionStore,
	publisher LeaderboardPublisher,
	log zerolog.Logger,
) *MentorshipService {
	return &MentorshipService{
		users:     users,
		mentors:   mentors,
		bookings:  bookings,
		publisher: publisher,
		validate:  validator.Default(),
		log:       logger.Component(log, "mentorship_service"),
	}
}

// PriceFor returns what a session of type t with mentor costs.
func PriceFor(mentor *model.Mentor, t model.SessionType) (float64, error) {
	switch t {
	case model.SessionType30Min:
		return mentor.Session30MinRate, nil
	case model.SessionType1Hr:
		return mentor.Session1HrRate, nil
	default:
		return 0, apperr.Withf(apperr.CodeInvalidSessionType, "invalid session type %q", t)
	}
}

// BookSession books an approved mentor and awards the mentee.
func (s *MentorshipService) BookSession(ctx context.Context, userID string, req model.BookSessionRequest) (*BookingResult, error) {
	if req.SessionType != model.SessionType30Min && req.SessionType != model.SessionType1Hr {
		return nil, apperr.Withf(apperr.CodeInvalidSessionType, "invalid session type %q", req.SessionType)
	}
	if fields := s.validate.Struct(req); fields != nil {
		return nil, apperr.Wrap(apperr.CodeInvalidSubmission, fmt.Errorf("%v", fields))
	}

	mentor, err := s.mentors.GetApproved(ctx, req.MentorID)
	if err != nil {
		return nil, err
	}

	mentee, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	price, err := PriceFor(mentor, req.SessionType)
	if err != nil {
		return nil, err
	}

	session := &model.MentorSession{
		MentorID:    mentor.ID,
		MenteeID:    userID,
		MentorName:  mentor.Name,
		MenteeName:  mentee.Name,
		SessionType: req.SessionType,
		ScheduledAt: req.ScheduledAt,
		Status:      model.MentorSessionPending,
		Price:       price,
		Notes:       req.Notes,
	}

	award, err := s.bookings.Book(ctx, session, gamification.OnSessionBooked)
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, userID); err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("publish leaderboard event failed")
		}
	}

	s.log.Info().
		Str("user_id", userID).
		Str("mentor_id", mentor.ID).
		Str("session_type", string(req.SessionType)).
		Float64("price", price).
		Msg("mentor session booked")

	return &BookingResult{
		Session:       *session,
		XPEarned:      award.XPDelta,
		BadgesGranted: award.BadgesGranted,
	}, nil
}

// Sessions lists bookings where the user is mentee or mentor.
func (s *MentorshipService) Sessions(ctx context.Context, userID string) ([]model.MentorSession, error) {
	sessions, err := s.bookings.ListForUser(ctx, userID, SessionListLimit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// Apply registers userID as a mentor awaiting approval. A user can apply
// only once.
func (s *MentorshipService) Apply(ctx context.Context, userID string, app model.MentorApplication) (*model.Mentor, error) {
	if fields := s.validate.Struct(app); fields != nil {
		return nil, apperr.Wrap(apperr.CodeInvalidSubmission, fmt.Errorf("%v", fields))
	}
	if _, err := s.users.GetProfile(ctx, userID); err != nil {
		return nil, err
	}

	mentor := &model.Mentor{
		ID:               uuid.NewString(),
		UserID:           userID,
		Name:             app.Name,
		Email:            app.Email,
		Expertise:        app.Expertise,
		ExperienceYears:  app.ExperienceYears,
		Bio:              app.Bio,
		Category:         app.Category,
		HourlyRate:       app.HourlyRate,
		Session30MinRate: app.Session30MinRate,
		Session1HrRate:   app.Session1HrRate,
		Rating:           model.DefaultMentorRating,
	}
	if err := s.mentors.Apply(ctx, mentor); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("user_id", userID).
		Str("mentor_id", mentor.ID).
		Str("category", mentor.Category).
		Msg("mentor application received")
	return mentor, nil
}

// PendingMentors lists applications awaiting approval.
func (s *MentorshipService) PendingMentors(ctx context.Context) ([]model.Mentor, error) {
	mentors, err := s.mentors.ListPending(ctx, PendingMentorListLimit)
	if err != nil {
		return nil, fmt.Errorf("list pending mentors: %w", err)
	}
	return mentors, nil
}

// ApproveMentor approves an application. An unknown id is
// apperr.ErrMentorNotFound.
func (s *MentorshipService) ApproveMentor(ctx context.Context, mentorID string) error {
	if err := s.mentors.Approve(ctx, mentorID); err != nil {
		return err
	}
	s.log.Info().Str("mentor_id", mentorID).Msg("mentor approved")
	return nil
}

// Mentors lists approved mentors matching f.
func (s *MentorshipService) Mentors(ctx context.Context, f model.MentorFilter) ([]model.Mentor, error) {
	mentors, err := s.mentors.ListFiltered(ctx, f, MentorBrowseLimit)
	if err != nil {
		return nil, fmt.Errorf("browse mentors: %w", err)
	}
	return mentors, nil
}
