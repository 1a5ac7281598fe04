package model

import (
	"time"

	"github.com/google/uuid"
)

// Mentor is an expert users can book sessions with. Only approved mentors
// are visible to matching and booking.
type Mentor struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Expertise        []string  `json:"expertise"`
	ExperienceYears  int       `json:"experience_years"`
	Bio              string    `json:"bio"`
	Category         string    `json:"category"`
	HourlyRate       float64   `json:"hourly_rate"`
	Session30MinRate float64   `json:"session_30min_rate"`
	Session1HrRate   float64   `json:"session_1hr_rate"`
	Rating           float64   `json:"rating"`
	TotalSessions    int       `json:"total_sessions"`
	Approved         bool      `json:"approved"`
	CreatedAt        time.Time `json:"created_at"`
}

// SessionType is the booked duration of a mentor session.
type SessionType string

const (
	SessionType30Min SessionType = "30min"
	SessionType1Hr   SessionType = "1hr"
)

// MentorSessionStatus enumerates booking states.
type MentorSessionStatus string

const (
	MentorSessionPending   MentorSessionStatus = "pending"
	MentorSessionConfirmed MentorSessionStatus = "confirmed"
	MentorSessionCompleted MentorSessionStatus = "completed"
	MentorSessionCancelled MentorSessionStatus = "cancelled"
)

// MentorSession is a booked session between a mentee and a mentor.
type MentorSession struct {
	ID          uuid.UUID           `json:"id"`
	MentorID    string              `json:"mentor_id"`
	MenteeID    string              `json:"mentee_id"`
	MentorName  string              `json:"mentor_name"`
	MenteeName  string              `json:"mentee_name"`
	SessionType SessionType         `json:"session_type"`
	ScheduledAt time.Time           `json:"scheduled_at"`
	Status      MentorSessionStatus `json:"status"`
	Price       float64             `json:"price"`
	Notes       string              `json:"notes"`
	CreatedAt   time.Time           `json:"created_at"`
}

// BookSessionRequest is the payload for booking a mentor session.
type BookSessionRequest struct {
	MentorID    string      `json:"mentor_id" validate:"required"`
	SessionType SessionType `json:"session_type" validate:"required,oneof=30min 1hr"`
	ScheduledAt time.Time   `json:"scheduled_at" validate:"required"`
	Notes       string      `json:"notes" validate:"max=2000"`
}

// DefaultMentorRating is the rating a newly applied mentor starts with.
const DefaultMentorRating = 5.0

// MentorApplication is the payload a user submits to become a mentor.
type MentorApplication struct {
	Name             string   `json:"name" validate:"required,max=200"`
	Email            string   `json:"email" validate:"required,email"`
	Expertise        []string `json:"expertise" validate:"required,min=1,dive,required"`
	ExperienceYears  int      `json:"experience_years" validate:"gte=0,lte=80"`
	Bio              string   `json:"bio" validate:"required,max=4000"`
	Category         string   `json:"category" validate:"required"`
	HourlyRate       float64  `json:"hourly_rate" validate:"gte=0"`
	Session30MinRate float64  `json:"session_30min_rate" validate:"gte=0"`
	Session1HrRate   float64  `json:"session_1hr_rate" validate:"gte=0"`
}

// MentorFilter narrows a mentor listing. Empty fields match everything.
type MentorFilter struct {
	Category  string `json:"category"`
	Expertise string `json:"expertise"`
}
