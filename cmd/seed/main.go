package main

import (
	"context"
	"fmt"
	"time"

	"github.com/nexosr/career-engine/internal/config"
	"github.com/nexosr/career-engine/internal/database"
	"github.com/nexosr/career-engine/internal/logger"
	"github.com/nexosr/career-engine/internal/model"
	"github.com/nexosr/career-engine/internal/repository"
)

const systemUser = "system"

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	mentorRepo := repository.NewMentorRepository(pool)
	opportunityRepo := repository.NewOpportunityRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	fmt.Println("=== Seeding reference data ===")

	for _, m := range mentors() {
		if err := mentorRepo.Upsert(ctx, &m); err != nil {
			log.Fatal().Err(err).Str("mentor", m.Name).Msg("Failed to seed mentor")
		}
	}
	fmt.Printf("Mentors: %d\n", len(mentors()))

	for _, o := range opportunities() {
		if err := opportunityRepo.Upsert(ctx, &o); err != nil {
			log.Fatal().Err(err).Str("opportunity", o.Title).Msg("Failed to seed opportunity")
		}
	}
	fmt.Printf("Opportunities: %d\n", len(opportunities()))

	demo := &model.UserProfile{
		ID:        "demo",
		Name:      "Demo Student",
		Age:       17,
		Interests: []string{"Technology", "Design"},
		Goals:     "Find a career that mixes building things with creativity",
	}
	if err := userRepo.Upsert(ctx, demo); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed demo user")
	}
	fmt.Printf("Demo user: %s (%s)\n", demo.ID, demo.Segment)

	fmt.Println("Seeding complete.")
}

func mentors() []model.Mentor {
	return []model.Mentor{
		{
			ID:               "mentor-priya-sharma",
			UserID:           systemUser,
			Name:             "Dr. Priya Sharma",
			Email:            "priya@nexosr.com",
			Expertise:        []string{"Technology", "Data Science", "AI/ML"},
			ExperienceYears:  12,
			Bio:              "Former Google engineer with expertise in AI and machine learning. Passionate about helping young minds explore tech careers.",
			Category:         "Technology",
			HourlyRate:       1500,
			Session30MinRate: 800,
			Session1HrRate:   1500,
			Rating:           4.9,
			TotalSessions:    45,
			Approved:         true,
		},
		{
			ID:               "mentor-rahul-verma",
			UserID:           systemUser,
			Name:             "Rahul Verma",
			Email:            "rahul@nexosr.com",
			Expertise:        []string{"Business", "Entrepreneurship", "Marketing"},
			ExperienceYears:  8,
			Bio:              "Serial entrepreneur and startup mentor. Built 3 successful companies and now guides the next generation of founders.",
			Category:         "Business",
			HourlyRate:       1200,
			Session30MinRate: 650,
			Session1HrRate:   1200,
			Rating:           4.8,
			TotalSessions:    38,
			Approved:         true,
		},
		{
			ID:               "mentor-ananya-krishnan",
			UserID:           systemUser,
			Name:             "Ananya Krishnan",
			Email:            "ananya@nexosr.com",
			Expertise:        []string{"Creative", "Design", "UX/UI"},
			ExperienceYears:  6,
			Bio:              "Lead designer at a top design agency. Specializes in helping creatives build portfolios and find their niche.",
			Category:         "Creative",
			HourlyRate:       1000,
			Session30MinRate: 550,
			Session1HrRate:   1000,
			Rating:           4.7,
			TotalSessions:    29,
			Approved:         true,
		},
		{
			ID:               "mentor-arun-patel",
			UserID:           systemUser,
			Name:             "Dr. Arun Patel",
			Email:            "arun@nexosr.com",
			Expertise:        []string{"Healthcare", "Medicine", "Research"},
			ExperienceYears:  15,
			Bio:              "Senior physician and medical researcher. Guides aspiring doctors through their career journey.",
			Category:         "Healthcare",
			HourlyRate:       2000,
			Session30MinRate: 1100,
			Session1HrRate:   2000,
			Rating:           4.9,
			TotalSessions:    52,
			Approved:         true,
		},
		{
			ID:               "mentor-sneha-gupta",
			UserID:           systemUser,
			Name:             "Sneha Gupta",
			Email:            "sneha@nexosr.com",
			Expertise:        []string{"Finance", "Investment", "Banking"},
			ExperienceYears:  10,
			Bio:              "Investment banker turned career coach. Expert in finance careers and MBA admissions guidance.",
			Category:         "Finance",
			HourlyRate:       1800,
			Session30MinRate: 950,
			Session1HrRate:   1800,
			Rating:           4.8,
			TotalSessions:    41,
			Approved:         true,
		},
	}
}

func opportunities() []model.Opportunity {
	return []model.Opportunity{
		{
			ID:           "opp-software-intern",
			Title:        "Software Engineering Intern",
			Type:         model.OpportunityInternship,
			Company:      "TechCorp India",
			Description:  "6-month internship for aspiring software engineers. Work on real projects with senior developers.",
			Requirements: []string{"Python/JavaScript", "Basic DSA", "Currently pursuing B.Tech/BCA"},
			Link:         "https://example.com/apply",
			Tags:         []string{"Technology", "Programming", "Software"},
		},
		{
			ID:           "opp-digital-marketing",
			Title:        "Digital Marketing Certification",
			Type:         model.OpportunityCertification,
			Company:      "Google",
			Description:  "Free certification in digital marketing fundamentals from Google.",
			Requirements: []string{"Basic computer skills", "Interest in marketing"},
			Link:         "https://skillshop.google.com",
			Tags:         []string{"Marketing", "Digital", "Business"},
		},
		{
			ID:           "opp-data-science-bootcamp",
			Title:        "Data Science Bootcamp",
			Type:         model.OpportunityCourse,
			Company:      "DataCamp",
			Description:  "Comprehensive 12-week program covering Python, ML, and data visualization.",
			Requirements: []string{"Basic math", "Dedication"},
			Link:         "https://example.com/bootcamp",
			Tags:         []string{"Data Science", "AI/ML", "Analytics"},
		},
		{
			ID:           "opp-uiux-project",
			Title:        "UI/UX Design Project",
			Type:         model.OpportunityProject,
			Company:      "DesignHub",
			Description:  "Design a mobile app for a social cause. Great portfolio builder!",
			Requirements: []string{"Figma/Sketch skills", "Design thinking"},
			Link:         "https://example.com/project",
			Tags:         []string{"Design", "UX/UI", "Creative"},
		},
		{
			ID:           "opp-content-writing",
			Title:        "Content Writing Internship",
			Type:         model.OpportunityInternship,
			Company:      "MediaWorks",
			Description:  "Write articles, blogs, and social media content for leading brands.",
			Requirements: []string{"Excellent English", "Creative writing skills"},
			Link:         "https://example.com/content",
			Tags:         []string{"Writing", "Content", "Creative"},
		},
	}
}
