package chat

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/nexosr/career-engine/internal/model"
)

// KeywordSource answers from a fixed set of replies picked by keywords in
// the message. It never fails.
type KeywordSource struct{}

func (KeywordSource) Reply(_ context.Context, req Request) (string, error) {
	return Keyword(req), nil
}

// Keyword picks the canned reply for req. The first matching topic wins:
// careers, mentors, skills, assessments, then a greeting.
func Keyword(req Request) string {
	p := req.Profile
	msg := strings.ToLower(req.Message)
	segment := p.Segment
	if segment == "" {
		segment = model.SegmentStudent
	}

	switch {
	case containsAny(msg, "career", "job"):
		switch {
		case slices.Contains(p.Interests, "Technology"):
			return fmt.Sprintf("Based on your interest in Technology, I'd recommend exploring careers in Software Development, "+
				"Data Science, or Product Management. As a %s, you might want to start with online courses on platforms like "+
				"Coursera or take assessments to identify your specific strengths. Would you like to take our Aptitude Test "+
				"to get personalized career recommendations?", segment)
		case slices.Contains(p.Interests, "Business"):
			return fmt.Sprintf("With your interest in Business, careers in Marketing, Consulting, or Entrepreneurship could be "+
				"great fits! As a %s, consider building real-world experience through internships. Take our Career Interest "+
				"Test to discover which business path aligns with your personality.", segment)
		default:
			return "Great question! Based on your profile, I recommend taking our AI-powered assessments to discover careers " +
				"that match your unique strengths. Our tests analyze aptitude, personality, and interests to provide " +
				"personalized recommendations. Would you like to start with an assessment?"
		}

	case containsAny(msg, "mentor"):
		return fmt.Sprintf("Finding the right mentor can accelerate your career growth! Based on your interests in %s, "+
			"I recommend connecting with mentors in those domains. Check out our Mentors section to find experts who can "+
			"guide you. Premium users get AI-matched mentor recommendations!", interestsOr(p.Interests, "various fields"))

	case containsAny(msg, "skill", "learn"):
		return fmt.Sprintf("Continuous learning is key to career success! For %ss interested in %s, I recommend: "+
			"1) Taking our Skill Assessment to identify gaps, 2) Checking our Opportunities section for relevant courses, "+
			"3) Booking mentor sessions for personalized guidance.", segment, interestsOr(p.Interests, "growing their careers"))

	case containsAny(msg, "test", "assessment"):
		return "We offer 4 types of AI-powered assessments: 1) Aptitude Test - measures logical, numerical & verbal skills, " +
			"2) Personality Assessment - discovers your work style, 3) Career Interest Test - finds careers matching your " +
			"passions, 4) Skill Assessment - evaluates your current abilities. Each takes about 10-15 minutes and provides " +
			"detailed AI reports!"

	default:
		return fmt.Sprintf("Hi %s! I'm Nexosr AI, your career companion. I can help you with: career guidance, skill "+
			"development advice, finding mentors, and discovering opportunities. As a %s interested in %s, what specific "+
			"aspect of your career journey can I help with today?", p.Name, segment, interestsOr(p.Interests, "exploring career options"))
	}
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func interestsOr(interests []string, fallback string) string {
	if len(interests) == 0 {
		return fallback
	}
	return strings.Join(interests, ", ")
}
