package gamification

const (
	BadgeCareerExplorer = "Career Explorer"
	BadgeTopLearner     = "Top Learner"
	BadgeMentorshipPro  = "Mentorship Pro"
	BadgeSkillMaster    = "Skill Master"
	BadgeGoalGetter     = "Goal Getter"
	BadgeCommunityStar  = "Community Star"
)

// Badge describes an achievement users can see in the catalog.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

var catalog = []Badge{
	{ID: "career_explorer", Name: BadgeCareerExplorer, Description: "Complete your first assessment", Icon: "compass"},
	{ID: "top_learner", Name: BadgeTopLearner, Description: "Complete 5 assessments", Icon: "star"},
	{ID: "mentorship_pro", Name: BadgeMentorshipPro, Description: "Book 3 mentor sessions", Icon: "users"},
	{ID: "skill_master", Name: BadgeSkillMaster, Description: "Score 90%+ on skill assessment", Icon: "award"},
	{ID: "goal_getter", Name: BadgeGoalGetter, Description: "Reach 500 XP points", Icon: "target"},
	{ID: "community_star", Name: BadgeCommunityStar, Description: "Refer 3 friends", Icon: "heart"},
}

// Badges returns the badge catalog.
func Badges() []Badge {
	return append([]Badge(nil), catalog...)
}
