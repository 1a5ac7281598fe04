// Package recommend derives mentor and opportunity candidates from a report
// and the user's own interests. All functions are read-only projections of
// their catalog inputs.
package recommend

import (
	"strings"

	"github.com/nexosr/career-engine/internal/model"
)

const (
	MaxMentors       = 10
	MaxOpportunities = 20
)

// MatchMentors returns approved mentors whose expertise or category
// intersects the report's mentor categories or the user's interests. With
// no terms at all it returns the first approved mentors as a cold start.
// report may be nil when the user has no completed assessment.
func MatchMentors(report *model.Report, profile model.UserProfile, catalog []model.Mentor) []model.Mentor {
	var categories []string
	if report != nil {
		categories = report.MentorCategories
	}
	terms := termSet(categories, profile.Interests)

	out := make([]model.Mentor, 0, MaxMentors)
	for _, m := range catalog {
		if len(out) == MaxMentors {
			break
		}
		if !m.Approved {
			continue
		}
		if len(terms) == 0 || mentorMatches(m, terms) {
			out = append(out, m)
		}
	}
	return out
}

func mentorMatches(m model.Mentor, terms map[string]struct{}) bool {
	if has(terms, m.Category) {
		return true
	}
	for _, e := range m.Expertise {
		if has(terms, e) {
			return true
		}
	}
	return false
}

// MatchOpportunities returns opportunities whose tags intersect the user's
// interests followed by the report's subject recommendations. With no tags
// it returns the first opportunities of the catalog.
func MatchOpportunities(report *model.Report, profile model.UserProfile, catalog []model.Opportunity) []model.Opportunity {
	var subjects []string
	if report != nil {
		subjects = report.SubjectRecommendations
	}
	wanted := termSet(profile.Interests, subjects)

	out := make([]model.Opportunity, 0, MaxOpportunities)
	for _, o := range catalog {
		if len(out) == MaxOpportunities {
			break
		}
		if len(wanted) == 0 || hasAnyTag(o.Tags, wanted) {
			out = append(out, o)
		}
	}
	return out
}

func hasAnyTag(tags []string, wanted map[string]struct{}) bool {
	for _, t := range tags {
		if has(wanted, t) {
			return true
		}
	}
	return false
}

// termSet collects the non-blank values of lists. Blank strings never match
// anything, so a profile with only blank interests is a cold start.
func termSet(lists ...[]string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, list := range lists {
		for _, v := range list {
			if strings.TrimSpace(v) != "" {
				out[v] = struct{}{}
			}
		}
	}
	return out
}

func has(set map[string]struct{}, v string) bool {
	_, ok := set[v]
	return ok
}
