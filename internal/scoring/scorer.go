// Package scoring turns submitted answers into a single 0-100 score.
package scoring

import "github.com/nexosr/career-engine/internal/model"

// ScaleMax is the top index of the five-point scale used by subjective tests.
const ScaleMax = 4

// Score computes the score for a submission against the session's item
// snapshot. Objective tests count exact matches against each item's correct
// index. Subjective tests average the raw scale indices over all answers.
// An empty submission scores 0.
func Score(testType model.TestType, items []model.Item, answers []model.Answer) float64 {
	if testType.Objective() {
		return clamp(objective(items, answers))
	}
	return clamp(subjective(answers))
}

func objective(items []model.Item, answers []model.Answer) float64 {
	if len(items) == 0 {
		return 0
	}

	byID := make(map[int]*model.Item, len(items))
	for i := range items {
		byID[items[i].ID] = &items[i]
	}

	correct := 0
	for _, a := range answers {
		it, ok := byID[a.QuestionID]
		if !ok || it.CorrectIndex == nil {
			continue
		}
		if a.Selected == *it.CorrectIndex {
			correct++
		}
	}
	return float64(correct) / float64(len(items)) * 100
}

func subjective(answers []model.Answer) float64 {
	if len(answers) == 0 {
		return 0
	}
	total := 0
	for _, a := range answers {
		total += a.Selected
	}
	return float64(total) / float64(len(answers)*ScaleMax) * 100
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
