package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nexosr/career-engine/internal/model"
)

// ContextPairs is how many (item, answer) pairs are shown to the model.
const ContextPairs = 5

const systemPrompt = `You are a career guidance expert. Analyse the user's assessment and write a
personalised career report. Respond only with JSON matching the provided schema.
Give 3-4 strengths, 2-3 weaknesses, 3-4 subject recommendations and exactly 5
career paths ordered by match_score (0-100). Keep the summary to 2-3 sentences.`

// qaPair is one positional (item, answer) pairing shown to the model.
type qaPair struct {
	Question model.Item    `json:"question"`
	Answer   *model.Answer `json:"answer,omitempty"`
}

// contextPairs zips items with answers by position and keeps the first
// ContextPairs. Items without a positional answer are dropped, so the
// window is never longer than the shorter of the two.
func contextPairs(items []model.Item, answers []model.Answer) []qaPair {
	n := min(len(items), len(answers), ContextPairs)
	out := make([]qaPair, n)
	for i := 0; i < n; i++ {
		a := answers[i]
		out[i] = qaPair{Question: items[i], Answer: &a}
	}
	return out
}

// userPrompt renders the bounded assessment context.
func userPrompt(req Request) string {
	p := req.Profile

	interests := "None listed"
	if len(p.Interests) > 0 {
		interests = strings.Join(p.Interests, ", ")
	}
	goals := p.Goals
	if strings.TrimSpace(goals) == "" {
		goals = "Not specified"
	}
	segment := p.Segment
	if segment == "" {
		segment = model.SegmentForAge(p.Age)
	}

	pairs, _ := json.MarshalIndent(contextPairs(req.Items, req.Answers), "", "  ")

	var b strings.Builder
	b.WriteString("User profile:\n")
	fmt.Fprintf(&b, "- Name: %s\n", p.Name)
	fmt.Fprintf(&b, "- Age: %d\n", p.Age)
	fmt.Fprintf(&b, "- Segment: %s\n", segment)
	fmt.Fprintf(&b, "- Interests: %s\n", interests)
	fmt.Fprintf(&b, "- Goals: %s\n\n", goals)
	fmt.Fprintf(&b, "Assessment type: %s\n", req.TestType)
	fmt.Fprintf(&b, "Score: %.1f%%\n\n", req.Score)
	b.WriteString("Questions and answers:\n")
	b.Write(pairs)
	b.WriteString("\n")
	return b.String()
}
