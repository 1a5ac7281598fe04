package chat

import (
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/nexosr/career-engine/internal/model"
)

// systemPrompt introduces the companion and the user it is talking to.
func systemPrompt(req Request) string {
	p := req.Profile

	goals := p.Goals
	if strings.TrimSpace(goals) == "" {
		goals = "Not specified"
	}

	var b strings.Builder
	b.WriteString("You are Nexosr AI, a friendly and knowledgeable career companion for young people aged 14 to 30. ")
	b.WriteString("You give career advice, guidance on developing skills and mentorship recommendations.\n\n")
	b.WriteString("User profile:\n")
	fmt.Fprintf(&b, "- Name: %s\n", p.Name)
	fmt.Fprintf(&b, "- Age: %d\n", p.Age)
	fmt.Fprintf(&b, "- Segment: %s (student/graduate/professional)\n", segmentOf(p))
	fmt.Fprintf(&b, "- Interests: %s\n", strings.Join(p.Interests, ", "))
	fmt.Fprintf(&b, "- Goals: %s\n", goals)
	b.WriteString(assessmentContext(req.Latest))
	b.WriteString("\nBe encouraging, practical and personal. Keep answers concise but helpful.")
	if !p.IsPremium {
		b.WriteString(" The user is on the free plan; now and then mention premium features they could benefit from.")
	}
	return b.String()
}

// assessmentContext summarises the latest completed assessment, or returns
// "" when there is none with a report.
func assessmentContext(latest *model.AssessmentSession) string {
	if latest == nil || latest.Report == nil {
		return ""
	}
	var score float64
	if latest.Score != nil {
		score = *latest.Score
	}
	paths, _ := json.Marshal(latest.Report.CareerPaths)
	return fmt.Sprintf("\nLatest assessment: %s - Score: %.1f%%\nCareer recommendations: %s\n",
		latest.TestType, score, paths)
}

// messages renders the conversation: system prompt, the last HistoryWindow
// messages and the new user message.
func messages(req Request) []openai.ChatCompletionMessage {
	history := req.History
	if len(history) > HistoryWindow {
		history = history[len(history)-HistoryWindow:]
	}

	out := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	out = append(out, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(req)})
	for _, m := range history {
		role := openai.ChatMessageRoleUser
		if m.Role == model.ChatRoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		out = append(out, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	return append(out, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.Message})
}

func segmentOf(p model.UserProfile) model.Segment {
	if p.Segment != "" {
		return p.Segment
	}
	return model.SegmentForAge(p.Age)
}
