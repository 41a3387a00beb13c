package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a senior quiz master writing multiple-choice questions from a single knowledge point.

Rules:
- Generate exactly the requested number of questions, derived only from the given knowledge point.
- Each question has a stem, four options labeled A through D, the correct option letter, and a detailed explanation.
- Exactly one option is correct. Distractors should be plausible, reflecting likely misunderstandings rather than random noise.
- Set "qtype" to "choice" for every question.
- Respond with a single valid JSON array. If you cannot generate questions, return an empty array.`

// buildUserMessage states the count and the knowledge point under test.
func buildUserMessage(kpText string, n int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Number of questions: %d\n\n", n)
	b.WriteString("Knowledge point:\n")
	b.WriteString(kpText)
	return b.String()
}
