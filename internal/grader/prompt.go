package grader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/abhisek/studypal/internal/store"
)

const systemPrompt = `You are a strict but encouraging grader for multiple-choice quiz questions.

Rules:
- Judge whether the user's answer matches the correct option. Accept the option letter or the option text, ignoring case and surrounding whitespace.
- Always report the correct option letter in "correct_answer".
- Write a short explanation of why the correct option is correct. When the user is wrong, also say what their choice got wrong.
- Respond with a single valid JSON object only.`

// buildUserMessage lays out the question, its options, the reference
// answer, and the user's answer for the model to judge.
func buildUserMessage(q *store.Question, userAnswer string) string {
	var b strings.Builder
	b.WriteString("Question:\n")
	b.WriteString(q.Stem)
	b.WriteString("\n\nOptions:\n")

	keys := make([]string, 0, len(q.Options))
	for k := range q.Options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "%s. %s\n", k, q.Options[k])
	}

	fmt.Fprintf(&b, "\nReference answer: %s\n", q.Answer)
	if q.Explanation != "" {
		fmt.Fprintf(&b, "Reference explanation: %s\n", q.Explanation)
	}
	fmt.Fprintf(&b, "\nUser's answer: %s\n", userAnswer)
	return b.String()
}
