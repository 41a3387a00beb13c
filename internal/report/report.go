// Package report renders the mistake log as a Markdown review document.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abhisek/studypal/internal/store"
)

// Filename is the fixed name of the exported report inside the target
// directory.
const Filename = "mistakes_report.md"

// Render produces the Markdown body for the given mistakes. An empty
// slice still renders a valid document saying there is nothing to review.
func Render(mistakes []store.MistakeReport, now time.Time) string {
	var b strings.Builder
	b.WriteString("# Mistake Review\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", now.Format("2006-01-02 15:04"))

	if len(mistakes) == 0 {
		b.WriteString("No mistakes recorded. Keep it up!\n")
		return b.String()
	}

	fmt.Fprintf(&b, "%d question(s) to review, most recent first.\n\n", len(mistakes))

	for i, m := range mistakes {
		fmt.Fprintf(&b, "## %d. %s\n\n", i+1, m.Stem)
		if m.KPText != "" {
			fmt.Fprintf(&b, "**Knowledge point:** %s\n\n", m.KPText)
		}
		fmt.Fprintf(&b, "- Your answer: %s\n", m.WrongAnswer)
		fmt.Fprintf(&b, "- Correct answer: %s\n", m.CorrectAnswer)
		fmt.Fprintf(&b, "- Missed %d time(s), last on %s\n", m.Times, m.LastSeenAt.Format("2006-01-02"))
		if m.Explanation != "" {
			fmt.Fprintf(&b, "\n%s\n", m.Explanation)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// Export writes the mistake report into dir and returns the file path.
// The filename is fixed; repeated exports overwrite the previous report.
func Export(ctx context.Context, st *store.Store, dir string) (string, error) {
	mistakes, err := st.ListMistakes(ctx)
	if err != nil {
		return "", fmt.Errorf("load mistakes: %w", err)
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}

	path := filepath.Join(dir, Filename)
	body := Render(mistakes, time.Now())
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
