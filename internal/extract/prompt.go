package extract

import (
	"fmt"
	"strings"

	"github.com/abhisek/studypal/internal/store"
)

const systemPrompt = `You are a study partner that extracts knowledge points from documents.

Rules:
- You will receive document chunks, each prefixed with a unique marker like [CHUNK_ID:123].
- Extract between 3 and 10 knowledge points from the provided text.
- Each knowledge point is a concise, factual, standalone statement. No opinions, examples, or filler.
- For every knowledge point, report the chunk_id of the chunk it came from.
- "subject" is the main subject of the material, "topic" is the sub-topic the point belongs to.
- Respond with a single valid JSON array and nothing else.`

// buildUserMessage assembles the chunk corpus, one [CHUNK_ID:n] marker per
// chunk, plus the allowed-subject constraint when any document in scope was
// imported with a user-supplied subject.
func buildUserMessage(chunks []store.Chunk, subjects []string) string {
	var b strings.Builder

	if len(subjects) > 0 {
		b.WriteString("Use only these subjects: ")
		b.WriteString(strings.Join(subjects, ", "))
		b.WriteString("\n\n")
	}

	b.WriteString("Documents:\n---\n")
	for _, c := range chunks {
		fmt.Fprintf(&b, "[CHUNK_ID:%d] %s\n\n", c.ID, c.Content)
	}
	b.WriteString("---")

	return b.String()
}
