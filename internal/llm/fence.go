package llm

import "strings"

// ExtractJSON returns the JSON payload of a model response, tolerating
// responses wrapped in Markdown code fences. Providers running without
// structured output (or older models) often return
//
//	```json
//	[...]
//	```
//
// instead of bare JSON. Anything outside the first fenced block is
// discarded; an unfenced response is returned trimmed.
func ExtractJSON(response string) string {
	text := strings.TrimSpace(response)

	if strings.HasPrefix(text, "```") {
		// Drop the opening fence line ("```" or "```json").
		if idx := strings.Index(text, "\n"); idx >= 0 {
			text = text[idx+1:]
		} else {
			return ""
		}
		// Cut at the closing fence.
		if idx := strings.Index(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	return text
}
