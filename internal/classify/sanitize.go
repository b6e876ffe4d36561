package classify

import "strings"

// extractJSON recovers a JSON object from a possibly noisy model response.
// Two steps, both required by the contract with real model output: strip
// markdown code-fence markers anywhere in the text, then isolate the span
// between the first '{' and the last '}' to drop any prose the model wrapped
// around the object.
func extractJSON(s string) string {
	cleaned := strings.ReplaceAll(s, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start != -1 && end != -1 && end >= start {
		cleaned = cleaned[start : end+1]
	}
	return cleaned
}
