package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON strips markdown code fences and surrounding prose from a
// model response, leaving the JSON payload. Models are asked for strict
// JSON but are not trusted to comply.
func ExtractJSON(response string) string {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	// Fall back to the outermost braces when prose leaks around the JSON
	if !strings.HasPrefix(response, "{") && !strings.HasPrefix(response, "[") {
		start := strings.IndexAny(response, "{[")
		if start == -1 {
			return response
		}
		end := strings.LastIndexAny(response, "}]")
		if end <= start {
			return response
		}
		response = response[start : end+1]
	}

	return response
}

// Decode parses an untrusted model response into out. A single parse
// attempt is made; callers substitute their documented defaults on error.
func Decode(response string, out any) error {
	cleaned := ExtractJSON(response)
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return fmt.Errorf("failed to parse LLM response: %w", err)
	}
	return nil
}
