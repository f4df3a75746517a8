package service

import (
	"encoding/json"
	"regexp"
)

var jsonArrayPattern = regexp.MustCompile(`(?s)\[.*?\]`)

// extractStringArray parses an AI reply that should be a JSON array of
// strings. It first tries the whole text, then falls back to the first
// bracketed substring; models often wrap the array in prose. Non-string
// entries are dropped.
func extractStringArray(text string) ([]string, bool) {
	if items, ok := parseStringArray(text); ok {
		return items, true
	}
	if match := jsonArrayPattern.FindString(text); match != "" {
		return parseStringArray(match)
	}
	return nil, false
}

func parseStringArray(text string) ([]string, bool) {
	var raw []interface{}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, false
	}
	items := make([]string, 0, len(raw))
	for _, entry := range raw {
		if s, ok := entry.(string); ok {
			items = append(items, s)
		}
	}
	return items, true
}
