package hubspot

import (
	"encoding/json"
	"strings"
)

// JSON shapes shared across CRM v3 endpoints.

type paging struct {
	Next *pagingNext `json:"next"`
}

type pagingNext struct {
	After string `json:"after"`
}

type objectResult struct {
	ID         string            `json:"id"`
	Properties map[string]string `json:"properties"`
}

// rawString normalizes an id field that may arrive as a JSON string or a
// JSON number, depending on API vintage.
func rawString(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return ""
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str
	}
	var num json.Number
	if err := json.Unmarshal(raw, &num); err == nil {
		return num.String()
	}
	return ""
}
