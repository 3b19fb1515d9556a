package mapper

import (
	"errors"
	"strings"
)

// DecodeJSONPointer decodes an RFC6901 pointer (e.g. "/network/version")
// into segments: ["network", "version"]. Returns an empty slice for ""
// or "/".
func DecodeJSONPointer(ptr string) ([]string, error) {
	if ptr == "" || ptr == "/" {
		return []string{}, nil
	}
	if !strings.HasPrefix(ptr, "/") {
		return nil, errors.New("invalid json pointer: must start with '/'")
	}
	parts := strings.Split(ptr[1:], "/")
	for i, p := range parts {
		// Unescape per RFC6901
		p = strings.ReplaceAll(p, "~1", "/")
		p = strings.ReplaceAll(p, "~0", "~")
		parts[i] = p
	}
	return parts, nil
}

// parseIndex interprets a segment as a sequence index. Negative numbers
// are not valid JSON Pointer indices.
func parseIndex(segment string) (int, bool) {
	if len(segment) == 0 {
		return 0, false
	}
	result := 0
	for _, r := range segment {
		if r < '0' || r > '9' {
			return 0, false
		}
		result = result*10 + int(r-'0')
		if result > 1000000 {
			return 0, false
		}
	}
	return result, true
}
