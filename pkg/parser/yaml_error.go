package parser

import (
	"strconv"
	"strings"
)

// extractProblem pulls a position and a bare description out of a YAML
// library error. Two shapes appear in practice: "[line:column] message"
// from the AST parser, and "yaml: line N: message" from the decoder, with
// an optional "column M:" segment and the multi-line
// "yaml: unmarshal errors:" variant. Returned marks are 0-based; a nil
// mark means no position could be recovered and the full error text is
// returned verbatim.
func extractProblem(err error) (*Mark, string) {
	errStr := err.Error()

	// "[line:column] message" format
	if strings.HasPrefix(errStr, "[") {
		if end := strings.Index(errStr, "] "); end > 0 {
			if mark, ok := parseBracketPosition(errStr[1:end]); ok {
				message := errStr[end+2:]
				// The AST parser appends its own source snippet; keep
				// only the description line.
				if nl := strings.IndexByte(message, '\n'); nl >= 0 {
					message = message[:nl]
				}
				return mark, strings.TrimSpace(message)
			}
		}
	}

	// "yaml: line N: message" format, with optional column info
	if rest, ok := strings.CutPrefix(errStr, "yaml: line "); ok {
		if mark, message, ok := parseLineError(rest); ok {
			return mark, message
		}
	}

	// "yaml: unmarshal errors:" format: indented "line N: message" rows,
	// first row wins
	if strings.HasPrefix(errStr, "yaml: unmarshal errors:") {
		for _, row := range strings.Split(errStr, "\n") {
			row = strings.TrimSpace(row)
			if rest, ok := strings.CutPrefix(row, "line "); ok {
				if mark, message, ok := parseLineError(rest); ok {
					return mark, message
				}
			}
		}
	}

	return nil, errStr
}

// parseBracketPosition parses the "line:column" inside a bracketed
// position. Both numbers are 1-based in the error text.
func parseBracketPosition(s string) (*Mark, bool) {
	colon := strings.IndexByte(s, ':')
	if colon <= 0 {
		return nil, false
	}
	line, lineErr := strconv.Atoi(s[:colon])
	column, colErr := strconv.Atoi(s[colon+1:])
	if lineErr != nil || colErr != nil || line < 1 || column < 1 {
		return nil, false
	}
	return &Mark{Line: line - 1, Column: column - 1}, true
}

// parseLineError parses "N: message" with an optional "column M:" segment
// after the line number.
func parseLineError(rest string) (*Mark, string, bool) {
	colon := strings.IndexByte(rest, ':')
	if colon <= 0 {
		return nil, "", false
	}
	line, err := strconv.Atoi(strings.TrimSpace(rest[:colon]))
	if err != nil || line < 1 {
		return nil, "", false
	}
	message := strings.TrimSpace(rest[colon+1:])
	column := 1
	if after, ok := strings.CutPrefix(message, "column "); ok {
		if colon2 := strings.IndexByte(after, ':'); colon2 > 0 {
			if c, atoiErr := strconv.Atoi(strings.TrimSpace(after[:colon2])); atoiErr == nil && c >= 1 {
				column = c
				message = strings.TrimSpace(after[colon2+1:])
			}
		}
	}
	return &Mark{Line: line - 1, Column: column - 1}, message, true
}
