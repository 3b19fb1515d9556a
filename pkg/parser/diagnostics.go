package parser

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// errorMarker builds the caret line pointing at column: column spaces
// followed by a single caret, no trailing newline.
func errorMarker(column int) string {
	if column <= 0 {
		return "^"
	}
	return strings.Repeat(" ", column) + "^"
}

// locateLine extracts the line of buf containing pos, without the
// surrounding newlines. pos is clamped into the buffer, so any position is
// safe, including an empty buffer and a position at either end.
func locateLine(buf []byte, pos int) string {
	if len(buf) == 0 {
		return ""
	}
	if pos < 0 {
		pos = 0
	}
	if pos > len(buf) {
		pos = len(buf)
	}
	start := pos
	for start > 0 && buf[start-1] != '\n' {
		start--
	}
	end := start
	for end < len(buf) && buf[end] != '\n' {
		end++
	}
	return string(buf[start:end])
}

// readLineAt opens path and reads forward to the line holding the 0-based
// mark, returning its text. The loop reads line+1 lines and keeps the last
// one, which also makes a truncated file degrade to its final line instead
// of failing.
func readLineAt(path string, line int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	var text string
	for i := 0; i < line+1; i++ {
		if !scanner.Scan() {
			if scanErr := scanner.Err(); scanErr != nil {
				return "", fmt.Errorf("failed to read %s: %w", path, scanErr)
			}
			break
		}
		text = scanner.Text()
	}
	return text, nil
}

// SyntaxError builds the diagnostic for a tokenizer fault. The source line
// is recovered from the scan buffer itself, so no file access is needed.
func (c *Context) SyntaxError(s *ScanState) *Error {
	path := c.Filepath
	if path == "" {
		path = "(unnamed file)"
	}
	message := fmt.Sprintf("%s:%d:%d: Invalid YAML: %s:\n%s\n%s",
		path,
		s.Mark.Line+1,
		s.Mark.Column+1,
		classifyProblem(s),
		locateLine(s.Buffer, s.Pos),
		errorMarker(s.Mark.Column))
	return newError(DomainParser, ErrInvalidYAML, message)
}

// SemanticError builds the diagnostic for a fault found after the document
// tree exists. mark may be nil when no node position survived. The message
// is interpolated before any file access so a failed context lookup can
// never corrupt it; in that case the positional variant simply drops the
// context block.
func (c *Context) SemanticError(mark *Mark, format string, args ...any) *Error {
	msg := fmt.Sprintf(format, args...)
	switch {
	case mark != nil && c.Filepath != "":
		line, err := readLineAt(c.Filepath, mark.Line)
		if err != nil {
			return newError(DomainParser, ErrInvalidConfig,
				fmt.Sprintf("%s:%d:%d: Error in network definition: %s",
					c.Filepath, mark.Line+1, mark.Column+1, msg))
		}
		return newError(DomainParser, ErrInvalidConfig,
			fmt.Sprintf("%s:%d:%d: Error in network definition: %s\n%s\n%s",
				c.Filepath, mark.Line+1, mark.Column+1, msg, line, errorMarker(mark.Column)))
	case c.Filepath != "":
		return newError(DomainValidation, ErrConfigValidation,
			fmt.Sprintf("%s: Error in network definition: %s", c.Filepath, msg))
	default:
		return newError(DomainValidation, ErrConfigGeneric,
			fmt.Sprintf("Error in network definition: %s", msg))
	}
}
