package parser

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"gopkg.in/yaml.v3"
)

// Document is a parsed network definition together with its positioned
// syntax tree and the context it was parsed under.
type Document struct {
	Context *Context
	Source  []byte
	Data    map[string]any
	AST     *ast.File
}

// LoadFile reads and parses a network definition from disk.
func LoadFile(path string) (*Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return Load(src, &Context{Filepath: path})
}

// Load parses a network definition. Tokenizer faults come back as fully
// formed positioned diagnostics (*Error) built from a scan state
// synthesized out of the library error and the raw source.
func Load(src []byte, ctx *Context) (*Document, error) {
	if ctx == nil {
		ctx = &Context{}
	}

	file, err := parser.ParseBytes(src, 0)
	if err != nil {
		return nil, ctx.SyntaxError(scanStateFromError(err, src))
	}

	var data map[string]any
	if err := yaml.Unmarshal(src, &data); err != nil {
		return nil, ctx.SyntaxError(scanStateFromError(err, src))
	}

	return &Document{Context: ctx, Source: src, Data: data, AST: file}, nil
}

// scanStateFromError reconstructs the tokenizer view the formatter needs
// from a library error and the raw input. The libraries do not expose
// their scanner internals, so the pending-token flag is synthesized
// conservatively: by the time a decode fails a token has normally been
// scanned.
func scanStateFromError(err error, src []byte) *ScanState {
	mark, problem := extractProblem(err)
	s := &ScanState{Buffer: src, Problem: problem, TokenAvailable: true}
	if mark != nil {
		s.Mark = *mark
		s.Pos = offsetOf(src, mark.Line, mark.Column)
	}
	return s
}

// offsetOf converts a 0-based line/column into a byte offset, clamped to
// the buffer.
func offsetOf(src []byte, line, column int) int {
	off := 0
	for l := 0; l < line && off < len(src); off++ {
		if src[off] == '\n' {
			l++
		}
	}
	off += column
	if off < 0 {
		off = 0
	}
	if off > len(src) {
		off = len(src)
	}
	return off
}
