package parser

// ScanPhase is the coarse state the tokenizer was in when it gave up.
// Only the states the classifier cares about are distinguished.
type ScanPhase int

const (
	// ScanOther is any tokenizer state with no special handling.
	ScanOther ScanPhase = iota
	// ScanBlockMappingKey means the tokenizer was expecting the key of a
	// block mapping.
	ScanBlockMappingKey
)

// ScanState is a read-only view of the tokenizer's scan buffer at the
// moment a syntax fault was raised. This is the narrow surface the
// classifier depends on; it never mutates the buffer.
type ScanState struct {
	// Buffer holds the bytes the tokenizer was reading.
	Buffer []byte
	// Pos is the tokenizer's current position as an offset into Buffer.
	// A value of len(Buffer) means the input was exhausted.
	Pos int
	// Mark is the reported problem position, 0-based.
	Mark Mark
	// Problem is the tokenizer's own description of the fault.
	Problem string
	// Phase is the tokenizer state at the time of the fault.
	Phase ScanPhase
	// TokenAvailable reports whether a scanned token was pending.
	TokenAvailable bool
}

// exhausted reports whether the current position is past the last byte.
func (s *ScanState) exhausted() bool {
	return s.Pos < 0 || s.Pos >= len(s.Buffer)
}

// classifyProblem buckets a raw tokenizer fault into plain language.
// Precedence: a tab under the pointer wins over everything else, then the
// alias signature (space or end of input with no token pending), then the
// block-mapping-key state, then the tokenizer's own wording.
func classifyProblem(s *ScanState) string {
	switch {
	case !s.exhausted() && s.Buffer[s.Pos] == '\t':
		return "tabs are not allowed for indent"
	case (s.exhausted() || s.Buffer[s.Pos] == ' ') && !s.TokenAvailable:
		return "aliases are not supported"
	case s.Phase == ScanBlockMappingKey:
		return "inconsistent indentation"
	default:
		return s.Problem
	}
}
