package parser

// Context carries the ambient state of one parse. Every formatter call
// receives it explicitly, so concurrent parses never share state.
type Context struct {
	// Filepath is the source file being parsed, or empty when parsing
	// in-memory data.
	Filepath string
}

// Mark is a position in the source text. Line and Column are 0-based and
// converted to 1-based only for display.
type Mark struct {
	Line   int
	Column int
}
