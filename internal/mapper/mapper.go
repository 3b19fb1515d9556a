package mapper

import (
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/token"
)

// Span is a position in YAML source text. Line and Column are 1-based,
// matching the AST token positions they come from.
type Span struct {
	Line   int
	Column int
}

// LocateInstance resolves an instance location (a decoded JSON pointer,
// e.g. ["network", "ethernets", "eth0"]) to the position of the value node
// it denotes. An empty location resolves to the document root.
func LocateInstance(src []byte, location []string) (Span, bool) {
	root, ok := parseRoot(src)
	if !ok {
		return Span{}, false
	}
	node, _ := traverse(root, location)
	if node == nil {
		return Span{}, false
	}
	return nodeSpan(node)
}

// LocateKey resolves the position of the key named key inside the mapping
// at location. Used to point at an offending key rather than its value.
func LocateKey(src []byte, location []string, key string) (Span, bool) {
	root, ok := parseRoot(src)
	if !ok {
		return Span{}, false
	}
	node, _ := traverse(root, location)
	if keyNode := findKeyInMapping(node, key); keyNode != nil {
		return nodeSpan(keyNode)
	}
	return Span{}, false
}

// LocateParent resolves the position of the nearest existing ancestor of
// location, for faults about something that is missing. Returns false only
// when not even the document root can be positioned.
func LocateParent(src []byte, location []string) (Span, bool) {
	root, ok := parseRoot(src)
	if !ok {
		return Span{}, false
	}
	for i := len(location); i >= 0; i-- {
		if node, _ := traverse(root, location[:i]); node != nil {
			if span, ok := nodeSpan(node); ok {
				return span, true
			}
		}
	}
	return Span{}, false
}

func parseRoot(src []byte) (ast.Node, bool) {
	file, err := parser.ParseBytes(src, 0)
	if err != nil || len(file.Docs) == 0 || file.Docs[0].Body == nil {
		return nil, false
	}
	return file.Docs[0].Body, true
}

// traverse walks the AST along location. Returns the node for the final
// segment and its parent mapping or sequence, or nil when the path does
// not exist in the document.
func traverse(root ast.Node, location []string) (ast.Node, ast.Node) {
	current := root
	var parent ast.Node

	for _, segment := range location {
		parent = current

		switch node := current.(type) {
		case *ast.MappingNode:
			found := false
			for _, value := range node.Values {
				if keyMatches(value.Key, segment) {
					current = value.Value
					found = true
					break
				}
			}
			if !found {
				return nil, parent
			}

		case *ast.MappingValueNode:
			// A single-pair mapping parses to a bare MappingValueNode.
			if !keyMatches(node.Key, segment) {
				return nil, parent
			}
			current = node.Value

		case *ast.SequenceNode:
			idx, ok := parseIndex(segment)
			if !ok || idx < 0 || idx >= len(node.Values) {
				return nil, parent
			}
			current = node.Values[idx]

		case *ast.AnchorNode:
			return traverse(node.Value, location)

		default:
			return nil, parent
		}
	}

	return current, parent
}

// keyMatches checks whether a mapping key node matches the segment string.
func keyMatches(keyNode ast.MapKeyNode, segment string) bool {
	switch key := keyNode.(type) {
	case *ast.StringNode:
		return key.Value == segment
	default:
		if tok := key.GetToken(); tok != nil {
			return tok.Value == segment
		}
		return false
	}
}

// findKeyInMapping searches the mapping's children for key and returns the
// key AST node when found.
func findKeyInMapping(node ast.Node, key string) ast.Node {
	switch mapping := node.(type) {
	case *ast.MappingNode:
		for _, value := range mapping.Values {
			if keyMatches(value.Key, key) {
				return value.Key
			}
		}
	case *ast.MappingValueNode:
		if keyMatches(mapping.Key, key) {
			return mapping.Key
		}
	}
	return nil
}

func nodeSpan(node ast.Node) (Span, bool) {
	if tok := node.GetToken(); tok != nil {
		return tokenSpan(tok), true
	}
	return Span{}, false
}

func tokenSpan(tok *token.Token) Span {
	return Span{Line: tok.Position.Line, Column: tok.Position.Column}
}
