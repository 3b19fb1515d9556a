package netdef

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/bengentil/netplan/internal/mapper"
	"github.com/bengentil/netplan/pkg/parser"
)

//go:embed schemas/network_schema.json
var networkSchema string

const networkSchemaURL = "https://netplan.io/schemas/network.json"

// validateSchema checks the decoded document against the embedded network
// definition schema. The first leaf violation is mapped back into the
// source and reported as a positioned diagnostic.
func validateSchema(doc *parser.Document) error {
	compiler := jsonschema.NewCompiler()

	var schemaDoc any
	if err := json.Unmarshal([]byte(networkSchema), &schemaDoc); err != nil {
		return fmt.Errorf("schema validation error: failed to parse schema JSON: %w", err)
	}
	if err := compiler.AddResource(networkSchemaURL, schemaDoc); err != nil {
		return fmt.Errorf("schema validation error: failed to add schema resource: %w", err)
	}
	schema, err := compiler.Compile(networkSchemaURL)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	normalized, err := normalize(doc.Data)
	if err != nil {
		return err
	}

	if err := schema.Validate(normalized); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return semanticFromValidation(doc, validationErr)
		}
		return doc.Context.SemanticError(nil, "%v", err)
	}
	return nil
}

// normalize round-trips the decoded document through JSON so the schema
// validator sees JSON-typed values.
func normalize(data map[string]any) (any, error) {
	if data == nil {
		data = map[string]any{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("schema validation error: failed to marshal document: %w", err)
	}
	var normalized any
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return nil, fmt.Errorf("schema validation error: failed to unmarshal document: %w", err)
	}
	return normalized, nil
}

// semanticFromValidation turns the first leaf cause of a validation error
// into a diagnostic pointing at the offending node, or at its nearest
// existing ancestor when the node itself cannot be located.
func semanticFromValidation(doc *parser.Document, validationErr *jsonschema.ValidationError) error {
	leaf := validationErr
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}

	mark := instanceMark(doc, leaf.InstanceLocation)
	if mark == nil {
		span, ok := mapper.LocateParent(doc.Source, leaf.InstanceLocation)
		mark = markAt(span, ok)
	}
	return doc.Context.SemanticError(mark, "%s", cleanSchemaMessage(leaf.Error()))
}

// cleanSchemaMessage strips the validator's boilerplate ("jsonschema
// validation failed" headers and "at '<path>':" prefixes) so only the
// human-readable description remains.
func cleanSchemaMessage(errorMsg string) string {
	var cleaned []string
	for _, line := range strings.Split(errorMsg, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "jsonschema validation failed") {
			continue
		}
		line = strings.TrimPrefix(line, "- ")
		if rest, ok := strings.CutPrefix(line, "at '"); ok {
			if end := strings.Index(rest, "': "); end >= 0 {
				line = rest[end+3:]
			}
		}
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	if len(cleaned) == 0 {
		return "schema validation failed"
	}
	return strings.Join(cleaned, "; ")
}
