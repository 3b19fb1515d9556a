package netdef

import (
	"sort"

	"github.com/bengentil/netplan/internal/mapper"
	"github.com/bengentil/netplan/pkg/parser"
)

// deviceSections are the device-class mappings a network definition may
// carry under the "network" key.
var deviceSections = map[string]bool{
	"ethernets":     true,
	"wifis":         true,
	"bridges":       true,
	"bonds":         true,
	"vlans":         true,
	"tunnels":       true,
	"modems":        true,
	"dummy-devices": true,
	"vrfs":          true,
	"nm-devices":    true,
}

// knownRenderers are the accepted values for the renderer key.
var knownRenderers = map[string]bool{
	"networkd":       true,
	"NetworkManager": true,
}

// Validate checks a parsed document against the network definition rules
// and reports the first violation as a positioned diagnostic. An empty
// document configures nothing and is accepted.
func Validate(doc *parser.Document) error {
	ctx := doc.Context
	if len(doc.Data) == 0 {
		return nil
	}

	for _, key := range sortedKeys(doc.Data) {
		if key != "network" {
			return ctx.SemanticError(keyMark(doc, nil, key), "unknown key '%s'", key)
		}
	}

	network, ok := doc.Data["network"].(map[string]any)
	if !ok {
		return ctx.SemanticError(instanceMark(doc, []string{"network"}),
			"expected mapping (check indentation)")
	}

	if err := validateVersion(doc, network); err != nil {
		return err
	}
	if err := validateRenderer(doc, network); err != nil {
		return err
	}
	if err := validateSections(doc, network); err != nil {
		return err
	}

	return validateSchema(doc)
}

func validateVersion(doc *parser.Document, network map[string]any) error {
	ctx := doc.Context
	version, present := network["version"]
	if !present {
		return ctx.SemanticError(keyMark(doc, nil, "network"),
			"missing 'version' in network definition")
	}
	v, isInt := version.(int)
	if !isInt {
		return ctx.SemanticError(instanceMark(doc, []string{"network", "version"}),
			"invalid unsigned int value '%v'", version)
	}
	if v != 2 {
		return ctx.SemanticError(instanceMark(doc, []string{"network", "version"}),
			"Only version 2 is supported")
	}
	return nil
}

func validateRenderer(doc *parser.Document, network map[string]any) error {
	renderer, present := network["renderer"]
	if !present {
		return nil
	}
	if name, isString := renderer.(string); !isString || !knownRenderers[name] {
		return doc.Context.SemanticError(instanceMark(doc, []string{"network", "renderer"}),
			"unknown renderer id '%v'", renderer)
	}
	return nil
}

func validateSections(doc *parser.Document, network map[string]any) error {
	ctx := doc.Context
	for _, key := range sortedKeys(network) {
		if key == "version" || key == "renderer" {
			continue
		}
		if !deviceSections[key] {
			return ctx.SemanticError(keyMark(doc, []string{"network"}, key),
				"unknown key '%s'", key)
		}

		section := network[key]
		if section == nil {
			// an empty section declares no devices
			continue
		}
		devices, isMapping := section.(map[string]any)
		if !isMapping {
			return ctx.SemanticError(instanceMark(doc, []string{"network", key}),
				"expected mapping (check indentation)")
		}
		for _, id := range sortedKeys(devices) {
			device := devices[id]
			if device == nil {
				continue
			}
			if _, isMapping := device.(map[string]any); !isMapping {
				return ctx.SemanticError(instanceMark(doc, []string{"network", key, id}),
					"expected mapping (check indentation)")
			}
		}
	}
	return nil
}

// instanceMark resolves an instance location to a 0-based source mark, or
// nil when the document cannot be positioned.
func instanceMark(doc *parser.Document, location []string) *parser.Mark {
	span, ok := mapper.LocateInstance(doc.Source, location)
	return markAt(span, ok)
}

// keyMark resolves the position of a key inside the mapping at location.
func keyMark(doc *parser.Document, location []string, key string) *parser.Mark {
	span, ok := mapper.LocateKey(doc.Source, location, key)
	return markAt(span, ok)
}

// markAt converts a 1-based mapper span into the 0-based mark the
// diagnostic formatter expects.
func markAt(span mapper.Span, ok bool) *parser.Mark {
	if !ok {
		return nil
	}
	return &parser.Mark{Line: span.Line - 1, Column: span.Column - 1}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
