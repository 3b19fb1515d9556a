package console

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormatDiagnosticPassesThroughWhenPiped(t *testing.T) {
	// Test output is not a terminal, so styling must leave the text intact.
	tests := []struct {
		name    string
		message string
	}{
		{
			name:    "positional diagnostic",
			message: "eth0.yaml:2:12: Error in network definition: Only version 2 is supported\n  version: 3\n           ^",
		},
		{
			name:    "syntax diagnostic",
			message: "bad.yaml:2:3: Invalid YAML: tabs are not allowed for indent:\n\tkey: value\n  ^",
		},
		{
			name:    "message without location",
			message: "Error in network definition: unknown key 'junk'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDiagnostic(tt.message); got != tt.message {
				t.Errorf("Expected %q, got %q", tt.message, got)
			}
		})
	}
}

func TestFormatMessagePrefixes(t *testing.T) {
	tests := []struct {
		name     string
		format   func(string) string
		expected string
	}{
		{name: "error", format: FormatErrorMessage, expected: "✗ boom"},
		{name: "warning", format: FormatWarningMessage, expected: "⚠ boom"},
		{name: "info", format: FormatInfoMessage, expected: "ℹ boom"},
		{name: "success", format: FormatSuccessMessage, expected: "✓ boom"},
		{name: "verbose", format: FormatVerboseMessage, expected: "🔍 boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.format("boom"); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestLocationPattern(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected string
	}{
		{name: "full location", line: "eth0.yaml:3:7: Invalid YAML", expected: "eth0.yaml:3:7:"},
		{name: "absolute path", line: "/etc/netplan/eth0.yaml:1:1: boom", expected: "/etc/netplan/eth0.yaml:1:1:"},
		{name: "no location", line: "Error in network definition: boom", expected: ""},
		{name: "file only", line: "eth0.yaml: Error in network definition", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := locationPattern.FindString(tt.line); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestRenderTable(t *testing.T) {
	table := RenderTable(TableConfig{
		Title:   "Results",
		Headers: []string{"File", "Status"},
		Rows: [][]string{
			{"eth0.yaml", "ok"},
			{"br0.yaml", "invalid"},
		},
	})

	lines := strings.Split(strings.TrimRight(table, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("Expected 5 lines, got %d: %q", len(lines), table)
	}
	if lines[0] != "Results" {
		t.Errorf("Expected title line %q, got %q", "Results", lines[0])
	}
	if lines[1] != "File      | Status " {
		t.Errorf("Unexpected header row: %q", lines[1])
	}
	if lines[2] != "--------- | -------" {
		t.Errorf("Unexpected separator row: %q", lines[2])
	}
	if lines[3] != "eth0.yaml | ok     " {
		t.Errorf("Unexpected data row: %q", lines[3])
	}
	if lines[4] != "br0.yaml  | invalid" {
		t.Errorf("Unexpected data row: %q", lines[4])
	}
}

func TestRenderTableEmptyHeaders(t *testing.T) {
	if got := RenderTable(TableConfig{}); got != "" {
		t.Errorf("Expected empty output, got %q", got)
	}
}

func TestToRelativePath(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "already relative", path: "configs/eth0.yaml", expected: "configs/eth0.yaml"},
		{name: "absolute under cwd", path: filepath.Join(wd, "eth0.yaml"), expected: "eth0.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToRelativePath(tt.path); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}
