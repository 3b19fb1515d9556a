package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validDefinition = `network:
  version: 2
  ethernets:
    eth0:
      dhcp4: true
`

const invalidDefinition = `network:
  version: 3
`

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConfigFiles(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "20-bridges.yaml", validDefinition)
	writeConfig(t, dir, "10-ethernets.yaml", validDefinition)
	writeConfig(t, dir, "README.md", "not a config")
	writeConfig(t, dir, "backup.yml", validDefinition)
	if err := os.Mkdir(filepath.Join(dir, "nested.yaml"), 0755); err != nil {
		t.Fatal(err)
	}

	files, err := configFiles(dir)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := []string{
		filepath.Join(dir, "10-ethernets.yaml"),
		filepath.Join(dir, "20-bridges.yaml"),
	}
	if len(files) != len(expected) {
		t.Fatalf("Expected %d files, got %d: %v", len(expected), len(files), files)
	}
	for i, file := range files {
		if file != expected[i] {
			t.Errorf("Expected %s at index %d, got %s", expected[i], i, file)
		}
	}
}

func TestConfigFilesMissingDirectory(t *testing.T) {
	_, err := configFiles(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Error("Expected error for missing directory, got nil")
	}
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid definition", func(t *testing.T) {
		path := writeConfig(t, dir, "good.yaml", validDefinition)
		if err := ValidateFile(path, false); err != nil {
			t.Errorf("Expected valid file, got %v", err)
		}
	})

	t.Run("invalid definition", func(t *testing.T) {
		path := writeConfig(t, dir, "bad.yaml", invalidDefinition)
		err := ValidateFile(path, false)
		if err == nil {
			t.Fatal("Expected error, got nil")
		}
		if !strings.HasPrefix(err.Error(), "invalid network definition: ") {
			t.Errorf("Unexpected error message: %q", err.Error())
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if err := ValidateFile(filepath.Join(dir, "absent.yaml"), false); err == nil {
			t.Error("Expected error for missing file, got nil")
		}
	})
}

func TestValidateAll(t *testing.T) {
	t.Run("all valid", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "eth0.yaml", validDefinition)
		writeConfig(t, dir, "eth1.yaml", validDefinition)

		if err := ValidateAll(dir, false); err != nil {
			t.Errorf("Expected all files to validate, got %v", err)
		}
	})

	t.Run("some invalid", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "eth0.yaml", validDefinition)
		writeConfig(t, dir, "eth1.yaml", invalidDefinition)
		writeConfig(t, dir, "eth2.yaml", "network: [broken\n")

		err := ValidateAll(dir, false)
		if err == nil {
			t.Fatal("Expected error, got nil")
		}
		expected := "2 of 3 network definitions are invalid"
		if err.Error() != expected {
			t.Errorf("Expected %q, got %q", expected, err.Error())
		}
	})

	t.Run("empty directory", func(t *testing.T) {
		if err := ValidateAll(t.TempDir(), false); err != nil {
			t.Errorf("Expected empty directory to pass, got %v", err)
		}
	})
}
