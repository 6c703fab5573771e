package validate_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fielddoc/fielddoc/pkg/manifest"
	"github.com/fielddoc/fielddoc/pkg/validate"
)

const regionsTableSchema = `description: Regions covered by the model
fields:
  - name: id
    type: string
    description: Unique region identifier
    constraints:
      required: true
      unique: true
  - name: long_name
    type: string
    description: Human readable region name
`

const runSettingsSchema = `type: object
description: Run configuration
properties:
  log_level:
    type: string
    description: Run log verbosity
    enum: [error, warn, info, debug]
required:
  - log_level
`

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func testManifest() *manifest.Manifest {
	return &manifest.Manifest{
		Name: "input",
		Entries: []manifest.Entry{
			{Name: "regions", Schema: "regions.yaml", Data: "regions.csv"},
			{Name: "model", Schema: "model.yaml", Data: "model.toml"},
		},
	}
}

func TestRunner_ValidDirectory(t *testing.T) {
	root := t.TempDir()
	schemaDir := filepath.Join(root, "schemas")
	dataDir := filepath.Join(root, "data")
	writeFiles(t, schemaDir, map[string]string{
		"regions.yaml": regionsTableSchema,
		"model.yaml":   runSettingsSchema,
	})
	writeFiles(t, dataDir, map[string]string{
		"regions.csv": "id,long_name\nGB,United Kingdom\nFR,France\n",
		"model.toml":  "log_level = \"info\"\n",
	})

	r := validate.NewRunner(testManifest(), schemaDir)
	result := r.ValidateDir(context.Background(), dataDir)

	if !result.Valid() {
		t.Fatalf("expected a valid result, got %+v", result)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 file results, got %d", len(result))
	}
	if result[0].Path != filepath.Join(dataDir, "regions.csv") {
		t.Fatalf("unexpected first path: %q", result[0].Path)
	}
	if result[1].Path != filepath.Join(dataDir, "model.toml") {
		t.Fatalf("unexpected second path: %q", result[1].Path)
	}
}

func TestRunner_FailuresAreIsolatedPerEntry(t *testing.T) {
	root := t.TempDir()
	schemaDir := filepath.Join(root, "schemas")
	dataDir := filepath.Join(root, "data")
	writeFiles(t, schemaDir, map[string]string{
		"regions.yaml": regionsTableSchema,
		"model.yaml":   runSettingsSchema,
	})
	writeFiles(t, dataDir, map[string]string{
		"regions.csv": "id,long_name\nGB,United Kingdom\nGB,Great Britain\n",
		"model.toml":  "log_level = \"info\"\n",
	})

	result := validate.NewRunner(testManifest(), schemaDir).ValidateDir(context.Background(), dataDir)

	if result.Valid() {
		t.Fatal("expected the batch to fail")
	}
	if result[0].Valid() {
		t.Fatal("expected regions.csv to fail")
	}
	if !strings.Contains(result[0].Errors[0], `duplicate value "GB"`) {
		t.Fatalf("unexpected message: %v", result[0].Errors)
	}
	if !result[1].Valid() {
		t.Fatalf("model.toml should still validate: %v", result[1].Errors)
	}
}

func TestRunner_MissingDataFile(t *testing.T) {
	root := t.TempDir()
	schemaDir := filepath.Join(root, "schemas")
	dataDir := filepath.Join(root, "data")
	writeFiles(t, schemaDir, map[string]string{
		"regions.yaml": regionsTableSchema,
		"model.yaml":   runSettingsSchema,
	})
	writeFiles(t, dataDir, map[string]string{
		"model.toml": "log_level = \"warn\"\n",
	})

	result := validate.NewRunner(testManifest(), schemaDir).ValidateDir(context.Background(), dataDir)

	if result.Valid() {
		t.Fatal("expected the batch to fail")
	}
	if len(result[0].Errors) != 1 {
		t.Fatalf("expected one message for the missing file, got %v", result[0].Errors)
	}
	if !result[1].Valid() {
		t.Fatalf("model.toml should still validate: %v", result[1].Errors)
	}
}

func TestRunner_BrokenSchemaDoesNotStopTheBatch(t *testing.T) {
	root := t.TempDir()
	schemaDir := filepath.Join(root, "schemas")
	dataDir := filepath.Join(root, "data")
	writeFiles(t, schemaDir, map[string]string{
		// No description, no fields: the parser rejects it.
		"regions.yaml": "title: Broken\n",
		"model.yaml":   runSettingsSchema,
	})
	writeFiles(t, dataDir, map[string]string{
		"regions.csv": "id\nGB\n",
		"model.toml":  "log_level = \"debug\"\n",
	})

	result := validate.NewRunner(testManifest(), schemaDir).ValidateDir(context.Background(), dataDir)

	if result[0].Valid() {
		t.Fatal("expected the broken schema to fail its entry")
	}
	if !result[1].Valid() {
		t.Fatalf("model.toml should still validate: %v", result[1].Errors)
	}
}

func TestRunner_ShapeMismatch(t *testing.T) {
	root := t.TempDir()
	schemaDir := filepath.Join(root, "schemas")
	dataDir := filepath.Join(root, "data")
	writeFiles(t, schemaDir, map[string]string{
		"regions.yaml": runSettingsSchema, // config schema behind a .csv entry
	})
	writeFiles(t, dataDir, map[string]string{
		"regions.csv": "id\nGB\n",
	})

	m := &manifest.Manifest{Entries: []manifest.Entry{
		{Name: "regions", Schema: "regions.yaml", Data: "regions.csv"},
	}}
	result := validate.NewRunner(m, schemaDir).ValidateDir(context.Background(), dataDir)

	if result.Valid() {
		t.Fatal("expected a shape mismatch failure")
	}
	if !strings.Contains(result[0].Errors[0], "is not a table schema") {
		t.Fatalf("unexpected message: %v", result[0].Errors)
	}
}
