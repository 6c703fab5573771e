package validate_test

import (
	"context"
	"strings"
	"testing"

	"github.com/fielddoc/fielddoc/pkg/schema"
	"github.com/fielddoc/fielddoc/pkg/validate"
)

const runConfigSchema = `type: object
title: Model file
description: Run configuration
notes: Paths are relative to the model directory
properties:
  milestone_years:
    type: array
    description: Years reported on
    items:
      type: integer
  log_level:
    type: string
    description: Run log verbosity
    default: info
    enum: [error, warn, info, debug]
  output:
    type: object
    description: Output controls
    properties:
      path:
        type: string
        description: Results directory
      keep_intermediate:
        type: boolean
        description: Keep per-iteration files
required:
  - milestone_years
`

func compileConfig(t *testing.T, schemaYAML string) *validate.ConfigValidator {
	t.Helper()
	doc := schema.MustNewDocument(schema.SourceFromFS("config.yaml"), []byte(schemaYAML))
	v, err := validate.NewConfigValidator(context.Background(), doc)
	if err != nil {
		t.Fatalf("compile validator: %v", err)
	}
	return v
}

func TestConfigValidator_ValidData(t *testing.T) {
	v := compileConfig(t, runConfigSchema)

	data := `milestone_years = [2025, 2030]
log_level = "warn"
extra = "ignored"

[output]
path = "results"
keep_intermediate = true
`
	if msgs := v.Validate([]byte(data)); len(msgs) != 0 {
		t.Fatalf("expected no messages, got %v", msgs)
	}
}

func TestConfigValidator_MissingRequiredKey(t *testing.T) {
	v := compileConfig(t, runConfigSchema)

	msgs := v.Validate([]byte("log_level = \"info\"\n"))
	if len(msgs) != 1 {
		t.Fatalf("expected one message, got %v", msgs)
	}
	if !strings.Contains(msgs[0], "milestone_years") || !strings.Contains(msgs[0], "missing") {
		t.Fatalf("unexpected message: %q", msgs[0])
	}
}

func TestConfigValidator_NestedKeyPath(t *testing.T) {
	v := compileConfig(t, runConfigSchema)

	data := `milestone_years = [2025]

[output]
keep_intermediate = "yes"
`
	msgs := v.Validate([]byte(data))
	if len(msgs) != 1 {
		t.Fatalf("expected one message, got %v", msgs)
	}
	if !strings.HasPrefix(msgs[0], `key "output.keep_intermediate": `) {
		t.Fatalf("message should name the dotted key: %q", msgs[0])
	}
}

func TestConfigValidator_ArrayIndexPath(t *testing.T) {
	v := compileConfig(t, runConfigSchema)

	msgs := v.Validate([]byte("milestone_years = [2025, 2030.5]\n"))
	if len(msgs) != 1 {
		t.Fatalf("expected one message, got %v", msgs)
	}
	if !strings.Contains(msgs[0], `key "milestone_years[1]"`) {
		t.Fatalf("message should name the array element: %q", msgs[0])
	}
}

func TestConfigValidator_EnumViolation(t *testing.T) {
	v := compileConfig(t, runConfigSchema)

	data := `milestone_years = [2025]
log_level = "trace"
`
	msgs := v.Validate([]byte(data))
	if len(msgs) != 1 {
		t.Fatalf("expected one message, got %v", msgs)
	}
	if !strings.Contains(msgs[0], `key "log_level"`) {
		t.Fatalf("unexpected message: %q", msgs[0])
	}
}

func TestConfigValidator_CollectsEveryViolation(t *testing.T) {
	v := compileConfig(t, runConfigSchema)

	data := `log_level = "trace"

[output]
path = 7
`
	msgs := v.Validate([]byte(data))
	if len(msgs) != 3 {
		t.Fatalf("expected three messages (missing key, enum, type), got %v", msgs)
	}
}

func TestConfigValidator_UnreadableTOML(t *testing.T) {
	v := compileConfig(t, runConfigSchema)

	msgs := v.Validate([]byte("= nonsense"))
	if len(msgs) != 1 || !strings.Contains(msgs[0], "not a readable TOML file") {
		t.Fatalf("unexpected messages: %v", msgs)
	}
}

func TestConfigValidator_PropertyNamedNotesSurvives(t *testing.T) {
	schemaYAML := `type: object
description: Docs metadata block
properties:
  notes:
    type: string
    description: Free-form commentary
`
	v := compileConfig(t, schemaYAML)

	msgs := v.Validate([]byte("notes = 42\n"))
	if len(msgs) != 1 || !strings.Contains(msgs[0], `key "notes"`) {
		t.Fatalf("the notes property should still be validated: %v", msgs)
	}
}

func TestNewConfigValidator_RejectsBrokenSchema(t *testing.T) {
	doc := schema.MustNewDocument(schema.SourceFromFS("config.yaml"), []byte(`type: banana
properties:
  x:
    type: string
`))
	_, err := validate.NewConfigValidator(context.Background(), doc)
	if err == nil {
		t.Fatal("expected a compile error")
	}
	if !strings.Contains(err.Error(), "invalid config schema") {
		t.Fatalf("unexpected error: %v", err)
	}
}
