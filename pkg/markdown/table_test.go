package markdown_test

import (
	"strings"
	"testing"

	"github.com/fielddoc/fielddoc/pkg/markdown"
	"github.com/fielddoc/fielddoc/pkg/schema"
)

func TestFieldTable_PaddedLayout(t *testing.T) {
	fields := []schema.FieldSpec{
		{Name: "id", Description: "Unique id"},
		{Name: "region_id", Description: "Region"},
	}

	got, err := markdown.FieldTable(fields)
	if err != nil {
		t.Fatalf("field table: %v", err)
	}

	want := "" +
		"| Field       | Description | Notes |\n" +
		"|-------------|-------------|-------|\n" +
		"| `id`        | Unique id   |       |\n" +
		"| `region_id` | Region      |       |\n"
	if got != want {
		t.Fatalf("table layout mismatch\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestFieldTable_Deterministic(t *testing.T) {
	fields := []schema.FieldSpec{
		{Name: "commodity_id", Description: "Commodity traded", Notes: schema.NoteList("Must exist in commodities.csv")},
		{Name: "value", Description: "Levy per unit", Default: 0, HasDefault: true},
	}

	first, err := markdown.FieldTable(fields)
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	second, err := markdown.FieldTable(fields)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if first != second {
		t.Fatal("repeated renders differ")
	}
}

func TestFieldTable_ListNotesBecomeBullets(t *testing.T) {
	fields := []schema.FieldSpec{
		{
			Name:        "search_space",
			Description: "Processes the agent may pick",
			Notes:       schema.NoteList("Comma-separated identifiers", "The keyword all matches everything"),
		},
	}

	got, err := markdown.FieldTable(fields)
	if err != nil {
		t.Fatalf("field table: %v", err)
	}

	want := "- Comma-separated identifiers.<br />- The keyword all matches everything."
	if !strings.Contains(got, want) {
		t.Fatalf("bullet notes missing\nwant fragment: %q\ngot:\n%s", want, got)
	}
}

func TestFieldTable_StringNotesStayProse(t *testing.T) {
	fields := []schema.FieldSpec{
		{Name: "value", Description: "Demand quantity", Notes: schema.NoteString("Must be positive")},
	}

	got, err := markdown.FieldTable(fields)
	if err != nil {
		t.Fatalf("field table: %v", err)
	}
	if strings.Contains(got, "- Must") {
		t.Fatalf("prose note rendered as bullet:\n%s", got)
	}
	if !strings.Contains(got, "Must be positive") {
		t.Fatalf("prose note missing:\n%s", got)
	}
}

func TestFieldTable_ZeroDefaultRenders(t *testing.T) {
	fields := []schema.FieldSpec{
		{Name: "value", Description: "Levy per unit", Default: 0, HasDefault: true},
	}

	got, err := markdown.FieldTable(fields)
	if err != nil {
		t.Fatalf("field table: %v", err)
	}
	if !strings.Contains(got, "Optional. Defaults to `0`.") {
		t.Fatalf("zero default missing:\n%s", got)
	}
}

func TestFieldTable_DefaultPrecedesNotes(t *testing.T) {
	fields := []schema.FieldSpec{
		{
			Name:        "search_space",
			Description: "Processes the agent may pick",
			Default:     "all",
			HasDefault:  true,
			Notes:       schema.NoteString("Comma-separated identifiers"),
		},
	}

	got, err := markdown.FieldTable(fields)
	if err != nil {
		t.Fatalf("field table: %v", err)
	}
	if !strings.Contains(got, "Optional. Defaults to `all`. Comma-separated identifiers") {
		t.Fatalf("default prefix misplaced:\n%s", got)
	}
}

func TestFieldTable_NewlinesCollapse(t *testing.T) {
	fields := []schema.FieldSpec{
		{
			Name:        "description",
			Description: "First paragraph\n\nSecond paragraph",
			Notes:       schema.NoteString("line one\nline two"),
		},
	}

	got, err := markdown.FieldTable(fields)
	if err != nil {
		t.Fatalf("field table: %v", err)
	}
	if !strings.Contains(got, "First paragraph<br /><br />Second paragraph") {
		t.Fatalf("paragraph break not converted:\n%s", got)
	}
	if !strings.Contains(got, "line one line two") {
		t.Fatalf("single newline not collapsed:\n%s", got)
	}
}

func TestFieldTable_EscapesPipes(t *testing.T) {
	fields := []schema.FieldSpec{
		{Name: "expr", Description: "Use a|b to mean either"},
	}

	got, err := markdown.FieldTable(fields)
	if err != nil {
		t.Fatalf("field table: %v", err)
	}
	if !strings.Contains(got, `a\|b`) {
		t.Fatalf("pipe not escaped:\n%s", got)
	}
}

func TestFieldTable_EmptyFields(t *testing.T) {
	if _, err := markdown.FieldTable(nil); err == nil {
		t.Fatal("expected error for empty field list")
	}
}
