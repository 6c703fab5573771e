package schema_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/fielddoc/fielddoc/pkg/schema"
)

type notesHolder struct {
	Notes schema.Notes `yaml:"notes"`
}

func TestNotes_UnmarshalScalar(t *testing.T) {
	var holder notesHolder
	if err := yaml.Unmarshal([]byte(`notes: "Only used by the solver"`), &holder); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if holder.Notes.IsList() {
		t.Fatal("scalar notes reported as list")
	}
	if diff := cmp.Diff([]string{"Only used by the solver"}, holder.Notes.Items()); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestNotes_UnmarshalSequence(t *testing.T) {
	src := "notes:\n  - First remark\n  - Second remark\n"
	var holder notesHolder
	if err := yaml.Unmarshal([]byte(src), &holder); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !holder.Notes.IsList() {
		t.Fatal("sequence notes not reported as list")
	}
	if diff := cmp.Diff([]string{"First remark", "Second remark"}, holder.Notes.Items()); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestNotes_UnmarshalNull(t *testing.T) {
	var holder notesHolder
	if err := yaml.Unmarshal([]byte("notes:\n"), &holder); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !holder.Notes.IsEmpty() {
		t.Fatalf("null notes not empty: %v", holder.Notes.Items())
	}
}

func TestNotes_UnmarshalRejectsMapping(t *testing.T) {
	var holder notesHolder
	if err := yaml.Unmarshal([]byte("notes:\n  text: nope\n"), &holder); err == nil {
		t.Fatal("expected error for mapping notes")
	}
}

func TestNotes_ItemsAreCopied(t *testing.T) {
	notes := schema.NoteList("one", "two")
	items := notes.Items()
	items[0] = "mutated"
	if diff := cmp.Diff([]string{"one", "two"}, notes.Items()); diff != "" {
		t.Fatalf("notes leaked internal slice (-want +got):\n%s", diff)
	}
}
