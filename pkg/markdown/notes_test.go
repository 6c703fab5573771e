package markdown_test

import (
	"testing"

	"github.com/fielddoc/fielddoc/pkg/markdown"
	"github.com/fielddoc/fielddoc/pkg/schema"
)

func TestAddFullStop(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Already terminated.", "Already terminated."},
		{"Needs one", "Needs one."},
		{"Trailing space   ", "Trailing space."},
		{"Trailing newline\n", "Trailing newline."},
	}
	for _, tc := range cases {
		if got := markdown.AddFullStop(tc.in); got != tc.want {
			t.Errorf("AddFullStop(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatNotes_List(t *testing.T) {
	notes := schema.NoteList("First remark", "Second remark.")
	want := "- First remark.\n- Second remark."
	if got := markdown.FormatNotes(notes); got != want {
		t.Fatalf("format notes: want %q, got %q", want, got)
	}
}

func TestFormatNotes_String(t *testing.T) {
	notes := schema.NoteString("A single remark")
	if got := markdown.FormatNotes(notes); got != "- A single remark." {
		t.Fatalf("format notes: %q", got)
	}
}

func TestFormatNotes_Empty(t *testing.T) {
	if got := markdown.FormatNotes(schema.Notes{}); got != "" {
		t.Fatalf("empty notes rendered: %q", got)
	}
}

func TestRenderScalar(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"int zero", 0, "0"},
		{"bool false", false, "false"},
		{"plain string", "all", "all"},
		{"numeric string", "0", `"0"`},
		{"float", 0.5, "0.5"},
		{"nil", nil, "null"},
		{"list", []any{"coal", "gas"}, "[coal, gas]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := markdown.RenderScalar(tc.in)
			if err != nil {
				t.Fatalf("render scalar: %v", err)
			}
			if got != tc.want {
				t.Fatalf("render scalar: want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestSanitizeInline(t *testing.T) {
	if got := markdown.SanitizeInline("plain prose, untouched"); got != "plain prose, untouched" {
		t.Fatalf("plain text altered: %q", got)
	}
	if got := markdown.SanitizeInline(`evil <script>alert(1)</script> text`); got != "evil  text" {
		t.Fatalf("script not stripped: %q", got)
	}
	if got := markdown.SanitizeInline("keep <code>x</code> inline"); got != "keep <code>x</code> inline" {
		t.Fatalf("inline code stripped: %q", got)
	}
}
