package docgen_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/fielddoc/fielddoc/pkg/docgen"
)

func TestParseSections(t *testing.T) {
	layout := `- title: Time slices
  patterns: [time_slices]
- title: Agents
  patterns:
    - agents
    - agent_*
`
	specs, err := docgen.ParseSections([]byte(layout))
	if err != nil {
		t.Fatalf("ParseSections: %v", err)
	}

	want := []docgen.SectionSpec{
		{Title: "Time slices", Patterns: []string{"time_slices"}},
		{Title: "Agents", Patterns: []string{"agents", "agent_*"}},
	}
	if diff := cmp.Diff(want, specs); diff != "" {
		t.Fatalf("specs mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSections_Validation(t *testing.T) {
	cases := []struct {
		name    string
		layout  string
		wantErr string
	}{
		{
			name:    "missing title",
			layout:  "- patterns: [agents]\n",
			wantErr: "title is required",
		},
		{
			name:    "missing patterns",
			layout:  "- title: Agents\n",
			wantErr: "at least one pattern is required",
		},
		{
			name:    "not a sequence",
			layout:  "title: Agents\n",
			wantErr: "parse sections",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := docgen.ParseSections([]byte(tc.layout))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error %v does not mention %q", err, tc.wantErr)
			}
		})
	}
}
