package manifest_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/fielddoc/fielddoc/pkg/manifest"
)

func TestParse_PackageFlavor(t *testing.T) {
	doc := `name: input
resources:
  - name: regions
    path: regions.csv
    schema: regions.yaml
  - path: agents.csv
    schema: agents.yaml
`
	m, err := manifest.Parse([]byte(doc), "package.yaml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := &manifest.Manifest{
		Name: "input",
		Entries: []manifest.Entry{
			{Name: "regions", Schema: "regions.yaml", Data: "regions.csv"},
			{Name: "agents", Schema: "agents.yaml", Data: "agents.csv"},
		},
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Fatalf("manifest mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_IndexFlavor(t *testing.T) {
	doc := `schemas:
  - include: time_slices.yaml
    path: time_slices.csv
  - include: regions.yaml
    path: regions.csv
`
	m, err := manifest.Parse([]byte(doc), "index.yaml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := []manifest.Entry{
		{Name: "time_slices", Schema: "time_slices.yaml", Data: "time_slices.csv"},
		{Name: "regions", Schema: "regions.yaml", Data: "regions.csv"},
	}
	if diff := cmp.Diff(want, m.Entries); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "neither flavor",
			doc:     "name: input\n",
			wantErr: `no "schemas" or "resources" list`,
		},
		{
			name: "both flavors",
			doc: `schemas:
  - include: a.yaml
    path: a.csv
resources:
  - path: b.csv
    schema: b.yaml
`,
			wantErr: `declares both "schemas" and "resources"`,
		},
		{
			name:    "missing include",
			doc:     "schemas:\n  - path: a.csv\n",
			wantErr: "schemas[0]: missing include",
		},
		{
			name:    "missing resource path",
			doc:     "resources:\n  - schema: a.yaml\n",
			wantErr: "resources[0]: missing path",
		},
		{
			name:    "not yaml",
			doc:     "\t",
			wantErr: "manifest:",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := manifest.Parse([]byte(tc.doc), "broken.yaml")
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error %v does not mention %q", err, tc.wantErr)
			}
			if !strings.Contains(err.Error(), "broken.yaml") && tc.name != "not yaml" {
				t.Fatalf("error should name the file: %v", err)
			}
		})
	}
}

func TestGenerate(t *testing.T) {
	files := fstest.MapFS{
		"agents.yaml":   &fstest.MapFile{Data: []byte("description: Agents\n")},
		"regions.yaml":  &fstest.MapFile{Data: []byte("description: Regions\n")},
		"model.yaml":    &fstest.MapFile{Data: []byte("type: object\n")},
		"package.yaml":  &fstest.MapFile{Data: []byte("name: input\n")},
		"readme.md":     &fstest.MapFile{Data: []byte("not a schema\n")},
		"settings.yaml": &fstest.MapFile{Data: []byte("type: object\n")},
	}

	m, err := manifest.Generate(files, manifest.GenerateOptions{
		Name:     "input",
		Excludes: []string{"model.yaml", "settings.yaml", "package.yaml"},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	want := &manifest.Manifest{
		Name: "input",
		Entries: []manifest.Entry{
			{Name: "agents", Schema: "agents.yaml", Data: "agents.csv"},
			{Name: "regions", Schema: "regions.yaml", Data: "regions.csv"},
		},
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Fatalf("manifest mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_NothingFound(t *testing.T) {
	files := fstest.MapFS{
		"model.yaml": &fstest.MapFile{Data: []byte("type: object\n")},
	}
	_, err := manifest.Generate(files, manifest.GenerateOptions{
		Excludes: []string{"model.yaml"},
	})
	if err == nil {
		t.Fatal("expected an error when no schemas remain")
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	m := &manifest.Manifest{
		Name: "input",
		Entries: []manifest.Entry{
			{Name: "agents", Schema: "agents.yaml", Data: "agents.csv"},
			{Name: "regions", Schema: "regions.yaml", Data: "regions.csv"},
		},
	}

	data, err := m.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.HasPrefix(string(data), "name: input\n") {
		t.Fatalf("unexpected encoding:\n%s", data)
	}

	back, err := manifest.Parse(data, "package.yaml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if diff := cmp.Diff(m, back); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}
