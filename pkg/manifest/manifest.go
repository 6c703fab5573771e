// Package manifest reads and writes the schema manifest: the ordered list
// pairing schema files with the data files they govern. Two YAML flavors are
// accepted on input, the index flavor ("schemas") and the package flavor
// ("resources"); output always uses the package flavor.
package manifest

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry pairs one schema file with the data file it governs. Paths are
// relative: Schema against the manifest's directory, Data against the data
// directory being validated.
type Entry struct {
	Name   string
	Schema string
	Data   string
}

// Manifest is an ordered set of entries. Entry order is the validation and
// report order.
type Manifest struct {
	Name    string
	Entries []Entry
}

type rawManifest struct {
	Name      string        `yaml:"name"`
	Schemas   []rawIndex    `yaml:"schemas"`
	Resources []rawResource `yaml:"resources"`
}

type rawIndex struct {
	Include string `yaml:"include"`
	Path    string `yaml:"path"`
}

type rawResource struct {
	Name   string `yaml:"name"`
	Path   string `yaml:"path"`
	Schema string `yaml:"schema"`
}

// Parse decodes manifest YAML. The location only feeds error messages.
func Parse(data []byte, location string) (*Manifest, error) {
	var raw rawManifest
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("manifest: %s: %w", location, err)
	}

	switch {
	case len(raw.Schemas) > 0 && len(raw.Resources) > 0:
		return nil, fmt.Errorf(`manifest: %s: declares both "schemas" and "resources"`, location)
	case len(raw.Schemas) > 0:
		return parseIndex(raw, location)
	case len(raw.Resources) > 0:
		return parsePackage(raw, location)
	default:
		return nil, fmt.Errorf(`manifest: %s: no "schemas" or "resources" list`, location)
	}
}

func parseIndex(raw rawManifest, location string) (*Manifest, error) {
	m := &Manifest{Name: raw.Name, Entries: make([]Entry, 0, len(raw.Schemas))}
	for i, item := range raw.Schemas {
		if item.Include == "" {
			return nil, fmt.Errorf("manifest: %s: schemas[%d]: missing include", location, i)
		}
		if item.Path == "" {
			return nil, fmt.Errorf("manifest: %s: schemas[%d]: missing path", location, i)
		}
		m.Entries = append(m.Entries, Entry{
			Name:   stem(item.Include),
			Schema: item.Include,
			Data:   item.Path,
		})
	}
	return m, nil
}

func parsePackage(raw rawManifest, location string) (*Manifest, error) {
	m := &Manifest{Name: raw.Name, Entries: make([]Entry, 0, len(raw.Resources))}
	for i, item := range raw.Resources {
		if item.Schema == "" {
			return nil, fmt.Errorf("manifest: %s: resources[%d]: missing schema", location, i)
		}
		if item.Path == "" {
			return nil, fmt.Errorf("manifest: %s: resources[%d]: missing path", location, i)
		}
		name := item.Name
		if name == "" {
			name = stem(item.Schema)
		}
		m.Entries = append(m.Entries, Entry{Name: name, Schema: item.Schema, Data: item.Path})
	}
	return m, nil
}

// Load reads and parses a manifest file from disk.
func Load(filename string) (*Manifest, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	return Parse(data, filename)
}

// GenerateOptions configures Generate.
type GenerateOptions struct {
	// Name of the generated manifest. Defaults to "input".
	Name string
	// Excludes lists schema file names to skip, typically config-shaped
	// schemas and the manifest file itself.
	Excludes []string
}

// Generate scans a schema directory and derives one entry per *.yaml file,
// in lexical order: agents.yaml governs agents.csv, and so on.
func Generate(fsys fs.FS, opts GenerateOptions) (*Manifest, error) {
	name := opts.Name
	if name == "" {
		name = "input"
	}
	excluded := make(map[string]struct{}, len(opts.Excludes))
	for _, e := range opts.Excludes {
		excluded[e] = struct{}{}
	}

	matches, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, fmt.Errorf("manifest: scan schemas: %w", err)
	}

	m := &Manifest{Name: name}
	for _, match := range matches {
		if _, skip := excluded[match]; skip {
			continue
		}
		s := stem(match)
		m.Entries = append(m.Entries, Entry{Name: s, Schema: match, Data: s + ".csv"})
	}
	if len(m.Entries) == 0 {
		return nil, fmt.Errorf("manifest: no schema files found")
	}
	return m, nil
}

type encodedManifest struct {
	Name      string         `yaml:"name"`
	Resources []encodedEntry `yaml:"resources"`
}

type encodedEntry struct {
	Name   string `yaml:"name"`
	Path   string `yaml:"path"`
	Schema string `yaml:"schema"`
}

// Encode renders the manifest as package-flavor YAML.
func (m *Manifest) Encode() ([]byte, error) {
	out := encodedManifest{
		Name:      m.Name,
		Resources: make([]encodedEntry, 0, len(m.Entries)),
	}
	for _, entry := range m.Entries {
		out.Resources = append(out.Resources, encodedEntry{
			Name:   entry.Name,
			Path:   entry.Data,
			Schema: entry.Schema,
		})
	}
	data, err := yaml.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("manifest: encode: %w", err)
	}
	return data, nil
}

func stem(name string) string {
	base := path.Base(name)
	return strings.TrimSuffix(base, path.Ext(base))
}
