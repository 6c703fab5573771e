// Package fielddoc turns YAML schema files into Markdown documentation and
// validates the CSV and TOML data files those schemas describe. The root
// package is a thin facade; the work happens in pkg/docgen, pkg/validate and
// pkg/manifest.
package fielddoc

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fielddoc/fielddoc/pkg/docgen"
	"github.com/fielddoc/fielddoc/pkg/schema"
)

// Definition aliases the canonical schema record for callers that only touch
// the facade.
type Definition = schema.Definition

// FieldSpec aliases one normalized field record.
type FieldSpec = schema.FieldSpec

// SectionSpec aliases the input-document section layout entry.
type SectionSpec = docgen.SectionSpec

// Artifact aliases a generated document.
type Artifact = docgen.Artifact

// NewGenerator exposes the docgen constructor from the top-level module.
func NewGenerator(options ...docgen.Option) *docgen.Generator {
	return docgen.New(options...)
}

// LoadDefinition loads and parses one schema file from disk. It is the
// simplest entry point for callers that just want the normalized record.
func LoadDefinition(ctx context.Context, path string) (*schema.Definition, error) {
	doc, err := NewLoader().Load(ctx, schema.SourceFromFile(path))
	if err != nil {
		return nil, err
	}
	return NewParser().Parse(ctx, doc)
}

// GenerateAll renders the named documentation sets, or every registered set
// when no names are given, and returns the artifacts in generation order.
func GenerateAll(ctx context.Context, g *docgen.Generator, names ...string) ([]docgen.Artifact, error) {
	registry := docgen.DefaultRegistry()
	if len(names) == 0 {
		names = registry.List()
	}

	var artifacts []docgen.Artifact
	for _, name := range names {
		set, err := registry.Get(name)
		if err != nil {
			return nil, err
		}
		out, err := set.Generate(ctx, g)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, out...)
	}
	return artifacts, nil
}

// WriteArtifacts writes generated documents under dir, creating it as needed.
func WriteArtifacts(dir string, artifacts []docgen.Artifact) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("fielddoc: %w", err)
	}
	for _, artifact := range artifacts {
		path := filepath.Join(dir, artifact.Name)
		if err := os.WriteFile(path, []byte(artifact.Content), 0o644); err != nil {
			return fmt.Errorf("fielddoc: %w", err)
		}
	}
	return nil
}
