package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fielddoc/fielddoc"
	"github.com/fielddoc/fielddoc/pkg/docgen"
)

func main() {
	schemaDir := flag.String("schema-dir", "schemas", "directory holding the schema files")
	outDir := flag.String("out", "docs", "directory receiving the generated documents")
	templatesDir := flag.String("templates", "", "directory overriding the embedded document templates")
	examplesDir := flag.String("examples-dir", "examples", "directory holding example models")
	sectionsPath := flag.String("sections", "", "YAML file describing the input document sections")
	configFile := flag.String("config", docgen.DefaultConfigFile, "schema stem of the model config file")
	settingsFile := flag.String("settings", docgen.DefaultSettingsFile, "schema stem of the program settings file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [set...]\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(flag.CommandLine.Output(), "\nGenerate Markdown documentation from schema files.\nSets: %s (default: all)\n\n", strings.Join(docgen.DefaultRegistry().List(), ", "))
		flag.PrintDefaults()
	}
	flag.Parse()

	ctx := context.Background()

	sections := defaultSections()
	if *sectionsPath != "" {
		loaded, err := docgen.LoadSections(*sectionsPath)
		if err != nil {
			log.Fatalf("Failed to load sections: %v", err)
		}
		sections = loaded
	}

	opts := []docgen.Option{
		docgen.WithSchemaDir(*schemaDir),
		docgen.WithExamplesFS(os.DirFS(*examplesDir)),
		docgen.WithSections(sections...),
		docgen.WithConfigFile(*configFile),
		docgen.WithSettingsFile(*settingsFile),
		docgen.WithGeneratorName(filepath.Base(os.Args[0])),
	}
	if *templatesDir != "" {
		opts = append(opts, docgen.WithTemplatesFS(os.DirFS(*templatesDir)))
	}
	g := docgen.New(opts...)

	registry := docgen.DefaultRegistry()
	names := flag.Args()
	if len(names) == 0 {
		names = registry.List()
	}

	failed := false
	for _, name := range names {
		set, err := registry.Get(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unknown doc set %q\n", name)
			failed = true
			continue
		}
		artifacts, err := set.Generate(ctx, g)
		if err != nil {
			log.Fatalf("Failed to generate %s docs: %v", name, err)
		}
		if err := fielddoc.WriteArtifacts(*outDir, artifacts); err != nil {
			log.Fatalf("Failed to write %s docs: %v", name, err)
		}
		for _, artifact := range artifacts {
			fmt.Printf("Generated %s\n", filepath.Join(*outDir, artifact.Name))
		}
	}
	if failed {
		os.Exit(1)
	}
}

// defaultSections is the stock section layout of the input-file document,
// ordered the way the model reads its inputs. A -sections file replaces it
// wholesale.
func defaultSections() []docgen.SectionSpec {
	return []docgen.SectionSpec{
		{Title: "Time slices", Patterns: []string{"time_slices"}},
		{Title: "Regions", Patterns: []string{"regions"}},
		{Title: "Agents", Patterns: []string{"agents", "agent_*"}},
		{Title: "Assets", Patterns: []string{"assets"}},
		{Title: "Commodities", Patterns: []string{"commodities", "commodity_levies", "demand", "demand_slicing"}},
		{Title: "Processes", Patterns: []string{"processes", "process_*"}},
	}
}
