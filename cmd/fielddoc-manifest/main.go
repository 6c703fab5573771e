package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/fielddoc/fielddoc/pkg/manifest"
)

func main() {
	schemaDir := flag.String("schema-dir", "schemas", "directory scanned for schema files")
	out := flag.String("out", "", "output manifest path (default <schema-dir>/package.yaml)")
	name := flag.String("name", "input", "manifest name")
	exclude := flag.String("exclude", "model.yaml,settings.yaml", "comma-separated schema files to skip")
	yes := flag.Bool("yes", false, "overwrite an existing manifest without asking")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags]\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(flag.CommandLine.Output(), "\nDerive a validation manifest from a schema directory.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	outPath := *out
	if outPath == "" {
		outPath = filepath.Join(*schemaDir, "package.yaml")
	}

	// The manifest never lists itself.
	excludes := []string{filepath.Base(outPath)}
	for _, item := range strings.Split(*exclude, ",") {
		if item = strings.TrimSpace(item); item != "" {
			excludes = append(excludes, item)
		}
	}

	m, err := manifest.Generate(os.DirFS(*schemaDir), manifest.GenerateOptions{
		Name:     *name,
		Excludes: excludes,
	})
	if err != nil {
		log.Fatalf("Failed to generate manifest: %v", err)
	}

	if !*yes {
		if _, err := os.Stat(outPath); err == nil {
			overwrite := false
			prompt := &survey.Confirm{
				Message: fmt.Sprintf("%s already exists. Overwrite?", outPath),
			}
			if err := survey.AskOne(prompt, &overwrite); err != nil {
				log.Fatalf("Aborted: %v", err)
			}
			if !overwrite {
				fmt.Println("Aborted.")
				return
			}
		}
	}

	data, err := m.Encode()
	if err != nil {
		log.Fatalf("Failed to encode manifest: %v", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		log.Fatalf("Failed to write manifest: %v", err)
	}
	fmt.Printf("Manifest written to %s (%d entries)\n", outPath, len(m.Entries))
}
