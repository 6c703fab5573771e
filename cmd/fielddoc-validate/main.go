package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fielddoc/fielddoc/pkg/manifest"
	"github.com/fielddoc/fielddoc/pkg/validate"
)

func main() {
	manifestPath := flag.String("manifest", "", "manifest file pairing schemas with data files")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s -manifest <file> [path...]\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(flag.CommandLine.Output(), "\nValidate data directories against a schema manifest. File arguments\ncollapse to their parent directory.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *manifestPath == "" {
		flag.Usage()
		os.Exit(2)
	}
	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	m, err := manifest.Load(*manifestPath)
	if err != nil {
		log.Fatalf("Failed to load manifest: %v", err)
	}
	runner := validate.NewRunner(m, filepath.Dir(*manifestPath))

	ctx := context.Background()
	ret := 0
	for _, dir := range dataDirs(args) {
		fmt.Printf("\n🔍 Validating %s...\n", dir)
		result := runner.ValidateDir(ctx, dir)
		if result.Valid() {
			fmt.Printf("✅ %s is valid!\n", dir)
			continue
		}

		ret = 1
		fmt.Printf("❌ %s has errors:\n", dir)
		for _, file := range result {
			if file.Valid() {
				continue
			}
			fmt.Printf("\n❌ Errors in %s:\n", file.Path)
			for _, msg := range file.Errors {
				fmt.Printf("   - %s\n", msg)
			}
		}
	}
	os.Exit(ret)
}

// dataDirs collapses file arguments to their parent directories, keeping
// first-seen order and dropping duplicates.
func dataDirs(args []string) []string {
	var dirs []string
	seen := make(map[string]struct{})
	for _, arg := range args {
		dir := arg
		if info, err := os.Stat(arg); err == nil && !info.IsDir() {
			dir = filepath.Dir(arg)
		}
		dir = filepath.Clean(dir)
		if _, dup := seen[dir]; dup {
			continue
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}
	return dirs
}
