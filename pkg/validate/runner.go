package validate

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fielddoc/fielddoc/internal/loader"
	"github.com/fielddoc/fielddoc/internal/parser"
	"github.com/fielddoc/fielddoc/pkg/manifest"
	"github.com/fielddoc/fielddoc/pkg/schema"
)

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLoader overrides the schema loader.
func WithLoader(l schema.Loader) RunnerOption {
	return func(r *Runner) {
		r.loader = l
	}
}

// WithParser overrides the schema parser.
func WithParser(p schema.Parser) RunnerOption {
	return func(r *Runner) {
		r.parser = p
	}
}

// Runner validates data directories against a manifest. Schema paths resolve
// against the manifest's own directory, data paths against the directory
// being validated.
type Runner struct {
	manifest *manifest.Manifest
	baseDir  string

	loader schema.Loader
	parser schema.Parser
}

// NewRunner binds a manifest to the directory its schema paths are relative
// to.
func NewRunner(m *manifest.Manifest, baseDir string, opts ...RunnerOption) *Runner {
	r := &Runner{manifest: m, baseDir: baseDir}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.loader == nil {
		r.loader = loader.New(schema.NewLoaderOptions())
	}
	if r.parser == nil {
		r.parser = parser.New(schema.NewParserOptions())
	}
	return r
}

// ValidateDir checks every manifest entry against one data directory,
// strictly in entry order. An entry's failure, including a broken schema, is
// recorded on that entry alone; the rest still run.
func (r *Runner) ValidateDir(ctx context.Context, dataDir string) Result {
	out := make(Result, 0, len(r.manifest.Entries))
	for _, entry := range r.manifest.Entries {
		dataPath := filepath.Join(dataDir, entry.Data)
		if err := ctx.Err(); err != nil {
			out = append(out, FileResult{Path: dataPath, Errors: []string{err.Error()}})
			break
		}
		out = append(out, FileResult{
			Path:   dataPath,
			Errors: r.validateEntry(ctx, entry, dataPath),
		})
	}
	return out
}

func (r *Runner) validateEntry(ctx context.Context, entry manifest.Entry, dataPath string) []string {
	schemaPath := entry.Schema
	if !filepath.IsAbs(schemaPath) {
		schemaPath = filepath.Join(r.baseDir, schemaPath)
	}

	doc, err := r.loader.Load(ctx, schema.SourceFromFile(schemaPath))
	if err != nil {
		return []string{err.Error()}
	}
	def, err := r.parser.Parse(ctx, doc)
	if err != nil {
		return []string{err.Error()}
	}

	switch strings.ToLower(filepath.Ext(dataPath)) {
	case ".csv":
		if def.Shape != schema.ShapeTable {
			return []string{fmt.Sprintf("schema %s is not a table schema", entry.Schema)}
		}
		v, err := NewTableValidator(def)
		if err != nil {
			return []string{err.Error()}
		}
		return v.ValidateFile(dataPath)
	case ".toml":
		if def.Shape != schema.ShapeConfig {
			return []string{fmt.Sprintf("schema %s is not a config schema", entry.Schema)}
		}
		v, err := NewConfigValidator(ctx, doc)
		if err != nil {
			return []string{err.Error()}
		}
		return v.ValidateFile(dataPath)
	default:
		return []string{fmt.Sprintf("unsupported data file extension %q", filepath.Ext(dataPath))}
	}
}
