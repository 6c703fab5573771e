package docgen

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/fielddoc/fielddoc/internal/loader"
	"github.com/fielddoc/fielddoc/internal/parser"
	"github.com/fielddoc/fielddoc/pkg/markdown"
	"github.com/fielddoc/fielddoc/pkg/schema"
	"github.com/fielddoc/fielddoc/pkg/template"
	"github.com/fielddoc/fielddoc/pkg/template/gotemplate"
)

// Names of the generated documents.
const (
	InputDocName    = "input_files.md"
	SettingsDocName = "program_settings.md"
	ExamplesDocName = "examples.md"
)

// Default schema stems for the two config files.
const (
	DefaultConfigFile   = "model"
	DefaultSettingsFile = "settings"
)

// requiredTemplateVars declares, per built-in template, the context keys it
// cannot render without. The generator name is seeded as a global.
var requiredTemplateVars = map[string][]string{
	"input_files.md":    {"generator", "csv_sections", "toml_info"},
	"settings.md":       {"generator", "toml_info"},
	"table_sections.md": {"sections"},
	"config_table.md":   {"config", "heading_level"},
	"examples.md":       {"generator", "examples"},
}

// Option configures a Generator.
type Option func(*Generator)

// WithLoader overrides the schema loader.
func WithLoader(l schema.Loader) Option {
	return func(g *Generator) {
		g.loader = l
	}
}

// WithParser overrides the schema parser.
func WithParser(p schema.Parser) Option {
	return func(g *Generator) {
		g.parser = p
	}
}

// WithEngine overrides the template engine.
func WithEngine(e template.TemplateRenderer) Option {
	return func(g *Generator) {
		g.engine = e
	}
}

// WithSchemaFS points the generator at the filesystem holding the schema
// files. Table schemas, the model config schema and the settings schema all
// live in this one tree.
func WithSchemaFS(files fs.FS) Option {
	return func(g *Generator) {
		g.schemaFS = files
	}
}

// WithSchemaDir is WithSchemaFS for a directory on disk.
func WithSchemaDir(dir string) Option {
	return func(g *Generator) {
		g.schemaDir = dir
	}
}

// WithTemplatesFS overrides the embedded document templates.
func WithTemplatesFS(files fs.FS) Option {
	return func(g *Generator) {
		g.templatesFS = files
	}
}

// WithExamplesFS points the generator at the directory tree holding example
// models. Each immediate subdirectory with a README.txt becomes one entry in
// the examples document.
func WithExamplesFS(files fs.FS) Option {
	return func(g *Generator) {
		g.examplesFS = files
	}
}

// WithSections sets the ordered section layout of the input-file document.
func WithSections(specs ...SectionSpec) Option {
	return func(g *Generator) {
		g.sections = append([]SectionSpec(nil), specs...)
	}
}

// WithConfigFile sets the schema stem of the model config file.
func WithConfigFile(stem string) Option {
	return func(g *Generator) {
		if stem != "" {
			g.configFile = stem
		}
	}
}

// WithSettingsFile sets the schema stem of the program settings file.
func WithSettingsFile(stem string) Option {
	return func(g *Generator) {
		if stem != "" {
			g.settingsFile = stem
		}
	}
}

// WithGeneratorName sets the name stamped into the header comment of every
// generated document. CLIs pass their own binary name.
func WithGeneratorName(name string) Option {
	return func(g *Generator) {
		if name != "" {
			g.name = name
		}
	}
}

// Generator turns a tree of schema files into Markdown documentation. The
// zero configuration is completed lazily on first use: loader, parser, engine
// and templates all have working defaults, only the schema filesystem is
// mandatory.
type Generator struct {
	loader schema.Loader
	parser schema.Parser
	engine template.TemplateRenderer

	schemaFS    fs.FS
	schemaDir   string
	templatesFS fs.FS
	examplesFS  fs.FS

	sections     []SectionSpec
	configFile   string
	settingsFile string
	name         string

	defaultsApplied bool
	initialiseErr   error
}

// New constructs a Generator and applies the supplied options.
func New(opts ...Option) *Generator {
	g := &Generator{
		configFile:   DefaultConfigFile,
		settingsFile: DefaultSettingsFile,
		name:         "fielddoc",
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(g)
	}
	return g
}

func (g *Generator) applyDefaults() error {
	if g.defaultsApplied {
		return g.initialiseErr
	}
	g.defaultsApplied = true

	if g.schemaFS == nil && g.schemaDir != "" {
		g.schemaFS = os.DirFS(g.schemaDir)
	}
	if g.schemaFS == nil {
		g.initialiseErr = errors.New("docgen: schema filesystem not configured")
		return g.initialiseErr
	}

	if g.loader == nil {
		g.loader = loader.New(schema.NewLoaderOptions(schema.WithFileSystem(g.schemaFS)))
	}
	if g.parser == nil {
		g.parser = parser.New(schema.NewParserOptions())
	}
	if g.templatesFS == nil {
		g.templatesFS = Templates()
	}
	if g.engine == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(g.templatesFS),
			gotemplate.WithExtension(".tpl"),
			gotemplate.WithGlobalData(map[string]any{"generator": g.name}),
			gotemplate.WithRequiredVars(requiredTemplateVars),
		)
		if err != nil {
			g.initialiseErr = fmt.Errorf("docgen: initialise template engine: %w", err)
			return g.initialiseErr
		}
		g.engine = engine
	}
	return nil
}

func (g *Generator) definition(ctx context.Context, name string) (*schema.Definition, error) {
	doc, err := g.loader.Load(ctx, schema.SourceFromFS(name))
	if err != nil {
		return nil, err
	}
	return g.parser.Parse(ctx, doc)
}

// Sections expands the configured section layout against the schema tree and
// renders one File per matched schema. Patterns expand in the order given;
// matches within one pattern sort lexically, and a schema matched by an
// earlier pattern is not repeated by a later one.
func (g *Generator) Sections(ctx context.Context) ([]Section, error) {
	if err := g.applyDefaults(); err != nil {
		return nil, err
	}
	if len(g.sections) == 0 {
		return nil, errors.New("docgen: no sections configured")
	}

	out := make([]Section, 0, len(g.sections))
	for _, spec := range g.sections {
		files, err := g.sectionFiles(ctx, spec)
		if err != nil {
			return nil, err
		}
		out = append(out, Section{Title: spec.Title, Files: files})
	}
	return out, nil
}

func (g *Generator) sectionFiles(ctx context.Context, spec SectionSpec) ([]File, error) {
	seen := make(map[string]struct{})
	var files []File
	for _, pattern := range spec.Patterns {
		names, err := fs.Glob(g.schemaFS, pattern+".yaml")
		if err != nil {
			return nil, fmt.Errorf("docgen: section %q: pattern %q: %w", spec.Title, pattern, err)
		}
		sort.Strings(names)
		for _, name := range names {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}

			file, err := g.tableFile(ctx, name)
			if err != nil {
				return nil, err
			}
			files = append(files, file)
		}
	}
	return files, nil
}

func (g *Generator) tableFile(ctx context.Context, name string) (File, error) {
	def, err := g.definition(ctx, name)
	if err != nil {
		return File{}, err
	}
	if def.Shape != schema.ShapeTable {
		return File{}, fmt.Errorf("docgen: %s: expected a table schema, got %s", name, def.Shape)
	}

	table, err := markdown.FieldTable(def.Fields)
	if err != nil {
		return File{}, fmt.Errorf("docgen: %s: %w", name, err)
	}
	return File{
		Name:        def.Name + ".csv",
		Description: markdown.AddFullStop(def.Description),
		Table:       table,
		Notes:       markdown.FormatNotes(def.Notes),
	}, nil
}

// ConfigBlock loads the config schema with the given stem and assembles its
// documentation block: heading, prose, top-level settings table and one
// subtable per nested section.
func (g *Generator) ConfigBlock(ctx context.Context, stem string) (*ConfigBlock, error) {
	if err := g.applyDefaults(); err != nil {
		return nil, err
	}
	return g.configBlock(ctx, stem)
}

func (g *Generator) configBlock(ctx context.Context, stem string) (*ConfigBlock, error) {
	def, err := g.definition(ctx, stem+".yaml")
	if err != nil {
		return nil, err
	}
	if def.Shape != schema.ShapeConfig {
		return nil, fmt.Errorf("docgen: %s.yaml: expected a config schema, got %s", stem, def.Shape)
	}

	heading := markdown.Backquote(stem + ".toml")
	if def.Title != "" {
		heading = def.Title + ": " + heading
	}
	block := &ConfigBlock{
		Heading:     heading,
		Description: markdown.AddFullStop(def.Description),
		Notes:       markdown.FormatNotes(def.Notes),
	}

	// A config file may consist of nested sections only.
	if len(def.Fields) > 0 {
		table, err := markdown.FieldTable(def.Fields)
		if err != nil {
			return nil, fmt.Errorf("docgen: %s.yaml: %w", stem, err)
		}
		block.Table = table
	}

	for _, sub := range def.Subtables {
		table, err := markdown.FieldTable(sub.Fields)
		if err != nil {
			return nil, fmt.Errorf("docgen: %s.yaml: section %q: %w", stem, sub.Name, err)
		}
		block.Subtables = append(block.Subtables, ConfigSubtable{
			Name:        sub.Name,
			Heading:     markdown.Backquote("[" + sub.Name + "]"),
			Description: markdown.AddFullStop(sub.Description),
			Notes:       markdown.FormatNotes(sub.Notes),
			Table:       table,
		})
	}
	return block, nil
}

func (g *Generator) renderConfig(ctx context.Context, stem string, level int) (string, error) {
	block, err := g.configBlock(ctx, stem)
	if err != nil {
		return "", err
	}
	return g.engine.RenderTemplate("config_table.md", map[string]any{
		"config":        block,
		"heading_level": strings.Repeat("#", level),
	})
}

// InputDoc renders the input-file reference: every table section followed by
// the model config file, documented at heading level two so the whole block
// nests under the document title.
func (g *Generator) InputDoc(ctx context.Context) (Artifact, error) {
	if err := g.applyDefaults(); err != nil {
		return Artifact{}, err
	}

	sections, err := g.Sections(ctx)
	if err != nil {
		return Artifact{}, err
	}
	csvSections, err := g.engine.RenderTemplate("table_sections.md", map[string]any{
		"sections": sections,
	})
	if err != nil {
		return Artifact{}, err
	}
	tomlInfo, err := g.renderConfig(ctx, g.configFile, 2)
	if err != nil {
		return Artifact{}, err
	}

	content, err := g.engine.RenderTemplate("input_files.md", map[string]any{
		"csv_sections": csvSections,
		"toml_info":    tomlInfo,
	})
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Name: InputDocName, Content: content}, nil
}

// SettingsDoc renders the program settings reference from the settings
// schema. The config block carries the document title, so it renders at
// heading level one.
func (g *Generator) SettingsDoc(ctx context.Context) (Artifact, error) {
	if err := g.applyDefaults(); err != nil {
		return Artifact{}, err
	}

	tomlInfo, err := g.renderConfig(ctx, g.settingsFile, 1)
	if err != nil {
		return Artifact{}, err
	}
	content, err := g.engine.RenderTemplate("settings.md", map[string]any{
		"toml_info": tomlInfo,
	})
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Name: SettingsDocName, Content: content}, nil
}

// ExamplesDoc renders the example-model index from the configured examples
// tree. Directories without a README.txt are skipped.
func (g *Generator) ExamplesDoc(ctx context.Context) (Artifact, error) {
	if err := g.applyDefaults(); err != nil {
		return Artifact{}, err
	}
	if g.examplesFS == nil {
		return Artifact{}, errors.New("docgen: examples filesystem not configured")
	}

	examples, err := g.examples(ctx)
	if err != nil {
		return Artifact{}, err
	}
	content, err := g.engine.RenderTemplate("examples.md", map[string]any{
		"examples": examples,
	})
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Name: ExamplesDocName, Content: content}, nil
}

func (g *Generator) examples(ctx context.Context) ([]Example, error) {
	entries, err := fs.ReadDir(g.examplesFS, ".")
	if err != nil {
		return nil, fmt.Errorf("docgen: read examples: %w", err)
	}

	// fs.ReadDir returns entries sorted by name, which fixes the document
	// order.
	examples := make([]Example, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.IsDir() {
			continue
		}
		readme, err := fs.ReadFile(g.examplesFS, path.Join(entry.Name(), "README.txt"))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("docgen: example %q: %w", entry.Name(), err)
		}
		examples = append(examples, Example{
			Name:   entry.Name(),
			Readme: strings.TrimSpace(string(readme)),
		})
	}
	return examples, nil
}
