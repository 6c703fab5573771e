// Package docgen renders Markdown documentation from schema files: per-file
// field tables grouped into sections, config-file reference blocks, and an
// index of example models. Document layout is driven by pongo2 templates; the
// embedded defaults can be swapped per generator.
package docgen
