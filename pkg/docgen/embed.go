package docgen

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// Templates exposes the built-in document templates so callers can render
// with the stock layout or fork it as a starting point for their own.
func Templates() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		// Should never happen, but fall back to the raw FS so templates
		// remain usable.
		return embeddedTemplates
	}
	return sub
}
