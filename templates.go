package fielddoc

import (
	"io/fs"

	"github.com/fielddoc/fielddoc/pkg/docgen"
)

// EmbeddedTemplates exposes the built-in document templates so callers can
// reuse or extend them without importing the docgen package directly.
func EmbeddedTemplates() fs.FS {
	return docgen.Templates()
}
