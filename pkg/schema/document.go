package schema

import (
	"errors"
	"path"
	"path/filepath"
	"strings"
)

// Document pairs a raw schema payload with its origin. The payload is copied
// on the way in and on the way out so callers cannot mutate shared state.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument wraps a payload, rejecting missing inputs up front.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("schema: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("schema: raw document is empty")
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a defensive copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Stem returns the origin's base name without its extension. Schema files
// share their stem with the data file they describe, so this doubles as the
// logical definition name.
func (d Document) Stem() string {
	base := path.Base(filepath.ToSlash(d.Location()))
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}
