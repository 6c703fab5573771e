package fielddoc

import (
	internalLoader "github.com/fielddoc/fielddoc/internal/loader"
	internalParser "github.com/fielddoc/fielddoc/internal/parser"
	"github.com/fielddoc/fielddoc/pkg/schema"
)

// NewLoader constructs a loader using the internal implementation while
// keeping the concrete type hidden from consumers.
func NewLoader(options ...schema.LoaderOption) schema.Loader {
	cfg := schema.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewParser constructs a parser backed by the internal implementation.
func NewParser(options ...schema.ParserOption) schema.Parser {
	cfg := schema.NewParserOptions(options...)
	return internalParser.New(cfg)
}
