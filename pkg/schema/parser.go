package schema

import "context"

// Parser normalizes raw schema documents into Definitions. The shape of the
// document (table vs config) is detected here, once, and carried on the
// result.
type Parser interface {
	Parse(ctx context.Context, doc Document) (*Definition, error)
}

// ParserOptions exposes the parser's strictness toggles.
type ParserOptions struct {
	// RequireDescriptions makes table schemas and every field fail without a
	// description. Defaults to true: descriptions are what the generated
	// documentation is made of, so silently empty ones help nobody.
	RequireDescriptions bool

	// StrictKeys rejects keys the parser does not understand instead of
	// ignoring them. Off by default so schemas can carry tooling-specific
	// annotations.
	StrictKeys bool
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithRequireDescriptions toggles mandatory descriptions.
func WithRequireDescriptions(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.RequireDescriptions = enabled
	}
}

// WithStrictKeys toggles rejection of unknown schema keys.
func WithStrictKeys(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.StrictKeys = enabled
	}
}

// NewParserOptions applies ParserOption functions and returns the resulting
// configuration. Implementations under internal/parser call this helper to
// stay consistent.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{
		RequireDescriptions: true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}
