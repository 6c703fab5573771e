// Package validate checks data files against schemas: CSV tables against
// table schemas, TOML configs against config schemas, and whole directories
// against a manifest. Every check returns an ordered list of human-readable
// messages; an empty list means the data is valid.
package validate
