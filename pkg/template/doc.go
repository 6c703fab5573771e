// Package template defines the renderer-agnostic template contract the
// document generators depend on, plus the errors engines report. Concrete
// engines live in subpackages so callers can swap them without touching
// generation code.
package template
