package docgen

// SectionSpec names one section of the input-file documentation and lists the
// schema file patterns (fs.Glob syntax, without the .yaml extension) whose
// tables belong to it. Patterns are expanded in the order given, matches
// within one pattern sorting lexically, so listing an exact name before a
// wildcard keeps its file first.
type SectionSpec struct {
	Title    string   `json:"title" yaml:"title"`
	Patterns []string `json:"patterns" yaml:"patterns"`
}

// File is one documented table file: a heading name, the prose pulled from its
// schema, and the rendered field table.
type File struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Table       string `json:"table"`
	Notes       string `json:"notes"`
}

// Section groups the files rendered for one SectionSpec.
type Section struct {
	Title string `json:"title"`
	Files []File `json:"files"`
}

// ConfigSubtable documents one nested table of a config file.
type ConfigSubtable struct {
	Name        string `json:"name"`
	Heading     string `json:"heading"`
	Description string `json:"description"`
	Notes       string `json:"notes"`
	Table       string `json:"table"`
}

// ConfigBlock documents a whole config file: the top-level settings table plus
// one subtable per nested section. Table is empty when the schema declares no
// top-level settings.
type ConfigBlock struct {
	Heading     string           `json:"heading"`
	Description string           `json:"description"`
	Notes       string           `json:"notes"`
	Table       string           `json:"table"`
	Subtables   []ConfigSubtable `json:"subtables"`
}

// Example is one example model: the directory name and its README contents.
type Example struct {
	Name   string `json:"name"`
	Readme string `json:"readme"`
}

// Artifact is a generated document ready to be written to disk.
type Artifact struct {
	Name    string
	Content string
}
