package docgen

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseSections decodes an ordered section layout from YAML. The document is
// a sequence of {title, patterns} mappings:
//
//	- title: Agents
//	  patterns: [agents, agent_*]
func ParseSections(data []byte) ([]SectionSpec, error) {
	var specs []SectionSpec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("docgen: parse sections: %w", err)
	}
	for i, spec := range specs {
		if spec.Title == "" {
			return nil, fmt.Errorf("docgen: sections[%d]: title is required", i)
		}
		if len(spec.Patterns) == 0 {
			return nil, fmt.Errorf("docgen: section %q: at least one pattern is required", spec.Title)
		}
	}
	return specs, nil
}

// LoadSections reads a section layout from a YAML file on disk.
func LoadSections(path string) ([]SectionSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("docgen: read sections: %w", err)
	}
	return ParseSections(data)
}
