package docgen

import "context"

// Built-in set names.
const (
	InputSetName    = "input"
	SettingsSetName = "settings"
	ExamplesSetName = "examples"
)

type inputSet struct{}

func (inputSet) Name() string { return InputSetName }

func (inputSet) Generate(ctx context.Context, g *Generator) ([]Artifact, error) {
	doc, err := g.InputDoc(ctx)
	if err != nil {
		return nil, err
	}
	return []Artifact{doc}, nil
}

type settingsSet struct{}

func (settingsSet) Name() string { return SettingsSetName }

func (settingsSet) Generate(ctx context.Context, g *Generator) ([]Artifact, error) {
	doc, err := g.SettingsDoc(ctx)
	if err != nil {
		return nil, err
	}
	return []Artifact{doc}, nil
}

type examplesSet struct{}

func (examplesSet) Name() string { return ExamplesSetName }

func (examplesSet) Generate(ctx context.Context, g *Generator) ([]Artifact, error) {
	doc, err := g.ExamplesDoc(ctx)
	if err != nil {
		return nil, err
	}
	return []Artifact{doc}, nil
}
