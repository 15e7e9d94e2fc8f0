package template

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed all:assets
var assetsFS embed.FS

// CoreFS returns the embedded core documents: the numbered markdown
// files installed verbatim into the target docs directory.
func CoreFS() (fs.FS, error) {
	sub, err := fs.Sub(assetsFS, "assets/core")
	if err != nil {
		return nil, fmt.Errorf("template assets: %w", err)
	}
	return sub, nil
}

// TemplatesFS returns the embedded placeholder templates.
func TemplatesFS() (fs.FS, error) {
	sub, err := fs.Sub(assetsFS, "assets/templates")
	if err != nil {
		return nil, fmt.Errorf("template assets: %w", err)
	}
	return sub, nil
}

// Template returns the raw content of a named file under assets/templates.
func Template(name string) ([]byte, error) {
	data, err := fs.ReadFile(assetsFS, "assets/templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	return data, nil
}

// TemplateTarget maps a template asset to the fixed filename it is
// installed under inside the docs directory.
type TemplateTarget struct {
	// Source is the asset name under assets/templates.
	Source string
	// Dest is the install filename relative to the docs root.
	Dest string
}

// TemplateTargets lists the placeholder templates and their fixed
// install names, in install order.
var TemplateTargets = []TemplateTarget{
	{Source: "README.md", Dest: "README.md"},
	{Source: "PROJECT-OVERVIEW.md", Dest: "01-OVERVIEW.md"},
}
