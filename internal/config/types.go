package config

// Config is the root configuration stored at <docs>/.docstack/config.yaml.
// It records what the boilerplate was installed for, so update and
// status runs don't need the original init flags.
type Config struct {
	Project ProjectConfig `yaml:"project"`
	Docs    DocsConfig    `yaml:"docs"`
	Tool    ToolConfig    `yaml:"tool"`
}

// ProjectConfig describes the consuming project.
type ProjectConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Owner       string `yaml:"owner"`
}

// DocsConfig describes the documentation layout.
type DocsConfig struct {
	// Dir is the documentation directory name relative to the project
	// root. Must be a single path element.
	Dir string `yaml:"dir"`
}

// ToolConfig records which docstack release performed the install.
type ToolConfig struct {
	Version   string `yaml:"version"`
	CreatedAt string `yaml:"created_at"`
}
