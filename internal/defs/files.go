package defs

import "io/fs"

// Common file and directory names used across the project.
const (
	// DefaultDocsDir is the documentation directory created under the
	// target project root.
	DefaultDocsDir = "docs"

	// StateDir is the docstack state directory kept inside the docs tree.
	StateDir = ".docstack"

	// ManifestJSON tracks every deployed file with its content hash.
	ManifestJSON = "manifest.json"

	// ConfigYAML holds the project configuration written at init.
	ConfigYAML = "config.yaml"

	// ReadmeMD is the fixed install name for the README template.
	ReadmeMD = "README.md"

	// OverviewMD is the fixed install name for the project overview template.
	OverviewMD = "01-OVERVIEW.md"
)

// Default permissions for created files and directories.
const (
	DirPerm  fs.FileMode = 0o755
	FilePerm fs.FileMode = 0o644
)
