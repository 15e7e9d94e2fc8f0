package config

import (
	"time"

	"github.com/docstack-dev/docstack/internal/defs"
	"github.com/docstack-dev/docstack/pkg/version"
)

// NewDefaultConfig returns a Config populated with defaults for every
// field that has one. Project identity fields stay empty until init
// fills them in.
func NewDefaultConfig() *Config {
	return &Config{
		Docs: DocsConfig{
			Dir: defs.DefaultDocsDir,
		},
		Tool: ToolConfig{
			Version:   version.GetVersion(),
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		},
	}
}

// applyDefaults fills zero-valued fields on a loaded Config so callers
// never see an empty docs dir or tool version.
func applyDefaults(cfg *Config) {
	if cfg.Docs.Dir == "" {
		cfg.Docs.Dir = defs.DefaultDocsDir
	}
	if cfg.Tool.Version == "" {
		cfg.Tool.Version = version.GetVersion()
	}
}
