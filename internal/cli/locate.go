package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docstack-dev/docstack/internal/config"
)

// resolveDocsDir determines which directory under projectRoot holds the
// installed docs tree. An explicit --docs-dir flag wins; otherwise the
// installation is discovered through the config manager, which probes
// the default dir first and then every other subdirectory carrying
// docstack state. The loaded configuration is returned alongside the
// dir name, defaults when no installation exists yet.
func resolveDocsDir(cmd *cobra.Command, projectRoot string) (string, *config.Config, error) {
	mgr := config.NewManager()

	if dir := getStringFlag(cmd, "docs-dir"); dir != "" {
		cfg, err := mgr.Load(filepath.Join(projectRoot, dir))
		if err != nil {
			return "", nil, err
		}
		return dir, cfg, nil
	}

	return mgr.Resolve(projectRoot)
}
