// Package cli wires the docstack commands: init, update, status, list,
// and preview.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docstack-dev/docstack/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "docstack",
	Short: "docstack: documentation boilerplate installer",
	Long: `docstack installs an opinionated documentation boilerplate into a
project's docs/ directory: numbered convention documents plus README and
overview templates with placeholders for the team to fill in.

The boilerplate content ships inside the binary, so installs work
offline and produce the same output everywhere.`,
	Version:       version.GetVersion(),
	SilenceErrors: false,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("docstack %s\n", version.GetVersion()))
}
