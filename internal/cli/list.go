package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docstack-dev/docstack/internal/template"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the documents the boilerplate installs",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

// runList prints every embedded document and its install path.
func runList(cmd *cobra.Command, _ []string) error {
	var pairs []kvPair
	for _, path := range installTargets() {
		pairs = append(pairs, kvPair{path.dest, path.kind})
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderCard("Boilerplate contents", renderKeyValueLines(pairs)))
	return nil
}

// installTarget is one document the boilerplate installs.
type installTarget struct {
	dest string // install path relative to the docs root
	kind string // "core" or "template"
}

// installTargets enumerates everything an init would write, in install
// order: core documents first, then the fixed-name templates.
func installTargets() []installTarget {
	var targets []installTarget

	if coreFS, err := template.CoreFS(); err == nil {
		for _, path := range template.NewDeployer(coreFS).List() {
			targets = append(targets, installTarget{dest: path, kind: "core"})
		}
	}
	for _, t := range template.TemplateTargets {
		targets = append(targets, installTarget{dest: t.Dest, kind: "template"})
	}
	return targets
}
