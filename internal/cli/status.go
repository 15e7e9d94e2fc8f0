package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/docstack-dev/docstack/internal/manifest"
	"github.com/docstack-dev/docstack/internal/merge"
	"github.com/docstack-dev/docstack/internal/template"
)

var statusCmd = &cobra.Command{
	Use:   "status <project-path>",
	Short: "Show the state of an installed docs tree",
	Long: `Compare an installed docs tree against its manifest and the embedded
boilerplate.

Each tracked file is reported as unchanged, edited (differs from what
was deployed), stale (the embedded boilerplate has newer content), or
missing. --diff prints a line diff for edited files.`,
	Args: cobra.ExactArgs(1),
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().Bool("diff", false, "Show line diffs for edited files")
	statusCmd.Flags().String("docs-dir", "", "Documentation directory name (default: auto-detected)")
}

// fileState classifies one tracked file for status output.
type fileState struct {
	path  string
	state string
	diff  string
}

// runStatus reports per-file drift for a docs tree.
func runStatus(cmd *cobra.Command, args []string) error {
	projectRoot, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve project path %q: %w", args[0], err)
	}

	docsDir, _, err := resolveDocsDir(cmd, projectRoot)
	if err != nil {
		return fmt.Errorf("resolve docs directory: %w", err)
	}
	docsRoot := filepath.Join(projectRoot, docsDir)

	mgr := manifest.NewManager()
	mf, err := mgr.Load(docsRoot)
	if err != nil {
		return fmt.Errorf("load manifest: %w", err)
	}
	if len(mf.Entries) == 0 {
		return fmt.Errorf("no docstack installation found under %s (run \"docstack init\" first)", docsRoot)
	}

	showDiff := getBoolFlag(cmd, "diff")
	states, err := collectStates(docsRoot, mgr, showDiff)
	if err != nil {
		return err
	}

	counts := map[string]int{}
	var pairs []kvPair
	for _, s := range states {
		counts[s.state]++
		pairs = append(pairs, kvPair{s.path, s.state})
	}

	out := cmd.OutOrStdout()
	summary := fmt.Sprintf("%d unchanged, %d edited, %d stale, %d missing",
		counts["unchanged"], counts["edited"], counts["stale"], counts["missing"])
	_, _ = fmt.Fprintln(out, renderCard("Docs status ("+summary+")", renderKeyValueLines(pairs)))

	if showDiff {
		for _, s := range states {
			if s.diff != "" {
				_, _ = fmt.Fprintln(out)
				_, _ = fmt.Fprint(out, s.diff)
			}
		}
	}
	return nil
}

// collectStates classifies every manifest entry against the disk and
// the embedded boilerplate.
func collectStates(docsRoot string, mgr manifest.Manager, withDiff bool) ([]fileState, error) {
	embedded, err := embeddedContentByTarget()
	if err != nil {
		return nil, err
	}

	var states []fileState
	for _, path := range mgr.Paths() {
		entry, _ := mgr.GetEntry(path)

		onDisk, readErr := os.ReadFile(filepath.Join(docsRoot, filepath.FromSlash(path)))
		switch {
		case readErr != nil:
			states = append(states, fileState{path: path, state: "missing"})
			continue
		case manifest.HashBytes(onDisk) != entry.TemplateHash:
			s := fileState{path: path, state: "edited"}
			if withDiff {
				if base, ok := embedded[path]; ok {
					s.diff = merge.FormatDiff(path, base, onDisk)
				}
			}
			states = append(states, s)
			continue
		}

		// On-disk content matches what was deployed; is the embedded
		// boilerplate ahead of it?
		if base, ok := embedded[path]; ok && manifest.HashBytes(base) != entry.TemplateHash {
			states = append(states, fileState{path: path, state: "stale"})
			continue
		}
		states = append(states, fileState{path: path, state: "unchanged"})
	}

	sort.Slice(states, func(i, j int) bool { return states[i].path < states[j].path })
	return states, nil
}

// embeddedContentByTarget maps install paths to current embedded content.
func embeddedContentByTarget() (map[string][]byte, error) {
	coreFS, err := template.CoreFS()
	if err != nil {
		return nil, err
	}

	content := make(map[string][]byte)
	core := template.NewDeployer(coreFS)
	for _, path := range core.List() {
		data, err := core.Extract(path)
		if err != nil {
			continue
		}
		content[path] = data
	}
	for _, target := range template.TemplateTargets {
		data, err := template.Template(target.Source)
		if err != nil {
			continue
		}
		content[target.Dest] = data
	}
	return content, nil
}
