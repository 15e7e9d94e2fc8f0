package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docstack-dev/docstack/internal/project"
	"github.com/docstack-dev/docstack/internal/update"
	"github.com/docstack-dev/docstack/pkg/version"
)

var updateCmd = &cobra.Command{
	Use:   "update <project-path>",
	Short: "Refresh an installed docs tree from the embedded boilerplate",
	Long: `Redeploy the embedded boilerplate into an existing docs tree.

Files you have edited since install (recorded in the manifest) are left
alone; pristine boilerplate files are refreshed to the current embedded
content. Use --force to overwrite local edits as well, or --check to
only query GitHub for a newer docstack release.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().Bool("force", false, "Overwrite user-modified files too")
	updateCmd.Flags().Bool("check", false, "Only check for a newer docstack release")
	updateCmd.Flags().String("docs-dir", "", "Documentation directory name (default: auto-detected)")
}

// runUpdate refreshes a docs tree, or checks for a newer release.
func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if getBoolFlag(cmd, "check") {
		return runReleaseCheck(ctx, cmd)
	}

	projectRoot, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve project path %q: %w", args[0], err)
	}

	// Reuse the docs dir and identity recorded at init
	docsDir, cfg, err := resolveDocsDir(cmd, projectRoot)
	if err != nil {
		return fmt.Errorf("resolve docs directory: %w", err)
	}
	var description, owner string
	if cfg != nil {
		description = cfg.Project.Description
		owner = cfg.Project.Owner
	}

	installer, err := buildInstaller(!getBoolFlag(cmd, "force"))
	if err != nil {
		return err
	}

	result, err := installer.Install(ctx, project.InstallOptions{
		ProjectRoot: projectRoot,
		Description: description,
		Owner:       owner,
		DocsDir:     docsDir,
		Preserve:    !getBoolFlag(cmd, "force"),
	})
	if err != nil {
		return fmt.Errorf("update failed: %w", err)
	}

	details := []string{
		renderKeyValueLines([]kvPair{
			{"Location", result.DocsRoot},
			{"Files", fmt.Sprintf("%d tracked", len(result.CreatedFiles))},
		}),
	}
	for _, w := range result.Warnings {
		details = append(details, cliWarn.Render("Warning: "+w))
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderSuccessCard("Documentation refreshed", details...))
	return nil
}

// runReleaseCheck queries GitHub for a newer docstack release.
func runReleaseCheck(ctx context.Context, cmd *cobra.Command) error {
	release, err := update.NewChecker(releaseAPIURL, nil).CheckLatest(ctx)
	if err != nil {
		return fmt.Errorf("release check: %w", err)
	}

	out := cmd.OutOrStdout()
	current := version.GetVersion()
	if update.IsNewer(current, release.Version) {
		_, _ = fmt.Fprintln(out, renderCard("Update available",
			renderKeyValueLines([]kvPair{
				{"Installed", current},
				{"Latest", release.Version},
				{"Released", release.PublishedAt.Format("2006-01-02")},
				{"Download", release.URL},
			})))
	} else {
		_, _ = fmt.Fprintln(out, renderSuccessCard(fmt.Sprintf("docstack %s is up to date", current)))
	}
	return nil
}

// releaseAPIURL is overridable in tests.
var releaseAPIURL = update.DefaultAPIURL
