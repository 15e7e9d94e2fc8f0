package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/docstack-dev/docstack/internal/cli/wizard"
	"github.com/docstack-dev/docstack/internal/config"
	"github.com/docstack-dev/docstack/internal/manifest"
	"github.com/docstack-dev/docstack/internal/project"
	"github.com/docstack-dev/docstack/internal/template"
	"github.com/docstack-dev/docstack/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init <project-path>",
	Short: "Install the documentation boilerplate into a project",
	Long: `Install the documentation boilerplate into <project-path>/docs/.

Creates the docs directory if needed, copies every core document into
it, and installs the README and overview templates under their fixed
names (README.md, 01-OVERVIEW.md). Existing output is overwritten
without confirmation; use "docstack update" to refresh a docs tree
while preserving local edits.

Examples:
  docstack init .                  Install into the current directory
  docstack init ~/code/my-app      Install into another project
  docstack init my-app --name app  Override the recorded project name`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("name", "", "Project name (default: directory name)")
	initCmd.Flags().String("description", "", "One-line project description")
	initCmd.Flags().String("owner", "", "Maintainer or team name")
	initCmd.Flags().String("docs-dir", "", `Documentation directory name (default "docs")`)
	initCmd.Flags().Bool("non-interactive", false, "Skip the interactive wizard; use flags and defaults")
}

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}

// Test override points for the interactive path.
var (
	stdinIsTerminal = func() bool { return isatty.IsTerminal(os.Stdin.Fd()) }
	runWizard       = wizard.Run
)

// runInit executes the installation workflow.
func runInit(cmd *cobra.Command, args []string) error {
	projectRoot, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve project path %q: %w", args[0], err)
	}

	opts := project.InstallOptions{
		ProjectRoot: projectRoot,
		ProjectName: getStringFlag(cmd, "name"),
		Description: getStringFlag(cmd, "description"),
		Owner:       getStringFlag(cmd, "owner"),
		DocsDir:     getStringFlag(cmd, "docs-dir"),
	}

	nonInteractive := getBoolFlag(cmd, "non-interactive")
	if !nonInteractive && stdinIsTerminal() {
		result, err := runWizard(filepath.Base(projectRoot))
		if err != nil {
			if errors.Is(err, wizard.ErrCancelled) {
				_, _ = fmt.Fprintln(cmd.OutOrStderr(), "Installation cancelled.")
				return nil
			}
			return fmt.Errorf("wizard failed: %w", err)
		}

		// Flags override wizard answers
		if opts.ProjectName == "" {
			opts.ProjectName = result.ProjectName
		}
		if opts.Description == "" {
			opts.Description = result.Description
		}
		if opts.Owner == "" {
			opts.Owner = result.Owner
		}
	}

	// Created only once the wizard is through, so a cancelled run
	// leaves no trace.
	if err := os.MkdirAll(projectRoot, 0o755); err != nil {
		return fmt.Errorf("create project directory %q: %w", args[0], err)
	}

	installer, err := buildInstaller(false)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	hm := ui.NewHeadlessManager()
	if nonInteractive {
		hm.ForceHeadless(true)
	}
	spin := ui.NewSpinner(hm, "Installing documentation boilerplate", cmd.OutOrStdout())
	result, err := installer.Install(ctx, opts)
	spin.Stop()
	if err != nil {
		return fmt.Errorf("installation failed: %w", err)
	}

	details := []string{
		renderKeyValueLines([]kvPair{
			{"Location", result.DocsRoot},
			{"Files", fmt.Sprintf("%d installed", len(result.CreatedFiles))},
		}),
		"",
		"Fill in the {{PLACEHOLDER}} tokens in README.md and 01-OVERVIEW.md.",
	}
	for _, w := range result.Warnings {
		details = append(details, cliWarn.Render("Warning: "+w))
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout())
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderSuccessCard("Documentation boilerplate installed", details...))
	return nil
}

// buildInstaller assembles an Installer over the embedded assets.
// preserve selects update semantics (keep user-modified files).
func buildInstaller(preserve bool) (project.Installer, error) {
	coreFS, err := template.CoreFS()
	if err != nil {
		return nil, fmt.Errorf("load embedded documents: %w", err)
	}
	templatesFS, err := template.TemplatesFS()
	if err != nil {
		return nil, fmt.Errorf("load embedded templates: %w", err)
	}

	var core, templates template.Deployer
	if preserve {
		core = template.NewPreservingDeployerWithRenderer(coreFS, template.NewRenderer(coreFS))
		templates = template.NewPreservingDeployer(templatesFS)
	} else {
		core = template.NewDeployerWithRenderer(coreFS, template.NewRenderer(coreFS))
		templates = template.NewDeployer(templatesFS)
	}

	return project.NewInstaller(core, templates, manifest.NewManager(), config.NewManager(), nil), nil
}
