package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/docstack-dev/docstack/internal/template"
)

var previewCmd = &cobra.Command{
	Use:   "preview <document>",
	Short: "Render an embedded document to the terminal",
	Long: `Render one of the embedded boilerplate documents to the terminal.

The document is named by its install path, for example:

  docstack preview 00-INDEX.md
  docstack preview README.md

Templates are shown as installed, with their {{PLACEHOLDER}} markers intact.
Run "docstack list" to see every available document.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().Bool("raw", false, "print the raw markdown without terminal styling")
	previewCmd.Flags().Int("width", 100, "word wrap width for styled output")

	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	name := path.Clean(strings.TrimPrefix(args[0], "./"))

	content, err := embeddedDocument(name)
	if err != nil {
		return err
	}

	if getBoolFlag(cmd, "raw") {
		_, _ = fmt.Fprint(cmd.OutOrStdout(), string(content))
		return nil
	}

	width, _ := cmd.Flags().GetInt("width")
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("create markdown renderer: %w", err)
	}

	out, err := renderer.Render(string(content))
	if err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	_, _ = fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

// embeddedDocument resolves an install path to embedded content. Core
// documents are looked up first, then the fixed-name templates.
func embeddedDocument(name string) ([]byte, error) {
	coreFS, err := template.CoreFS()
	if err != nil {
		return nil, err
	}
	if content, err := fs.ReadFile(coreFS, name); err == nil {
		return content, nil
	}

	for _, t := range template.TemplateTargets {
		if t.Dest == name {
			return template.Template(t.Source)
		}
	}
	return nil, fmt.Errorf("%w: %s (run \"docstack list\" to see available documents)",
		errDocumentNotFound, name)
}

var errDocumentNotFound = errors.New("cli: document not found")
