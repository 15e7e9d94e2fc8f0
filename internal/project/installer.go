package project

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/docstack-dev/docstack/internal/config"
	"github.com/docstack-dev/docstack/internal/defs"
	"github.com/docstack-dev/docstack/internal/manifest"
	"github.com/docstack-dev/docstack/internal/template"
	"github.com/docstack-dev/docstack/pkg/version"
)

// InstallOptions configures a boilerplate installation.
type InstallOptions struct {
	ProjectRoot string // Path to the target project (required).
	ProjectName string // Defaults to the project root's base name.
	Description string // Project description, stored in config.yaml.
	Owner       string // Maintainer name, stored in config.yaml.
	DocsDir     string // Documentation directory name, default "docs".
	Platform    string // Target platform; defaults to runtime.GOOS.
	Preserve    bool   // If true, respect manifest provenance (update mode).
}

// InstallResult summarizes the outcome of an installation.
type InstallResult struct {
	DocsRoot     string   // Absolute path of the docs directory.
	CreatedDirs  []string // Directories that were created.
	CreatedFiles []string // Files written or confirmed, relative to DocsRoot.
	Warnings     []string // Non-fatal warnings.
}

// Installer handles boilerplate installation into a project.
type Installer interface {
	// Install deploys the documentation boilerplate per opts.
	Install(ctx context.Context, opts InstallOptions) (*InstallResult, error)
}

type docsInstaller struct {
	core        template.Deployer // numbered core documents
	templates   template.Deployer // placeholder templates, installed via InstallAs
	manifestMgr manifest.Manager
	configMgr   *config.Manager
	logger      *slog.Logger
}

// NewInstaller creates an Installer with the given dependencies.
// A nil config manager gets a fresh one.
func NewInstaller(core, templates template.Deployer, m manifest.Manager, cm *config.Manager, logger *slog.Logger) Installer {
	if cm == nil {
		cm = config.NewManager()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &docsInstaller{
		core:        core,
		templates:   templates,
		manifestMgr: m,
		configMgr:   cm,
		logger:      logger,
	}
}

// Install deploys the documentation boilerplate into the target project.
func (i *docsInstaller) Install(ctx context.Context, opts InstallOptions) (*InstallResult, error) {
	if opts.ProjectRoot == "" {
		return nil, ErrProjectRootRequired
	}
	if i.core == nil || i.templates == nil {
		return nil, ErrNoDeployer
	}
	if i.manifestMgr == nil {
		return nil, ErrNoManifest
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts.ProjectRoot = filepath.Clean(opts.ProjectRoot)
	if opts.DocsDir == "" {
		opts.DocsDir = defs.DefaultDocsDir
	}
	if opts.ProjectName == "" {
		opts.ProjectName = filepath.Base(opts.ProjectRoot)
	}

	docsRoot := filepath.Join(opts.ProjectRoot, opts.DocsDir)

	i.logger.Info("installing documentation boilerplate",
		"root", opts.ProjectRoot,
		"docs", opts.DocsDir,
		"name", opts.ProjectName,
		"preserve", opts.Preserve,
	)

	result := &InstallResult{DocsRoot: docsRoot}

	// Step 1: create the docs directory
	if err := os.MkdirAll(docsRoot, defs.DirPerm); err != nil {
		return nil, fmt.Errorf("create docs directory %q: %w", docsRoot, err)
	}
	result.CreatedDirs = append(result.CreatedDirs, opts.DocsDir)

	// Step 2: load the manifest for tracking
	if _, err := i.manifestMgr.Load(docsRoot); err != nil {
		return nil, fmt.Errorf("load manifest: %w", err)
	}

	// Step 3: deploy the core documents
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tmplCtx := template.NewContext(
		template.WithProject(opts.ProjectName, opts.Description),
		template.WithOwner(opts.Owner),
		template.WithDocsDir(opts.DocsDir),
		template.WithPlatform(opts.Platform),
		template.WithVersion(version.GetVersion()),
		template.WithInstalledAt(time.Now().UTC().Format(time.RFC3339)),
	)
	if err := i.core.Deploy(ctx, docsRoot, i.manifestMgr, tmplCtx); err != nil {
		return nil, fmt.Errorf("deploy core documents: %w", err)
	}

	// Step 4: install the placeholder templates under their fixed names
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, target := range template.TemplateTargets {
		if err := i.templates.InstallAs(docsRoot, target.Source, target.Dest, i.manifestMgr); err != nil {
			return nil, fmt.Errorf("install template %s: %w", target.Dest, err)
		}
	}

	// Step 5: write the project configuration
	if err := i.writeConfig(opts, docsRoot); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("config: %s", err))
		i.logger.Warn("config write failed", "error", err)
	}

	// Step 6: finalize the manifest
	if err := i.finalizeManifest(); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("manifest: %s", err))
		i.logger.Warn("manifest save failed", "error", err)
	}

	result.CreatedFiles = i.manifestMgr.Paths()

	i.logger.Info("boilerplate installed",
		"docs", docsRoot,
		"files", len(result.CreatedFiles),
	)
	return result, nil
}

// writeConfig persists the project configuration next to the manifest,
// going through the config Manager. In preserve mode existing identity
// fields are kept and only filled in where the options carry new values.
func (i *docsInstaller) writeConfig(opts InstallOptions, docsRoot string) error {
	cfg, err := i.configMgr.Load(docsRoot)
	if err != nil {
		return err
	}

	name := cfg.Project.Name
	if opts.ProjectName != "" && (!opts.Preserve || name == "") {
		name = opts.ProjectName
	}
	description := cfg.Project.Description
	if opts.Description != "" || !opts.Preserve {
		description = opts.Description
	}
	owner := cfg.Project.Owner
	if opts.Owner != "" || !opts.Preserve {
		owner = opts.Owner
	}
	if err := i.configMgr.SetProject(name, description, owner); err != nil {
		return err
	}

	cfg.Docs.Dir = opts.DocsDir
	cfg.Tool.Version = version.GetVersion()

	return i.configMgr.Save()
}

// finalizeManifest stamps the manifest with the tool version and deploy
// time, then saves it.
func (i *docsInstaller) finalizeManifest() error {
	mf := i.manifestMgr.Manifest()
	if mf == nil {
		return ErrNoManifest
	}
	mf.Version = version.GetVersion()
	mf.DeployedAt = time.Now().UTC().Format(time.RFC3339)
	return i.manifestMgr.Save()
}
