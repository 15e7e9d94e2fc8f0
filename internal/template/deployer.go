package template

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/docstack-dev/docstack/internal/defs"
	"github.com/docstack-dev/docstack/internal/manifest"
)

// Deployer extracts the embedded boilerplate and writes it into a docs
// directory, tracking each file in the manifest.
type Deployer interface {
	// Deploy walks the backing filesystem and writes every file under
	// docsRoot, registering each one with the manifest manager. If
	// tmplCtx is provided and a Renderer is configured, files ending in
	// .tmpl are rendered with the context and saved without the suffix.
	Deploy(ctx context.Context, docsRoot string, m manifest.Manager, tmplCtx *Context) error

	// InstallAs writes a single asset to a fixed destination filename
	// relative to docsRoot, tracking it in the manifest.
	InstallAs(docsRoot, assetName, destRelPath string, m manifest.Manager) error

	// Extract returns the raw content of a single asset by path.
	Extract(name string) ([]byte, error)

	// List returns the sorted relative install paths of all assets.
	List() []string
}

type deployer struct {
	fsys      fs.FS
	renderer  Renderer // Optional: if set, .tmpl files are rendered with Context
	overwrite bool     // If true, existing files are replaced without a manifest check
}

// NewDeployer creates a Deployer backed by the given filesystem.
// In production the fs.FS comes from go:embed; in tests use
// testing/fstest.MapFS.
func NewDeployer(fsys fs.FS) Deployer {
	return &deployer{fsys: fsys, overwrite: true}
}

// NewPreservingDeployer creates a Deployer that leaves user-modified and
// user-created files alone, consulting the manifest for provenance.
// Used by update, where the docs tree may carry local edits.
func NewPreservingDeployer(fsys fs.FS) Deployer {
	return &deployer{fsys: fsys}
}

// NewDeployerWithRenderer creates an overwriting Deployer that renders
// .tmpl assets with the given Renderer.
func NewDeployerWithRenderer(fsys fs.FS, r Renderer) Deployer {
	return &deployer{fsys: fsys, renderer: r, overwrite: true}
}

// NewPreservingDeployerWithRenderer combines provenance-aware deployment
// with .tmpl rendering.
func NewPreservingDeployerWithRenderer(fsys fs.FS, r Renderer) Deployer {
	return &deployer{fsys: fsys, renderer: r}
}

// Deploy walks the backing filesystem and writes every file to docsRoot.
func (d *deployer) Deploy(ctx context.Context, docsRoot string, m manifest.Manager, tmplCtx *Context) error {
	docsRoot = filepath.Clean(docsRoot)

	return fs.WalkDir(d.fsys, ".", func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Check cancellation before each file
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if path == "." || entry.IsDir() {
			return nil
		}

		if err := validateDeployPath(docsRoot, path); err != nil {
			return err
		}

		isTemplate := strings.HasSuffix(path, ".tmpl")
		var content []byte
		var destRelPath string

		if isTemplate && d.renderer != nil && tmplCtx != nil {
			rendered, renderErr := d.renderer.Render(path, tmplCtx)
			if renderErr != nil {
				return fmt.Errorf("template render %q: %w", path, renderErr)
			}
			content = rendered
			destRelPath = strings.TrimSuffix(path, ".tmpl")
		} else {
			raw, readErr := fs.ReadFile(d.fsys, path)
			if readErr != nil {
				return fmt.Errorf("template deploy read %q: %w", path, readErr)
			}
			content = raw
			destRelPath = path
		}

		return d.writeFile(docsRoot, destRelPath, content, m)
	})
}

// writeFile installs content at docsRoot/relPath, honoring provenance
// in preserving mode and tracking the result in the manifest.
func (d *deployer) writeFile(docsRoot, relPath string, content []byte, m manifest.Manager) error {
	destPath := filepath.Join(docsRoot, filepath.FromSlash(relPath))

	if !d.overwrite {
		if _, statErr := os.Stat(destPath); statErr == nil {
			if entry, found := m.GetEntry(relPath); found {
				if entry.Provenance == manifest.UserModified || entry.Provenance == manifest.UserCreated {
					// Respect user files
					return nil
				}
				// The manifest may predate a local edit; trust the disk.
				if onDisk, readErr := os.ReadFile(destPath); readErr == nil &&
					manifest.HashBytes(onDisk) != entry.TemplateHash {
					_ = m.MarkUserModified(relPath)
					return nil
				}
				// Pristine template_managed files are safe to replace
			} else {
				// Existing file not tracked: record as user_created and skip
				_ = m.Track(relPath, manifest.UserCreated, manifest.HashBytes(content))
				return nil
			}
		}
	}

	destDir := filepath.Dir(destPath)
	if err := os.MkdirAll(destDir, defs.DirPerm); err != nil {
		return fmt.Errorf("template deploy mkdir %q: %w", destDir, err)
	}

	// Shell scripts shipped with the boilerplate keep their executable bit
	perm := defs.FilePerm
	if strings.HasSuffix(relPath, ".sh") {
		perm = 0o755
	}

	if err := os.WriteFile(destPath, content, perm); err != nil {
		return fmt.Errorf("template deploy write %q: %w", destPath, err)
	}

	if err := m.Track(relPath, manifest.TemplateManaged, manifest.HashBytes(content)); err != nil {
		return fmt.Errorf("template deploy track %q: %w", relPath, err)
	}
	return nil
}

// InstallAs writes a single asset to a fixed destination filename,
// used for the placeholder templates that install under names different
// from their asset names (README.md, 01-OVERVIEW.md).
func (d *deployer) InstallAs(docsRoot, assetName, destRelPath string, m manifest.Manager) error {
	content, err := fs.ReadFile(d.fsys, assetName)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrTemplateNotFound, assetName)
	}
	if err := validateDeployPath(docsRoot, destRelPath); err != nil {
		return err
	}
	return d.writeFile(filepath.Clean(docsRoot), destRelPath, content, m)
}

// Extract returns the content of a single named asset.
func (d *deployer) Extract(name string) ([]byte, error) {
	data, err := fs.ReadFile(d.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	return data, nil
}

// List returns sorted relative install paths of all assets in the
// backing filesystem, with .tmpl suffixes stripped.
func (d *deployer) List() []string {
	var list []string

	_ = fs.WalkDir(d.fsys, ".", func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip errors during listing
		}
		if path == "." || entry.IsDir() {
			return nil
		}
		target := path
		if before, ok := strings.CutSuffix(path, ".tmpl"); ok {
			target = before
		}
		list = append(list, target)
		return nil
	})

	return list
}

// validateDeployPath ensures an asset path does not escape docsRoot.
func validateDeployPath(docsRoot, relPath string) error {
	cleaned := filepath.Clean(filepath.FromSlash(relPath))

	if filepath.IsAbs(cleaned) {
		return fmt.Errorf("%w: absolute path %q", ErrPathTraversal, relPath)
	}

	if strings.HasPrefix(cleaned, "..") || strings.Contains(cleaned, string(filepath.Separator)+"..") {
		return fmt.Errorf("%w: parent reference in %q", ErrPathTraversal, relPath)
	}

	absDocsRoot, err := filepath.Abs(docsRoot)
	if err != nil {
		return fmt.Errorf("resolve docs root: %w", err)
	}

	absPath := filepath.Join(absDocsRoot, cleaned)
	if !strings.HasPrefix(absPath, absDocsRoot+string(filepath.Separator)) && absPath != absDocsRoot {
		return fmt.Errorf("%w: %q escapes docs root", ErrPathTraversal, relPath)
	}

	return nil
}
