package template

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/docstack-dev/docstack/internal/manifest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"00-INDEX.md": &fstest.MapFile{
			Data: []byte("# Documentation Index\n"),
		},
		"03-DATA-MODEL.md": &fstest.MapFile{
			Data: []byte("# Data Model Conventions\n"),
		},
		"guides/setup.sh": &fstest.MapFile{
			Data: []byte("#!/bin/sh\necho setup\n"),
		},
	}
}

func setupDocsRoot(t *testing.T) (string, manifest.Manager) {
	t.Helper()
	root := filepath.Join(t.TempDir(), "docs")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("MkdirAll error: %v", err)
	}
	mgr := manifest.NewManager()
	if _, err := mgr.Load(root); err != nil {
		t.Fatalf("manifest Load error: %v", err)
	}
	return root, mgr
}

func TestDeployerDeploy(t *testing.T) {
	t.Run("writes_all_files_and_tracks_manifest", func(t *testing.T) {
		root, mgr := setupDocsRoot(t)
		d := NewDeployer(testFS())

		if err := d.Deploy(context.Background(), root, mgr, nil); err != nil {
			t.Fatalf("Deploy error: %v", err)
		}

		for _, f := range []string{"00-INDEX.md", "03-DATA-MODEL.md", "guides/setup.sh"} {
			if _, err := os.Stat(filepath.Join(root, f)); err != nil {
				t.Errorf("expected file %q to exist: %v", f, err)
			}
			entry, ok := mgr.GetEntry(f)
			if !ok {
				t.Errorf("expected manifest entry for %q", f)
				continue
			}
			if entry.Provenance != manifest.TemplateManaged {
				t.Errorf("entry %q provenance = %v, want %v", f, entry.Provenance, manifest.TemplateManaged)
			}
		}
	})

	t.Run("shell_scripts_keep_executable_bit", func(t *testing.T) {
		root, mgr := setupDocsRoot(t)
		d := NewDeployer(testFS())

		if err := d.Deploy(context.Background(), root, mgr, nil); err != nil {
			t.Fatalf("Deploy error: %v", err)
		}

		info, err := os.Stat(filepath.Join(root, "guides", "setup.sh"))
		if err != nil {
			t.Fatalf("Stat error: %v", err)
		}
		if info.Mode().Perm()&0o100 == 0 {
			t.Errorf("setup.sh mode = %v, want owner-executable", info.Mode())
		}
	})

	t.Run("redeploy_overwrites_deterministically", func(t *testing.T) {
		root, mgr := setupDocsRoot(t)
		d := NewDeployer(testFS())

		if err := d.Deploy(context.Background(), root, mgr, nil); err != nil {
			t.Fatalf("first Deploy error: %v", err)
		}
		// Simulate a local edit, then redeploy in overwrite mode
		target := filepath.Join(root, "00-INDEX.md")
		if err := os.WriteFile(target, []byte("edited"), 0o644); err != nil {
			t.Fatalf("WriteFile error: %v", err)
		}
		if err := d.Deploy(context.Background(), root, mgr, nil); err != nil {
			t.Fatalf("second Deploy error: %v", err)
		}

		got, err := os.ReadFile(target)
		if err != nil {
			t.Fatalf("ReadFile error: %v", err)
		}
		if !bytes.Equal(got, []byte("# Documentation Index\n")) {
			t.Errorf("redeploy did not restore boilerplate content, got %q", got)
		}
	})

	t.Run("preserving_mode_keeps_user_modified_files", func(t *testing.T) {
		root, mgr := setupDocsRoot(t)

		if err := NewDeployer(testFS()).Deploy(context.Background(), root, mgr, nil); err != nil {
			t.Fatalf("Deploy error: %v", err)
		}
		target := filepath.Join(root, "00-INDEX.md")
		if err := os.WriteFile(target, []byte("my notes"), 0o644); err != nil {
			t.Fatalf("WriteFile error: %v", err)
		}
		if err := mgr.Track("00-INDEX.md", manifest.UserModified, "x"); err != nil {
			t.Fatalf("Track error: %v", err)
		}

		if err := NewPreservingDeployer(testFS()).Deploy(context.Background(), root, mgr, nil); err != nil {
			t.Fatalf("preserving Deploy error: %v", err)
		}

		got, err := os.ReadFile(target)
		if err != nil {
			t.Fatalf("ReadFile error: %v", err)
		}
		if string(got) != "my notes" {
			t.Errorf("user-modified file was overwritten, got %q", got)
		}
	})

	t.Run("preserving_mode_detects_edits_behind_stale_manifest", func(t *testing.T) {
		root, mgr := setupDocsRoot(t)

		if err := NewDeployer(testFS()).Deploy(context.Background(), root, mgr, nil); err != nil {
			t.Fatalf("Deploy error: %v", err)
		}

		// Edit the file on disk without updating its manifest entry
		target := filepath.Join(root, "00-INDEX.md")
		if err := os.WriteFile(target, []byte("my notes"), 0o644); err != nil {
			t.Fatalf("WriteFile error: %v", err)
		}

		if err := NewPreservingDeployer(testFS()).Deploy(context.Background(), root, mgr, nil); err != nil {
			t.Fatalf("preserving Deploy error: %v", err)
		}

		got, err := os.ReadFile(target)
		if err != nil {
			t.Fatalf("ReadFile error: %v", err)
		}
		if string(got) != "my notes" {
			t.Errorf("edited file was overwritten, got %q", got)
		}
		entry, ok := mgr.GetEntry("00-INDEX.md")
		if !ok || entry.Provenance != manifest.UserModified {
			t.Errorf("entry = %+v (ok=%v), want user_modified", entry, ok)
		}
	})

	t.Run("preserving_mode_records_untracked_files_as_user_created", func(t *testing.T) {
		root, mgr := setupDocsRoot(t)

		// File exists on disk but has no manifest entry
		if err := os.WriteFile(filepath.Join(root, "00-INDEX.md"), []byte("homegrown"), 0o644); err != nil {
			t.Fatalf("WriteFile error: %v", err)
		}

		if err := NewPreservingDeployer(testFS()).Deploy(context.Background(), root, mgr, nil); err != nil {
			t.Fatalf("Deploy error: %v", err)
		}

		got, err := os.ReadFile(filepath.Join(root, "00-INDEX.md"))
		if err != nil {
			t.Fatalf("ReadFile error: %v", err)
		}
		if string(got) != "homegrown" {
			t.Errorf("untracked file was overwritten, got %q", got)
		}
		entry, ok := mgr.GetEntry("00-INDEX.md")
		if !ok || entry.Provenance != manifest.UserCreated {
			t.Errorf("entry = %+v (ok=%v), want user_created", entry, ok)
		}
	})

	t.Run("cancelled_context_stops_deploy", func(t *testing.T) {
		root, mgr := setupDocsRoot(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := NewDeployer(testFS()).Deploy(ctx, root, mgr, nil)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})

	t.Run("renders_tmpl_files_without_suffix", func(t *testing.T) {
		fsys := fstest.MapFS{
			"08-CHANGELOG.md.tmpl": &fstest.MapFile{
				Data: []byte("# {{.ProjectTitle}} Changelog\n\nInstalled by docstack {{.Version}}.\n"),
			},
		}
		root, mgr := setupDocsRoot(t)
		d := NewDeployerWithRenderer(fsys, NewRenderer(fsys))
		tmplCtx := NewContext(
			WithProject("my-app", "demo"),
			WithVersion("v1.2.0"),
		)

		if err := d.Deploy(context.Background(), root, mgr, tmplCtx); err != nil {
			t.Fatalf("Deploy error: %v", err)
		}

		got, err := os.ReadFile(filepath.Join(root, "08-CHANGELOG.md"))
		if err != nil {
			t.Fatalf("ReadFile error: %v", err)
		}
		want := "# My App Changelog\n\nInstalled by docstack v1.2.0.\n"
		if string(got) != want {
			t.Errorf("rendered content = %q, want %q", got, want)
		}
		if _, err := os.Stat(filepath.Join(root, "08-CHANGELOG.md.tmpl")); !os.IsNotExist(err) {
			t.Error("raw .tmpl file should not be deployed")
		}
	})
}

func TestDeployerInstallAs(t *testing.T) {
	t.Run("installs_under_fixed_name", func(t *testing.T) {
		fsys := fstest.MapFS{
			"PROJECT-OVERVIEW.md": &fstest.MapFile{
				Data: []byte("# {{PROJECT_NAME}} — Overview\n"),
			},
		}
		root, mgr := setupDocsRoot(t)
		d := NewDeployer(fsys)

		if err := d.InstallAs(root, "PROJECT-OVERVIEW.md", "01-OVERVIEW.md", mgr); err != nil {
			t.Fatalf("InstallAs error: %v", err)
		}

		got, err := os.ReadFile(filepath.Join(root, "01-OVERVIEW.md"))
		if err != nil {
			t.Fatalf("ReadFile error: %v", err)
		}
		// Placeholder tokens install verbatim
		if string(got) != "# {{PROJECT_NAME}} — Overview\n" {
			t.Errorf("content = %q, want verbatim template", got)
		}
	})

	t.Run("unknown_asset_fails", func(t *testing.T) {
		root, mgr := setupDocsRoot(t)
		err := NewDeployer(fstest.MapFS{}).InstallAs(root, "MISSING.md", "README.md", mgr)
		if !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("error = %v, want ErrTemplateNotFound", err)
		}
	})

	t.Run("rejects_escaping_destination", func(t *testing.T) {
		fsys := fstest.MapFS{"README.md": &fstest.MapFile{Data: []byte("x")}}
		root, mgr := setupDocsRoot(t)
		err := NewDeployer(fsys).InstallAs(root, "README.md", "../outside.md", mgr)
		if !errors.Is(err, ErrPathTraversal) {
			t.Errorf("error = %v, want ErrPathTraversal", err)
		}
	})
}

func TestDeployerList(t *testing.T) {
	d := NewDeployer(fstest.MapFS{
		"00-INDEX.md":          &fstest.MapFile{Data: []byte("a")},
		"08-CHANGELOG.md.tmpl": &fstest.MapFile{Data: []byte("b")},
	})

	list := d.List()
	want := []string{"00-INDEX.md", "08-CHANGELOG.md"}
	if len(list) != len(want) {
		t.Fatalf("List len = %d, want %d (%v)", len(list), len(want), list)
	}
	for i := range want {
		if list[i] != want[i] {
			t.Errorf("List[%d] = %q, want %q", i, list[i], want[i])
		}
	}
}

func TestValidateDeployPath(t *testing.T) {
	root := t.TempDir()

	cases := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"plain_file", "README.md", false},
		{"nested_file", "guides/auth.md", false},
		{"parent_reference", "../escape.md", true},
		{"embedded_parent", "guides/../../escape.md", true},
		{"absolute", "/etc/passwd", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateDeployPath(root, tc.path)
			if tc.wantErr && err == nil {
				t.Errorf("validateDeployPath(%q) = nil, want error", tc.path)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("validateDeployPath(%q) = %v, want nil", tc.path, err)
			}
		})
	}
}
