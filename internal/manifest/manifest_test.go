package manifest

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestManagerLoad(t *testing.T) {
	t.Run("missing_file_returns_empty_manifest", func(t *testing.T) {
		root := t.TempDir()
		mgr := NewManager()

		mf, err := mgr.Load(root)
		if err != nil {
			t.Fatalf("Load error: %v", err)
		}
		if len(mf.Entries) != 0 {
			t.Errorf("expected empty entries, got %d", len(mf.Entries))
		}
	})

	t.Run("roundtrip_preserves_entries", func(t *testing.T) {
		root := t.TempDir()
		mgr := NewManager()
		if _, err := mgr.Load(root); err != nil {
			t.Fatalf("Load error: %v", err)
		}

		hash := HashBytes([]byte("# Overview"))
		if err := mgr.Track("01-OVERVIEW.md", TemplateManaged, hash); err != nil {
			t.Fatalf("Track error: %v", err)
		}
		mgr.Manifest().Version = "v1.2.0"
		if err := mgr.Save(); err != nil {
			t.Fatalf("Save error: %v", err)
		}

		reloaded := NewManager()
		mf, err := reloaded.Load(root)
		if err != nil {
			t.Fatalf("reload error: %v", err)
		}
		if mf.Version != "v1.2.0" {
			t.Errorf("Version = %q, want v1.2.0", mf.Version)
		}
		entry, ok := reloaded.GetEntry("01-OVERVIEW.md")
		if !ok {
			t.Fatal("expected entry for 01-OVERVIEW.md")
		}
		if entry.Provenance != TemplateManaged {
			t.Errorf("Provenance = %v, want %v", entry.Provenance, TemplateManaged)
		}
		if entry.TemplateHash != hash {
			t.Errorf("TemplateHash = %q, want %q", entry.TemplateHash, hash)
		}
	})

	t.Run("corrupt_json_returns_error", func(t *testing.T) {
		root := t.TempDir()
		stateDir := filepath.Join(root, ".docstack")
		if err := os.MkdirAll(stateDir, 0o755); err != nil {
			t.Fatalf("MkdirAll error: %v", err)
		}
		if err := os.WriteFile(filepath.Join(stateDir, "manifest.json"), []byte("{not json"), 0o644); err != nil {
			t.Fatalf("WriteFile error: %v", err)
		}

		if _, err := NewManager().Load(root); err == nil {
			t.Fatal("expected parse error, got nil")
		}
	})
}

func TestManagerTrack(t *testing.T) {
	t.Run("before_load_fails", func(t *testing.T) {
		mgr := NewManager()
		err := mgr.Track("README.md", TemplateManaged, "abc")
		if !errors.Is(err, ErrNotLoaded) {
			t.Errorf("error = %v, want ErrNotLoaded", err)
		}
	})

	t.Run("rejects_absolute_path", func(t *testing.T) {
		mgr := NewManager()
		if _, err := mgr.Load(t.TempDir()); err != nil {
			t.Fatalf("Load error: %v", err)
		}
		err := mgr.Track("/etc/passwd", TemplateManaged, "abc")
		if !errors.Is(err, ErrInvalidPath) {
			t.Errorf("error = %v, want ErrInvalidPath", err)
		}
	})

	t.Run("normalizes_backslash_free_paths", func(t *testing.T) {
		mgr := NewManager()
		if _, err := mgr.Load(t.TempDir()); err != nil {
			t.Fatalf("Load error: %v", err)
		}
		if err := mgr.Track("./guides/auth.md", UserCreated, "h"); err != nil {
			t.Fatalf("Track error: %v", err)
		}
		if _, ok := mgr.GetEntry("guides/auth.md"); !ok {
			t.Error("expected normalized entry guides/auth.md")
		}
	})
}

func TestMarkUserModified(t *testing.T) {
	mgr := NewManager()
	if _, err := mgr.Load(t.TempDir()); err != nil {
		t.Fatalf("Load error: %v", err)
	}

	hash := HashBytes([]byte("# Readme"))
	if err := mgr.Track("README.md", TemplateManaged, hash); err != nil {
		t.Fatalf("Track error: %v", err)
	}

	if err := mgr.MarkUserModified("README.md"); err != nil {
		t.Fatalf("MarkUserModified error: %v", err)
	}
	entry, ok := mgr.GetEntry("README.md")
	if !ok {
		t.Fatal("expected entry for README.md")
	}
	if entry.Provenance != UserModified {
		t.Errorf("Provenance = %v, want %v", entry.Provenance, UserModified)
	}
	if entry.TemplateHash != hash {
		t.Error("template hash should survive the provenance flip")
	}

	if err := mgr.MarkUserModified("nope.md"); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("error = %v, want ErrInvalidPath", err)
	}
}

func TestManagerPaths(t *testing.T) {
	mgr := NewManager()
	if _, err := mgr.Load(t.TempDir()); err != nil {
		t.Fatalf("Load error: %v", err)
	}
	for _, p := range []string{"07-GLOSSARY.md", "README.md", "01-OVERVIEW.md"} {
		if err := mgr.Track(p, TemplateManaged, "h"); err != nil {
			t.Fatalf("Track error: %v", err)
		}
	}

	paths := mgr.Paths()
	want := []string{"01-OVERVIEW.md", "07-GLOSSARY.md", "README.md"}
	if len(paths) != len(want) {
		t.Fatalf("Paths len = %d, want %d", len(paths), len(want))
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("Paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestSaveProducesValidJSON(t *testing.T) {
	root := t.TempDir()
	mgr := NewManager()
	if _, err := mgr.Load(root); err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if err := mgr.Track("README.md", TemplateManaged, HashBytes([]byte("x"))); err != nil {
		t.Fatalf("Track error: %v", err)
	}
	if err := mgr.Save(); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, ".docstack", "manifest.json"))
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if !json.Valid(data) {
		t.Error("manifest.json is not valid JSON")
	}
}

func TestHashBytes(t *testing.T) {
	a := HashBytes([]byte("content"))
	b := HashBytes([]byte("content"))
	c := HashBytes([]byte("different"))

	if a != b {
		t.Error("identical content produced different hashes")
	}
	if a == c {
		t.Error("different content produced identical hashes")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(a))
	}
}
