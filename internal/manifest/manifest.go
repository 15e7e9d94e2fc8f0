// Package manifest tracks files deployed into a docs tree, recording the
// content hash and provenance of each one so later updates can tell
// boilerplate-managed files apart from user edits.
package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/docstack-dev/docstack/internal/defs"
)

// Provenance classifies how a tracked file came to exist.
type Provenance string

const (
	// TemplateManaged marks files written from the embedded boilerplate.
	// They are safe to overwrite on update.
	TemplateManaged Provenance = "template_managed"

	// UserModified marks boilerplate files the user has since edited.
	UserModified Provenance = "user_modified"

	// UserCreated marks files the user added that docstack never wrote.
	UserCreated Provenance = "user_created"
)

// Sentinel errors for manifest operations.
var (
	ErrNotLoaded   = errors.New("manifest: not loaded, call Load() first")
	ErrInvalidPath = errors.New("manifest: invalid entry path")
)

// Entry records a single tracked file, keyed by its slash-separated path
// relative to the docs root.
type Entry struct {
	Path         string     `json:"path"`
	Provenance   Provenance `json:"provenance"`
	TemplateHash string     `json:"template_hash"`
}

// Manifest is the persisted state stored at <docs>/.docstack/manifest.json.
type Manifest struct {
	Version    string           `json:"version"`
	DeployedAt string           `json:"deployed_at"`
	Entries    map[string]Entry `json:"entries"`
}

// Manager provides thread-safe access to a manifest bound to a docs root.
type Manager interface {
	// Load reads the manifest from docsRoot, creating an empty one when
	// no manifest file exists yet.
	Load(docsRoot string) (*Manifest, error)

	// Save writes the in-memory manifest back to disk.
	Save() error

	// Manifest returns the in-memory manifest, or nil before Load.
	Manifest() *Manifest

	// Track records or updates an entry for the given relative path.
	Track(relPath string, p Provenance, templateHash string) error

	// MarkUserModified flags an existing entry as user-edited, keeping
	// its recorded template hash.
	MarkUserModified(relPath string) error

	// GetEntry looks up the entry for a relative path.
	GetEntry(relPath string) (Entry, bool)

	// Paths returns all tracked relative paths in sorted order.
	Paths() []string
}

type manager struct {
	mu       sync.RWMutex
	docsRoot string
	manifest *Manifest
}

// NewManager creates an empty manifest Manager.
func NewManager() Manager {
	return &manager{}
}

// Load reads the manifest from docsRoot/.docstack/manifest.json.
// A missing file yields a fresh empty manifest.
func (m *manager) Load(docsRoot string) (*Manifest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.docsRoot = filepath.Clean(docsRoot)

	data, err := os.ReadFile(m.path())
	if err != nil {
		if os.IsNotExist(err) {
			m.manifest = &Manifest{Entries: make(map[string]Entry)}
			return m.manifest, nil
		}
		return nil, fmt.Errorf("manifest read: %w", err)
	}

	var mf Manifest
	if err := json.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("manifest parse: %w", err)
	}
	if mf.Entries == nil {
		mf.Entries = make(map[string]Entry)
	}
	m.manifest = &mf
	return m.manifest, nil
}

// Save writes the manifest as indented JSON, creating the state
// directory if needed.
func (m *manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.manifest == nil {
		return ErrNotLoaded
	}

	stateDir := filepath.Join(m.docsRoot, defs.StateDir)
	if err := os.MkdirAll(stateDir, defs.DirPerm); err != nil {
		return fmt.Errorf("manifest mkdir %q: %w", stateDir, err)
	}

	data, err := json.MarshalIndent(m.manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("manifest marshal: %w", err)
	}
	if err := os.WriteFile(m.path(), data, defs.FilePerm); err != nil {
		return fmt.Errorf("manifest write: %w", err)
	}
	return nil
}

// Manifest returns the in-memory manifest.
func (m *manager) Manifest() *Manifest {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.manifest
}

// Track records an entry for relPath. Paths are normalized to forward
// slashes so manifests are portable across platforms.
func (m *manager) Track(relPath string, p Provenance, templateHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.manifest == nil {
		return ErrNotLoaded
	}
	normalized := filepath.ToSlash(filepath.Clean(relPath))
	if normalized == "" || normalized == "." || filepath.IsAbs(relPath) {
		return fmt.Errorf("%w: %q", ErrInvalidPath, relPath)
	}

	m.manifest.Entries[normalized] = Entry{
		Path:         normalized,
		Provenance:   p,
		TemplateHash: templateHash,
	}
	return nil
}

// MarkUserModified flags an existing entry as user-edited. The stored
// template hash stays untouched so later updates can still tell which
// boilerplate revision the edit diverged from.
func (m *manager) MarkUserModified(relPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.manifest == nil {
		return ErrNotLoaded
	}
	normalized := filepath.ToSlash(filepath.Clean(relPath))
	entry, ok := m.manifest.Entries[normalized]
	if !ok {
		return fmt.Errorf("%w: %q not tracked", ErrInvalidPath, relPath)
	}
	entry.Provenance = UserModified
	m.manifest.Entries[normalized] = entry
	return nil
}

// GetEntry looks up the entry for a relative path.
func (m *manager) GetEntry(relPath string) (Entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.manifest == nil {
		return Entry{}, false
	}
	entry, ok := m.manifest.Entries[filepath.ToSlash(filepath.Clean(relPath))]
	return entry, ok
}

// Paths returns all tracked relative paths in sorted order.
func (m *manager) Paths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.manifest == nil {
		return nil
	}
	paths := make([]string, 0, len(m.manifest.Entries))
	for p := range m.manifest.Entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func (m *manager) path() string {
	return filepath.Join(m.docsRoot, defs.StateDir, defs.ManifestJSON)
}

// HashBytes returns the hex-encoded SHA-256 digest of content.
func HashBytes(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
