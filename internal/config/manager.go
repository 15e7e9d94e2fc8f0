package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/docstack-dev/docstack/internal/defs"
)

// Manager provides thread-safe access to a loaded configuration bound
// to a docs root.
type Manager struct {
	mu       sync.RWMutex
	docsRoot string
	cfg      *Config
}

// NewManager creates an empty configuration Manager.
func NewManager() *Manager {
	return &Manager{}
}

// Load reads the configuration for docsRoot. A missing file yields a
// default configuration rather than an error, so first-run commands
// behave sensibly.
func (m *Manager) Load(docsRoot string) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.docsRoot = docsRoot
	cfg, err := Load(docsRoot)
	if err != nil {
		if err == ErrConfigNotFound {
			cfg = NewDefaultConfig()
		} else {
			return nil, err
		}
	}
	m.cfg = cfg
	return cfg, nil
}

// Resolve locates the docs directory of an existing installation under
// projectRoot and loads its configuration. The default docs dir is
// probed first, then every other subdirectory holding a docstack state
// dir. When no installation is found the default dir name and a default
// configuration are returned, so first-run commands behave sensibly.
func (m *Manager) Resolve(projectRoot string) (string, *Config, error) {
	docsDir := defs.DefaultDocsDir
	for _, dir := range candidateDocsDirs(projectRoot) {
		if _, err := os.Stat(filepath.Join(projectRoot, dir, defs.StateDir)); err == nil {
			docsDir = dir
			break
		}
	}

	cfg, err := m.Load(filepath.Join(projectRoot, docsDir))
	if err != nil {
		return "", nil, err
	}
	if cfg.Docs.Dir != "" {
		docsDir = cfg.Docs.Dir
	}
	return docsDir, cfg, nil
}

// candidateDocsDirs lists directory names to probe for an installation,
// default docs dir first.
func candidateDocsDirs(projectRoot string) []string {
	dirs := []string{defs.DefaultDocsDir}
	entries, err := os.ReadDir(projectRoot)
	if err != nil {
		return dirs
	}
	for _, entry := range entries {
		if entry.IsDir() && entry.Name() != defs.DefaultDocsDir {
			dirs = append(dirs, entry.Name())
		}
	}
	return dirs
}

// Get returns the loaded configuration, or nil before Load.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg
}

// SetProject updates the project identity fields in memory.
func (m *Manager) SetProject(name, description, owner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cfg == nil {
		return ErrNotInitialized
	}
	m.cfg.Project = ProjectConfig{Name: name, Description: description, Owner: owner}
	return nil
}

// Save validates and writes the in-memory configuration back to disk.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cfg == nil {
		return ErrNotInitialized
	}
	return Write(m.docsRoot, m.cfg)
}
