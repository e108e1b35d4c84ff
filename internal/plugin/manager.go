package plugin

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// ErrPluginNotFound is returned when a requested plugin cannot be found.
var ErrPluginNotFound = errors.New("plugin not found")

const (
	manifestFile = "plugin.json"
	configFile   = "config.json"
)

// Skipped records a plugin directory that Discover could not load.
type Skipped struct {
	Dir    string
	Reason string
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the logger used to report skipped plugins.
func WithLogger(log *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// Manager discovers action plugins under one directory. Each plugin lives in
// its own subdirectory with a plugin.json manifest and an optional
// config.json that is forwarded to the plugin on every request.
type Manager struct {
	pluginDir string
	log       *slog.Logger

	mu      sync.RWMutex
	plugins map[string]*Plugin
	skipped []Skipped
}

// NewManager creates a Manager for pluginDir. Nothing is read until Discover.
func NewManager(pluginDir string, opts ...ManagerOption) *Manager {
	m := &Manager{
		pluginDir: pluginDir,
		log:       slog.Default(),
		plugins:   make(map[string]*Plugin),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Discover rescans the plugin directory, replacing everything found by a
// previous call. A missing directory yields no plugins. Broken plugins are
// skipped and reported by Skipped.
func (m *Manager) Discover() error {
	plugins := make(map[string]*Plugin)
	var skipped []Skipped

	entries, err := readPluginDir(m.pluginDir)
	if err != nil {
		return fmt.Errorf("read plugin dir: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(m.pluginDir, entry.Name())
		if _, err := os.Stat(filepath.Join(dir, manifestFile)); errors.Is(err, os.ErrNotExist) {
			continue
		}

		p, err := load(dir)
		if err != nil {
			skipped = append(skipped, Skipped{Dir: dir, Reason: err.Error()})
			m.log.Warn("plugin skipped", "dir", dir, "error", err)
			continue
		}
		if prev, dup := plugins[p.Manifest.Name]; dup {
			reason := fmt.Sprintf("duplicate plugin name %q, already loaded from %s", p.Manifest.Name, prev.Path)
			skipped = append(skipped, Skipped{Dir: dir, Reason: reason})
			m.log.Warn("plugin skipped", "dir", dir, "reason", reason)
			continue
		}
		plugins[p.Manifest.Name] = p
	}

	m.mu.Lock()
	m.plugins = plugins
	m.skipped = skipped
	m.mu.Unlock()

	m.log.Debug("plugins discovered", "dir", m.pluginDir, "loaded", len(plugins), "skipped", len(skipped))
	return nil
}

// readPluginDir lists dir. A missing path or a plain file reads as empty.
func readPluginDir(dir string) ([]os.DirEntry, error) {
	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, nil
	}
	return os.ReadDir(dir)
}

// load reads the manifest and optional config of the plugin in dir.
func load(dir string) (*Plugin, error) {
	data, err := os.ReadFile(filepath.Join(dir, manifestFile))
	if err != nil {
		return nil, err
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse %s: %w", manifestFile, err)
	}
	if manifest.Name == "" {
		return nil, fmt.Errorf("%s: name is required", manifestFile)
	}
	if manifest.Executable == "" {
		return nil, fmt.Errorf("%s: executable is required", manifestFile)
	}

	p := &Plugin{
		Manifest:   manifest,
		Path:       dir,
		Executable: filepath.Join(dir, manifest.Executable),
	}

	cfg, err := os.ReadFile(filepath.Join(dir, configFile))
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		var obj map[string]any
		if err := json.Unmarshal(cfg, &obj); err != nil {
			return nil, fmt.Errorf("%s must hold a JSON object: %w", configFile, err)
		}
		p.Config = json.RawMessage(cfg)
	}

	return p, nil
}

// Get returns the plugin named name or ErrPluginNotFound.
func (m *Manager) Get(name string) (*Plugin, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.plugins[name]
	if !ok {
		return nil, ErrPluginNotFound
	}
	return p, nil
}

// List returns all discovered plugins sorted by name.
func (m *Manager) List() []*Plugin {
	m.mu.RLock()
	defer m.mu.RUnlock()

	plugins := make([]*Plugin, 0, len(m.plugins))
	for _, p := range m.plugins {
		plugins = append(plugins, p)
	}
	sort.Slice(plugins, func(i, j int) bool {
		return plugins[i].Manifest.Name < plugins[j].Manifest.Name
	})
	return plugins
}

// Skipped returns the plugin directories the last Discover rejected.
func (m *Manager) Skipped() []Skipped {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Skipped(nil), m.skipped...)
}

// PluginDir returns the plugin directory path.
func (m *Manager) PluginDir() string {
	return m.pluginDir
}
