// Package config loads and watches the toolkit's YAML configuration.
// Readers always see a consistent snapshot through an atomic pointer;
// file changes are picked up without restarting long benchmark runs.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Bench  BenchConfig  `yaml:"bench"`
	Output OutputConfig `yaml:"output"`
}

type BenchConfig struct {
	// Trials is the number of randomized resplits per unit.
	Trials int `yaml:"trials"`
	// BatchSize bounds the query batches handed to scorers.
	BatchSize int `yaml:"batch_size"`
	// MaxConcurrent caps simultaneously running benchmark units.
	MaxConcurrent int `yaml:"max_concurrent"`
	// Datasets are glob patterns selecting registered datasets.
	Datasets []string `yaml:"datasets"`
}

type OutputConfig struct {
	Dir          string `yaml:"dir"`
	TableFile    string `yaml:"table_file"`
	DatabaseFile string `yaml:"database_file"`
	PlotDir      string `yaml:"plot_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		Bench: BenchConfig{
			Trials:        10,
			BatchSize:     2048,
			MaxConcurrent: runtime.NumCPU(),
			Datasets:      []string{"*"},
		},
		Output: OutputConfig{
			Dir:          ".pykeen",
			TableFile:    "baseline_benchmark.tsv",
			DatabaseFile: "baseline_benchmark.db",
			PlotDir:      "plots",
		},
	}
}

// Manager holds the current configuration and reloads it when the backing
// file changes.
type Manager struct {
	current   atomic.Pointer[Config]
	path      string
	watchers  []func(*Config)
	watcherMu sync.RWMutex
	stopWatch chan struct{}
	watchOnce sync.Once
}

// NewManager loads the file at path, or falls back to defaults when the file
// does not exist. A malformed file is an error, not a silent default.
func NewManager(path string) (*Manager, error) {
	m := &Manager{path: path, stopWatch: make(chan struct{})}
	cfg, err := load(path)
	if err != nil {
		return nil, err
	}
	m.current.Store(cfg)
	return m, nil
}

func load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Config returns the current snapshot. Callers must treat it as read-only.
func (m *Manager) Config() *Config {
	return m.current.Load()
}

// OnChange registers a callback invoked after every successful reload.
func (m *Manager) OnChange(fn func(*Config)) {
	m.watcherMu.Lock()
	defer m.watcherMu.Unlock()
	m.watchers = append(m.watchers, fn)
}

// Watch starts watching the config file's directory for changes. Safe to
// call once; later calls are no-ops.
func (m *Manager) Watch() error {
	var startErr error
	m.watchOnce.Do(func() {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			startErr = fmt.Errorf("start config watcher: %w", err)
			return
		}
		// Watch the directory: editors often replace the file, which would
		// drop a watch on the file itself.
		if err := watcher.Add(filepath.Dir(m.path)); err != nil {
			watcher.Close()
			startErr = fmt.Errorf("watch config directory: %w", err)
			return
		}
		go m.watchLoop(watcher)
	})
	return startErr
}

// Stop ends watching. Idempotent only before Watch is called again.
func (m *Manager) Stop() {
	close(m.stopWatch)
}

func (m *Manager) watchLoop(watcher *fsnotify.Watcher) {
	defer watcher.Close()
	for {
		select {
		case <-m.stopWatch:
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(m.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			m.reload()
		case _, ok := <-watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (m *Manager) reload() {
	cfg, err := load(m.path)
	if err != nil {
		// Keep serving the previous snapshot on a bad edit.
		return
	}
	m.current.Store(cfg)
	m.watcherMu.RLock()
	defer m.watcherMu.RUnlock()
	for _, fn := range m.watchers {
		fn(cfg)
	}
}
