// Package app implements the application layer for pindown.
package app

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.pindown.dev/pindown/internal/adapters/pypi"
	"go.pindown.dev/pindown/internal/core/domain"
	"go.pindown.dev/pindown/internal/core/ports"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	manifests ports.ManifestStore
	locks     ports.LockStore
	hasher    ports.ManifestHasher
	settings  ports.SettingsLoader
	watcher   ports.Watcher
	runner    ports.Runner
	logger    ports.Logger

	stdout io.Writer
	stderr io.Writer

	index       ports.PackageIndex
	teaOptions  []tea.ProgramOption
	disableTick bool
}

// New creates a new App instance.
func New(
	manifests ports.ManifestStore,
	locks ports.LockStore,
	hasher ports.ManifestHasher,
	settings ports.SettingsLoader,
	watcher ports.Watcher,
	runner ports.Runner,
	log ports.Logger,
) *App {
	return &App{
		manifests: manifests,
		locks:     locks,
		hasher:    hasher,
		settings:  settings,
		watcher:   watcher,
		runner:    runner,
		logger:    log,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
	}
}

// WithOutput redirects command output away from the process streams.
// This is primarily used for testing.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithIndex fixes the package index instead of constructing one from
// settings. This is primarily used for testing.
func (a *App) WithIndex(index ports.PackageIndex) *App {
	a.index = index
	return a
}

// WithTeaOptions adds bubbletea program options to the App.
// This is primarily used for testing to disable input/output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// WithDisableTick disables the TUI tick loop.
// This is primarily used for testing with synctest to avoid goroutine deadlocks.
func (a *App) WithDisableTick() *App {
	a.disableTick = true
	return a
}

// Options carries the flag overrides shared by every command. Zero
// values leave the layered settings untouched.
type Options struct {
	ManifestPath string
	IndexURL     string
	IndexFile    string
	CacheDir     string
	Offline      bool
	OutputMode   string
	JSON         bool
}

// settingsFor layers command flags over the resolved settings.
func (a *App) settingsFor(o Options) (*domain.Settings, error) {
	s, err := a.settings.Load(".")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load settings")
	}

	if o.ManifestPath != "" {
		s.ManifestPath = o.ManifestPath
	}
	if o.IndexURL != "" {
		s.IndexURL = o.IndexURL
	}
	if o.IndexFile != "" {
		s.IndexFile = o.IndexFile
	}
	if o.CacheDir != "" {
		s.CacheDir = o.CacheDir
	}
	if o.Offline {
		s.Offline = true
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// buildIndex constructs the package index the settings describe: a
// local index document when one is given, otherwise the live index
// with its response cache.
func (a *App) buildIndex(s *domain.Settings) (ports.PackageIndex, error) {
	if a.index != nil {
		return a.index, nil
	}
	if s.IndexFile != "" {
		return pypi.NewFileIndex(s.IndexFile)
	}
	return pypi.NewClient(s.IndexURL, s.CacheDir, s.Offline)
}

// lockPathFor returns the lockfile path next to the manifest.
func lockPathFor(manifestPath string) string {
	return filepath.Join(filepath.Dir(manifestPath), domain.LockFileName)
}

// printJSON writes v to stdout as indented JSON.
func (a *App) printJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return zerr.Wrap(err, "failed to encode JSON output")
	}
	return nil
}
