// Package settings provides the layered configuration loader for pindown.
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"go.pindown.dev/pindown/internal/adapters/pypi"
	"go.pindown.dev/pindown/internal/core/domain"
	"go.pindown.dev/pindown/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.SettingsLoader using an optional project
// file and the environment.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load resolves settings for a run started in cwd. The nearest
// .pindown.yaml walking up from cwd supplies the file layer; PINDOWN_*
// variables override it; defaults backfill whatever is still unset.
func (l *Loader) Load(cwd string) (*domain.Settings, error) {
	var doc schema

	if path, found := l.findSettingsFile(cwd); found {
		if err := readAndUnmarshalYAML(path, &doc); err != nil {
			return nil, err
		}
		l.Logger.Debug(fmt.Sprintf("loaded settings from %s", path))
	}

	if err := env.Parse(&doc); err != nil {
		return nil, zerr.Wrap(err, domain.ErrSettingsEnvParseFailed.Error())
	}

	settings := &domain.Settings{
		ManifestPath: doc.Manifest,
		IndexURL:     doc.IndexURL,
		IndexFile:    doc.IndexFile,
		CacheDir:     doc.CacheDir,
		Strategy:     domain.Strategy(doc.Strategy),
		Offline:      doc.Offline,
	}
	fillDefaults(settings)

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return settings, nil
}

// findSettingsFile walks from cwd toward the filesystem root and
// returns the first settings file it finds.
func (l *Loader) findSettingsFile(cwd string) (string, bool) {
	currentDir := cwd

	for {
		path := filepath.Join(currentDir, domain.SettingsFileName)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", false
}

// fillDefaults backfills fields left unset by the file and environment
// layers.
func fillDefaults(s *domain.Settings) {
	if s.ManifestPath == "" {
		s.ManifestPath = domain.ManifestFileName
	}
	if s.IndexURL == "" {
		s.IndexURL = pypi.DefaultBaseURL
	}
	if s.CacheDir == "" {
		s.CacheDir = domain.DefaultIndexCachePath()
	}
	if s.Strategy == "" {
		s.Strategy = domain.StrategyHighest
	}
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](path string, target *T) error {
	// #nosec G304 -- path is resolved from the project tree
	data, err := os.ReadFile(path)
	if err != nil {
		return zerr.Wrap(err, domain.ErrSettingsReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(data, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrSettingsParseFailed.Error())
	}

	return nil
}
