package domain

import "go.trai.ch/zerr"

// Settings is the resolved tool configuration after defaults, the
// project settings file, and the environment were layered. Command
// flags override individual values on top of this.
type Settings struct {
	// ManifestPath is the requirements file commands operate on.
	ManifestPath string

	// IndexURL is the base URL of the package index JSON API.
	IndexURL string

	// IndexFile points at a local index document. When set it replaces
	// the live index entirely.
	IndexFile string

	// CacheDir holds the package index response cache.
	CacheDir string

	// Strategy picks which satisfying version resolution pins.
	Strategy Strategy

	// Offline restricts index lookups to the cache.
	Offline bool
}

// Validate reports whether the layered settings are usable.
func (s Settings) Validate() error {
	if !s.Strategy.Valid() {
		err := zerr.With(ErrSettingsInvalid, "strategy", string(s.Strategy))
		return zerr.With(err, "allowed", "highest, lowest")
	}
	return nil
}
