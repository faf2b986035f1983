package ports

import "go.pindown.dev/pindown/internal/core/domain"

// SettingsLoader resolves the layered tool configuration.
//
//go:generate mockgen -source=settings_loader.go -destination=mocks/mock_settings_loader.go -package=mocks
type SettingsLoader interface {
	// Load resolves settings for a run started in cwd: defaults, then
	// the nearest project settings file walking up from cwd, then
	// PINDOWN_* environment variables.
	Load(cwd string) (*domain.Settings, error)
}
