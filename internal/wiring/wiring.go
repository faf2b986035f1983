// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.pindown.dev/pindown/internal/adapters/fs"
	_ "go.pindown.dev/pindown/internal/adapters/lockstore"
	_ "go.pindown.dev/pindown/internal/adapters/logger"
	_ "go.pindown.dev/pindown/internal/adapters/reqfile"
	_ "go.pindown.dev/pindown/internal/adapters/settings"
	_ "go.pindown.dev/pindown/internal/adapters/shell"
	_ "go.pindown.dev/pindown/internal/adapters/watcher"
	// Register app nodes.
	_ "go.pindown.dev/pindown/internal/app"
)
