package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.pindown.dev/pindown/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.pindown.dev/pindown/internal/adapters/lockstore" //nolint:depguard // Wired in app layer
	"go.pindown.dev/pindown/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.pindown.dev/pindown/internal/adapters/reqfile"   //nolint:depguard // Wired in app layer
	"go.pindown.dev/pindown/internal/adapters/settings"  //nolint:depguard // Wired in app layer
	"go.pindown.dev/pindown/internal/adapters/shell"     //nolint:depguard // Wired in app layer
	"go.pindown.dev/pindown/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.pindown.dev/pindown/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains the initialized application components the CLI
// layer needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			reqfile.NodeID,
			lockstore.NodeID,
			fs.HasherNodeID,
			settings.NodeID,
			watcher.NodeID,
			shell.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	manifests, err := graft.Dep[ports.ManifestStore](ctx)
	if err != nil {
		return nil, err
	}

	locks, err := graft.Dep[ports.LockStore](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.ManifestHasher](ctx)
	if err != nil {
		return nil, err
	}

	loader, err := graft.Dep[ports.SettingsLoader](ctx)
	if err != nil {
		return nil, err
	}

	watch, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	runner, err := graft.Dep[ports.Runner](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(manifests, locks, hasher, loader, watch, runner, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    app,
		Logger: log,
	}, nil
}
