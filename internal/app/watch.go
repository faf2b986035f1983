package app

import (
	"context"
	"errors"
	"fmt"

	"go.pindown.dev/pindown/internal/core/ports"
	"go.pindown.dev/pindown/internal/engine/lint"
)

// WatchOptions configuration for the Watch method.
type WatchOptions struct {
	Options

	// Run is a hook command executed after every clean lint pass.
	Run []string
}

// Watch re-lints the manifest whenever it changes, until the context is
// cancelled. A hook command, when given, runs after each clean pass
// with PINDOWN_MANIFEST pointing at the manifest.
func (a *App) Watch(ctx context.Context, opts WatchOptions) error {
	s, err := a.settingsFor(opts.Options)
	if err != nil {
		return err
	}

	if err := a.watcher.Start(ctx, s.ManifestPath); err != nil {
		return err
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	// Events() only ends when the watcher stops, so cancellation has to
	// reach Stop from the side.
	stopOnCancel := context.AfterFunc(ctx, func() {
		_ = a.watcher.Stop()
	})
	defer stopOnCancel()

	a.logger.Info(fmt.Sprintf("watching %s", s.ManifestPath))
	a.watchPass(ctx, s.ManifestPath, opts.Run)

	for event := range a.watcher.Events() {
		switch event.Operation {
		case ports.OpRemove, ports.OpRename:
			a.logger.Warn(fmt.Sprintf("%s disappeared, waiting for it to return", s.ManifestPath))
		default:
			a.watchPass(ctx, s.ManifestPath, opts.Run)
		}
	}

	if err := ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// watchPass lints the manifest once and runs the hook when it is clean.
// Findings go through the logger; a watch session has no exit code to
// carry them.
func (a *App) watchPass(ctx context.Context, path string, hook []string) {
	m, issues, err := a.manifests.LoadLenient(path)
	if err != nil {
		a.logger.Error(err)
		return
	}

	report := lint.Check(m, issues)
	for _, f := range report.Findings {
		a.logger.Warn(f.String())
	}

	errs, warnings := report.Counts()
	if report.HasErrors() {
		a.logger.Warn(fmt.Sprintf("%s has %d lint errors", path, errs))
		return
	}

	if warnings > 0 {
		a.logger.Info(fmt.Sprintf("%s: ok (%d warnings)", path, warnings))
	} else {
		a.logger.Info(fmt.Sprintf("%s: ok", path))
	}

	if len(hook) == 0 {
		return
	}
	env := map[string]string{"PINDOWN_MANIFEST": path}
	if err := a.runner.Run(ctx, hook, env); err != nil {
		a.logger.Error(err)
	}
}
