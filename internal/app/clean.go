package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"go.trai.ch/zerr"
)

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	Options

	// Lock also removes the lockfile.
	Lock bool
}

// Clean removes the package index cache, and with Lock the lockfile,
// reporting how much space each removal reclaimed.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	s, err := a.settingsFor(opts.Options)
	if err != nil {
		return err
	}

	var errs error

	// Helper to remove a path and log the action with its size.
	remove := func(path string, name string) {
		size, found := sizeOf(path)
		if !found {
			a.logger.Debug(fmt.Sprintf("no %s at %s", name, path))
			return
		}

		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.Wrap(err, fmt.Sprintf("failed to remove %s", name)))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s (%s reclaimed)", name, humanize.Bytes(size)))
	}

	remove(s.CacheDir, "index cache")

	if opts.Lock {
		remove(lockPathFor(s.ManifestPath), "lockfile")
	}

	return errs
}

// sizeOf reports the total byte size under path and whether anything
// exists there.
func sizeOf(path string) (uint64, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, false
	}
	if !info.IsDir() {
		return uint64(info.Size()), true
	}

	var total uint64
	_ = filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil //nolint:nilerr // unreadable entries just do not count
		}
		if fi, err := d.Info(); err == nil {
			total += uint64(fi.Size())
		}
		return nil
	})
	return total, true
}
