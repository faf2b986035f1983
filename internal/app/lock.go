package app

import (
	"context"
	"fmt"
	"time"

	"go.pindown.dev/pindown/internal/core/domain"
)

// LockOptions configuration for the Lock method.
type LockOptions struct {
	ResolveOptions

	// Emit additionally writes the resolution as a requirements-format
	// file at the given path.
	Emit string
}

// Lock resolves the manifest and writes the result as a lockfile next
// to it, fingerprinted so later verification can detect staleness.
func (a *App) Lock(ctx context.Context, opts LockOptions) error {
	s, err := a.resolveSettings(opts.ResolveOptions)
	if err != nil {
		return err
	}

	m, err := a.loadLinted(s.ManifestPath)
	if err != nil {
		return err
	}

	resolution, err := a.resolveManifest(ctx, m, s, opts.ResolveOptions)
	if err != nil {
		return err
	}

	hash, err := a.hasher.Hash(m)
	if err != nil {
		return err
	}

	lock := domain.NewLockfile(hash, time.Now(), resolution.Pins())
	lockPath := lockPathFor(s.ManifestPath)
	if err := a.locks.Write(lockPath, lock); err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("locked %d packages to %s", len(lock.Pins), lockPath))

	if opts.Emit != "" {
		emitted, err := pinnedManifest(m, resolution, opts.Emit)
		if err != nil {
			return err
		}
		if err := a.manifests.Write(opts.Emit, a.manifests.RenderCanonical(emitted)); err != nil {
			return err
		}
		a.logger.Info(fmt.Sprintf("emitted pinned requirements to %s", opts.Emit))
	}

	if opts.JSON {
		return a.printJSON(lock)
	}
	a.printSummary(resolution)
	return nil
}

// pinnedManifest renders a resolution as a requirements document with
// every package pinned exactly, carrying over the justification
// comments and extras from the source manifest.
func pinnedManifest(m *domain.Manifest, res domain.Resolution, path string) (*domain.Manifest, error) {
	out := domain.NewManifest(path, nil)

	for i, p := range res.Packages {
		if i > 0 {
			out.AppendBlank()
		}

		var extras []string
		inline := ""
		if req, ok := m.Requirement(p.Name); ok {
			extras = req.Extras
			inline = req.Comment
		}

		leading := m.Justification(p.Name)
		if inline != "" && len(leading) > 0 {
			// Justification ends with the inline comment; that one is
			// re-attached to the pinned line instead.
			leading = leading[:len(leading)-1]
		}
		for _, text := range leading {
			out.AppendComment(text)
		}

		set, err := domain.ParseSpecifierSet("==" + p.Version.String())
		if err != nil {
			return nil, err
		}
		req := domain.Requirement{
			Name:       p.Name,
			RawName:    p.Name.String(),
			Extras:     extras,
			Specifiers: set,
			Comment:    inline,
		}
		if err := out.AppendRequirement(req); err != nil {
			return nil, err
		}
	}
	return out, nil
}
