package app

import (
	"bytes"
	"context"
	"fmt"

	"go.pindown.dev/pindown/internal/core/domain"
	"go.trai.ch/zerr"
)

// FmtOptions configuration for the Fmt method.
type FmtOptions struct {
	Options

	// Write rewrites the manifest in place instead of printing.
	Write bool

	// Check reports whether the manifest is canonical without touching
	// it; a non-canonical file becomes a non-zero exit.
	Check bool
}

// Fmt renders the manifest canonically: normalized names, canonical
// constraint clauses, tidied comments, original statement order.
func (a *App) Fmt(_ context.Context, opts FmtOptions) error {
	s, err := a.settingsFor(opts.Options)
	if err != nil {
		return err
	}

	m, err := a.manifests.Load(s.ManifestPath)
	if err != nil {
		return err
	}

	canonical := a.manifests.RenderCanonical(m)
	current := a.manifests.Render(m)

	switch {
	case opts.Check:
		if !bytes.Equal(current, canonical) {
			fmt.Fprintln(a.stdout, s.ManifestPath)
			return zerr.With(domain.ErrNotCanonical, "path", s.ManifestPath)
		}
		return nil

	case opts.Write:
		if bytes.Equal(current, canonical) {
			a.logger.Debug(fmt.Sprintf("%s is already canonical", s.ManifestPath))
			return nil
		}
		if err := a.manifests.Write(s.ManifestPath, canonical); err != nil {
			return err
		}
		a.logger.Info(fmt.Sprintf("formatted %s", s.ManifestPath))
		return nil

	default:
		if _, err := a.stdout.Write(canonical); err != nil {
			return zerr.Wrap(err, "failed to write formatted manifest")
		}
		return nil
	}
}
