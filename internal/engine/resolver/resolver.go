// Package resolver assigns every manifest requirement a released
// version satisfying its full specifier set.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"go.pindown.dev/pindown/internal/core/domain"
	"go.pindown.dev/pindown/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Engine resolves manifest requirements concurrently against a
// package index.
type Engine struct {
	index  ports.PackageIndex
	tracer ports.Tracer
}

// NewEngine creates a resolver engine over the given index. Each
// package fetch runs inside its own span, so whatever renders the
// tracer's output sees per-package progress.
func NewEngine(index ports.PackageIndex, tracer ports.Tracer) *Engine {
	return &Engine{index: index, tracer: tracer}
}

// Options configure one resolution run.
type Options struct {
	// Strategy selects among satisfying candidates. The zero value
	// picks the highest.
	Strategy domain.Strategy

	// Prereleases admits pre-release candidates for every requirement,
	// not only those whose clauses reference one.
	Prereleases bool

	// Parallelism caps concurrent index fetches. Zero or negative
	// means one per CPU.
	Parallelism int
}

// result carries one package's outcome out of the fetch pool.
type result struct {
	resolved domain.ResolvedPackage
	releases int
	err      error
}

// Resolve pins every requirement of the manifest. All packages are
// attempted even when some fail, so one broken requirement does not
// hide the others; the failures come back joined.
func (e *Engine) Resolve(ctx context.Context, m *domain.Manifest, opts Options) (domain.Resolution, error) {
	if dups := m.Duplicates(); len(dups) > 0 {
		return domain.Resolution{}, zerr.With(domain.ErrDuplicateRequirement, "package", dups[0].String())
	}

	reqs := m.Requirements()
	names := make([]string, len(reqs))
	for i, req := range reqs {
		names[i] = req.Name.String()
	}
	e.tracer.EmitPlan(ctx, names)

	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}

	started := time.Now()
	results := make([]result, len(reqs))

	var g errgroup.Group
	g.SetLimit(parallelism)
	for i, req := range reqs {
		g.Go(func() error {
			results[i] = e.resolveOne(ctx, req, opts)
			return nil
		})
	}
	// Outcomes land in per-requirement slots; the pool itself never
	// fails.
	_ = g.Wait()

	resolved := make([]domain.ResolvedPackage, 0, len(reqs))
	releases := 0
	var errs error

	for i, res := range results {
		releases += res.releases
		if res.err != nil {
			failure := zerr.With(zerr.Wrap(res.err, domain.ErrResolutionFailed.Error()), "package", reqs[i].Name.String())
			errs = errors.Join(errs, failure)
			continue
		}
		resolved = append(resolved, res.resolved)
	}

	if errs != nil {
		return domain.Resolution{}, errs
	}

	resolution := domain.NewResolution(resolved)
	resolution.Stats = domain.ResolutionStats{
		Packages: len(resolved),
		Releases: releases,
		Duration: time.Since(started),
	}
	return resolution, nil
}

// resolveOne fetches a package's releases and picks the version its
// clauses allow. The span ends before the result is reported, so
// renderers observe completion in order.
func (e *Engine) resolveOne(ctx context.Context, req domain.Requirement, opts Options) result {
	ctx, span := e.tracer.Start(ctx, req.Name.String())
	defer span.End()

	releases, err := e.index.Releases(ctx, req.Name)
	if err != nil {
		span.RecordError(err)
		return result{err: err}
	}

	candidates := filter(req.Specifiers, releases, opts.Prereleases)
	_, _ = fmt.Fprintf(span, "%d releases, %d satisfy the constraint", len(releases), len(candidates))

	if len(candidates) == 0 {
		err := zerr.With(domain.ErrNoMatchingVersion, "constraint", req.Specifiers.String())
		err = zerr.With(err, "releases", len(releases))
		span.RecordError(err)
		return result{releases: len(releases), err: err}
	}

	chosen := pick(candidates, opts.Strategy)
	span.SetAttribute(ports.AttrVersion, chosen.String())
	span.SetAttribute(ports.AttrCandidates, len(candidates))

	return result{
		resolved: domain.ResolvedPackage{
			Name:       req.Name,
			Constraint: req.Specifiers.String(),
			Version:    chosen,
			Candidates: len(candidates),
			Prerelease: chosen.IsPrerelease(),
		},
		releases: len(releases),
	}
}

// filter keeps the released versions the specifier set admits.
// Pre-releases stay out unless the set references one or the caller
// opted in.
func filter(set domain.SpecifierSet, releases []domain.Version, prereleases bool) []domain.Version {
	allowPre := prereleases || set.AllowsPrereleases()

	var out []domain.Version
	for _, v := range releases {
		if v.IsPrerelease() && !allowPre {
			continue
		}
		if set.Matches(v) {
			out = append(out, v)
		}
	}
	return out
}

// pick selects among candidates by strategy. The index does not
// promise ordered releases, so both strategies scan.
func pick(candidates []domain.Version, strategy domain.Strategy) domain.Version {
	chosen := candidates[0]
	for _, v := range candidates[1:] {
		if strategy == domain.StrategyLowest {
			if v.Less(chosen) {
				chosen = v
			}
			continue
		}
		if chosen.Less(v) {
			chosen = v
		}
	}
	return chosen
}
