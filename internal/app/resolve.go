package app

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jedib0t/go-pretty/v6/table"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.pindown.dev/pindown/internal/adapters/detector"
	"go.pindown.dev/pindown/internal/adapters/linear"
	"go.pindown.dev/pindown/internal/adapters/telemetry"
	"go.pindown.dev/pindown/internal/adapters/tui"
	"go.pindown.dev/pindown/internal/core/domain"
	"go.pindown.dev/pindown/internal/core/ports"
	"go.pindown.dev/pindown/internal/engine/resolver"
	"golang.org/x/sync/errgroup"
)

// ResolveOptions configuration for the Resolve method.
type ResolveOptions struct {
	Options
	Prereleases bool
	Strategy    string
}

// Resolve pins every manifest requirement against the package index and
// prints the chosen versions. The manifest must lint clean first.
func (a *App) Resolve(ctx context.Context, opts ResolveOptions) error {
	s, err := a.resolveSettings(opts)
	if err != nil {
		return err
	}

	m, err := a.loadLinted(s.ManifestPath)
	if err != nil {
		return err
	}

	resolution, err := a.resolveManifest(ctx, m, s, opts)
	if err != nil {
		return err
	}

	if opts.JSON {
		return a.printJSON(resolution)
	}
	a.printSummary(resolution)
	return nil
}

// resolveSettings layers the resolve-specific strategy flag on top of
// the shared overrides.
func (a *App) resolveSettings(opts ResolveOptions) (*domain.Settings, error) {
	s, err := a.settingsFor(opts.Options)
	if err != nil {
		return nil, err
	}
	if opts.Strategy != "" {
		s.Strategy = domain.Strategy(opts.Strategy)
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// resolveManifest runs the resolver engine with a live renderer: the
// renderer and the engine run concurrently, wired together through the
// OTel span bridge.
func (a *App) resolveManifest(ctx context.Context, m *domain.Manifest, s *domain.Settings, opts ResolveOptions) (domain.Resolution, error) {
	index, err := a.buildIndex(s)
	if err != nil {
		return domain.Resolution{}, err
	}

	renderer := a.newRenderer(ctx, opts)

	// Create a bridge that sends OTel spans to the renderer, and make
	// it the global provider's span processor so every span the engine
	// starts reaches the renderer.
	bridge := telemetry.NewBridge(renderer)
	setupOTel(bridge)

	// The tracer also gets the renderer directly so span writes can
	// stream through the batcher without waiting for span end.
	tracer := telemetry.NewOTelTracer("pindown").WithRenderer(renderer)
	defer func() {
		_ = tracer.Shutdown(ctx)
	}()

	engine := resolver.NewEngine(index, tracer)

	var resolution domain.Resolution
	g, ctx := errgroup.WithContext(ctx)

	// Renderer routine.
	g.Go(func() error {
		if err := renderer.Start(ctx); err != nil {
			return err
		}
		// Wait blocks until the renderer has terminated.
		return renderer.Wait()
	})

	// Resolver routine.
	g.Go(func() error {
		defer func() {
			if r := recover(); r != nil {
				fmt.Fprintf(a.stderr, "resolver panic: %v\n", r)
			}
			// The renderer stops when resolution finishes either way.
			_ = renderer.Stop()
		}()

		res, err := engine.Resolve(ctx, m, resolver.Options{
			Strategy:    s.Strategy,
			Prereleases: opts.Prereleases,
		})
		if err != nil {
			return err
		}
		resolution = res
		return nil
	})

	if err := g.Wait(); err != nil {
		return domain.Resolution{}, err
	}
	return resolution, nil
}

// newRenderer picks the renderer for this run. JSON output claims
// stdout, so progress falls back to linear rendering on stderr.
func (a *App) newRenderer(ctx context.Context, opts ResolveOptions) ports.Renderer {
	if opts.JSON {
		return linear.NewRenderer(a.stderr, a.stderr)
	}

	mode := detector.ResolveMode(detector.DetectEnvironment(), opts.OutputMode)
	if mode == detector.ModeTUI {
		model := tui.NewModel(a.stderr)
		if a.disableTick {
			model = model.WithDisableTick()
		}
		teaOpts := append([]tea.ProgramOption{tea.WithContext(ctx)}, a.teaOptions...)
		return tui.NewRenderer(model, teaOpts...)
	}
	return linear.NewRenderer(a.stdout, a.stderr)
}

// printSummary renders the resolution as a table.
func (a *App) printSummary(res domain.Resolution) {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateHeader = false

	tbl.AppendHeader(table.Row{"Package", "Pinned", "Constraint", "Candidates"})
	for _, p := range res.Packages {
		constraint := p.Constraint
		if constraint == "" {
			constraint = "*"
		}
		version := p.Version.String()
		if p.Prerelease {
			version += " (pre-release)"
		}
		tbl.AppendRow(table.Row{p.Name.String(), version, constraint, p.Candidates})
	}

	stats := res.Stats
	tbl.AppendFooter(table.Row{fmt.Sprintf("%d packages, %d releases considered in %v",
		stats.Packages, stats.Releases, stats.Duration.Round(time.Millisecond))})

	fmt.Fprintln(a.stdout, tbl.Render())
}

// setupOTel configures the OpenTelemetry SDK with the renderer bridge.
func setupOTel(bridge *telemetry.Bridge) {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(bridge),
	)
	otel.SetTracerProvider(tp)
}
