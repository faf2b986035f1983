package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.pindown.dev/pindown/internal/adapters/reqfile"
	"go.pindown.dev/pindown/internal/app"
	"go.pindown.dev/pindown/internal/core/domain"
	"go.pindown.dev/pindown/internal/core/ports"
	"go.pindown.dev/pindown/internal/core/ports/mocks"
	"go.pindown.dev/pindown/internal/engine/lint"
	"go.uber.org/mock/gomock"
)

// testApp bundles an App wired to mocks with captured output streams.
type testApp struct {
	app       *app.App
	manifests *mocks.MockManifestStore
	locks     *mocks.MockLockStore
	hasher    *mocks.MockManifestHasher
	settings  *mocks.MockSettingsLoader
	watcher   *mocks.MockWatcher
	runner    *mocks.MockRunner
	logger    *mocks.MockLogger
	index     *mocks.MockPackageIndex
	stdout    *bytes.Buffer
	stderr    *bytes.Buffer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	ctrl := gomock.NewController(t)

	ta := &testApp{
		manifests: mocks.NewMockManifestStore(ctrl),
		locks:     mocks.NewMockLockStore(ctrl),
		hasher:    mocks.NewMockManifestHasher(ctrl),
		settings:  mocks.NewMockSettingsLoader(ctrl),
		watcher:   mocks.NewMockWatcher(ctrl),
		runner:    mocks.NewMockRunner(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
		index:     mocks.NewMockPackageIndex(ctrl),
		stdout:    new(bytes.Buffer),
		stderr:    new(bytes.Buffer),
	}

	ta.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	ta.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	ta.logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	ta.logger.EXPECT().Error(gomock.Any()).AnyTimes()

	ta.app = app.New(ta.manifests, ta.locks, ta.hasher, ta.settings, ta.watcher, ta.runner, ta.logger).
		WithOutput(ta.stdout, ta.stderr).
		WithIndex(ta.index).
		WithTeaOptions(
			tea.WithInput(strings.NewReader("")),
			tea.WithOutput(io.Discard),
			tea.WithoutSignalHandler(),
			tea.WithoutRenderer(),
		)
	return ta
}

func testSettings() *domain.Settings {
	return &domain.Settings{
		ManifestPath: "requirements.txt",
		IndexURL:     "https://pypi.org",
		CacheDir:     filepath.Join(".pindown", "cache", "index"),
		Strategy:     domain.StrategyHighest,
	}
}

func (ta *testApp) expectSettings(s *domain.Settings) {
	ta.settings.EXPECT().Load(".").Return(s, nil)
}

// appendReq parses a declaration and appends it with an inline comment
// and a line number following the statement position.
func appendReq(t *testing.T, m *domain.Manifest, line, comment string) {
	t.Helper()
	req, err := domain.ParseRequirement(line)
	require.NoError(t, err)
	req.Comment = comment
	req.Line = len(m.Statements()) + 1
	require.NoError(t, m.AppendRequirement(req))
}

// testManifest is the course scenario: a plotting stack with pandas and
// altair held back for seaborn's sake.
func testManifest(t *testing.T) *domain.Manifest {
	t.Helper()
	m := domain.NewManifest("requirements.txt", nil)
	m.AppendComment("needed by analysis scripts")
	appendReq(t, m, "seaborn==0.11.2", "pin for plotting API")
	appendReq(t, m, "pandas<2", "seaborn breaks on 2.x")
	appendReq(t, m, "altair<5", "")
	return m
}

func version(t *testing.T, s string) domain.Version {
	t.Helper()
	v, err := domain.ParseVersion(s)
	require.NoError(t, err)
	return v
}

func versions(t *testing.T, vs ...string) []domain.Version {
	t.Helper()
	out := make([]domain.Version, len(vs))
	for i, s := range vs {
		out[i] = version(t, s)
	}
	return out
}

func TestApp_Lint_CleanManifest(t *testing.T) {
	ta := newTestApp(t)
	ta.expectSettings(testSettings())
	ta.manifests.EXPECT().LoadLenient("requirements.txt").Return(testManifest(t), nil, nil)

	err := ta.app.Lint(context.Background(), app.LintOptions{})

	require.NoError(t, err)
	assert.Contains(t, ta.stdout.String(), "requirements.txt: ok")
}

func TestApp_Lint_ReportsErrors(t *testing.T) {
	ta := newTestApp(t)
	ta.expectSettings(testSettings())

	issues := []domain.ParseIssue{
		{Line: 3, Raw: "flask @==1", Err: domain.ErrInvalidSpecifier},
	}
	ta.manifests.EXPECT().LoadLenient("requirements.txt").Return(testManifest(t), issues, nil)

	err := ta.app.Lint(context.Background(), app.LintOptions{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLintFailed)
	assert.Contains(t, ta.stdout.String(), "bad-specifier")
	assert.Contains(t, ta.stdout.String(), "requirements.txt:3")
}

func TestApp_Lint_JSON(t *testing.T) {
	ta := newTestApp(t)
	ta.expectSettings(testSettings())

	issues := []domain.ParseIssue{
		{Line: 3, Raw: "==1", Err: domain.ErrEmptyPackageName},
	}
	ta.manifests.EXPECT().LoadLenient("requirements.txt").Return(testManifest(t), issues, nil)

	err := ta.app.Lint(context.Background(), app.LintOptions{
		Options: app.Options{JSON: true},
	})

	require.Error(t, err)

	var report lint.Report
	require.NoError(t, json.Unmarshal(ta.stdout.Bytes(), &report))
	require.Len(t, report.Findings, 1)
	assert.Equal(t, lint.RuleEmptyName, report.Findings[0].Rule)
}

func TestApp_Fmt_PrintsCanonical(t *testing.T) {
	ta := newTestApp(t)
	ta.expectSettings(testSettings())

	m := testManifest(t)
	canonical := []byte("seaborn==0.11.2  # pin for plotting API\n")
	ta.manifests.EXPECT().Load("requirements.txt").Return(m, nil)
	ta.manifests.EXPECT().RenderCanonical(m).Return(canonical)
	ta.manifests.EXPECT().Render(m).Return([]byte("seaborn == 0.11.2 # pin for plotting API\n"))

	err := ta.app.Fmt(context.Background(), app.FmtOptions{})

	require.NoError(t, err)
	assert.Equal(t, string(canonical), ta.stdout.String())
}

func TestApp_Fmt_CheckReportsDrift(t *testing.T) {
	ta := newTestApp(t)
	ta.expectSettings(testSettings())

	m := testManifest(t)
	ta.manifests.EXPECT().Load("requirements.txt").Return(m, nil)
	ta.manifests.EXPECT().RenderCanonical(m).Return([]byte("pandas<2\n"))
	ta.manifests.EXPECT().Render(m).Return([]byte("pandas < 2\n"))

	err := ta.app.Fmt(context.Background(), app.FmtOptions{Check: true})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotCanonical)
	assert.Contains(t, ta.stdout.String(), "requirements.txt")
}

func TestApp_Fmt_WriteRewrites(t *testing.T) {
	ta := newTestApp(t)
	ta.expectSettings(testSettings())

	m := testManifest(t)
	canonical := []byte("pandas<2\n")
	ta.manifests.EXPECT().Load("requirements.txt").Return(m, nil)
	ta.manifests.EXPECT().RenderCanonical(m).Return(canonical)
	ta.manifests.EXPECT().Render(m).Return([]byte("pandas < 2\n"))
	ta.manifests.EXPECT().Write("requirements.txt", canonical).Return(nil)

	err := ta.app.Fmt(context.Background(), app.FmtOptions{Write: true})

	require.NoError(t, err)
}

func TestApp_Fmt_WriteSkipsCanonicalFile(t *testing.T) {
	ta := newTestApp(t)
	ta.expectSettings(testSettings())

	m := testManifest(t)
	canonical := []byte("pandas<2\n")
	ta.manifests.EXPECT().Load("requirements.txt").Return(m, nil)
	ta.manifests.EXPECT().RenderCanonical(m).Return(canonical)
	ta.manifests.EXPECT().Render(m).Return(canonical)

	// No Write expectation: rewriting an already canonical file would
	// fail the controller.
	err := ta.app.Fmt(context.Background(), app.FmtOptions{Write: true})

	require.NoError(t, err)
}

func TestApp_Diff(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	ta := newTestApp(t)

	before := domain.NewManifest("a.txt", nil)
	appendReq(t, before, "seaborn==0.11.2", "")
	appendReq(t, before, "pandas<2", "")

	after := domain.NewManifest("b.txt", nil)
	appendReq(t, after, "seaborn==0.11.2", "")
	appendReq(t, after, "pandas<3", "")
	appendReq(t, after, "altair<5", "")

	ta.manifests.EXPECT().Load("a.txt").Return(before, nil)
	ta.manifests.EXPECT().Load("b.txt").Return(after, nil)

	err := ta.app.Diff(context.Background(), app.DiffOptions{Before: "a.txt", After: "b.txt"})

	require.NoError(t, err)
	out := ta.stdout.String()
	assert.Contains(t, out, "+ altair<5")
	assert.Contains(t, out, "~ pandas<2 -> pandas<3")
	assert.NotContains(t, out, "seaborn")
}

func TestApp_Diff_ExitCode(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	ta := newTestApp(t)

	before := domain.NewManifest("a.txt", nil)
	appendReq(t, before, "pandas<2", "")
	after := domain.NewManifest("b.txt", nil)

	ta.manifests.EXPECT().Load("a.txt").Return(before, nil)
	ta.manifests.EXPECT().Load("b.txt").Return(after, nil)

	err := ta.app.Diff(context.Background(), app.DiffOptions{
		Before:   "a.txt",
		After:    "b.txt",
		ExitCode: true,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrManifestsDiffer)
	assert.Contains(t, ta.stdout.String(), "- pandas<2")
}

func TestApp_Diff_IgnoresCommentChanges(t *testing.T) {
	ta := newTestApp(t)

	before := domain.NewManifest("a.txt", nil)
	appendReq(t, before, "pandas<2", "old comment")
	after := domain.NewManifest("b.txt", nil)
	after.AppendComment("moved comment")
	appendReq(t, after, "pandas<2", "")

	ta.manifests.EXPECT().Load("a.txt").Return(before, nil)
	ta.manifests.EXPECT().Load("b.txt").Return(after, nil)

	err := ta.app.Diff(context.Background(), app.DiffOptions{
		Before:   "a.txt",
		After:    "b.txt",
		ExitCode: true,
	})

	require.NoError(t, err)
	assert.Empty(t, ta.stdout.String())
}

func TestApp_Why(t *testing.T) {
	ta := newTestApp(t)
	ta.expectSettings(testSettings())
	ta.manifests.EXPECT().Load("requirements.txt").Return(testManifest(t), nil)

	err := ta.app.Why(context.Background(), app.WhyOptions{Packages: []string{"seaborn", "altair"}})

	require.NoError(t, err)
	out := ta.stdout.String()
	assert.Contains(t, out, "seaborn==0.11.2 (requirements.txt:2)")
	assert.Contains(t, out, "# needed by analysis scripts")
	assert.Contains(t, out, "# pin for plotting API")
	assert.Contains(t, out, "(no justification recorded)")
}

func TestApp_Why_UnknownPackage(t *testing.T) {
	ta := newTestApp(t)
	ta.expectSettings(testSettings())
	ta.manifests.EXPECT().Load("requirements.txt").Return(testManifest(t), nil)

	err := ta.app.Why(context.Background(), app.WhyOptions{Packages: []string{"requests"}})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPackageNotFound)
}

func TestApp_Verify_Ok(t *testing.T) {
	ta := newTestApp(t)
	ta.expectSettings(testSettings())

	m := testManifest(t)
	lock := domain.NewLockfile("h1", time.Now(), []domain.Pin{
		{Name: domain.NewPackageName("seaborn"), Version: version(t, "0.11.2"), Constraint: "==0.11.2"},
		{Name: domain.NewPackageName("pandas"), Version: version(t, "1.5.3"), Constraint: "<2"},
		{Name: domain.NewPackageName("altair"), Version: version(t, "4.2.2"), Constraint: "<5"},
	})

	ta.manifests.EXPECT().Load("requirements.txt").Return(m, nil)
	ta.locks.EXPECT().Read("pindown.lock").Return(lock, nil)
	ta.hasher.EXPECT().Hash(m).Return("h1", nil)

	err := ta.app.Verify(context.Background(), app.VerifyOptions{})

	require.NoError(t, err)
	assert.Contains(t, ta.stdout.String(), "ok: 3 pins verified")
}

func TestApp_Verify_UnsatisfiedPin(t *testing.T) {
	ta := newTestApp(t)
	ta.expectSettings(testSettings())

	m := testManifest(t)
	lock := domain.NewLockfile("h1", time.Now(), []domain.Pin{
		{Name: domain.NewPackageName("seaborn"), Version: version(t, "0.11.2")},
		{Name: domain.NewPackageName("pandas"), Version: version(t, "2.1.0")},
		{Name: domain.NewPackageName("altair"), Version: version(t, "4.2.2")},
	})

	ta.manifests.EXPECT().Load("requirements.txt").Return(m, nil)
	ta.locks.EXPECT().Read("pindown.lock").Return(lock, nil)
	ta.hasher.EXPECT().Hash(m).Return("h1", nil)

	err := ta.app.Verify(context.Background(), app.VerifyOptions{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLockUnsatisfied)
	assert.Contains(t, ta.stdout.String(), "unsatisfied pin: pandas 2.1.0 violates <2")
}

func TestApp_Verify_MissingPin(t *testing.T) {
	ta := newTestApp(t)
	ta.expectSettings(testSettings())

	m := testManifest(t)
	lock := domain.NewLockfile("h1", time.Now(), []domain.Pin{
		{Name: domain.NewPackageName("seaborn"), Version: version(t, "0.11.2")},
		{Name: domain.NewPackageName("pandas"), Version: version(t, "1.5.3")},
	})

	ta.manifests.EXPECT().Load("requirements.txt").Return(m, nil)
	ta.locks.EXPECT().Read("pindown.lock").Return(lock, nil)
	ta.hasher.EXPECT().Hash(m).Return("h1", nil)

	err := ta.app.Verify(context.Background(), app.VerifyOptions{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLockIncomplete)
	assert.Contains(t, ta.stdout.String(), "missing pin: altair (<5)")
}

func TestApp_Verify_OrphanAndStaleHashAreWarnings(t *testing.T) {
	ta := newTestApp(t)
	ta.expectSettings(testSettings())

	m := testManifest(t)
	lock := domain.NewLockfile("h1", time.Now(), []domain.Pin{
		{Name: domain.NewPackageName("seaborn"), Version: version(t, "0.11.2")},
		{Name: domain.NewPackageName("pandas"), Version: version(t, "1.5.3")},
		{Name: domain.NewPackageName("altair"), Version: version(t, "4.2.2")},
		{Name: domain.NewPackageName("requests"), Version: version(t, "2.31.0")},
	})

	ta.manifests.EXPECT().Load("requirements.txt").Return(m, nil)
	ta.locks.EXPECT().Read("pindown.lock").Return(lock, nil)
	ta.hasher.EXPECT().Hash(m).Return("h2", nil)

	err := ta.app.Verify(context.Background(), app.VerifyOptions{})

	require.NoError(t, err)
	out := ta.stdout.String()
	assert.Contains(t, out, "orphan pin: requests 2.31.0")
	assert.Contains(t, out, "ok: 4 pins verified")
}

func TestApp_Resolve_Scenario(t *testing.T) {
	ta := newTestApp(t)
	ta.expectSettings(testSettings())
	ta.manifests.EXPECT().LoadLenient("requirements.txt").Return(testManifest(t), nil, nil)

	ta.index.EXPECT().Releases(gomock.Any(), domain.NewPackageName("seaborn")).
		Return(versions(t, "0.11.0", "0.11.2", "0.12.1"), nil)
	ta.index.EXPECT().Releases(gomock.Any(), domain.NewPackageName("pandas")).
		Return(versions(t, "1.3.5", "1.5.3", "2.1.0"), nil)
	ta.index.EXPECT().Releases(gomock.Any(), domain.NewPackageName("altair")).
		Return(versions(t, "4.1.0", "4.2.2", "5.0.1"), nil)

	err := ta.app.Resolve(context.Background(), app.ResolveOptions{})

	require.NoError(t, err)
	out := ta.stdout.String()
	assert.Contains(t, out, "0.11.2")
	assert.Contains(t, out, "1.5.3")
	assert.Contains(t, out, "4.2.2")
	assert.NotContains(t, out, "2.1.0")
	assert.Contains(t, ta.stderr.String(), "Resolving 3 package(s)")
}

func TestApp_Resolve_JSON(t *testing.T) {
	ta := newTestApp(t)
	ta.expectSettings(testSettings())
	ta.manifests.EXPECT().LoadLenient("requirements.txt").Return(testManifest(t), nil, nil)

	ta.index.EXPECT().Releases(gomock.Any(), domain.NewPackageName("seaborn")).
		Return(versions(t, "0.11.2"), nil)
	ta.index.EXPECT().Releases(gomock.Any(), domain.NewPackageName("pandas")).
		Return(versions(t, "1.5.3"), nil)
	ta.index.EXPECT().Releases(gomock.Any(), domain.NewPackageName("altair")).
		Return(versions(t, "4.2.2"), nil)

	err := ta.app.Resolve(context.Background(), app.ResolveOptions{
		Options: app.Options{JSON: true},
	})

	require.NoError(t, err)

	var res domain.Resolution
	require.NoError(t, json.Unmarshal(ta.stdout.Bytes(), &res))
	require.Len(t, res.Packages, 3)
	assert.Equal(t, "altair", res.Packages[0].Name.String())
	assert.Equal(t, "4.2.2", res.Packages[0].Version.String())
}

func TestApp_Resolve_LintGate(t *testing.T) {
	ta := newTestApp(t)
	ta.expectSettings(testSettings())

	issues := []domain.ParseIssue{
		{Line: 1, Raw: "???", Err: domain.ErrInvalidPackageName},
	}
	ta.manifests.EXPECT().LoadLenient("requirements.txt").Return(testManifest(t), issues, nil)

	// No Releases expectation: the gate must stop before any fetch.
	err := ta.app.Resolve(context.Background(), app.ResolveOptions{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLintFailed)
	assert.Contains(t, ta.stderr.String(), "invalid-name")
}

func TestApp_Resolve_FailureNamesPackage(t *testing.T) {
	ta := newTestApp(t)
	ta.expectSettings(testSettings())
	ta.manifests.EXPECT().LoadLenient("requirements.txt").Return(testManifest(t), nil, nil)

	ta.index.EXPECT().Releases(gomock.Any(), domain.NewPackageName("seaborn")).
		Return(versions(t, "0.11.2"), nil)
	ta.index.EXPECT().Releases(gomock.Any(), domain.NewPackageName("pandas")).
		Return(versions(t, "2.1.0"), nil)
	ta.index.EXPECT().Releases(gomock.Any(), domain.NewPackageName("altair")).
		Return(versions(t, "4.2.2"), nil)

	err := ta.app.Resolve(context.Background(), app.ResolveOptions{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoMatchingVersion)
	assert.Contains(t, ta.stderr.String(), "[pandas]")
	assert.Contains(t, ta.stderr.String(), "failed")
}

func TestApp_Lock_WritesLockfile(t *testing.T) {
	ta := newTestApp(t)
	ta.expectSettings(testSettings())

	m := testManifest(t)
	ta.manifests.EXPECT().LoadLenient("requirements.txt").Return(m, nil, nil)

	ta.index.EXPECT().Releases(gomock.Any(), domain.NewPackageName("seaborn")).
		Return(versions(t, "0.11.2"), nil)
	ta.index.EXPECT().Releases(gomock.Any(), domain.NewPackageName("pandas")).
		Return(versions(t, "1.5.3"), nil)
	ta.index.EXPECT().Releases(gomock.Any(), domain.NewPackageName("altair")).
		Return(versions(t, "4.2.2"), nil)

	ta.hasher.EXPECT().Hash(m).Return("f00", nil)

	var written domain.Lockfile
	ta.locks.EXPECT().Write("pindown.lock", gomock.Any()).
		DoAndReturn(func(_ string, lock domain.Lockfile) error {
			written = lock
			return nil
		})

	err := ta.app.Lock(context.Background(), app.LockOptions{})

	require.NoError(t, err)
	assert.Equal(t, "f00", written.ManifestHash)
	assert.Equal(t, domain.LockfileVersion, written.Version)
	require.Len(t, written.Pins, 3)
	assert.Equal(t, "altair", written.Pins[0].Name.String())

	pin, ok := written.Pin(domain.NewPackageName("pandas"))
	require.True(t, ok)
	assert.Equal(t, "1.5.3", pin.Version.String())
}

func TestApp_Lock_EmitWritesPinnedRequirements(t *testing.T) {
	ta := newTestApp(t)
	ta.expectSettings(testSettings())

	m := testManifest(t)
	ta.manifests.EXPECT().LoadLenient("requirements.txt").Return(m, nil, nil)

	ta.index.EXPECT().Releases(gomock.Any(), domain.NewPackageName("seaborn")).
		Return(versions(t, "0.11.2"), nil)
	ta.index.EXPECT().Releases(gomock.Any(), domain.NewPackageName("pandas")).
		Return(versions(t, "1.5.3"), nil)
	ta.index.EXPECT().Releases(gomock.Any(), domain.NewPackageName("altair")).
		Return(versions(t, "4.2.2"), nil)

	ta.hasher.EXPECT().Hash(m).Return("f00", nil)
	ta.locks.EXPECT().Write("pindown.lock", gomock.Any()).Return(nil)

	// Rendering the emitted manifest goes through the real writer.
	real := reqfile.NewStore(ta.logger)
	ta.manifests.EXPECT().RenderCanonical(gomock.Any()).DoAndReturn(real.RenderCanonical)

	var emitted []byte
	ta.manifests.EXPECT().Write("pinned.txt", gomock.Any()).
		DoAndReturn(func(_ string, content []byte) error {
			emitted = content
			return nil
		})

	err := ta.app.Lock(context.Background(), app.LockOptions{Emit: "pinned.txt"})

	require.NoError(t, err)
	out := string(emitted)
	assert.Contains(t, out, "# needed by analysis scripts")
	assert.Contains(t, out, "seaborn==0.11.2  # pin for plotting API")
	assert.Contains(t, out, "pandas==1.5.3  # seaborn breaks on 2.x")
	assert.Contains(t, out, "altair==4.2.2")
	assert.NotContains(t, out, "altair<5")
}

func TestApp_Watch_RunsHookOnChange(t *testing.T) {
	ta := newTestApp(t)
	ta.expectSettings(testSettings())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ta.watcher.EXPECT().Start(gomock.Any(), "requirements.txt").Return(nil)
	ta.watcher.EXPECT().Stop().Return(nil).AnyTimes()

	var events iter.Seq[ports.WatchEvent] = func(yield func(ports.WatchEvent) bool) {
		yield(ports.WatchEvent{Path: "/work/requirements.txt", Operation: ports.OpWrite})
	}
	ta.watcher.EXPECT().Events().Return(events)

	// One pass at startup, one per event.
	ta.manifests.EXPECT().LoadLenient("requirements.txt").Return(testManifest(t), nil, nil).Times(2)

	hook := []string{"pytest", "-q"}
	env := map[string]string{"PINDOWN_MANIFEST": "requirements.txt"}
	ta.runner.EXPECT().Run(gomock.Any(), hook, env).Return(nil).Times(2)

	err := ta.app.Watch(ctx, app.WatchOptions{Run: hook})

	require.NoError(t, err)
}

func TestApp_Watch_SkipsHookOnLintErrors(t *testing.T) {
	ta := newTestApp(t)
	ta.expectSettings(testSettings())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ta.watcher.EXPECT().Start(gomock.Any(), "requirements.txt").Return(nil)
	ta.watcher.EXPECT().Stop().Return(nil).AnyTimes()

	var events iter.Seq[ports.WatchEvent] = func(yield func(ports.WatchEvent) bool) {}
	ta.watcher.EXPECT().Events().Return(events)

	issues := []domain.ParseIssue{
		{Line: 1, Raw: "???", Err: domain.ErrInvalidPackageName},
	}
	ta.manifests.EXPECT().LoadLenient("requirements.txt").Return(testManifest(t), issues, nil)

	// No runner expectation: the hook must not fire on a dirty manifest.
	err := ta.app.Watch(ctx, app.WatchOptions{Run: []string{"pytest"}})

	require.NoError(t, err)
}

func TestApp_Clean(t *testing.T) {
	ta := newTestApp(t)

	tmp := t.TempDir()
	cacheDir := filepath.Join(tmp, "cache")
	require.NoError(t, os.MkdirAll(cacheDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(cacheDir, "seaborn.json"), bytes.Repeat([]byte("x"), 2048), 0o600))

	manifestPath := filepath.Join(tmp, "requirements.txt")
	lockPath := filepath.Join(tmp, "pindown.lock")
	require.NoError(t, os.WriteFile(lockPath, []byte("{}"), 0o600))

	s := testSettings()
	s.ManifestPath = manifestPath
	s.CacheDir = cacheDir
	ta.expectSettings(s)

	err := ta.app.Clean(context.Background(), app.CleanOptions{Lock: true})

	require.NoError(t, err)
	assert.NoDirExists(t, cacheDir)
	assert.NoFileExists(t, lockPath)
}

func TestApp_Clean_MissingTargetsAreQuiet(t *testing.T) {
	ta := newTestApp(t)

	tmp := t.TempDir()
	s := testSettings()
	s.ManifestPath = filepath.Join(tmp, "requirements.txt")
	s.CacheDir = filepath.Join(tmp, "cache")
	ta.expectSettings(s)

	err := ta.app.Clean(context.Background(), app.CleanOptions{Lock: true})

	require.NoError(t, err)
}
