package settings_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.pindown.dev/pindown/internal/adapters/settings"
	"go.pindown.dev/pindown/internal/core/domain"
	"go.pindown.dev/pindown/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T) *settings.Loader {
	t.Helper()

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	return settings.NewLoader(log)
}

// clearEnv unsets every PINDOWN_* variable for the test's duration.
// t.Setenv snapshots the original value, so the ambient environment
// comes back after the test.
func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"PINDOWN_MANIFEST",
		"PINDOWN_INDEX_URL",
		"PINDOWN_INDEX_FILE",
		"PINDOWN_CACHE_DIR",
		"PINDOWN_STRATEGY",
		"PINDOWN_OFFLINE",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func writeSettingsFile(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.SettingsFileName), []byte(content), 0o644))
}

func TestLoader_Load_Defaults(t *testing.T) {
	clearEnv(t)

	loaded, err := newLoader(t).Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, domain.ManifestFileName, loaded.ManifestPath)
	assert.Equal(t, "https://pypi.org", loaded.IndexURL)
	assert.Empty(t, loaded.IndexFile)
	assert.Equal(t, domain.DefaultIndexCachePath(), loaded.CacheDir)
	assert.Equal(t, domain.StrategyHighest, loaded.Strategy)
	assert.False(t, loaded.Offline)
}

func TestLoader_Load_FileLayer(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	writeSettingsFile(t, dir, `manifest: deps/requirements.txt
index_url: https://mirror.internal
index_file: fixtures/index.json
cache_dir: /var/cache/pindown
strategy: lowest
offline: true
`)

	loaded, err := newLoader(t).Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "deps/requirements.txt", loaded.ManifestPath)
	assert.Equal(t, "https://mirror.internal", loaded.IndexURL)
	assert.Equal(t, "fixtures/index.json", loaded.IndexFile)
	assert.Equal(t, "/var/cache/pindown", loaded.CacheDir)
	assert.Equal(t, domain.StrategyLowest, loaded.Strategy)
	assert.True(t, loaded.Offline)
}

func TestLoader_Load_FileInParent(t *testing.T) {
	clearEnv(t)

	root := t.TempDir()
	writeSettingsFile(t, root, "strategy: lowest\n")

	nested := filepath.Join(root, "src", "notebooks")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	loaded, err := newLoader(t).Load(nested)
	require.NoError(t, err)
	assert.Equal(t, domain.StrategyLowest, loaded.Strategy)
}

func TestLoader_Load_EnvOverridesFile(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	writeSettingsFile(t, dir, `manifest: deps/requirements.txt
strategy: lowest
offline: false
`)

	t.Setenv("PINDOWN_STRATEGY", "highest")
	t.Setenv("PINDOWN_OFFLINE", "true")
	t.Setenv("PINDOWN_INDEX_URL", "https://mirror.internal")

	loaded, err := newLoader(t).Load(dir)
	require.NoError(t, err)

	// Environment wins where set, file values survive elsewhere.
	assert.Equal(t, domain.StrategyHighest, loaded.Strategy)
	assert.True(t, loaded.Offline)
	assert.Equal(t, "https://mirror.internal", loaded.IndexURL)
	assert.Equal(t, "deps/requirements.txt", loaded.ManifestPath)
}

func TestLoader_Load_InvalidStrategy(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	writeSettingsFile(t, dir, "strategy: newest\n")

	_, err := newLoader(t).Load(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSettingsInvalid)
}

func TestLoader_Load_MalformedFile(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	writeSettingsFile(t, dir, "\t{{not yaml")

	_, err := newLoader(t).Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrSettingsParseFailed.Error())
}

func TestLoader_Load_BadEnvBool(t *testing.T) {
	clearEnv(t)
	t.Setenv("PINDOWN_OFFLINE", "definitely")

	_, err := newLoader(t).Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrSettingsEnvParseFailed.Error())
}
