package pypi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.pindown.dev/pindown/internal/adapters/pypi"
	"go.pindown.dev/pindown/internal/core/domain"
)

// MockRoundTripper is a helper to mock http.Client behavior.
type MockRoundTripper struct {
	RoundTripFunc func(req *http.Request) *http.Response
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.RoundTripFunc(req), nil
}

func newMockClient(handler func(req *http.Request) *http.Response) *http.Client {
	return &http.Client{
		Transport: &MockRoundTripper{RoundTripFunc: handler},
	}
}

// releasesBody builds an index response whose releases map carries the
// given keys, mirroring the shape of the live JSON API.
func releasesBody(t *testing.T, keys ...string) []byte {
	t.Helper()

	releases := make(map[string][]string, len(keys))
	for _, key := range keys {
		releases[key] = []string{}
	}

	body, err := json.Marshal(map[string]any{"releases": releases})
	require.NoError(t, err)
	return body
}

func versionStrings(versions []domain.Version) []string {
	out := make([]string, 0, len(versions))
	for _, v := range versions {
		out = append(out, v.String())
	}
	return out
}

// cacheFile mirrors the on-disk cache entry format.
type cacheFile struct {
	Name      string    `json:"name"`
	Versions  []string  `json:"versions"`
	FetchedAt time.Time `json:"fetched_at"`
}

// onlyCacheFile returns the path of the single cache entry in dir.
func onlyCacheFile(t *testing.T, dir string) string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	return filepath.Join(dir, entries[0].Name())
}

// ageCacheFile rewrites the entry's fetch time so the next lookup sees
// it as expired.
func ageCacheFile(t *testing.T, path string, age time.Duration) {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry cacheFile
	require.NoError(t, json.Unmarshal(data, &entry))
	entry.FetchedAt = time.Now().Add(-age)

	data, err = json.Marshal(entry)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestClient_Releases(t *testing.T) {
	tmpDir := t.TempDir()
	seaborn := domain.NewPackageName("seaborn")

	t.Run("Success", func(t *testing.T) {
		// "2004d" is the kind of pre-scheme key old projects still
		// carry; it must be skipped, not fail the lookup.
		body := releasesBody(t, "0.11.0", "0.9.0", "0.10.1", "0.11.2", "0.12.0", "2004d")

		client := newMockClient(func(req *http.Request) *http.Response {
			if req.URL.String() == "https://pypi.org/pypi/seaborn/json" {
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBuffer(body)),
					Header:     make(http.Header),
				}
			}
			return &http.Response{
				StatusCode: http.StatusNotFound,
				Body:       io.NopCloser(bytes.NewBufferString("")),
			}
		})

		index, err := pypi.NewClientWithHTTP(pypi.DefaultBaseURL, filepath.Join(tmpDir, "success"), false, client)
		require.NoError(t, err)

		versions, err := index.Releases(context.Background(), seaborn)
		require.NoError(t, err)
		assert.Equal(t, []string{"0.9.0", "0.10.1", "0.11.0", "0.11.2", "0.12.0"}, versionStrings(versions))
	})

	t.Run("NotFound", func(t *testing.T) {
		client := newMockClient(func(_ *http.Request) *http.Response {
			return &http.Response{
				StatusCode: http.StatusNotFound,
				Body:       io.NopCloser(bytes.NewBufferString("")),
			}
		})

		index, err := pypi.NewClientWithHTTP(pypi.DefaultBaseURL, filepath.Join(tmpDir, "404"), false, client)
		require.NoError(t, err)

		_, err = index.Releases(context.Background(), domain.NewPackageName("no-such-project"))
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrPackageNotFound)
	})

	t.Run("APIError", func(t *testing.T) {
		client := newMockClient(func(_ *http.Request) *http.Response {
			return &http.Response{
				StatusCode: http.StatusInternalServerError,
				Body:       io.NopCloser(bytes.NewBufferString("Internal Server Error")),
			}
		})

		index, err := pypi.NewClientWithHTTP(pypi.DefaultBaseURL, filepath.Join(tmpDir, "500"), false, client)
		require.NoError(t, err)

		_, err = index.Releases(context.Background(), seaborn)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrIndexRequestFailed)
	})

	t.Run("ParseError", func(t *testing.T) {
		client := newMockClient(func(_ *http.Request) *http.Response {
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBufferString("<html>not json</html>")),
			}
		})

		index, err := pypi.NewClientWithHTTP(pypi.DefaultBaseURL, filepath.Join(tmpDir, "parse"), false, client)
		require.NoError(t, err)

		_, err = index.Releases(context.Background(), seaborn)
		require.Error(t, err)
		// The parse failure arrives wrapped, so check the message.
		assert.Contains(t, err.Error(), domain.ErrIndexParseFailed.Error())
	})

	t.Run("CacheHit", func(t *testing.T) {
		cacheDir := filepath.Join(tmpDir, "cache_hit")

		setupClient := newMockClient(func(_ *http.Request) *http.Response {
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBuffer(releasesBody(t, "0.11.0", "0.11.2"))),
			}
		})

		warm, err := pypi.NewClientWithHTTP(pypi.DefaultBaseURL, cacheDir, false, setupClient)
		require.NoError(t, err)
		_, err = warm.Releases(context.Background(), seaborn)
		require.NoError(t, err)

		// Now use a panic client to ensure no API call is made
		panicClient := newMockClient(func(_ *http.Request) *http.Response {
			panic("HTTP client should not be called on cache hit")
		})

		index, err := pypi.NewClientWithHTTP(pypi.DefaultBaseURL, cacheDir, false, panicClient)
		require.NoError(t, err)

		versions, err := index.Releases(context.Background(), seaborn)
		require.NoError(t, err)
		assert.Equal(t, []string{"0.11.0", "0.11.2"}, versionStrings(versions))
	})

	t.Run("CacheExpiry", func(t *testing.T) {
		cacheDir := filepath.Join(tmpDir, "cache_expiry")

		warm, err := pypi.NewClientWithHTTP(pypi.DefaultBaseURL, cacheDir, false, newMockClient(func(_ *http.Request) *http.Response {
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBuffer(releasesBody(t, "0.11.0"))),
			}
		}))
		require.NoError(t, err)
		_, err = warm.Releases(context.Background(), seaborn)
		require.NoError(t, err)

		ageCacheFile(t, onlyCacheFile(t, cacheDir), 25*time.Hour)

		calls := 0
		index, err := pypi.NewClientWithHTTP(pypi.DefaultBaseURL, cacheDir, false, newMockClient(func(_ *http.Request) *http.Response {
			calls++
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBuffer(releasesBody(t, "0.11.0", "0.12.0"))),
			}
		}))
		require.NoError(t, err)

		versions, err := index.Releases(context.Background(), seaborn)
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
		assert.Equal(t, []string{"0.11.0", "0.12.0"}, versionStrings(versions))
	})

	t.Run("CorruptCacheRefetches", func(t *testing.T) {
		cacheDir := filepath.Join(tmpDir, "cache_corrupt")

		warm, err := pypi.NewClientWithHTTP(pypi.DefaultBaseURL, cacheDir, false, newMockClient(func(_ *http.Request) *http.Response {
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBuffer(releasesBody(t, "0.11.0"))),
			}
		}))
		require.NoError(t, err)
		_, err = warm.Releases(context.Background(), seaborn)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(onlyCacheFile(t, cacheDir), []byte("garbage"), 0o644))

		calls := 0
		index, err := pypi.NewClientWithHTTP(pypi.DefaultBaseURL, cacheDir, false, newMockClient(func(_ *http.Request) *http.Response {
			calls++
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBuffer(releasesBody(t, "0.11.2"))),
			}
		}))
		require.NoError(t, err)

		versions, err := index.Releases(context.Background(), seaborn)
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
		assert.Equal(t, []string{"0.11.2"}, versionStrings(versions))
	})

	t.Run("OfflineServesStaleCache", func(t *testing.T) {
		cacheDir := filepath.Join(tmpDir, "offline_hit")

		warm, err := pypi.NewClientWithHTTP(pypi.DefaultBaseURL, cacheDir, false, newMockClient(func(_ *http.Request) *http.Response {
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBuffer(releasesBody(t, "0.11.0", "0.11.2"))),
			}
		}))
		require.NoError(t, err)
		_, err = warm.Releases(context.Background(), seaborn)
		require.NoError(t, err)

		// Expired entries are still authoritative when offline.
		ageCacheFile(t, onlyCacheFile(t, cacheDir), 25*time.Hour)

		panicClient := newMockClient(func(_ *http.Request) *http.Response {
			panic("HTTP client should not be called when offline")
		})

		index, err := pypi.NewClientWithHTTP(pypi.DefaultBaseURL, cacheDir, true, panicClient)
		require.NoError(t, err)

		versions, err := index.Releases(context.Background(), seaborn)
		require.NoError(t, err)
		assert.Equal(t, []string{"0.11.0", "0.11.2"}, versionStrings(versions))
	})

	t.Run("OfflineMiss", func(t *testing.T) {
		panicClient := newMockClient(func(_ *http.Request) *http.Response {
			panic("HTTP client should not be called when offline")
		})

		index, err := pypi.NewClientWithHTTP(pypi.DefaultBaseURL, filepath.Join(tmpDir, "offline_miss"), true, panicClient)
		require.NoError(t, err)

		_, err = index.Releases(context.Background(), seaborn)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})
}
