// Package pypi implements the PackageIndex port against a PyPI-compatible JSON API.
package pypi

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.pindown.dev/pindown/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	// DefaultBaseURL is the public index queried when no index URL is configured.
	DefaultBaseURL = "https://pypi.org"

	httpClientTimeout = 30 * time.Second

	// cacheTTL bounds how long a cached release list is served without
	// consulting the index again. Offline mode serves the cache
	// regardless of age.
	cacheTTL = 24 * time.Hour
)

// Client implements ports.PackageIndex using a PyPI-compatible JSON API
// with a local file cache of release lists.
type Client struct {
	baseURL    string
	cacheDir   string
	offline    bool
	httpClient *http.Client
}

// NewClient creates a package index client. The JSON API is expected at
// {baseURL}/pypi/{name}/json. cacheDir holds one cache file per
// package; offline restricts lookups to that cache.
func NewClient(baseURL, cacheDir string, offline bool) (*Client, error) {
	return newClientWithHTTP(baseURL, cacheDir, offline, &http.Client{
		Timeout: httpClientTimeout,
	})
}

// newClientWithHTTP creates a Client with a custom http client (used for testing).
func newClientWithHTTP(baseURL, cacheDir string, offline bool, httpClient *http.Client) (*Client, error) {
	cleanDir := filepath.Clean(cacheDir)
	if err := os.MkdirAll(cleanDir, domain.DirPerm); err != nil {
		return nil, zerr.Wrap(err, domain.ErrIndexCacheCreateFailed.Error())
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		cacheDir:   cleanDir,
		offline:    offline,
		httpClient: httpClient,
	}, nil
}

// Releases returns every published version of the package in ascending
// order. Cached responses younger than the TTL are served without a
// network round trip; offline mode serves any cached response and
// reports a miss otherwise. Release keys that do not parse as versions
// are skipped, the index carries legacy entries that predate the
// version scheme.
func (c *Client) Releases(ctx context.Context, name domain.PackageName) ([]domain.Version, error) {
	cachePath := c.cachePath(name)

	entry, cacheErr := c.loadFromCache(cachePath)
	if cacheErr == nil && (c.offline || time.Since(entry.FetchedAt) < cacheTTL) {
		return parseReleaseKeys(entry.Versions), nil
	}
	if c.offline {
		return nil, zerr.With(domain.ErrCacheMiss, "package", name.String())
	}

	keys, err := c.queryIndex(ctx, name)
	if err != nil {
		return nil, err
	}

	// A failed cache write must not fail the lookup.
	_ = c.saveToCache(cachePath, name, keys)

	return parseReleaseKeys(keys), nil
}

// cacheEntry is the on-disk cache format: the release keys exactly as
// the index returned them, plus the fetch time for TTL checks.
type cacheEntry struct {
	Name      string    `json:"name"`
	Versions  []string  `json:"versions"`
	FetchedAt time.Time `json:"fetched_at"`
}

// cachePath returns the cache file for a package.
func (c *Client) cachePath(name domain.PackageName) string {
	hash := sha256.Sum256([]byte(name.String()))
	return filepath.Join(c.cacheDir, hex.EncodeToString(hash[:])+".json")
}

// loadFromCache attempts to load a cached release list.
func (c *Client) loadFromCache(path string) (*cacheEntry, error) {
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrIndexCacheReadFailed
		}
		return nil, zerr.Wrap(err, domain.ErrIndexCacheReadFailed.Error())
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, zerr.Wrap(err, domain.ErrIndexCacheReadFailed.Error())
	}

	return &entry, nil
}

// saveToCache writes a release list to the cache.
func (c *Client) saveToCache(path string, name domain.PackageName, keys []string) error {
	entry := cacheEntry{
		Name:      name.String(),
		Versions:  keys,
		FetchedAt: time.Now(),
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrIndexCacheWriteFailed.Error())
	}

	if err := atomicWriteFile(path, data); err != nil {
		return zerr.Wrap(err, domain.ErrIndexCacheWriteFailed.Error())
	}

	return nil
}

// atomicWriteFile writes data to a file atomically by writing to a temp
// file and renaming it.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, "index-cache-*.json")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}

	if err := tmpFile.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

// projectResponse is the slice of the index JSON document the client
// needs: the release map keys are the published version strings.
type projectResponse struct {
	Releases map[string]json.RawMessage `json:"releases"`
}

// queryIndex fetches the release keys for a package from the index.
func (c *Client) queryIndex(ctx context.Context, name domain.PackageName) ([]string, error) {
	url := fmt.Sprintf("%s/pypi/%s/json", c.baseURL, name.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrIndexRequestFailed.Error())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrIndexRequestFailed.Error())
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			_ = closeErr
		}
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil, zerr.With(domain.ErrPackageNotFound, "package", name.String())
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := zerr.With(domain.ErrIndexRequestFailed, "status_code", resp.StatusCode)
		return nil, zerr.With(apiErr, "package", name.String())
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrIndexRequestFailed.Error())
	}

	var project projectResponse
	if err := json.Unmarshal(body, &project); err != nil {
		return nil, zerr.Wrap(err, domain.ErrIndexParseFailed.Error())
	}

	keys := make([]string, 0, len(project.Releases))
	for key := range project.Releases {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return keys, nil
}

// parseReleaseKeys converts raw release keys to versions, skipping
// entries that do not follow the version scheme, and returns them in
// ascending version order.
func parseReleaseKeys(keys []string) []domain.Version {
	versions := make([]domain.Version, 0, len(keys))
	for _, key := range keys {
		v, err := domain.ParseVersion(key)
		if err != nil {
			continue
		}
		versions = append(versions, v)
	}

	sort.Slice(versions, func(i, j int) bool {
		return versions[i].Less(versions[j])
	})

	return versions
}
