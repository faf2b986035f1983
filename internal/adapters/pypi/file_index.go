package pypi

import (
	"context"
	"encoding/json"
	"os"
	"slices"
	"sort"

	"go.pindown.dev/pindown/internal/core/domain"
	"go.trai.ch/zerr"
)

// FileIndex implements ports.PackageIndex from a single JSON document
// mapping package names to published version strings. It backs tests
// and air-gapped runs where no live index is reachable.
type FileIndex struct {
	releases map[domain.PackageName][]domain.Version
}

// NewFileIndex loads an index document from path. The document is a
// JSON object mapping each package name to its version strings:
//
//	{"seaborn": ["0.11.0", "0.11.2"], "pandas": ["1.5.3", "2.0.0"]}
//
// The document is hand-authored, so malformed names and versions are
// load errors rather than skipped entries. Names that normalize to the
// same package are merged.
func NewFileIndex(path string) (*FileIndex, error) {
	//nolint:gosec // Path comes from the user's own configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrIndexFileReadFailed.Error())
	}

	var doc map[string][]string
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, zerr.Wrap(err, domain.ErrIndexParseFailed.Error())
	}

	releases := make(map[domain.PackageName][]domain.Version, len(doc))
	for rawName, rawVersions := range doc {
		if !domain.ValidName(rawName) {
			return nil, zerr.With(domain.ErrInvalidPackageName, "package", rawName)
		}

		name := domain.NewPackageName(rawName)
		versions := releases[name]
		for _, raw := range rawVersions {
			v, err := domain.ParseVersion(raw)
			if err != nil {
				return nil, zerr.With(zerr.With(err, "package", rawName), "release", raw)
			}
			versions = append(versions, v)
		}
		releases[name] = versions
	}

	for name := range releases {
		sort.Slice(releases[name], func(i, j int) bool {
			return releases[name][i].Less(releases[name][j])
		})
	}

	return &FileIndex{releases: releases}, nil
}

// Releases returns the versions recorded for the package in ascending
// order. Lookups are in-memory and never block.
func (f *FileIndex) Releases(_ context.Context, name domain.PackageName) ([]domain.Version, error) {
	versions, ok := f.releases[name]
	if !ok {
		return nil, zerr.With(domain.ErrPackageNotFound, "package", name.String())
	}

	return slices.Clone(versions), nil
}
