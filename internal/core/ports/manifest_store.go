// Package ports defines the core interfaces for the application.
package ports

import "go.pindown.dev/pindown/internal/core/domain"

// ManifestStore reads, renders, and rewrites requirements manifests.
//
//go:generate mockgen -source=manifest_store.go -destination=mocks/mock_manifest_store.go -package=mocks
type ManifestStore interface {
	// Load reads and parses the manifest at path.
	Load(path string) (*domain.Manifest, error)

	// LoadLenient reads the manifest at path and parses it leniently.
	// The error covers file access only; malformed lines come back as
	// issues.
	LoadLenient(path string) (*domain.Manifest, []domain.ParseIssue, error)

	// Parse parses manifest content held in memory. The path labels
	// parse errors and the resulting manifest; nothing is read from
	// disk.
	Parse(path string, content []byte) (*domain.Manifest, error)

	// ParseLenient parses manifest content, keeping what parses and
	// returning the lines that do not as issues instead of failing.
	ParseLenient(path string, content []byte) (*domain.Manifest, []domain.ParseIssue)

	// Render serializes the manifest statement by statement, exactly
	// as the source read.
	Render(m *domain.Manifest) []byte

	// RenderCanonical serializes the manifest in canonical form:
	// normalized names, canonical constraint clauses, tidied comments,
	// original statement order.
	RenderCanonical(m *domain.Manifest) []byte

	// Write atomically replaces the file at path with content.
	Write(path string, content []byte) error
}
