package domain

import (
	"sort"
	"time"
)

// LockfileVersion is the current lockfile format version. Older
// versions load with defaults; newer versions are rejected.
const LockfileVersion = 1

// Pin is one resolved package: an exact version chosen for a manifest
// requirement.
type Pin struct {
	// Name is the normalized package name.
	Name PackageName `json:"name"`

	// Version is the exact resolved version.
	Version Version `json:"version"`

	// Constraint is the canonical manifest constraint the pin
	// satisfied at resolution time, kept for display.
	Constraint string `json:"constraint,omitempty"`
}

// Lockfile is a reproducible snapshot of a manifest resolution: every
// requirement pinned to one exact version.
type Lockfile struct {
	// Version is the lockfile format version.
	Version int `json:"version"`

	// ManifestHash fingerprints the dependency content of the manifest
	// the pins were resolved from. Comment and formatting edits do not
	// change it.
	ManifestHash string `json:"manifest_hash"`

	// GeneratedAt is the UTC time the resolution was taken.
	GeneratedAt time.Time `json:"generated_at"`

	// Pins are the resolved packages, sorted by name.
	Pins []Pin `json:"pins"`
}

// NewLockfile assembles a lockfile at the current format version,
// sorting pins by name so the serialized form is stable.
func NewLockfile(manifestHash string, generatedAt time.Time, pins []Pin) Lockfile {
	sorted := make([]Pin, len(pins))
	copy(sorted, pins)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name.String() < sorted[j].Name.String()
	})
	return Lockfile{
		Version:      LockfileVersion,
		ManifestHash: manifestHash,
		GeneratedAt:  generatedAt.UTC(),
		Pins:         sorted,
	}
}

// Pin returns the pin for the given package.
func (l Lockfile) Pin(name PackageName) (Pin, bool) {
	for _, p := range l.Pins {
		if p.Name == name {
			return p, true
		}
	}
	return Pin{}, false
}

// LockIssueKind classifies a disagreement between a lockfile and a
// manifest.
type LockIssueKind int

const (
	// IssueMissingPin means the manifest declares a package the
	// lockfile does not pin.
	IssueMissingPin LockIssueKind = iota

	// IssueUnsatisfiedPin means a pinned version no longer satisfies
	// the manifest's constraints for that package.
	IssueUnsatisfiedPin

	// IssueOrphanPin means the lockfile pins a package the manifest no
	// longer declares.
	IssueOrphanPin
)

// LockIssue is one disagreement between a lockfile and a manifest.
type LockIssue struct {
	// Kind classifies the issue.
	Kind LockIssueKind

	// Package is the affected package.
	Package PackageName

	// Pinned is the locked version, unset for IssueMissingPin.
	Pinned Version

	// Constraint is the manifest's canonical constraint for the
	// package, empty for IssueOrphanPin.
	Constraint string
}

// Validate checks the lockfile against a manifest: every declared
// package must be pinned, every pin must satisfy the merged
// constraints, and pins without a declaration are reported as orphans.
// Issues come back in manifest order, orphans last in name order.
func (l Lockfile) Validate(m *Manifest) []LockIssue {
	var issues []LockIssue
	declared := make(map[PackageName]bool)

	for _, req := range m.Requirements() {
		if declared[req.Name] {
			continue // duplicate declarations are a lint concern
		}
		declared[req.Name] = true

		merged := m.MergedSpecifiers(req.Name)
		pin, ok := l.Pin(req.Name)
		if !ok {
			issues = append(issues, LockIssue{
				Kind:       IssueMissingPin,
				Package:    req.Name,
				Constraint: merged.String(),
			})
			continue
		}
		if !merged.Matches(pin.Version) {
			issues = append(issues, LockIssue{
				Kind:       IssueUnsatisfiedPin,
				Package:    req.Name,
				Pinned:     pin.Version,
				Constraint: merged.String(),
			})
		}
	}

	for _, pin := range l.Pins {
		if !declared[pin.Name] {
			issues = append(issues, LockIssue{
				Kind:    IssueOrphanPin,
				Package: pin.Name,
				Pinned:  pin.Version,
			})
		}
	}

	return issues
}
