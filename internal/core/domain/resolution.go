package domain

import (
	"sort"
	"time"
)

// Strategy selects which satisfying version resolution pins when more
// than one candidate remains.
type Strategy string

const (
	// StrategyHighest pins the highest satisfying version.
	StrategyHighest Strategy = "highest"

	// StrategyLowest pins the lowest satisfying version, useful for
	// probing minimum supported versions.
	StrategyLowest Strategy = "lowest"
)

// Valid reports whether the strategy is a known value.
func (s Strategy) Valid() bool {
	return s == StrategyHighest || s == StrategyLowest
}

// ResolvedPackage is one requirement resolved against the package
// index.
type ResolvedPackage struct {
	// Name is the normalized package name.
	Name PackageName `json:"name"`

	// Constraint is the canonical merged constraint the resolution
	// satisfied. Empty when the requirement was unconstrained.
	Constraint string `json:"constraint,omitempty"`

	// Version is the chosen version.
	Version Version `json:"version"`

	// Candidates is the number of released versions that satisfied the
	// constraint.
	Candidates int `json:"candidates"`

	// Prerelease marks a chosen version that is a pre-release.
	Prerelease bool `json:"prerelease,omitempty"`
}

// ResolutionStats summarizes the work one resolution did.
type ResolutionStats struct {
	// Packages is the number of requirements resolved.
	Packages int `json:"packages"`

	// Releases is the total number of released versions considered
	// across all packages.
	Releases int `json:"releases"`

	// Duration is the wall-clock resolution time.
	Duration time.Duration `json:"duration"`
}

// Resolution is the outcome of resolving every manifest requirement.
type Resolution struct {
	// Packages are the resolved requirements, sorted by name.
	Packages []ResolvedPackage `json:"packages"`

	// Stats describes how the resolution went.
	Stats ResolutionStats `json:"stats"`
}

// NewResolution sorts resolved packages by name.
func NewResolution(packages []ResolvedPackage) Resolution {
	sorted := make([]ResolvedPackage, len(packages))
	copy(sorted, packages)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name.String() < sorted[j].Name.String()
	})
	return Resolution{Packages: sorted}
}

// Pins converts the resolution into lockfile pins.
func (r Resolution) Pins() []Pin {
	pins := make([]Pin, len(r.Packages))
	for i, p := range r.Packages {
		pins[i] = Pin{Name: p.Name, Version: p.Version, Constraint: p.Constraint}
	}
	return pins
}
