package domain

import "sort"

// ChangeKind classifies one entry of a manifest diff.
type ChangeKind int

const (
	// ChangeAdded means the package appears only in the newer manifest.
	ChangeAdded ChangeKind = iota

	// ChangeRemoved means the package appears only in the older
	// manifest.
	ChangeRemoved

	// ChangeModified means the package appears in both with different
	// constraints or extras.
	ChangeModified
)

// String returns the change kind as a lowercase word.
func (k ChangeKind) String() string {
	switch k {
	case ChangeAdded:
		return "added"
	case ChangeRemoved:
		return "removed"
	case ChangeModified:
		return "modified"
	default:
		return "unknown"
	}
}

// MarshalText encodes the change kind as its word form.
func (k ChangeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// DiffEntry is one changed package between two manifests.
type DiffEntry struct {
	// Kind classifies the change.
	Kind ChangeKind `json:"kind"`

	// Package is the affected package.
	Package PackageName `json:"package"`

	// Before is the canonical declaration in the older manifest, empty
	// for ChangeAdded.
	Before string `json:"before,omitempty"`

	// After is the canonical declaration in the newer manifest, empty
	// for ChangeRemoved.
	After string `json:"after,omitempty"`
}

// DiffManifests compares the dependency view of two manifests, name by
// name. Comments, blank lines, and declaration order are not part of
// the comparison. Entries come back sorted by package name.
func DiffManifests(before, after *Manifest) []DiffEntry {
	names := make(map[PackageName]bool)
	for _, req := range before.Requirements() {
		names[req.Name] = true
	}
	for _, req := range after.Requirements() {
		names[req.Name] = true
	}

	var entries []DiffEntry
	for name := range names {
		oldReq, inOld := before.Requirement(name)
		newReq, inNew := after.Requirement(name)

		switch {
		case inOld && !inNew:
			entries = append(entries, DiffEntry{
				Kind:    ChangeRemoved,
				Package: name,
				Before:  oldReq.String(),
			})
		case !inOld && inNew:
			entries = append(entries, DiffEntry{
				Kind:    ChangeAdded,
				Package: name,
				After:   newReq.String(),
			})
		case !oldReq.ConstraintsEqual(newReq):
			entries = append(entries, DiffEntry{
				Kind:    ChangeModified,
				Package: name,
				Before:  oldReq.String(),
				After:   newReq.String(),
			})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Package.String() < entries[j].Package.String()
	})
	return entries
}
