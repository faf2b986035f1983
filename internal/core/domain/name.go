package domain

import (
	"regexp"
	"strings"
	"unique"
)

// PackageName is the canonical identity of a distribution. Indexes
// compare names case-insensitively and treat runs of "-", "_", and "."
// as a single "-"; PackageName stores that normalized form, interned
// with the unique package so the many copies held across manifests,
// lockfiles, and resolver state share one allocation and compare with
// ==.
type PackageName struct {
	h unique.Handle[string]
}

// namePattern is the valid distribution name shape: alphanumeric ends,
// with ".", "-", "_" allowed inside. Matching is case-insensitive.
var namePattern = regexp.MustCompile(`^(?i)[a-z0-9]([a-z0-9._-]*[a-z0-9])?$`)

var nameSeparators = regexp.MustCompile(`[-_.]+`)

// NormalizeName canonicalizes a distribution name: lowercase, with
// each run of separators collapsed to a single "-". "Flask_SQLAlchemy"
// and "flask.sqlalchemy" normalize to the same name.
func NormalizeName(raw string) string {
	return strings.ToLower(nameSeparators.ReplaceAllString(raw, "-"))
}

// ValidName reports whether raw is a well-formed distribution name.
func ValidName(raw string) bool {
	return namePattern.MatchString(raw)
}

// NewPackageName normalizes and interns a distribution name. It does
// not validate; pair with ValidName where the input is untrusted.
func NewPackageName(raw string) PackageName {
	return PackageName{h: unique.Make(NormalizeName(raw))}
}

// String returns the normalized name. The zero value renders as "".
func (n PackageName) String() string {
	if n.h == (unique.Handle[string]{}) {
		return ""
	}
	return n.h.Value()
}

// IsZero reports whether the name is unset.
func (n PackageName) IsZero() bool {
	return n.h == (unique.Handle[string]{})
}

// MarshalText implements encoding.TextMarshaler.
func (n PackageName) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, normalizing and
// interning the provided text.
func (n *PackageName) UnmarshalText(text []byte) error {
	n.h = unique.Make(NormalizeName(string(text)))
	return nil
}
