package domain

import (
	"regexp"
	"strings"

	"go.trai.ch/zerr"
)

// Requirement is one dependency declaration: a package name, optional
// extras, and a conjunction of version constraint clauses.
type Requirement struct {
	// Name is the normalized package name.
	Name PackageName

	// RawName is the name exactly as written in the source, before
	// normalization (e.g. "Flask_SQLAlchemy").
	RawName string

	// Extras are the normalized extra feature names requested in
	// brackets, in source order.
	Extras []string

	// Specifiers is the conjunction of constraint clauses attached to
	// the requirement. Empty means any version.
	Specifiers SpecifierSet

	// Comment is the inline justification comment, without the leading
	// "#" and surrounding whitespace. Empty when the line has none.
	Comment string

	// Line is the 1-based line number in the source file, 0 for
	// requirements built programmatically.
	Line int
}

// requirementPattern splits a requirement into name, optional bracketed
// extras, and the constraint remainder. Name validation happens
// separately so a bad name reports ErrInvalidPackageName rather than a
// generic parse failure.
var requirementPattern = regexp.MustCompile(`^([^\s\[\]<>=!~,#]+)\s*(\[[^\]]*\])?\s*(.*)$`)

// ParseRequirement parses a requirement such as "pandas<2" or
// "seaborn[stats]==0.11.2". Inline comments are file syntax and must
// be stripped by the caller.
func ParseRequirement(text string) (Requirement, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Requirement{}, ErrEmptyPackageName
	}
	if strings.HasPrefix(trimmed, "[") || startsWithOperator(trimmed) {
		return Requirement{}, zerr.With(ErrEmptyPackageName, "requirement", trimmed)
	}

	m := requirementPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return Requirement{}, zerr.With(ErrInvalidRequirement, "requirement", trimmed)
	}

	rawName := m[1]
	if !ValidName(rawName) {
		return Requirement{}, zerr.With(ErrInvalidPackageName, "name", rawName)
	}

	extras, err := parseExtras(m[2])
	if err != nil {
		return Requirement{}, zerr.With(err, "requirement", trimmed)
	}

	specifiers, err := ParseSpecifierSet(m[3])
	if err != nil {
		return Requirement{}, zerr.With(err, "requirement", trimmed)
	}

	return Requirement{
		Name:       NewPackageName(rawName),
		RawName:    rawName,
		Extras:     extras,
		Specifiers: specifiers,
	}, nil
}

func startsWithOperator(s string) bool {
	for _, op := range operators {
		if strings.HasPrefix(s, string(op)) {
			return true
		}
	}
	return false
}

func parseExtras(bracketed string) ([]string, error) {
	if bracketed == "" {
		return nil, nil
	}

	inner := strings.TrimSuffix(strings.TrimPrefix(bracketed, "["), "]")
	if strings.TrimSpace(inner) == "" {
		return nil, nil
	}

	var extras []string
	for _, part := range strings.Split(inner, ",") {
		extra := strings.TrimSpace(part)
		if !ValidName(extra) {
			return nil, zerr.With(ErrInvalidExtra, "extra", extra)
		}
		extras = append(extras, NormalizeName(extra))
	}
	return extras, nil
}

// String returns the canonical requirement text: normalized name,
// extras, and canonical constraint clauses. The inline comment is not
// part of the requirement.
func (r Requirement) String() string {
	var b strings.Builder
	b.WriteString(r.Name.String())
	if len(r.Extras) > 0 {
		b.WriteByte('[')
		b.WriteString(strings.Join(r.Extras, ","))
		b.WriteByte(']')
	}
	b.WriteString(r.Specifiers.String())
	return b.String()
}

// IsPinned reports whether the requirement pins an exact version, and
// returns it.
func (r Requirement) IsPinned() (Version, bool) {
	return r.Specifiers.Pin()
}

// ConstraintsEqual reports whether two requirements constrain the same
// package identically: same name, same extras, same canonical clauses.
// Comments and line positions are ignored.
func (r Requirement) ConstraintsEqual(o Requirement) bool {
	if r.Name != o.Name || len(r.Extras) != len(o.Extras) {
		return false
	}
	for i := range r.Extras {
		if r.Extras[i] != o.Extras[i] {
			return false
		}
	}
	return r.Specifiers.String() == o.Specifiers.String()
}
