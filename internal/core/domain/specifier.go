package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Operator is a version comparison operator in a constraint clause.
type Operator string

const (
	// OpEqual pins to a version ("==1.2.3") or, with a trailing ".*",
	// matches a release prefix ("==1.2.*").
	OpEqual Operator = "=="
	// OpNotEqual excludes a version or release prefix.
	OpNotEqual Operator = "!="
	// OpLess is an exclusive upper bound.
	OpLess Operator = "<"
	// OpLessEqual is an inclusive upper bound.
	OpLessEqual Operator = "<="
	// OpGreater is an exclusive lower bound.
	OpGreater Operator = ">"
	// OpGreaterEqual is an inclusive lower bound.
	OpGreaterEqual Operator = ">="
	// OpCompatible is a compatible-release clause: "~=1.4.2" means
	// ">=1.4.2, ==1.4.*".
	OpCompatible Operator = "~="
)

// operators in match order; two-character operators must come first so
// "<=" is not read as "<" followed by garbage.
var operators = []Operator{
	OpEqual, OpNotEqual, OpLessEqual, OpGreaterEqual, OpCompatible, OpLess, OpGreater,
}

// Specifier is a single version constraint clause: an operator and a
// version, optionally in release-prefix form ("==1.2.*").
type Specifier struct {
	op       Operator
	version  Version
	wildcard bool
}

// ParseSpecifier parses one constraint clause like ">=1.2" or "==1.2.*".
func ParseSpecifier(s string) (Specifier, error) {
	text := strings.TrimSpace(s)

	var op Operator
	for _, candidate := range operators {
		if strings.HasPrefix(text, string(candidate)) {
			op = candidate
			break
		}
	}
	if op == "" {
		return Specifier{}, zerr.With(ErrInvalidSpecifier, "specifier", text)
	}

	versionText := strings.TrimSpace(strings.TrimPrefix(text, string(op)))
	if versionText == "" {
		return Specifier{}, zerr.With(ErrInvalidSpecifier, "specifier", text)
	}

	wildcard := false
	if trimmed, ok := strings.CutSuffix(versionText, ".*"); ok {
		if op != OpEqual && op != OpNotEqual {
			return Specifier{}, zerr.With(ErrInvalidSpecifier, "specifier", text)
		}
		wildcard = true
		versionText = trimmed
	}

	version, err := ParseVersion(versionText)
	if err != nil {
		return Specifier{}, zerr.With(err, "specifier", text)
	}

	if wildcard && (version.pre != nil || version.post != nil || version.dev != nil || version.local != "") {
		// Prefix matching applies to release segments only.
		return Specifier{}, zerr.With(ErrInvalidSpecifier, "specifier", text)
	}
	if op == OpCompatible {
		if len(version.release) < 2 {
			// "~=1" has no release segment to hold compatible, so the
			// clause is meaningless.
			return Specifier{}, zerr.With(ErrInvalidSpecifier, "specifier", text)
		}
		if version.local != "" {
			return Specifier{}, zerr.With(ErrInvalidSpecifier, "specifier", text)
		}
	}
	if version.local != "" && op != OpEqual && op != OpNotEqual {
		// Local labels only make sense for exact comparison.
		return Specifier{}, zerr.With(ErrInvalidSpecifier, "specifier", text)
	}

	return Specifier{op: op, version: version, wildcard: wildcard}, nil
}

// Operator returns the comparison operator of the clause.
func (s Specifier) Operator() Operator {
	return s.op
}

// Version returns the version the clause compares against.
func (s Specifier) Version() Version {
	return s.version
}

// IsWildcard reports whether the clause is a release-prefix form.
func (s Specifier) IsWildcard() bool {
	return s.wildcard
}

// IsPin reports whether the clause pins an exact version.
func (s Specifier) IsPin() bool {
	return s.op == OpEqual && !s.wildcard
}

// isLowerBound reports whether the clause bounds versions from below.
func (s Specifier) isLowerBound() bool {
	return s.op == OpGreater || s.op == OpGreaterEqual
}

// IsUpperBound reports whether the clause bounds versions from above.
func (s Specifier) IsUpperBound() bool {
	return s.op == OpLess || s.op == OpLessEqual
}

// String returns the canonical text of the clause.
func (s Specifier) String() string {
	out := string(s.op) + s.version.String()
	if s.wildcard {
		out += ".*"
	}
	return out
}

// Matches reports whether version v satisfies the clause, following
// the packaging specification's rules for each operator.
func (s Specifier) Matches(v Version) bool {
	switch s.op {
	case OpEqual:
		return s.matchesEqual(v)
	case OpNotEqual:
		return !s.matchesEqual(v)
	case OpLessEqual:
		return v.WithoutLocal().Compare(s.version) <= 0
	case OpGreaterEqual:
		return v.WithoutLocal().Compare(s.version) >= 0
	case OpLess:
		c := v.WithoutLocal()
		if c.Compare(s.version) >= 0 {
			return false
		}
		// An exclusive upper bound does not admit pre-releases of the
		// bound itself unless the bound is one.
		if !s.version.IsPrerelease() && c.IsPrerelease() && c.BaseEquals(s.version) {
			return false
		}
		return true
	case OpGreater:
		c := v.WithoutLocal()
		if c.Compare(s.version) <= 0 {
			return false
		}
		// An exclusive lower bound does not admit post-releases of the
		// bound itself unless the bound is one.
		if !s.version.IsPostrelease() && c.IsPostrelease() && c.BaseEquals(s.version) {
			return false
		}
		return true
	case OpCompatible:
		lower := Specifier{op: OpGreaterEqual, version: s.version}
		prefix := Specifier{op: OpEqual, version: s.version.compatiblePrefix(), wildcard: true}
		return lower.Matches(v) && prefix.Matches(v)
	default:
		return false
	}
}

func (s Specifier) matchesEqual(v Version) bool {
	if s.wildcard {
		if v.epoch != s.version.epoch {
			return false
		}
		prefix := v.truncatedRelease(len(s.version.release))
		return compareRelease(prefix, s.version.release) == 0
	}
	if s.version.local != "" {
		return v.Compare(s.version) == 0
	}
	return v.WithoutLocal().Compare(s.version) == 0
}

// compatiblePrefix drops the final release segment, yielding the
// prefix a compatible-release clause holds fixed.
func (v Version) compatiblePrefix() Version {
	out := Version{epoch: v.epoch, release: v.truncatedRelease(len(v.release) - 1)}
	return out
}

// expand rewrites a compatible-release clause into its lower-bound and
// prefix components. Other clauses expand to themselves.
func (s Specifier) expand() []Specifier {
	if s.op != OpCompatible {
		return []Specifier{s}
	}
	return []Specifier{
		{op: OpGreaterEqual, version: s.version},
		{op: OpEqual, version: s.version.compatiblePrefix(), wildcard: true},
	}
}

// SpecifierSet is the conjunction of constraint clauses attached to
// one requirement, in source order.
type SpecifierSet []Specifier

// ParseSpecifierSet parses a comma-separated list of clauses. An empty
// string yields an empty set, which matches every version.
func ParseSpecifierSet(s string) (SpecifierSet, error) {
	text := strings.TrimSpace(s)
	if text == "" {
		return nil, nil
	}

	var set SpecifierSet
	for _, clause := range strings.Split(text, ",") {
		spec, err := ParseSpecifier(clause)
		if err != nil {
			return nil, err
		}
		set = append(set, spec)
	}
	return set, nil
}

// String returns the canonical comma-joined form of the set.
func (ss SpecifierSet) String() string {
	parts := make([]string, len(ss))
	for i, s := range ss {
		parts[i] = s.String()
	}
	return strings.Join(parts, ",")
}

// Matches reports whether v satisfies every clause in the set.
func (ss SpecifierSet) Matches(v Version) bool {
	for _, s := range ss {
		if !s.Matches(v) {
			return false
		}
	}
	return true
}

// Pin returns the pinned version if the set contains an exact "=="
// clause.
func (ss SpecifierSet) Pin() (Version, bool) {
	for _, s := range ss {
		if s.IsPin() {
			return s.version, true
		}
	}
	return Version{}, false
}

// AllowsPrereleases reports whether any clause references a
// pre-release version, which opts the requirement into pre-release
// candidates.
func (ss SpecifierSet) AllowsPrereleases() bool {
	for _, s := range ss {
		if s.version.IsPrerelease() {
			return true
		}
	}
	return false
}

// Conflict is a pair of clauses that no version can satisfy together.
type Conflict struct {
	A, B Specifier
}

// FindConflict looks for a pair of clauses in the set that is
// statically unsatisfiable: two different pins, a pin outside another
// clause's range, crossed lower and upper bounds, or disjoint release
// prefixes. The check is conservative; it never flags a satisfiable
// set.
func (ss SpecifierSet) FindConflict() (Conflict, bool) {
	type clause struct {
		expanded Specifier
		origin   Specifier
	}

	var clauses []clause
	for _, s := range ss {
		for _, e := range s.expand() {
			clauses = append(clauses, clause{expanded: e, origin: s})
		}
	}

	for i := range clauses {
		for j := i + 1; j < len(clauses); j++ {
			a, b := clauses[i], clauses[j]
			if specifiersConflict(a.expanded, b.expanded) {
				return Conflict{A: a.origin, B: b.origin}, true
			}
		}
	}
	return Conflict{}, false
}

func specifiersConflict(a, b Specifier) bool {
	// A pin must satisfy every other clause.
	if a.IsPin() || b.IsPin() {
		pin, other := a, b
		if b.IsPin() {
			pin, other = b, a
		}
		if pin.IsPin() && other.IsPin() {
			return !pin.Matches(other.version) && !other.Matches(pin.version)
		}
		return !other.Matches(pin.version)
	}

	// Crossed bounds leave no room: ">=2" with "<2", ">2" with "<=2".
	if lower, upper, ok := boundPair(a, b); ok {
		c := lower.version.Compare(upper.version)
		if c > 0 {
			return true
		}
		if c == 0 && (lower.op == OpGreater || upper.op == OpLess) {
			return true
		}
		return false
	}

	// Disjoint release prefixes: "==1.2.*" with "==2.0.*".
	if a.op == OpEqual && a.wildcard && b.op == OpEqual && b.wildcard {
		if a.version.epoch != b.version.epoch {
			return true
		}
		short, long := a.version, b.version
		if len(short.release) > len(long.release) {
			short, long = long, short
		}
		return compareRelease(long.truncatedRelease(len(short.release)), short.release) != 0
	}

	return false
}

func boundPair(a, b Specifier) (lower, upper Specifier, ok bool) {
	switch {
	case a.isLowerBound() && b.IsUpperBound():
		return a, b, true
	case b.isLowerBound() && a.IsUpperBound():
		return b, a, true
	default:
		return Specifier{}, Specifier{}, false
	}
}
