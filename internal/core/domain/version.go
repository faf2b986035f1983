package domain

import (
	"regexp"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// PrePhase identifies the pre-release phase of a version.
// Phases order as alpha < beta < release candidate.
type PrePhase int

const (
	// PhaseAlpha is an alpha pre-release ("a", "alpha").
	PhaseAlpha PrePhase = iota + 1
	// PhaseBeta is a beta pre-release ("b", "beta").
	PhaseBeta
	// PhaseRC is a release candidate ("rc", "c", "pre", "preview").
	PhaseRC
)

// String returns the canonical spelling of the phase.
func (p PrePhase) String() string {
	switch p {
	case PhaseAlpha:
		return "a"
	case PhaseBeta:
		return "b"
	case PhaseRC:
		return "rc"
	default:
		return ""
	}
}

// Version is a package version following the Python packaging scheme:
// an optional epoch, dotted release segments, and optional pre-release,
// post-release, dev-release, and local qualifiers.
//
// Versions are immutable after parsing. The zero value is not a valid
// version; use ParseVersion.
type Version struct {
	original string
	epoch    int
	release  []int
	pre      *preSegment
	post     *int
	dev      *int
	local    string
}

type preSegment struct {
	phase PrePhase
	num   int
}

// versionPattern follows the normalization rules from the Python
// packaging specification: optional "v" prefix, epoch, release,
// spelled-out or abbreviated qualifiers with ".", "-", "_" separators,
// and a "+local" label.
var versionPattern = regexp.MustCompile(`^v?` +
	`(?:(\d+)!)?` + // 1: epoch
	`(\d+(?:\.\d+)*)` + // 2: release segments
	`(?:[-_.]?(a|alpha|b|beta|c|rc|pre|preview)[-_.]?(\d+)?)?` + // 3, 4: pre-release
	`(?:(?:-(\d+))|(?:[-_.]?(post|rev|r)[-_.]?(\d+)?))?` + // 5, 6, 7: post-release
	`(?:[-_.]?(dev)[-_.]?(\d+)?)?` + // 8, 9: dev-release
	`(?:\+([a-z0-9]+(?:[-_.][a-z0-9]+)*))?` + // 10: local label
	`$`)

// ParseVersion parses a version string. Surrounding whitespace is
// ignored and matching is case-insensitive.
func ParseVersion(s string) (Version, error) {
	original := strings.TrimSpace(s)
	normalized := strings.ToLower(original)

	m := versionPattern.FindStringSubmatch(normalized)
	if m == nil {
		return Version{}, zerr.With(ErrInvalidVersion, "version", original)
	}

	v := Version{original: original}

	if m[1] != "" {
		epoch, err := strconv.Atoi(m[1])
		if err != nil {
			return Version{}, zerr.With(ErrInvalidVersion, "version", original)
		}
		v.epoch = epoch
	}

	for _, part := range strings.Split(m[2], ".") {
		n, err := strconv.Atoi(part)
		if err != nil {
			return Version{}, zerr.With(ErrInvalidVersion, "version", original)
		}
		v.release = append(v.release, n)
	}

	if m[3] != "" {
		v.pre = &preSegment{phase: canonicalPhase(m[3]), num: optionalNumber(m[4])}
	}

	switch {
	case m[5] != "": // implicit post-release: "1.0-1"
		n := optionalNumber(m[5])
		v.post = &n
	case m[6] != "":
		n := optionalNumber(m[7])
		v.post = &n
	}

	if m[8] != "" {
		n := optionalNumber(m[9])
		v.dev = &n
	}

	v.local = normalizeLocal(m[10])

	return v, nil
}

func canonicalPhase(label string) PrePhase {
	switch label {
	case "a", "alpha":
		return PhaseAlpha
	case "b", "beta":
		return PhaseBeta
	default: // "c", "rc", "pre", "preview"
		return PhaseRC
	}
}

func optionalNumber(s string) int {
	if s == "" {
		return 0
	}
	n, _ := strconv.Atoi(s)
	return n
}

// normalizeLocal canonicalizes a local label: separators become dots.
func normalizeLocal(local string) string {
	if local == "" {
		return ""
	}
	return strings.Map(func(r rune) rune {
		if r == '-' || r == '_' {
			return '.'
		}
		return r
	}, local)
}

// Original returns the version text as written in the source.
func (v Version) Original() string {
	return v.original
}

// String returns the canonical normalized form of the version.
func (v Version) String() string {
	var b strings.Builder

	if v.epoch > 0 {
		b.WriteString(strconv.Itoa(v.epoch))
		b.WriteByte('!')
	}

	for i, seg := range v.release {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.Itoa(seg))
	}

	if v.pre != nil {
		b.WriteString(v.pre.phase.String())
		b.WriteString(strconv.Itoa(v.pre.num))
	}
	if v.post != nil {
		b.WriteString(".post")
		b.WriteString(strconv.Itoa(*v.post))
	}
	if v.dev != nil {
		b.WriteString(".dev")
		b.WriteString(strconv.Itoa(*v.dev))
	}
	if v.local != "" {
		b.WriteByte('+')
		b.WriteString(v.local)
	}

	return b.String()
}

// MarshalText implements encoding.TextMarshaler using the canonical
// form.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Epoch returns the version epoch (0 unless declared with "N!").
func (v Version) Epoch() int {
	return v.epoch
}

// Release returns a copy of the dotted release segments.
func (v Version) Release() []int {
	out := make([]int, len(v.release))
	copy(out, v.release)
	return out
}

// IsPrerelease reports whether the version carries a pre-release or
// dev-release qualifier.
func (v Version) IsPrerelease() bool {
	return v.pre != nil || v.dev != nil
}

// IsPostrelease reports whether the version carries a post-release
// qualifier.
func (v Version) IsPostrelease() bool {
	return v.post != nil
}

// HasLocal reports whether the version carries a local label.
func (v Version) HasLocal() bool {
	return v.local != ""
}

// WithoutLocal returns the version with any local label removed.
func (v Version) WithoutLocal() Version {
	if v.local == "" {
		return v
	}
	out := v
	out.local = ""
	return out
}

// BaseEquals reports whether two versions share the same epoch and
// release segments, ignoring qualifiers. "1.0rc1" and "1.0.post2" are
// base-equal; "1.0" and "1.1" are not.
func (v Version) BaseEquals(o Version) bool {
	return v.epoch == o.epoch && compareRelease(v.release, o.release) == 0
}

// Compare returns -1, 0, or +1 ordering v against o per the packaging
// specification: epoch, then release, then dev < alpha < beta < rc <
// final < post, with the local label as the final tiebreaker.
func (v Version) Compare(o Version) int {
	if c := compareInt(v.epoch, o.epoch); c != 0 {
		return c
	}
	if c := compareRelease(v.release, o.release); c != 0 {
		return c
	}
	if c := comparePre(v, o); c != 0 {
		return c
	}
	if c := comparePost(v.post, o.post); c != 0 {
		return c
	}
	if c := compareDev(v.dev, o.dev); c != 0 {
		return c
	}
	return compareLocal(v.local, o.local)
}

// Less reports whether v orders strictly before o.
func (v Version) Less(o Version) bool {
	return v.Compare(o) < 0
}

// Equal reports whether v and o denote the same version. Trailing zero
// release segments are insignificant: "1.0" equals "1.0.0".
func (v Version) Equal(o Version) bool {
	return v.Compare(o) == 0
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// compareRelease compares release segments with implicit zero padding,
// so (1) == (1,0) and (1,2) < (1,10).
func compareRelease(a, b []int) int {
	n := max(len(a), len(b))
	for i := range n {
		av, bv := 0, 0
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		if c := compareInt(av, bv); c != 0 {
			return c
		}
	}
	return 0
}

// preRank buckets a version for pre-release ordering: a bare
// dev-release sorts before any pre-release, which sorts before the
// final (and post) releases.
func preRank(v Version) int {
	switch {
	case v.pre == nil && v.post == nil && v.dev != nil:
		return 0
	case v.pre != nil:
		return 1
	default:
		return 2
	}
}

func comparePre(a, b Version) int {
	if c := compareInt(preRank(a), preRank(b)); c != 0 {
		return c
	}
	if a.pre == nil || b.pre == nil {
		return 0
	}
	if c := compareInt(int(a.pre.phase), int(b.pre.phase)); c != 0 {
		return c
	}
	return compareInt(a.pre.num, b.pre.num)
}

func comparePost(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return compareInt(*a, *b)
	}
}

func compareDev(a, b *int) int {
	// A dev qualifier sorts before its absence: 1.0a1.dev1 < 1.0a1.
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return compareInt(*a, *b)
	}
}

// compareLocal compares local labels segment-wise. Numeric segments
// compare numerically and order after alphanumeric ones; the absent
// label sorts first.
func compareLocal(a, b string) int {
	if a == b {
		return 0
	}
	if a == "" {
		return -1
	}
	if b == "" {
		return 1
	}

	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		an, aErr := strconv.Atoi(as[i])
		bn, bErr := strconv.Atoi(bs[i])
		aNumeric := aErr == nil
		bNumeric := bErr == nil

		switch {
		case aNumeric && bNumeric:
			if c := compareInt(an, bn); c != 0 {
				return c
			}
		case aNumeric:
			return 1
		case bNumeric:
			return -1
		default:
			if c := strings.Compare(as[i], bs[i]); c != 0 {
				return c
			}
		}
	}
	return compareInt(len(as), len(bs))
}

// truncatedRelease returns the first n release segments, used by
// compatible-release and prefix matching.
func (v Version) truncatedRelease(n int) []int {
	out := make([]int, n)
	for i := range n {
		if i < len(v.release) {
			out[i] = v.release[i]
		}
	}
	return out
}
