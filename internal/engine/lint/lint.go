// Package lint implements the static checks over a parsed manifest:
// the lines that failed to parse plus the constraint checks that can
// be decided without asking an index.
package lint

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.pindown.dev/pindown/internal/core/domain"
)

// Severity grades a finding.
type Severity string

const (
	// SeverityError marks a finding that makes the manifest unusable.
	SeverityError Severity = "error"
	// SeverityWarning marks a finding worth fixing that does not block
	// resolution.
	SeverityWarning Severity = "warning"
)

// Rule identifies the check that produced a finding.
type Rule string

const (
	// RuleEmptyName flags a declaration with no package name.
	RuleEmptyName Rule = "empty-name"
	// RuleInvalidName flags a package name or extra that violates the
	// naming rules.
	RuleInvalidName Rule = "invalid-name"
	// RuleBadSpecifier flags a constraint that does not parse as
	// comparator and version.
	RuleBadSpecifier Rule = "bad-specifier"
	// RuleDuplicate flags a package declared more than once.
	RuleDuplicate Rule = "duplicate"
	// RuleConflictingPins flags a package pinned to two different
	// versions.
	RuleConflictingPins Rule = "conflicting-pins"
	// RulePinOutsideRange flags a pin excluded by another clause on
	// the same package.
	RulePinOutsideRange Rule = "pin-outside-range"
	// RuleEmptyRange flags clauses that leave no versions between
	// them.
	RuleEmptyRange Rule = "empty-range"
	// RuleUnpinned flags a declaration with no constraint at all.
	RuleUnpinned Rule = "unpinned"
)

// Finding is one lint diagnostic.
type Finding struct {
	// Severity grades the finding.
	Severity Severity `json:"severity"`

	// Rule identifies the check that produced the finding.
	Rule Rule `json:"rule"`

	// Package is the normalized package name, empty when the line did
	// not parse far enough to have one.
	Package string `json:"package,omitempty"`

	// Path is the manifest file the finding points into.
	Path string `json:"path"`

	// Line is the 1-based line number, 0 for manifests built in
	// memory.
	Line int `json:"line"`

	// Message describes the problem.
	Message string `json:"message"`
}

// String renders the finding in the conventional file:line form.
func (f Finding) String() string {
	return fmt.Sprintf("%s:%d: %s: %s (%s)", f.Path, f.Line, f.Severity, f.Message, f.Rule)
}

// Report is the outcome of linting one manifest, findings in line
// order.
type Report struct {
	Findings []Finding `json:"findings"`
}

// HasErrors reports whether any finding has error severity.
func (r Report) HasErrors() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Counts returns the number of error and warning findings.
func (r Report) Counts() (errs, warnings int) {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			errs++
		} else {
			warnings++
		}
	}
	return errs, warnings
}

// Check lints a manifest together with the parse issues its lenient
// load produced. The checks are static; whether the constrained
// versions actually exist is resolution's question, not lint's.
func Check(m *domain.Manifest, issues []domain.ParseIssue) Report {
	var findings []Finding

	for _, issue := range issues {
		findings = append(findings, issueFinding(m.Path, issue))
	}
	findings = append(findings, checkDuplicates(m)...)
	findings = append(findings, checkConstraints(m)...)

	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Line != findings[j].Line {
			return findings[i].Line < findings[j].Line
		}
		return findings[i].Rule < findings[j].Rule
	})

	return Report{Findings: findings}
}

// issueFinding maps a parse failure to its rule by the sentinel the
// parser attached.
func issueFinding(path string, issue domain.ParseIssue) Finding {
	f := Finding{
		Severity: SeverityError,
		Path:     path,
		Line:     issue.Line,
	}
	raw := strings.TrimSpace(issue.Raw)

	switch {
	case errors.Is(issue.Err, domain.ErrEmptyPackageName):
		f.Rule = RuleEmptyName
		f.Message = fmt.Sprintf("missing package name in %q", raw)
	case errors.Is(issue.Err, domain.ErrInvalidPackageName):
		f.Rule = RuleInvalidName
		f.Message = fmt.Sprintf("invalid package name in %q", raw)
	case errors.Is(issue.Err, domain.ErrInvalidExtra):
		f.Rule = RuleInvalidName
		f.Message = fmt.Sprintf("invalid extra in %q", raw)
	case errors.Is(issue.Err, domain.ErrInvalidSpecifier), errors.Is(issue.Err, domain.ErrInvalidVersion):
		f.Rule = RuleBadSpecifier
		f.Message = fmt.Sprintf("invalid version constraint in %q", raw)
	default:
		f.Rule = RuleBadSpecifier
		f.Message = fmt.Sprintf("cannot parse %q", raw)
	}
	return f
}

// checkDuplicates reports every redeclaration of a package, pointing
// back at the first occurrence.
func checkDuplicates(m *domain.Manifest) []Finding {
	var findings []Finding
	first := make(map[domain.PackageName]int)

	for _, req := range m.Requirements() {
		firstLine, seen := first[req.Name]
		if !seen {
			first[req.Name] = req.Line
			continue
		}
		findings = append(findings, Finding{
			Severity: SeverityError,
			Rule:     RuleDuplicate,
			Package:  req.Name.String(),
			Path:     m.Path,
			Line:     req.Line,
			Message:  fmt.Sprintf("%s already declared on line %d", req.Name, firstLine),
		})
	}
	return findings
}

// checkConstraints runs the per-package satisfiability checks over the
// merged clauses of each declared name.
func checkConstraints(m *domain.Manifest) []Finding {
	var findings []Finding
	seen := make(map[domain.PackageName]bool)

	for _, req := range m.Requirements() {
		if seen[req.Name] {
			continue
		}
		seen[req.Name] = true

		merged := m.MergedSpecifiers(req.Name)
		if len(merged) == 0 {
			findings = append(findings, Finding{
				Severity: SeverityWarning,
				Rule:     RuleUnpinned,
				Package:  req.Name.String(),
				Path:     m.Path,
				Line:     req.Line,
				Message:  fmt.Sprintf("%s has no version constraint", req.Name),
			})
			continue
		}

		if conflict, found := merged.FindConflict(); found {
			findings = append(findings, conflictFinding(m.Path, req, conflict))
		}
	}
	return findings
}

// conflictFinding classifies a statically unsatisfiable clause pair.
func conflictFinding(path string, req domain.Requirement, c domain.Conflict) Finding {
	f := Finding{
		Severity: SeverityError,
		Package:  req.Name.String(),
		Path:     path,
		Line:     req.Line,
	}

	switch {
	case c.A.IsPin() && c.B.IsPin():
		f.Rule = RuleConflictingPins
		f.Message = fmt.Sprintf("%s pinned to both %s and %s", req.Name, c.A.Version(), c.B.Version())
	case c.A.IsPin() || c.B.IsPin():
		pin, other := c.A, c.B
		if c.B.IsPin() {
			pin, other = c.B, c.A
		}
		f.Rule = RulePinOutsideRange
		f.Message = fmt.Sprintf("pin %s falls outside %s", pin, other)
	default:
		f.Rule = RuleEmptyRange
		f.Message = fmt.Sprintf("no version satisfies both %s and %s", c.A, c.B)
	}
	return f
}
