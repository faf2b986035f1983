package domain

import (
	"sort"
	"strings"

	"go.trai.ch/zerr"
)

// StatementKind discriminates the statements of a requirements file.
type StatementKind int

const (
	// StatementBlank is an empty or whitespace-only line.
	StatementBlank StatementKind = iota

	// StatementComment is a full-line "#" comment.
	StatementComment

	// StatementRequirement is a dependency declaration, with or
	// without an inline comment.
	StatementRequirement
)

// Statement is one line of a requirements file. The manifest keeps
// every statement, including blanks and comments, so a file can be
// rewritten without losing its annotations.
type Statement struct {
	// Kind discriminates the statement.
	Kind StatementKind

	// Raw is the exact source text of the line, without the trailing
	// newline. Statements built programmatically carry canonical text.
	Raw string

	// Requirement holds the parsed declaration for
	// StatementRequirement lines.
	Requirement *Requirement
}

// CommentText returns the comment body of a comment statement, without
// the "#" marker and surrounding whitespace.
func (s Statement) CommentText() string {
	text := strings.TrimSpace(s.Raw)
	text = strings.TrimPrefix(text, "#")
	return strings.TrimSpace(text)
}

// ParseIssue is one manifest line that could not be parsed as a
// requirement.
type ParseIssue struct {
	// Line is the 1-based line number in the source file.
	Line int

	// Raw is the source text of the line.
	Raw string

	// Err is the parse failure, carrying a domain sentinel.
	Err error
}

// Manifest is a parsed requirements file: the ordered statements of
// the source document plus the dependency view over them.
type Manifest struct {
	// Path is the file the manifest was read from, "" when built in
	// memory.
	Path string

	statements []Statement
	byName     map[PackageName][]*Requirement
}

// NewManifest builds a manifest from parsed statements. Duplicate
// names are representable here so that linting can report them;
// AppendRequirement is the constructor that rejects duplicates.
func NewManifest(path string, statements []Statement) *Manifest {
	m := &Manifest{
		Path:   path,
		byName: make(map[PackageName][]*Requirement),
	}
	for _, st := range statements {
		m.append(st)
	}
	return m
}

func (m *Manifest) append(st Statement) {
	if m.byName == nil {
		m.byName = make(map[PackageName][]*Requirement)
	}
	m.statements = append(m.statements, st)
	if st.Kind == StatementRequirement && st.Requirement != nil {
		m.byName[st.Requirement.Name] = append(m.byName[st.Requirement.Name], st.Requirement)
	}
}

// AppendBlank appends an empty line.
func (m *Manifest) AppendBlank() {
	m.append(Statement{Kind: StatementBlank})
}

// AppendComment appends a full-line comment. The text is the comment
// body; the "#" marker is added when rendering.
func (m *Manifest) AppendComment(text string) {
	m.append(Statement{Kind: StatementComment, Raw: "# " + text})
}

// AppendRequirement appends a dependency declaration. It returns
// ErrDuplicateRequirement if the manifest already declares the same
// normalized name.
func (m *Manifest) AppendRequirement(req Requirement) error {
	if _, exists := m.byName[req.Name]; exists {
		return zerr.With(ErrDuplicateRequirement, "package", req.Name.String())
	}
	m.append(Statement{Kind: StatementRequirement, Raw: req.String(), Requirement: &req})
	return nil
}

// Statements returns the document statements in source order.
func (m *Manifest) Statements() []Statement {
	return m.statements
}

// Requirements returns the dependency declarations in source order,
// including duplicates.
func (m *Manifest) Requirements() []Requirement {
	var out []Requirement
	for _, st := range m.statements {
		if st.Kind == StatementRequirement && st.Requirement != nil {
			out = append(out, *st.Requirement)
		}
	}
	return out
}

// Requirement returns the first declaration of the given package.
func (m *Manifest) Requirement(name PackageName) (Requirement, bool) {
	reqs := m.byName[name]
	if len(reqs) == 0 {
		return Requirement{}, false
	}
	return *reqs[0], true
}

// Duplicates returns the names declared more than once, in first
// occurrence order.
func (m *Manifest) Duplicates() []PackageName {
	var out []PackageName
	seen := make(map[PackageName]bool)
	for _, st := range m.statements {
		if st.Kind != StatementRequirement || st.Requirement == nil {
			continue
		}
		name := st.Requirement.Name
		if len(m.byName[name]) > 1 && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

// MergedSpecifiers returns the conjunction of every clause declared
// for the given package across all of its declarations.
func (m *Manifest) MergedSpecifiers(name PackageName) SpecifierSet {
	var merged SpecifierSet
	for _, req := range m.byName[name] {
		merged = append(merged, req.Specifiers...)
	}
	return merged
}

// Justification returns the human rationale attached to a package's
// declaration: the contiguous block of full-line comments directly
// above it, followed by the inline comment if present.
func (m *Manifest) Justification(name PackageName) []string {
	idx := -1
	for i, st := range m.statements {
		if st.Kind == StatementRequirement && st.Requirement != nil && st.Requirement.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	var leading []string
	for i := idx - 1; i >= 0; i-- {
		if m.statements[i].Kind != StatementComment {
			break
		}
		leading = append([]string{m.statements[i].CommentText()}, leading...)
	}

	if c := m.statements[idx].Requirement.Comment; c != "" {
		leading = append(leading, c)
	}
	return leading
}

// CanonicalBytes renders the dependency content of the manifest in a
// stable form: one canonical requirement per line, sorted by name.
// Comments, blank lines, and declaration order do not affect it, so a
// reformatted manifest keeps its lockfile fresh.
func (m *Manifest) CanonicalBytes() []byte {
	reqs := m.Requirements()
	lines := make([]string, len(reqs))
	for i, req := range reqs {
		lines[i] = req.String()
	}
	sort.Strings(lines)

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}
