// Package reqfile reads and writes pip-style requirements manifests.
package reqfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.pindown.dev/pindown/internal/core/domain"
	"go.pindown.dev/pindown/internal/core/ports"
	"go.trai.ch/zerr"
)

// Store implements ports.ManifestStore for the line-based requirements
// format: one declaration per line, "#" comments, blank lines and
// source order preserved through a rewrite.
type Store struct {
	logger ports.Logger
}

// NewStore creates a manifest store.
func NewStore(logger ports.Logger) *Store {
	return &Store{logger: logger}
}

// Load reads and parses the manifest at path.
func (s *Store) Load(path string) (*domain.Manifest, error) {
	content, err := s.readFile(path)
	if err != nil {
		return nil, err
	}
	return s.Parse(path, content)
}

// LoadLenient reads the manifest at path and parses it leniently. The
// error covers file access only; malformed lines come back as issues.
func (s *Store) LoadLenient(path string) (*domain.Manifest, []domain.ParseIssue, error) {
	content, err := s.readFile(path)
	if err != nil {
		return nil, nil, err
	}
	manifest, issues := s.ParseLenient(path, content)
	return manifest, issues, nil
}

func (s *Store) readFile(path string) ([]byte, error) {
	//nolint:gosec // Path comes from the user's own flag or the default layout
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(domain.ErrManifestNotFound, "path", path)
		}
		return nil, zerr.Wrap(err, domain.ErrManifestReadFailed.Error())
	}

	s.logger.Debug(fmt.Sprintf("read %s (%d bytes)", path, len(content)))
	return content, nil
}

// Parse parses manifest content. Every malformed line is collected and
// reported with its line number, not just the first.
func (s *Store) Parse(path string, content []byte) (*domain.Manifest, error) {
	manifest, issues := s.ParseLenient(path, content)
	if len(issues) > 0 {
		errs := make([]error, len(issues))
		for i, issue := range issues {
			errs[i] = zerr.With(issue.Err, "line", issue.Line)
		}
		joined := zerr.Wrap(errors.Join(errs...), domain.ErrManifestParseFailed.Error())
		return nil, zerr.With(joined, "path", path)
	}

	return manifest, nil
}

// ParseLenient parses manifest content, keeping the statements that
// parse and returning the lines that do not as issues. Linting uses
// this to diagnose a broken manifest instead of giving up on it.
func (s *Store) ParseLenient(path string, content []byte) (*domain.Manifest, []domain.ParseIssue) {
	var (
		statements []domain.Statement
		issues     []domain.ParseIssue
	)

	for i, raw := range splitLines(string(content)) {
		lineNo := i + 1
		trimmed := strings.TrimSpace(raw)

		switch {
		case trimmed == "":
			statements = append(statements, domain.Statement{Kind: domain.StatementBlank, Raw: raw})
		case strings.HasPrefix(trimmed, "#"):
			statements = append(statements, domain.Statement{Kind: domain.StatementComment, Raw: raw})
		default:
			text, comment := splitInlineComment(raw)
			req, err := domain.ParseRequirement(text)
			if err != nil {
				issues = append(issues, domain.ParseIssue{Line: lineNo, Raw: raw, Err: err})
				continue
			}
			req.Comment = comment
			req.Line = lineNo
			statements = append(statements, domain.Statement{
				Kind:        domain.StatementRequirement,
				Raw:         raw,
				Requirement: &req,
			})
		}
	}

	return domain.NewManifest(path, statements), issues
}

// Render serializes the manifest back to file content, statement by
// statement, exactly as the source read.
func (s *Store) Render(m *domain.Manifest) []byte {
	var b strings.Builder
	for _, st := range m.Statements() {
		b.WriteString(st.Raw)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// RenderCanonical serializes the manifest with every statement tidied:
// normalized names, canonical constraint clauses, inline comments two
// spaces after the declaration. Statement order is preserved so the
// document still reads the way its author arranged it.
func (s *Store) RenderCanonical(m *domain.Manifest) []byte {
	var b strings.Builder
	for _, st := range m.Statements() {
		switch st.Kind {
		case domain.StatementBlank:
		case domain.StatementComment:
			if text := st.CommentText(); text == "" {
				b.WriteString("#")
			} else {
				b.WriteString("# ")
				b.WriteString(text)
			}
		case domain.StatementRequirement:
			b.WriteString(st.Requirement.String())
			if st.Requirement.Comment != "" {
				b.WriteString("  # ")
				b.WriteString(st.Requirement.Comment)
			}
		}
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// Write atomically replaces the file at path, so a watcher or a
// concurrent reader never observes a half-written manifest.
func (s *Store) Write(path string, content []byte) error {
	if err := atomicWriteFile(path, content); err != nil {
		return zerr.Wrap(err, domain.ErrManifestWriteFailed.Error())
	}

	s.logger.Debug(fmt.Sprintf("wrote %s (%d bytes)", path, len(content)))
	return nil
}

// splitLines splits file content into lines without their terminators.
// A trailing newline does not produce a final empty line.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// splitInlineComment splits a requirement line into declaration text
// and comment body. A "#" only opens a comment at the start of the
// line or after whitespace.
func splitInlineComment(line string) (text, comment string) {
	for i := 0; i < len(line); i++ {
		if line[i] != '#' {
			continue
		}
		if i == 0 || line[i-1] == ' ' || line[i-1] == '\t' {
			return line[:i], strings.TrimSpace(line[i+1:])
		}
	}
	return line, ""
}

// atomicWriteFile writes data to a file atomically by writing to a temp
// file and renaming it.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, "requirements-*.txt")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}

	if err := tmpFile.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
